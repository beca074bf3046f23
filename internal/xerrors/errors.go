// Package xerrors holds the typed sentinel errors shared by bitchess (which
// includes the FEN layer) and its external-interface packages (uci, san), so callers can distinguish
// failure kinds with errors.Is instead of parsing messages.
package xerrors

import "errors"

// ErrInvalidBoard means placement or derived state fails one of the
// documented position invariants (two kings missing, pawn on a back rank,
// more than two checkers, opponent in check on our turn, etc.).
var ErrInvalidBoard = errors.New("bitchess: invalid board")

// ErrInvalidMove means a move string failed to parse syntactically.
var ErrInvalidMove = errors.New("bitchess: invalid move syntax")

// ErrIllegalMove means a syntactically valid move is not present in the
// generator's output for the current position.
var ErrIllegalMove = errors.New("bitchess: illegal move")
