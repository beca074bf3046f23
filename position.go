package bitchess

import (
	"fmt"

	"github.com/chessdev/bitchess/internal/xerrors"
)

// GameStatus is the current outcome of the game as seen from a Position.
type GameStatus uint8

const (
	Ongoing GameStatus = iota
	Won
	Drawn
)

func (s GameStatus) String() string {
	switch s {
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "ongoing"
	}
}

// Position is a ZobristBoard plus the pinned/checkers bitsets and move
// counters. It keeps about as much state as a FEN string and does not keep
// history; see Game (in apply.go) for a history-tracking wrapper.
type Position struct {
	board ZobristBoard

	pinned   BitBoard
	checkers BitBoard

	halfmoveClock  uint8
	fullmoveNumber uint16
}

// Pieces returns the squares holding a piece of the given type.
func (p *Position) Pieces(piece Piece) BitBoard { return p.board.Pieces(piece) }

// Colors returns the squares holding a piece of the given color.
func (p *Position) Colors(c Color) BitBoard { return p.board.Colors(c) }

// Occupied returns every occupied square.
func (p *Position) Occupied() BitBoard { return p.board.Occupied() }

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.board.SideToMove() }

// CastleRights returns color c's castling rights.
func (p *Position) CastleRights(c Color) CastleRights { return p.board.CastleRights(c) }

// EnPassant returns the en-passant file, if any.
func (p *Position) EnPassant() OptionalFile { return p.board.EnPassant() }

// Hash returns the incrementally maintained Zobrist hash.
func (p *Position) Hash() uint64 { return p.board.Hash() }

// HashWithoutEnPassant returns Hash with the en-passant contribution removed.
func (p *Position) HashWithoutEnPassant() uint64 { return p.board.HashWithoutEnPassant() }

// Pinned returns the pieces (of either color) pinned to the side-to-move's
// king.
func (p *Position) Pinned() BitBoard { return p.pinned }

// Checkers returns the enemy pieces currently giving check.
func (p *Position) Checkers() BitBoard { return p.checkers }

// HalfmoveClock returns the halfmove clock (for the 50-move rule).
func (p *Position) HalfmoveClock() uint8 { return p.halfmoveClock }

// FullmoveNumber returns the fullmove counter.
func (p *Position) FullmoveNumber() uint16 { return p.fullmoveNumber }

// PieceOn returns the piece on sq, if any.
func (p *Position) PieceOn(sq Square) (Piece, bool) {
	for piece := Piece(0); piece < NumPieces; piece++ {
		if p.board.Pieces(piece).Has(sq) {
			return piece, true
		}
	}
	return NoPiece, false
}

// ColorOn returns the color of the piece on sq, if any.
func (p *Position) ColorOn(sq Square) (Color, bool) {
	if p.board.Colors(White).Has(sq) {
		return White, true
	}
	if p.board.Colors(Black).Has(sq) {
		return Black, true
	}
	return 0, false
}

// King returns the king square of color c. It panics if no king is present;
// use TryKing for a non-panicking variant.
func (p *Position) King(c Color) Square {
	sq, err := p.TryKing(c)
	if err != nil {
		panic(err)
	}
	return sq
}

// TryKing is the non-panicking variant of King.
func (p *Position) TryKing(c Color) (Square, error) {
	kings := p.board.Pieces(King) & p.board.Colors(c)
	sq := kings.NextSquare()
	if sq == NoSquare {
		return NoSquare, fmt.Errorf("%w: no %s king", xerrors.ErrInvalidBoard, c)
	}
	return sq, nil
}

// Clone returns an independent copy of p. Position holds no pointers or
// slices, so this is a plain value copy; the clone may be mutated freely
// without affecting p.
func (p *Position) Clone() Position { return *p }

// Status reports the current game outcome: Drawn at the 50-move mark,
// Ongoing if any legal move exists, Drawn on stalemate, otherwise Won (by
// the side not to move, since the side to move has been checkmated).
// Insufficient material and repetition are not detected.
func (p *Position) Status() GameStatus {
	if p.halfmoveClock >= 100 {
		return Drawn
	}
	hasMove := false
	p.GenerateMoves(func(PieceMoves) bool {
		hasMove = true
		return true
	})
	if hasMove {
		return Ongoing
	}
	if p.checkers.IsEmpty() {
		return Drawn
	}
	return Won
}

// StartPosition returns the standard chess starting position.
func StartPosition() Position {
	var p Position
	p.board = emptyZobristBoard()

	backRank := [8]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := File(0); f < NumFiles; f++ {
		p.board.XorSquare(backRank[f], White, NewSquare(f, Rank1))
		p.board.XorSquare(Pawn, White, NewSquare(f, Rank2))
		p.board.XorSquare(Pawn, Black, NewSquare(f, Rank7))
		p.board.XorSquare(backRank[f], Black, NewSquare(f, Rank8))
	}
	p.board.SetCastleRight(White, true, SomeFile(FileH))
	p.board.SetCastleRight(White, false, SomeFile(FileA))
	p.board.SetCastleRight(Black, true, SomeFile(FileH))
	p.board.SetCastleRight(Black, false, SomeFile(FileA))
	p.fullmoveNumber = 1

	p.checkers, p.pinned = computeCheckersAndPins(&p, White)
	return p
}
