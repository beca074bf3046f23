// Package uci converts moves between bitchess's Move representation and the
// UCI long-algebraic string form (e2e4, a7a8q), including the normalization
// between standard-UCI castling strings (e1g1) and the king-captures-own-rook
// encoding used internally.
package uci

import (
	"fmt"

	"github.com/chessdev/bitchess"
	"github.com/chessdev/bitchess/internal/xerrors"
)

var promotionLetters = map[byte]bitchess.Piece{
	'n': bitchess.Knight, 'b': bitchess.Bishop, 'r': bitchess.Rook, 'q': bitchess.Queen,
}

func parseSquare(s string) (bitchess.Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("%w: uci: bad square %q", xerrors.ErrInvalidMove, s)
	}
	return bitchess.NewSquare(bitchess.File(s[0]-'a'), bitchess.Rank(s[1]-'1')), nil
}

// ParseMove reads a 4- or 5-character UCI move string relative to p. A
// standard-UCI castling string (king from its starting square two files
// sideways, e.g. e1g1) is rewritten so that To names the current castle
// rook's square; Chess960 king-captures-rook strings pass through unchanged.
// The move is syntactically validated only; use Position.IsLegal or
// ApplyChecked to reject illegal moves.
func ParseMove(p *bitchess.Position, s string) (bitchess.Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return bitchess.Move{}, fmt.Errorf("%w: uci: bad move %q", xerrors.ErrInvalidMove, s)
	}
	from, err := parseSquare(s[:2])
	if err != nil {
		return bitchess.Move{}, err
	}
	to, err := parseSquare(s[2:4])
	if err != nil {
		return bitchess.Move{}, err
	}
	promotion := bitchess.NoPiece
	if len(s) == 5 {
		piece, ok := promotionLetters[s[4]]
		if !ok {
			return bitchess.Move{}, fmt.Errorf("%w: uci: bad promotion %q", xerrors.ErrInvalidMove, s)
		}
		promotion = piece
	}

	m := bitchess.Move{From: from, To: to, Promotion: promotion}
	return normalizeCastle(p, m), nil
}

// normalizeCastle rewrites a standard-UCI castling move (king jumping two
// files from its back-rank starting square) to the king-captures-rook
// encoding. Anything else is returned untouched.
func normalizeCastle(p *bitchess.Position, m bitchess.Move) bitchess.Move {
	us := p.SideToMove()
	piece, ok := p.PieceOn(m.From)
	if !ok || piece != bitchess.King {
		return m
	}
	backRank := bitchess.Rank1.RelativeTo(us)
	if m.From.Rank() != backRank || m.To.Rank() != backRank || m.From.File() != bitchess.FileE {
		return m
	}
	rights := p.CastleRights(us)
	switch {
	case m.To.File() == bitchess.FileG && rights.Short.Present:
		m.To = bitchess.NewSquare(rights.Short.File, backRank)
	case m.To.File() == bitchess.FileC && rights.Long.Present:
		m.To = bitchess.NewSquare(rights.Long.File, backRank)
	}
	return m
}

// FormatMove renders m as a UCI move string relative to p. A castling move
// with the standard king and rook files is rendered in standard-UCI form
// (e1g1); any other castling shape keeps the king-captures-rook form, which
// is what Chess960 UCI expects.
func FormatMove(p *bitchess.Position, m bitchess.Move) string {
	us := p.SideToMove()
	if piece, ok := p.PieceOn(m.From); ok && piece == bitchess.King {
		if color, ok := p.ColorOn(m.To); ok && color == us {
			backRank := bitchess.Rank1.RelativeTo(us)
			if m.From.File() == bitchess.FileE {
				if m.To == bitchess.NewSquare(bitchess.FileH, backRank) {
					return m.From.String() + bitchess.NewSquare(bitchess.FileG, backRank).String()
				}
				if m.To == bitchess.NewSquare(bitchess.FileA, backRank) {
					return m.From.String() + bitchess.NewSquare(bitchess.FileC, backRank).String()
				}
			}
		}
	}
	return m.String()
}
