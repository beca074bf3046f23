// Package san converts moves between bitchess's Move representation and
// standard algebraic notation (Nf3, exd5, O-O-O, e8=Q+), resolving
// disambiguation against the legal moves of the position.
package san

import (
	"fmt"
	"strings"

	"github.com/chessdev/bitchess"
	"github.com/chessdev/bitchess/internal/xerrors"
)

var pieceLetters = map[byte]bitchess.Piece{
	'N': bitchess.Knight, 'B': bitchess.Bishop, 'R': bitchess.Rook,
	'Q': bitchess.Queen, 'K': bitchess.King,
}

var sanLetters = [6]string{"", "N", "B", "R", "Q", "K"}

// legalMoves materializes the generator's output. SAN is not a hot path, so
// the allocation is fine here.
func legalMoves(p *bitchess.Position) []bitchess.Move {
	var moves []bitchess.Move
	p.GenerateMoves(func(pm bitchess.PieceMoves) bool {
		pm.Each(func(m bitchess.Move) { moves = append(moves, m) })
		return false
	})
	return moves
}

// isCastle reports whether m is a castling move in p (king captures its own
// rook).
func isCastle(p *bitchess.Position, m bitchess.Move) bool {
	piece, ok := p.PieceOn(m.From)
	if !ok || piece != bitchess.King {
		return false
	}
	color, ok := p.ColorOn(m.To)
	return ok && color == p.SideToMove()
}

// FormatMove renders the legal move m as a SAN string relative to p,
// including the + / # suffix.
func FormatMove(p *bitchess.Position, m bitchess.Move) string {
	var sb strings.Builder

	switch {
	case isCastle(p, m):
		if m.To.File() > m.From.File() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}

	default:
		piece, _ := p.PieceOn(m.From)
		_, isCapture := p.ColorOn(m.To)
		if piece == bitchess.Pawn {
			// A diagonal pawn move is a capture even when the destination is
			// empty (en passant).
			isCapture = m.From.File() != m.To.File()
			if isCapture {
				sb.WriteString(m.From.File().String())
			}
		} else {
			sb.WriteString(sanLetters[piece])
			sb.WriteString(disambiguation(p, piece, m))
		}
		if isCapture {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Promotion != bitchess.NoPiece {
			sb.WriteByte('=')
			sb.WriteString(sanLetters[m.Promotion])
		}
	}

	sb.WriteString(suffix(p, m))
	return sb.String()
}

// disambiguation returns the minimal from-square qualifier needed to
// distinguish m from other legal moves of the same piece type to the same
// destination: nothing, the file, the rank, or both.
func disambiguation(p *bitchess.Position, piece bitchess.Piece, m bitchess.Move) string {
	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range legalMoves(p) {
		if other.From == m.From || other.To != m.To {
			continue
		}
		if otherPiece, _ := p.PieceOn(other.From); otherPiece != piece {
			continue
		}
		if isCastle(p, other) {
			continue
		}
		ambiguous = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return m.From.File().String()
	case !sameRank:
		return m.From.Rank().String()
	default:
		return m.From.File().String() + m.From.Rank().String()
	}
}

func suffix(p *bitchess.Position, m bitchess.Move) string {
	next := p.Clone()
	if err := next.Apply(m); err != nil {
		return ""
	}
	if next.Checkers().IsEmpty() {
		return ""
	}
	if next.HasLegalMove() {
		return "+"
	}
	return "#"
}

// ParseMove resolves a SAN string to the one legal move of p it denotes.
// Check/mate/annotation suffixes are accepted and ignored. It returns
// ErrInvalidMove on syntax errors and ErrIllegalMove when the string parses
// but matches no legal move (or more than one, i.e. it was under-
// disambiguated).
func ParseMove(p *bitchess.Position, s string) (bitchess.Move, error) {
	body := strings.TrimRight(s, "+#!?")
	if body == "" {
		return bitchess.Move{}, fmt.Errorf("%w: san: empty move", xerrors.ErrInvalidMove)
	}

	if body == "O-O" || body == "0-0" || body == "O-O-O" || body == "0-0-0" {
		return parseCastle(p, s, len(body) <= 3)
	}

	piece := bitchess.Pawn
	rest := body
	if pc, ok := pieceLetters[rest[0]]; ok {
		piece = pc
		rest = rest[1:]
	}

	// Promotion tail: "=Q".
	promotion := bitchess.NoPiece
	if i := strings.IndexByte(rest, '='); i >= 0 {
		if piece != bitchess.Pawn || i != len(rest)-2 {
			return bitchess.Move{}, fmt.Errorf("%w: san: bad promotion in %q", xerrors.ErrInvalidMove, s)
		}
		pc, ok := pieceLetters[rest[len(rest)-1]]
		if !ok || pc == bitchess.King {
			return bitchess.Move{}, fmt.Errorf("%w: san: bad promotion in %q", xerrors.ErrInvalidMove, s)
		}
		promotion = pc
		rest = rest[:i]
	}

	rest = strings.Replace(rest, "x", "", 1)
	if len(rest) < 2 || len(rest) > 4 {
		return bitchess.Move{}, fmt.Errorf("%w: san: malformed move %q", xerrors.ErrInvalidMove, s)
	}

	destStr := rest[len(rest)-2:]
	if destStr[0] < 'a' || destStr[0] > 'h' || destStr[1] < '1' || destStr[1] > '8' {
		return bitchess.Move{}, fmt.Errorf("%w: san: bad destination in %q", xerrors.ErrInvalidMove, s)
	}
	dest := bitchess.NewSquare(bitchess.File(destStr[0]-'a'), bitchess.Rank(destStr[1]-'1'))

	// Whatever precedes the destination is the from-square constraint.
	var fromFile, fromRank = -1, -1
	for _, ch := range rest[:len(rest)-2] {
		switch {
		case ch >= 'a' && ch <= 'h' && fromFile < 0:
			fromFile = int(ch - 'a')
		case ch >= '1' && ch <= '8' && fromRank < 0:
			fromRank = int(ch - '1')
		default:
			return bitchess.Move{}, fmt.Errorf("%w: san: bad disambiguation in %q", xerrors.ErrInvalidMove, s)
		}
	}

	var matches []bitchess.Move
	for _, m := range legalMoves(p) {
		if m.To != dest || m.Promotion != promotion {
			continue
		}
		if mp, _ := p.PieceOn(m.From); mp != piece {
			continue
		}
		if isCastle(p, m) {
			continue
		}
		if fromFile >= 0 && m.From.File() != bitchess.File(fromFile) {
			continue
		}
		if fromRank >= 0 && m.From.Rank() != bitchess.Rank(fromRank) {
			continue
		}
		matches = append(matches, m)
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return bitchess.Move{}, fmt.Errorf("%w: san: %q matches no legal move", xerrors.ErrIllegalMove, s)
	default:
		return bitchess.Move{}, fmt.Errorf("%w: san: %q is ambiguous", xerrors.ErrIllegalMove, s)
	}
}

func parseCastle(p *bitchess.Position, s string, short bool) (bitchess.Move, error) {
	for _, m := range legalMoves(p) {
		if !isCastle(p, m) {
			continue
		}
		if short == (m.To.File() > m.From.File()) {
			return m, nil
		}
	}
	return bitchess.Move{}, fmt.Errorf("%w: san: %q matches no legal move", xerrors.ErrIllegalMove, s)
}
