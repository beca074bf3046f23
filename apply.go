package bitchess

import (
	"fmt"

	"github.com/chessdev/bitchess/internal/xerrors"
)

// Apply mutates p in place to reflect playing m, recomputing checkers and
// pinned, updating castle rights and en-passant, and toggling the side to
// move. The caller is responsible for having validated legality (e.g. via
// GenerateMoves or IsLegal); Apply itself only checks that m.From holds a
// piece. Applying an illegal move may leave the position invalid;
// use ApplyChecked for a variant that refuses illegal moves outright.
func (p *Position) Apply(m Move) error {
	p.pinned = Empty
	p.checkers = Empty

	moved, ok := p.PieceOn(m.From)
	if !ok {
		return fmt.Errorf("%w: apply: no piece on %s", xerrors.ErrInvalidBoard, m.From)
	}
	victim, hasVictim := p.PieceOn(m.To)
	color := p.SideToMove()
	them := color.Other()
	theirKing := p.King(them)
	ourBack := Rank1.RelativeTo(color)
	theirBack := Rank8.RelativeTo(color)

	// Castling is encoded as "king captures its own rook": to holds a
	// friendly piece only in that case.
	isCastle := p.Colors(color).Has(m.To)

	if moved == Pawn || (hasVictim && !isCastle) {
		p.halfmoveClock = 0
	} else if p.halfmoveClock < 100 {
		// Saturates at the 50-move mark; everything past it is equally drawn.
		p.halfmoveClock++
	}
	if color == Black {
		p.fullmoveNumber++
	}

	var newEnPassant OptionalFile

	switch {
	case isCastle:
		var kingFile, rookFile File
		if m.From.File() < m.To.File() {
			kingFile, rookFile = FileG, FileF
		} else {
			kingFile, rookFile = FileC, FileD
		}
		p.board.XorSquare(King, color, m.From)
		p.board.XorSquare(Rook, color, m.To)
		p.board.XorSquare(King, color, NewSquare(kingFile, ourBack))
		p.board.XorSquare(Rook, color, NewSquare(rookFile, ourBack))
		p.board.SetCastleRight(color, true, NoFile)
		p.board.SetCastleRight(color, false, NoFile)

	default:
		p.board.XorSquare(moved, color, m.From)
		p.board.XorSquare(moved, color, m.To)
		if hasVictim {
			// If victim == moved this XORs the piece back in (it was just
			// XORed out above as "moved" landing on to); otherwise this
			// removes the enemy piece actually sitting there.
			p.board.XorSquare(victim, them, m.To)
			if m.To.Rank() == theirBack {
				rights := p.board.CastleRights(them)
				if rights.Short.Present && rights.Short.File == m.To.File() {
					p.board.SetCastleRight(them, true, NoFile)
				} else if rights.Long.Present && rights.Long.File == m.To.File() {
					p.board.SetCastleRight(them, false, NoFile)
				}
			}
		}

		switch moved {
		case Knight:
			if KnightAttacks(theirKing).Has(m.To) {
				p.checkers |= m.To.BitBoard()
			}
		case Pawn:
			if m.Promotion != NoPiece {
				p.board.XorSquare(Pawn, color, m.To)
				p.board.XorSquare(m.Promotion, color, m.To)
				if m.Promotion == Knight && KnightAttacks(theirKing).Has(m.To) {
					p.checkers |= m.To.BitBoard()
				}
			} else {
				fromRel := m.From.Rank().RelativeTo(color)
				toRel := m.To.Rank().RelativeTo(color)
				var epSquare Square = NoSquare
				if ep := p.board.EnPassant(); ep.Present {
					epSquare = NewSquare(ep.File, Rank6.RelativeTo(color))
				}
				if fromRel == Rank2 && toRel == Rank4 {
					newEnPassant = SomeFile(m.To.File())
				} else if epSquare != NoSquare && m.To == epSquare {
					victimSquare := NewSquare(m.To.File(), Rank5.RelativeTo(color))
					p.board.XorSquare(Pawn, them, victimSquare)
				}
				if PawnAttacks(them, theirKing).Has(m.To) {
					p.checkers |= m.To.BitBoard()
				}
			}
		case King:
			p.board.SetCastleRight(color, true, NoFile)
			p.board.SetCastleRight(color, false, NoFile)
		case Rook:
			if m.From.Rank() == ourBack {
				rights := p.board.CastleRights(color)
				if rights.Short.Present && rights.Short.File == m.From.File() {
					p.board.SetCastleRight(color, true, NoFile)
				} else if rights.Long.Present && rights.Long.File == m.From.File() {
					p.board.SetCastleRight(color, false, NoFile)
				}
			}
		}
	}

	p.board.SetEnPassant(newEnPassant)

	// Sliding checkers and pins for the side about to move (their_king,
	// seen from the mover's perspective).
	occ := p.Occupied()
	ourSliders := p.Colors(color) & ((BishopRays(theirKing) & (p.Pieces(Bishop) | p.Pieces(Queen))) |
		(RookRays(theirKing) & (p.Pieces(Rook) | p.Pieces(Queen))))
	for bb := ourSliders; bb != Empty; {
		sq := bb.PopLSB()
		between := Between(sq, theirKing) & occ
		switch between.Popcount() {
		case 0:
			p.checkers |= sq.BitBoard()
		case 1:
			p.pinned |= between
		}
	}

	p.board.ToggleSideToMove()
	return nil
}

// ApplyChecked verifies m is legal before applying it, leaving p untouched
// and returning ErrIllegalMove if not.
func (p *Position) ApplyChecked(m Move) error {
	if !p.IsLegal(m) {
		return fmt.Errorf("%w: %s", xerrors.ErrIllegalMove, m)
	}
	return p.Apply(m)
}

// ApplyNull plays a null move: it is rejected when the side to move is in
// check, otherwise it clears en passant, recomputes pins for the new side
// to move (no new checkers are possible from a null move), advances the
// clocks, and toggles the side to move.
func (p *Position) ApplyNull() error {
	if !p.checkers.IsEmpty() {
		return fmt.Errorf("%w: apply_null: side to move is in check", xerrors.ErrInvalidBoard)
	}
	if p.halfmoveClock < 100 {
		p.halfmoveClock++
	}
	if p.SideToMove() == Black {
		p.fullmoveNumber++
	}
	p.board.ToggleSideToMove()
	p.board.SetEnPassant(NoFile)

	p.pinned = Empty
	color := p.SideToMove()
	them := color.Other()
	king := p.King(color)
	occ := p.Occupied()
	theirSliders := p.Colors(them) & ((BishopRays(king) & (p.Pieces(Bishop) | p.Pieces(Queen))) |
		(RookRays(king) & (p.Pieces(Rook) | p.Pieces(Queen))))
	for bb := theirSliders; bb != Empty; {
		sq := bb.PopLSB()
		between := Between(sq, king) & occ
		if between.Popcount() == 1 {
			p.pinned |= between
		}
	}
	return nil
}

// Game wraps a Position with a move-history stack so callers can undo moves
// without re-parsing. Position itself carries no more history than a FEN
// string does; Game layers an undo stack on top. Position is small and
// fixed-size, so each history entry is a whole snapshot rather than a
// packed delta.
type Game struct {
	Position
	history []Position
}

// NewGame wraps p in a Game with empty history.
func NewGame(p Position) *Game {
	return &Game{Position: p}
}

// Push applies m, recording a snapshot so it can later be undone with Pop.
// On failure the Game is left unchanged.
func (g *Game) Push(m Move) error {
	snapshot := g.Position
	if err := g.Position.Apply(m); err != nil {
		return err
	}
	g.history = append(g.history, snapshot)
	return nil
}

// Pop restores the position before the last Push, returning false if there
// is nothing to undo.
func (g *Game) Pop() bool {
	if len(g.history) == 0 {
		return false
	}
	g.Position = g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	return true
}
