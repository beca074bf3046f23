package bitchess

import (
	"fmt"

	"github.com/chessdev/bitchess/internal/xerrors"
)

// ValidityCheck verifies the position invariants: piece bitboards pairwise
// disjoint and covering occupied(); each side has exactly one king, at most
// 16 pieces and 8 pawns, no pawn on the first or eighth rank; any set castle right
// points at a rook of the right color on the back rank on the correct side
// of the king; an en-passant file, if set, names a square that is empty
// with an enemy pawn just behind it; the side not to move is not in check;
// and checkers/pinned match a from-scratch recomputation. It returns nil if p is
// valid, otherwise a wrapped ErrInvalidBoard describing the first
// violation found.
func ValidityCheck(p *Position) error {
	var seen BitBoard
	for piece := Piece(0); piece < NumPieces; piece++ {
		pieces := p.board.Pieces(piece)
		if pieces&seen != Empty {
			return fmt.Errorf("%w: overlapping piece bitboards", xerrors.ErrInvalidBoard)
		}
		seen |= pieces
	}
	if p.board.Colors(White)&p.board.Colors(Black) != Empty {
		return fmt.Errorf("%w: overlapping color bitboards", xerrors.ErrInvalidBoard)
	}
	if seen != p.Occupied() {
		return fmt.Errorf("%w: occupied() does not match placed pieces", xerrors.ErrInvalidBoard)
	}

	for _, c := range [NumColors]Color{White, Black} {
		pieces := p.board.Colors(c)
		if (pieces & p.board.Pieces(King)).Popcount() != 1 {
			return fmt.Errorf("%w: %s does not have exactly one king", xerrors.ErrInvalidBoard, c)
		}
		if pieces.Popcount() > 16 {
			return fmt.Errorf("%w: %s has more than 16 pieces", xerrors.ErrInvalidBoard, c)
		}
		if (pieces & p.board.Pieces(Pawn)).Popcount() > 8 {
			return fmt.Errorf("%w: %s has more than 8 pawns", xerrors.ErrInvalidBoard, c)
		}
		backRank := Rank1.RelativeTo(c)
		if (pieces & p.board.Pieces(Pawn) & (backRankBitBoard(Rank1) | backRankBitBoard(Rank8))) != Empty {
			return fmt.Errorf("%w: %s has a pawn on a back rank", xerrors.ErrInvalidBoard, c)
		}

		rights := p.board.CastleRights(c)
		if rights.Short.Present || rights.Long.Present {
			king, err := p.TryKing(c)
			if err != nil {
				return err
			}
			if king.Rank() != backRank {
				return fmt.Errorf("%w: %s king is not on its back rank despite castle rights", xerrors.ErrInvalidBoard, c)
			}
			ourRooks := pieces & p.board.Pieces(Rook)
			if f := rights.Long; f.Present {
				if !ourRooks.Has(NewSquare(f.File, backRank)) {
					return fmt.Errorf("%w: %s long castle rook missing", xerrors.ErrInvalidBoard, c)
				}
				if f.File >= king.File() {
					return fmt.Errorf("%w: %s long castle rook not left of king", xerrors.ErrInvalidBoard, c)
				}
			}
			if f := rights.Short; f.Present {
				if !ourRooks.Has(NewSquare(f.File, backRank)) {
					return fmt.Errorf("%w: %s short castle rook missing", xerrors.ErrInvalidBoard, c)
				}
				if f.File <= king.File() {
					return fmt.Errorf("%w: %s short castle rook not right of king", xerrors.ErrInvalidBoard, c)
				}
			}
		}
	}

	color := p.SideToMove()
	if ep := p.board.EnPassant(); ep.Present {
		epSquare := NewSquare(ep.File, Rank6.RelativeTo(color))
		victimSquare := NewSquare(ep.File, Rank5.RelativeTo(color))
		if p.Occupied().Has(epSquare) {
			return fmt.Errorf("%w: en-passant target square is occupied", xerrors.ErrInvalidBoard)
		}
		if !(p.board.Colors(color.Other()) & p.board.Pieces(Pawn)).Has(victimSquare) {
			return fmt.Errorf("%w: en-passant target has no enemy pawn behind it", xerrors.ErrInvalidBoard)
		}
	}

	theirChecks, _ := computeCheckersAndPins(p, color.Other())
	if !theirChecks.IsEmpty() {
		return fmt.Errorf("%w: side not to move is in check", xerrors.ErrInvalidBoard)
	}

	checkers, pinned := computeCheckersAndPins(p, color)
	if checkers != p.checkers || pinned != p.pinned {
		return fmt.Errorf("%w: checkers/pinned do not match the position", xerrors.ErrInvalidBoard)
	}
	if checkers.Popcount() > 2 {
		return fmt.Errorf("%w: more than two checkers", xerrors.ErrInvalidBoard)
	}

	return nil
}

func backRankBitBoard(r Rank) BitBoard {
	var bb BitBoard
	for f := File(0); f < NumFiles; f++ {
		bb |= NewSquare(f, r).BitBoard()
	}
	return bb
}
