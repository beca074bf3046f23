package bitchess

import (
	"fmt"

	"github.com/chessdev/bitchess/internal/xerrors"
)

// knightPairs enumerates the ten ways to place two knights on five free
// squares, in Scharnagl order.
var knightPairs = [10][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 2}, {1, 3}, {1, 4},
	{2, 3}, {2, 4},
	{3, 4},
}

// Chess960BackRank returns the back-rank piece arrangement for Scharnagl
// number n in [0, 960).
func Chess960BackRank(n uint32) ([NumFiles]Piece, error) {
	var rank [NumFiles]Piece
	if n >= 960 {
		return rank, fmt.Errorf("%w: chess960 number %d out of range", xerrors.ErrInvalidBoard, n)
	}
	for i := range rank {
		rank[i] = NoPiece
	}

	// Light-square bishop on b/d/f/h, dark-square bishop on a/c/e/g.
	rank[2*(n%4)+1] = Bishop
	n /= 4
	rank[2*(n%4)] = Bishop
	n /= 4

	// Queen on the n%6-th remaining free square.
	placeNth := func(piece Piece, nth int) {
		for f := range rank {
			if rank[f] != NoPiece {
				continue
			}
			if nth == 0 {
				rank[f] = piece
				return
			}
			nth--
		}
	}
	placeNth(Queen, int(n%6))
	n /= 6

	// Knights on the pair of remaining free squares given by the N5N table;
	// place the higher index first so the lower one is still "free square i".
	pair := knightPairs[n]
	placeNth(Knight, pair[1])
	placeNth(Knight, pair[0])

	// Remaining three squares are rook, king, rook, left to right.
	placeNth(Rook, 0)
	placeNth(King, 0)
	placeNth(Rook, 0)
	return rank, nil
}

// Chess960Startpos returns the starting position for Scharnagl number n in
// [0, 960), with both sides' arrangements mirrored and full castle rights on
// the rook files of the arrangement. Number 518 is the standard chess
// starting position.
func Chess960Startpos(n uint32) (Position, error) {
	backRank, err := Chess960BackRank(n)
	if err != nil {
		return Position{}, err
	}

	b := NewBuilder()
	var rookFiles []File
	for f := File(0); f < NumFiles; f++ {
		b.SetSquare(NewSquare(f, Rank1), backRank[f], White)
		b.SetSquare(NewSquare(f, Rank2), Pawn, White)
		b.SetSquare(NewSquare(f, Rank7), Pawn, Black)
		b.SetSquare(NewSquare(f, Rank8), backRank[f], Black)
		if backRank[f] == Rook {
			rookFiles = append(rookFiles, f)
		}
	}
	rights := CastleRights{Short: SomeFile(rookFiles[1]), Long: SomeFile(rookFiles[0])}
	b.SetCastleRights(White, rights)
	b.SetCastleRights(Black, rights)
	return b.Build()
}
