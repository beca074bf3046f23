package bitchess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareIndexing(t *testing.T) {
	assert.Equal(t, Square(0), NewSquare(FileA, Rank1))
	assert.Equal(t, Square(63), NewSquare(FileH, Rank8))
	assert.Equal(t, Square(12), NewSquare(FileE, Rank2))

	sq := NewSquare(FileC, Rank5)
	assert.Equal(t, FileC, sq.File())
	assert.Equal(t, Rank5, sq.Rank())
	assert.Equal(t, "c5", sq.String())
	assert.Equal(t, BitBoard(1)<<34, sq.BitBoard())
}

func TestRankRelativeTo(t *testing.T) {
	assert.Equal(t, Rank2, Rank2.RelativeTo(White))
	assert.Equal(t, Rank7, Rank2.RelativeTo(Black))
	assert.Equal(t, Rank1, Rank8.RelativeTo(Black))
}

func TestColorOther(t *testing.T) {
	assert.Equal(t, Black, White.Other())
	assert.Equal(t, White, Black.Other())
}

func TestBitBoardOps(t *testing.T) {
	bb := NewSquare(FileA, Rank1).BitBoard() |
		NewSquare(FileE, Rank4).BitBoard() |
		NewSquare(FileH, Rank8).BitBoard()

	assert.Equal(t, 3, bb.Popcount())
	assert.True(t, bb.Has(NewSquare(FileE, Rank4)))
	assert.False(t, bb.Has(NewSquare(FileE, Rank5)))

	// Iteration consumes least-significant squares first.
	var order []Square
	for b := bb; b != Empty; {
		order = append(order, b.PopLSB())
	}
	require.Equal(t, []Square{
		NewSquare(FileA, Rank1),
		NewSquare(FileE, Rank4),
		NewSquare(FileH, Rank8),
	}, order)
	assert.Equal(t, order, bb.Squares())

	assert.Equal(t, NoSquare, Empty.NextSquare())
	assert.Equal(t, 64, All.Popcount())
	assert.True(t, Empty.IsEmpty())
}

func TestMoveString(t *testing.T) {
	m := Move{From: NewSquare(FileE, Rank2), To: NewSquare(FileE, Rank4), Promotion: NoPiece}
	assert.Equal(t, "e2e4", m.String())

	promo := Move{From: NewSquare(FileA, Rank7), To: NewSquare(FileA, Rank8), Promotion: Queen}
	assert.Equal(t, "a7a8q", promo.String())
}

func TestPieceMovesExpansion(t *testing.T) {
	// A knight batch expands one move per set bit.
	pm := PieceMoves{
		Piece: Knight,
		From:  NewSquare(FileG, Rank1),
		To:    NewSquare(FileF, Rank3).BitBoard() | NewSquare(FileH, Rank3).BitBoard(),
	}
	assert.Equal(t, 2, pm.Len())
	var moves []Move
	pm.Each(func(m Move) { moves = append(moves, m) })
	require.Len(t, moves, 2)
	for _, m := range moves {
		assert.Equal(t, NoPiece, m.Promotion)
	}

	// A pawn batch hitting the back rank expands to four promotions per
	// square, knight first.
	promo := PieceMoves{
		Piece: Pawn,
		From:  NewSquare(FileB, Rank7),
		To:    NewSquare(FileB, Rank8).BitBoard() | NewSquare(FileA, Rank8).BitBoard(),
	}
	assert.Equal(t, 8, promo.Len())
	moves = moves[:0]
	promo.Each(func(m Move) { moves = append(moves, m) })
	require.Len(t, moves, 8)
	assert.Equal(t, Knight, moves[0].Promotion)
	assert.Equal(t, Queen, moves[3].Promotion)
	assert.Equal(t, NewSquare(FileA, Rank8), moves[0].To)
	assert.Equal(t, NewSquare(FileB, Rank8), moves[4].To)

	assert.True(t, PieceMoves{}.Empty())
	assert.False(t, pm.Empty())
}
