package bitchess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPosition(t *testing.T) {
	p := StartPosition()
	assert.Equal(t, White, p.SideToMove())
	assert.Equal(t, 32, p.Occupied().Popcount())
	assert.Equal(t, 16, p.Pieces(Pawn).Popcount())
	assert.Equal(t, NewSquare(FileE, Rank1), p.King(White))
	assert.Equal(t, NewSquare(FileE, Rank8), p.King(Black))
	assert.Equal(t, Empty, p.Checkers())
	assert.Equal(t, Empty, p.Pinned())
	assert.Equal(t, uint16(1), p.FullmoveNumber())
	require.NoError(t, ValidityCheck(&p))
}

func TestPieceOnColorOn(t *testing.T) {
	p := StartPosition()
	piece, ok := p.PieceOn(NewSquare(FileD, Rank1))
	require.True(t, ok)
	assert.Equal(t, Queen, piece)
	color, ok := p.ColorOn(NewSquare(FileD, Rank8))
	require.True(t, ok)
	assert.Equal(t, Black, color)

	_, ok = p.PieceOn(NewSquare(FileD, Rank4))
	assert.False(t, ok)
	_, ok = p.ColorOn(NewSquare(FileD, Rank4))
	assert.False(t, ok)
}

func TestStatusOngoing(t *testing.T) {
	p := StartPosition()
	assert.Equal(t, Ongoing, p.Status())
}

func TestStatusCheckmate(t *testing.T) {
	// Back-rank mate: the king has no flight square and the checker cannot
	// be captured or blocked.
	p := mustParse(t, "R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	require.Equal(t, 1, p.Checkers().Popcount())
	assert.Empty(t, collectMoves(&p))
	assert.Equal(t, Won, p.Status())
}

func TestStatusStalemate(t *testing.T) {
	p := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.Equal(t, Empty, p.Checkers())
	assert.Empty(t, collectMoves(&p))
	assert.Equal(t, Drawn, p.Status())
}

func TestStatusFiftyMoveClock(t *testing.T) {
	p := mustParse(t, "7k/ppp5/8/8/8/8/7K/8 w - - 100 1")
	assert.Equal(t, Drawn, p.Status())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ongoing", Ongoing.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "drawn", Drawn.String())
}

func TestTryKingMissing(t *testing.T) {
	var p Position
	p.board = emptyZobristBoard()
	_, err := p.TryKing(White)
	assert.Error(t, err)
	assert.Panics(t, func() { p.King(White) })
}
