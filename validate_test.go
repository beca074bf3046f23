package bitchess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chessdev/bitchess/internal/xerrors"
)

// Invalid positions must be rejected by Parse (which funnels through
// Builder.Build and ValidityCheck).
func TestParseRejectsInvalidBoards(t *testing.T) {
	cases := []struct {
		name string
		fen  string
	}{
		{"missing black king", "8/8/8/8/8/8/8/K7 w - - 0 1"},
		{"two white kings", "4k3/8/8/8/8/8/8/K3K3 w - - 0 1"},
		{"side not to move in check", "k7/8/8/8/8/8/8/Kr6 b - - 0 1"},
		{"pawn on back rank", "P3k3/8/8/8/8/8/8/K7 w - - 0 1"},
		{"too many pawns", "4k3/8/8/8/8/P7/PPPPPPPP/1K6 w - - 0 1"},
		{"castle right without rook", "4k3/8/8/8/8/8/8/4K3 w K - 0 1"},
		{"castle right with king off back rank", "4k3/8/8/8/8/4K3/8/R7 w Q - 0 1"},
		{"en-passant square occupied", "4k3/8/4p3/4P3/8/8/8/4K3 w - e6 0 1"},
		{"en-passant without enemy pawn", "4k3/8/8/8/8/8/8/4K3 w - e6 0 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.fen, false)
			assert.ErrorIs(t, err, xerrors.ErrInvalidBoard)
		})
	}
}

func TestValidityCheckDetectsCorruptedDerivedState(t *testing.T) {
	p := StartPosition()
	assert.NoError(t, ValidityCheck(&p))

	p.checkers = NewSquare(FileE, Rank4).BitBoard()
	assert.ErrorIs(t, ValidityCheck(&p), xerrors.ErrInvalidBoard)
}

func TestComputeCheckersAndPins(t *testing.T) {
	q := mustParse(t, "4r2k/8/8/8/8/8/4N3/4K3 w - - 0 1")
	checkers, pinned := computeCheckersAndPins(&q, White)
	assert.Equal(t, Empty, checkers)
	assert.Equal(t, NewSquare(FileE, Rank2).BitBoard(), pinned)

	r := mustParse(t, "4r2k/8/8/8/8/8/8/4K3 w - - 0 1")
	checkers, pinned = computeCheckersAndPins(&r, White)
	assert.Equal(t, NewSquare(FileE, Rank8).BitBoard(), checkers)
	assert.Equal(t, Empty, pinned)

	// An enemy piece on the ray is pinned too (it cannot expose its own
	// king by moving, but it does block the check).
	s := mustParse(t, "4r2k/8/8/4n3/8/8/8/4K3 w - - 0 1")
	checkers, pinned = computeCheckersAndPins(&s, White)
	assert.Equal(t, Empty, checkers)
	assert.Equal(t, NewSquare(FileE, Rank5).BitBoard(), pinned)
}
