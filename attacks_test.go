package bitchess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnightAttacks(t *testing.T) {
	assert.Equal(t, 2, KnightAttacks(NewSquare(FileA, Rank1)).Popcount())
	assert.Equal(t, 8, KnightAttacks(NewSquare(FileD, Rank4)).Popcount())
	assert.True(t, KnightAttacks(NewSquare(FileG, Rank1)).Has(NewSquare(FileF, Rank3)))
	assert.False(t, KnightAttacks(NewSquare(FileG, Rank1)).Has(NewSquare(FileG, Rank3)))
}

func TestKingAttacks(t *testing.T) {
	assert.Equal(t, 3, KingAttacks(NewSquare(FileA, Rank1)).Popcount())
	assert.Equal(t, 5, KingAttacks(NewSquare(FileE, Rank1)).Popcount())
	assert.Equal(t, 8, KingAttacks(NewSquare(FileE, Rank4)).Popcount())
}

func TestPawnAttacks(t *testing.T) {
	white := PawnAttacks(White, NewSquare(FileE, Rank2))
	assert.Equal(t, NewSquare(FileD, Rank3).BitBoard()|NewSquare(FileF, Rank3).BitBoard(), white)

	black := PawnAttacks(Black, NewSquare(FileH, Rank7))
	assert.Equal(t, NewSquare(FileG, Rank6).BitBoard(), black)
}

func TestRookAttacksBlockers(t *testing.T) {
	// Empty board: full rank and file minus the origin.
	assert.Equal(t, 14, RookAttacks(NewSquare(FileA, Rank1), Empty).Popcount())

	// A blocker stops the ray but is itself attacked.
	blockers := NewSquare(FileA, Rank4).BitBoard()
	attacks := RookAttacks(NewSquare(FileA, Rank1), blockers)
	assert.True(t, attacks.Has(NewSquare(FileA, Rank4)))
	assert.False(t, attacks.Has(NewSquare(FileA, Rank5)))
	assert.True(t, attacks.Has(NewSquare(FileH, Rank1)))
}

func TestBishopAttacksBlockers(t *testing.T) {
	blockers := NewSquare(FileF, Rank6).BitBoard()
	attacks := BishopAttacks(NewSquare(FileD, Rank4), blockers)
	assert.True(t, attacks.Has(NewSquare(FileF, Rank6)))
	assert.False(t, attacks.Has(NewSquare(FileG, Rank7)))
	assert.True(t, attacks.Has(NewSquare(FileA, Rank1)))
}

// TestMagicTablesMatchRayWalk cross-checks the magic lookups against the
// slow ray-walking reference on a spread of pseudo-random blocker sets.
func TestMagicTablesMatchRayWalk(t *testing.T) {
	seed := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		seed ^= seed << 13
		seed ^= seed >> 7
		seed ^= seed << 17
		return seed
	}
	for i := 0; i < 200; i++ {
		blockers := BitBoard(next() & next()) // sparse-ish occupancy
		for sq := Square(0); sq < NumSquares; sq++ {
			if got, want := RookAttacks(sq, blockers), rayAttacks(sq, blockers, rookDirs); got != want {
				t.Fatalf("rook attacks from %s with blockers %#x: got\n%vwant\n%v", sq, uint64(blockers), got, want)
			}
			if got, want := BishopAttacks(sq, blockers), rayAttacks(sq, blockers, bishopDirs); got != want {
				t.Fatalf("bishop attacks from %s with blockers %#x: got\n%vwant\n%v", sq, uint64(blockers), got, want)
			}
		}
	}
}

func TestQueenAttacks(t *testing.T) {
	sq := NewSquare(FileD, Rank4)
	assert.Equal(t, BishopAttacks(sq, Empty)|RookAttacks(sq, Empty), QueenAttacks(sq, Empty))
}

func TestBetween(t *testing.T) {
	a1, h8 := NewSquare(FileA, Rank1), NewSquare(FileH, Rank8)
	between := Between(a1, h8)
	assert.Equal(t, 6, between.Popcount())
	assert.True(t, between.Has(NewSquare(FileD, Rank4)))
	assert.False(t, between.Has(a1))
	assert.False(t, between.Has(h8))

	// Adjacent and non-collinear pairs have nothing between them.
	assert.Equal(t, Empty, Between(a1, NewSquare(FileB, Rank2)))
	assert.Equal(t, Empty, Between(a1, NewSquare(FileB, Rank3)))
	assert.Equal(t, between, Between(h8, a1))
}

func TestLine(t *testing.T) {
	b2, c3 := NewSquare(FileB, Rank2), NewSquare(FileC, Rank3)
	line := Line(b2, c3)
	assert.Equal(t, 8, line.Popcount())
	assert.True(t, line.Has(NewSquare(FileA, Rank1)))
	assert.True(t, line.Has(NewSquare(FileH, Rank8)))

	assert.Equal(t, Empty, Line(b2, NewSquare(FileC, Rank4)))

	// Orthogonal line.
	e2, e7 := NewSquare(FileE, Rank2), NewSquare(FileE, Rank7)
	assert.Equal(t, 8, Line(e2, e7).Popcount())
	assert.True(t, Line(e2, e7).Has(NewSquare(FileE, Rank1)))
}

func TestRays(t *testing.T) {
	d4 := NewSquare(FileD, Rank4)
	assert.Equal(t, 13, BishopRays(d4).Popcount())
	assert.Equal(t, 14, RookRays(d4).Popcount())
	assert.False(t, BishopRays(d4).Has(d4))
	assert.False(t, RookRays(d4).Has(d4))
}
