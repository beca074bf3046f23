package bitchess

import "math/rand"

// Zobrist keys are fixed 64-bit pseudorandom constants, one per observable
// feature of a position: piece/color/square, side to move, castle right
// (per color, per side, per rook file — Chess960-ready), and en-passant
// file. The specific numbers are implementation-defined; only the
// incremental-update identity in the hash contract matters. Keys are
// generated once, deterministically, at package load via a fixed-seed PRNG
// in an init function (the same style as the attack tables), so a given
// build always hashes the same position the same way.

var (
	pieceSquareKeys [NumColors][NumPieces][NumSquares]uint64
	sideToMoveKey   uint64
	castleRightKeys [NumColors][2][NumFiles]uint64 // [color][0=short,1=long][rookFile]
	enPassantKeys   [NumFiles]uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x5eed5eed*int64(1)<<32 ^ 0xc0ffee))
	next := func() uint64 { return rng.Uint64() }

	for c := Color(0); c < NumColors; c++ {
		for p := Piece(0); p < NumPieces; p++ {
			for sq := Square(0); sq < NumSquares; sq++ {
				pieceSquareKeys[c][p][sq] = next()
			}
		}
	}
	sideToMoveKey = next()
	for c := Color(0); c < NumColors; c++ {
		for side := 0; side < 2; side++ {
			for f := File(0); f < NumFiles; f++ {
				castleRightKeys[c][side][f] = next()
			}
		}
	}
	for f := File(0); f < NumFiles; f++ {
		enPassantKeys[f] = next()
	}
}

const (
	castleShort = 0
	castleLong  = 1
)

// ZobristBoard is the placement state of a position: piece and color
// bitboards, side to move, castle rights per side, an optional en-passant
// file, and the running incrementally-updated hash.
type ZobristBoard struct {
	pieces [NumPieces]BitBoard
	colors [NumColors]BitBoard

	sideToMove Color
	castle     [NumColors]CastleRights
	enPassant  OptionalFile

	hash uint64
}

// Pieces returns the set of squares holding a piece of the given type,
// regardless of color.
func (z *ZobristBoard) Pieces(p Piece) BitBoard { return z.pieces[p] }

// Colors returns the set of squares holding a piece of the given color.
func (z *ZobristBoard) Colors(c Color) BitBoard { return z.colors[c] }

// Occupied returns every occupied square.
func (z *ZobristBoard) Occupied() BitBoard { return z.colors[White] | z.colors[Black] }

// SideToMove returns the color to move.
func (z *ZobristBoard) SideToMove() Color { return z.sideToMove }

// CastleRights returns the castling rights for color c.
func (z *ZobristBoard) CastleRights(c Color) CastleRights { return z.castle[c] }

// EnPassant returns the en-passant file, if any.
func (z *ZobristBoard) EnPassant() OptionalFile { return z.enPassant }

// Hash returns the incrementally maintained Zobrist hash. It does not
// include the halfmove clock or fullmove number.
func (z *ZobristBoard) Hash() uint64 { return z.hash }

// HashWithoutEnPassant returns Hash with the en-passant contribution
// removed, useful for equivalence checks that should ignore en passant.
func (z *ZobristBoard) HashWithoutEnPassant() uint64 {
	h := z.hash
	if z.enPassant.Present {
		h ^= enPassantKeys[z.enPassant.File]
	}
	return h
}

// XorSquare toggles piece p of color c on square sq, both in the bitboards
// and in the incremental hash.
func (z *ZobristBoard) XorSquare(p Piece, c Color, sq Square) {
	bit := sq.BitBoard()
	z.pieces[p] ^= bit
	z.colors[c] ^= bit
	z.hash ^= pieceSquareKeys[c][p][sq]
}

// ToggleSideToMove flips the side to move and its hash key.
func (z *ZobristBoard) ToggleSideToMove() {
	z.sideToMove = z.sideToMove.Other()
	z.hash ^= sideToMoveKey
}

// SetEnPassant replaces the en-passant file, updating the hash for both the
// old and new contributions.
func (z *ZobristBoard) SetEnPassant(f OptionalFile) {
	if z.enPassant.Present {
		z.hash ^= enPassantKeys[z.enPassant.File]
	}
	z.enPassant = f
	if f.Present {
		z.hash ^= enPassantKeys[f.File]
	}
}

// SetCastleRight sets (or clears, with f == NoFile) color c's short/long
// castle right, updating the hash.
func (z *ZobristBoard) SetCastleRight(c Color, short bool, f OptionalFile) {
	side := castleLong
	if short {
		side = castleShort
	}
	var cur *OptionalFile
	if short {
		cur = &z.castle[c].Short
	} else {
		cur = &z.castle[c].Long
	}
	if cur.Present {
		z.hash ^= castleRightKeys[c][side][cur.File]
	}
	*cur = f
	if f.Present {
		z.hash ^= castleRightKeys[c][side][f.File]
	}
}

// emptyZobristBoard returns a ZobristBoard with no pieces placed, White to
// move, hash zero.
func emptyZobristBoard() ZobristBoard {
	return ZobristBoard{sideToMove: White}
}
