package bitchess

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chessdev/bitchess/internal/xerrors"
)

// Builder assembles a Position square by square, the way a FEN parser or a
// position editor would, deferring all bitboard/hash bookkeeping and
// validity checking to Build. Grounded in the example pack's board-builder
// pattern (an explicit [64]cell staging area separate from the bitboard
// representation actually played on).
type Builder struct {
	squares        [NumSquares]cellState
	sideToMove     Color
	castle         [NumColors]CastleRights
	enPassant      OptionalFile
	halfmoveClock  uint8
	fullmoveNumber uint16
}

type cellState struct {
	piece   Piece
	color   Color
	present bool
}

// NewBuilder returns an empty Builder: no pieces, White to move, no castle
// rights, no en-passant target, halfmove clock 0, fullmove number 1.
func NewBuilder() *Builder {
	return &Builder{sideToMove: White, fullmoveNumber: 1}
}

// FromPosition returns a Builder pre-populated from p, e.g. as a starting
// point for editing a position.
func FromPosition(p Position) *Builder {
	b := NewBuilder()
	for sq := Square(0); sq < NumSquares; sq++ {
		if piece, ok := p.PieceOn(sq); ok {
			color, _ := p.ColorOn(sq)
			b.SetSquare(sq, piece, color)
		}
	}
	b.sideToMove = p.SideToMove()
	b.castle[White] = p.CastleRights(White)
	b.castle[Black] = p.CastleRights(Black)
	b.enPassant = p.EnPassant()
	b.halfmoveClock = p.HalfmoveClock()
	b.fullmoveNumber = p.FullmoveNumber()
	return b
}

// SetSquare places piece/color on sq, replacing whatever was there.
func (b *Builder) SetSquare(sq Square, piece Piece, color Color) {
	b.squares[sq] = cellState{piece: piece, color: color, present: true}
}

// ClearSquare removes any piece from sq.
func (b *Builder) ClearSquare(sq Square) { b.squares[sq] = cellState{} }

// SetSideToMove sets the side to move.
func (b *Builder) SetSideToMove(c Color) { b.sideToMove = c }

// SetCastleRights sets color c's castling rights wholesale.
func (b *Builder) SetCastleRights(c Color, r CastleRights) { b.castle[c] = r }

// SetEnPassant sets or clears (f == NoFile) the en-passant file.
func (b *Builder) SetEnPassant(f OptionalFile) { b.enPassant = f }

// SetHalfmoveClock sets the halfmove clock.
func (b *Builder) SetHalfmoveClock(n uint8) { b.halfmoveClock = n }

// SetFullmoveNumber sets the fullmove counter.
func (b *Builder) SetFullmoveNumber(n uint16) { b.fullmoveNumber = n }

// Build assembles the staged squares into a Position, computing the Zobrist
// hash and the checkers/pinned sets, then runs ValidityCheck. It returns a
// wrapped ErrInvalidBoard if the result is not a valid position.
func (b *Builder) Build() (Position, error) {
	var p Position
	p.board = emptyZobristBoard()
	for sq := Square(0); sq < NumSquares; sq++ {
		cell := b.squares[sq]
		if cell.present {
			p.board.XorSquare(cell.piece, cell.color, sq)
		}
	}
	if b.sideToMove == Black {
		p.board.ToggleSideToMove()
	}
	p.board.SetCastleRight(White, true, b.castle[White].Short)
	p.board.SetCastleRight(White, false, b.castle[White].Long)
	p.board.SetCastleRight(Black, true, b.castle[Black].Short)
	p.board.SetCastleRight(Black, false, b.castle[Black].Long)
	p.board.SetEnPassant(b.enPassant)
	p.halfmoveClock = b.halfmoveClock
	p.fullmoveNumber = b.fullmoveNumber

	if _, err := p.TryKing(White); err != nil {
		return Position{}, err
	}
	if _, err := p.TryKing(Black); err != nil {
		return Position{}, err
	}
	p.checkers, p.pinned = computeCheckersAndPins(&p, p.SideToMove())

	if err := ValidityCheck(&p); err != nil {
		return Position{}, err
	}
	return p, nil
}

var fenPieceLetters = map[rune]Piece{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// Parse reads a FEN (or, with shredder true, Shredder-FEN/X-FEN for
// Chess960) string into a Position. Castle-right fields are accepted both
// as KQkq letters and as the file letter of the castling rook (Chess960
// convention), whatever shredder is. Without shredder, K/Q name the H/A
// files; with shredder, K/Q resolve to the outermost rook on that side of
// the king.
func Parse(s string, shredder bool) (Position, error) {
	fields := strings.Fields(s)
	if len(fields) != 6 {
		return Position{}, fmt.Errorf("%w: fen: expected 6 fields, got %d", xerrors.ErrInvalidBoard, len(fields))
	}
	placement, side, castle, ep, halfmove, fullmove := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	b := NewBuilder()

	ranks := strings.Split(placement, "/")
	if len(ranks) != NumRanks {
		return Position{}, fmt.Errorf("%w: fen: expected 8 ranks, got %d", xerrors.ErrInvalidBoard, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := File(0)
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += File(ch - '0')
				continue
			}
			if file >= NumFiles {
				return Position{}, fmt.Errorf("%w: fen: rank %s overflows the board", xerrors.ErrInvalidBoard, rankStr)
			}
			piece, ok := fenPieceLetters[toLowerASCII(ch)]
			if !ok {
				return Position{}, fmt.Errorf("%w: fen: unknown piece letter %q", xerrors.ErrInvalidBoard, ch)
			}
			color := Black
			if ch >= 'A' && ch <= 'Z' {
				color = White
			}
			b.SetSquare(NewSquare(file, rank), piece, color)
			file++
		}
		if file != NumFiles {
			return Position{}, fmt.Errorf("%w: fen: rank %s does not span the board", xerrors.ErrInvalidBoard, rankStr)
		}
	}

	switch side {
	case "w":
		b.SetSideToMove(White)
	case "b":
		b.SetSideToMove(Black)
	default:
		return Position{}, fmt.Errorf("%w: fen: unknown side to move %q", xerrors.ErrInvalidBoard, side)
	}

	whiteKingFile, blackKingFile := findKingFiles(b)
	if castle != "-" {
		for _, ch := range castle {
			color := Black
			if ch >= 'A' && ch <= 'Z' {
				color = White
			}
			kingFile := blackKingFile
			if color == White {
				kingFile = whiteKingFile
			}
			switch toLowerASCII(ch) {
			case 'k':
				f := FileH
				if shredder {
					f = outerRookFile(b, color, kingFile, true)
				}
				setRight(b, color, true, f)
			case 'q':
				f := FileA
				if shredder {
					f = outerRookFile(b, color, kingFile, false)
				}
				setRight(b, color, false, f)
			default:
				f, err := fileFromLetter(ch)
				if err != nil {
					return Position{}, err
				}
				setRight(b, color, f > kingFile, f)
			}
		}
	}

	if ep != "-" {
		if len(ep) != 2 || (ep[1] != '3' && ep[1] != '6') {
			return Position{}, fmt.Errorf("%w: fen: malformed en-passant square %q", xerrors.ErrInvalidBoard, ep)
		}
		f, err := fileFromLetter(rune(ep[0]))
		if err != nil {
			return Position{}, err
		}
		b.SetEnPassant(SomeFile(f))
	}

	hm, err := strconv.Atoi(halfmove)
	if err != nil || hm < 0 {
		return Position{}, fmt.Errorf("%w: fen: bad halfmove clock %q", xerrors.ErrInvalidBoard, halfmove)
	}
	b.SetHalfmoveClock(uint8(hm))

	fm, err := strconv.Atoi(fullmove)
	if err != nil || fm < 1 {
		return Position{}, fmt.Errorf("%w: fen: bad fullmove number %q", xerrors.ErrInvalidBoard, fullmove)
	}
	b.SetFullmoveNumber(uint16(fm))

	return b.Build()
}

func findKingFiles(b *Builder) (white, black File) {
	for sq := Square(0); sq < NumSquares; sq++ {
		cell := b.squares[sq]
		if cell.present && cell.piece == King {
			if cell.color == White {
				white = sq.File()
			} else {
				black = sq.File()
			}
		}
	}
	return white, black
}

// outerRookFile resolves an X-FEN K/Q right to a concrete rook file: the
// outermost rook of color c on its back rank on the given side of the king.
// If no such rook exists the edge file on that side (H for short, A for
// long) is returned and the validity check rejects the position later.
func outerRookFile(b *Builder, c Color, kingFile File, short bool) File {
	backRank := Rank1.RelativeTo(c)
	if short {
		for f := int(FileH); f > int(kingFile); f-- {
			cell := b.squares[NewSquare(File(f), backRank)]
			if cell.present && cell.piece == Rook && cell.color == c {
				return File(f)
			}
		}
		return FileH
	}
	for f := int(FileA); f < int(kingFile); f++ {
		cell := b.squares[NewSquare(File(f), backRank)]
		if cell.present && cell.piece == Rook && cell.color == c {
			return File(f)
		}
	}
	return FileA
}

func setRight(b *Builder, c Color, short bool, f File) {
	rights := b.castle[c]
	if short {
		rights.Short = SomeFile(f)
	} else {
		rights.Long = SomeFile(f)
	}
	b.SetCastleRights(c, rights)
}

func fileFromLetter(ch rune) (File, error) {
	lower := toLowerASCII(ch)
	if lower < 'a' || lower > 'h' {
		return 0, fmt.Errorf("%w: fen: bad file letter %q", xerrors.ErrInvalidBoard, ch)
	}
	return File(lower - 'a'), nil
}

func toLowerASCII(ch rune) rune {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}

// Render writes p as a FEN string. With shredder true, castle rights are
// written as the rook's file letter (Chess960/X-FEN convention) rather than
// KQkq, even when the rook sits on its standard file.
func Render(p Position, shredder bool) string {
	var sb strings.Builder
	for r := int(Rank8); r >= int(Rank1); r-- {
		empty := 0
		for f := 0; f < NumFiles; f++ {
			sq := NewSquare(File(f), Rank(r))
			piece, ok := p.PieceOn(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			color, _ := p.ColorOn(sq)
			letter := piece.String()
			if color == White {
				letter = strings.ToUpper(letter)
			}
			sb.WriteString(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != int(Rank1) {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove() == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castle := renderCastleRights(p, shredder)
	sb.WriteString(castle)

	sb.WriteByte(' ')
	if ep := p.EnPassant(); ep.Present {
		rank := Rank6.RelativeTo(p.SideToMove())
		sb.WriteString(NewSquare(ep.File, rank).String())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock(), p.FullmoveNumber())
	return sb.String()
}

func renderCastleRights(p Position, shredder bool) string {
	var sb strings.Builder
	write := func(c Color, f OptionalFile, shortSide bool) {
		if !f.Present {
			return
		}
		var letter string
		if shredder {
			letter = f.File.String()
		} else if shortSide {
			letter = "k"
		} else {
			letter = "q"
		}
		if c == White {
			letter = strings.ToUpper(letter)
		}
		sb.WriteString(letter)
	}
	wr := p.CastleRights(White)
	br := p.CastleRights(Black)
	write(White, wr.Short, true)
	write(White, wr.Long, false)
	write(Black, br.Short, true)
	write(Black, br.Long, false)
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
