// Command board2svg renders a position as an SVG diagram, one Unicode chess
// glyph per occupied square. Handy for eyeballing a FEN while debugging.
//
// Usage:
//
//	board2svg -fen "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" -out board.svg
package main

import (
	"flag"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/chessdev/bitchess"
)

const cell = 48

var glyphs = [bitchess.NumColors][bitchess.NumPieces]string{
	{"♙", "♘", "♗", "♖", "♕", "♔"},
	{"♟", "♞", "♝", "♜", "♛", "♚"},
}

func main() {
	fen := flag.String("fen", "", "position to render (FEN)")
	shredder := flag.Bool("shredder", false, "parse the FEN castle field as Shredder-FEN/X-FEN")
	out := flag.String("out", "board.svg", "output file")
	flag.Parse()

	if *fen == "" {
		fmt.Fprintln(os.Stderr, "board2svg: -fen is required")
		os.Exit(2)
	}
	p, err := bitchess.Parse(*fen, *shredder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "board2svg: %v\n", err)
		os.Exit(2)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "board2svg: %v\n", err)
		os.Exit(2)
	}
	defer f.Close()

	canvas := svg.New(f)
	size := cell * bitchess.NumFiles
	canvas.Start(size, size)
	for sq := bitchess.Square(0); sq < bitchess.NumSquares; sq++ {
		x := int(sq.File()) * cell
		y := (bitchess.NumRanks - 1 - int(sq.Rank())) * cell
		fill := "fill:#f0d9b5"
		if (int(sq.File())+int(sq.Rank()))%2 == 0 {
			fill = "fill:#b58863"
		}
		canvas.Rect(x, y, cell, cell, fill)
		piece, ok := p.PieceOn(sq)
		if !ok {
			continue
		}
		color, _ := p.ColorOn(sq)
		canvas.Text(x+cell/2, y+cell*3/4, glyphs[color][piece],
			fmt.Sprintf("text-anchor:middle;font-size:%dpx", cell*3/4))
	}
	canvas.End()
}
