// Command perft walks the legal move tree of a set of fixture positions and
// compares the node counts against known-good values. Fixtures live in a
// TOML file so new positions can be added without recompiling.
//
// Usage:
//
//	perft -fixtures fixtures.toml [-depth 4]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"

	"github.com/chessdev/bitchess"
)

type fixtureFile struct {
	Fixture []fixture
}

type fixture struct {
	Name     string
	FEN      string
	Shredder bool
	Nodes    []uint64 // expected node count per depth, Nodes[0] is depth 1
}

var (
	pass = color.New(color.FgGreen).SprintFunc()
	fail = color.New(color.FgRed, color.Bold).SprintFunc()
	head = color.New(color.FgCyan).SprintFunc()
)

func main() {
	fixturesPath := flag.String("fixtures", "fixtures.toml", "TOML file with perft fixtures")
	maxDepth := flag.Int("depth", 0, "cap search depth (0 = run every recorded depth)")
	flag.Parse()

	var file fixtureFile
	if _, err := toml.DecodeFile(*fixturesPath, &file); err != nil {
		fmt.Fprintf(os.Stderr, "perft: %v\n", err)
		os.Exit(2)
	}

	failures := 0
	for _, fx := range file.Fixture {
		p, err := bitchess.Parse(fx.FEN, fx.Shredder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "perft: %s: %v\n", fx.Name, err)
			failures++
			continue
		}
		fmt.Printf("%s  %s\n", head(fx.Name), fx.FEN)
		for i, want := range fx.Nodes {
			depth := i + 1
			if *maxDepth > 0 && depth > *maxDepth {
				break
			}
			start := time.Now()
			got := bitchess.Perft(&p, depth)
			elapsed := time.Since(start)
			if got == want {
				fmt.Printf("  depth %d: %12d nodes  %8s  %s\n", depth, got, elapsed.Round(time.Millisecond), pass("ok"))
			} else {
				fmt.Printf("  depth %d: %12d nodes, want %d  %s\n", depth, got, want, fail("FAIL"))
				failures++
			}
		}
	}

	if failures > 0 {
		fmt.Println(fail(fmt.Sprintf("%d failure(s)", failures)))
		os.Exit(1)
	}
	fmt.Println(pass("all fixtures passed"))
}
