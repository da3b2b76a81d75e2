// Package testutil builds positions and compares values in tests.
package testutil

import (
	"fmt"
	"sort"
	"testing"

	"cellchess/src/base"
	"cellchess/src/logic/board"

	"github.com/google/go-cmp/cmp"
)

var kinds = map[rune]base.Kind{
	'K': base.King, 'Q': base.Queen, 'R': base.Rook, 'B': base.Bishop, 'N': base.Knight, 'P': base.Pawn,
}

// Cell parses "e4" and panics on bad input.
func Cell(name string) base.Cell {
	c, err := base.ParseCell(name)
	if err != nil {
		panic(err)
	}
	return c
}

func Cells(names ...string) []base.Cell {
	out := make([]base.Cell, 0, len(names))
	for _, n := range names {
		out = append(out, Cell(n))
	}
	return out
}

// Board places pieces given as "Ke1" (white, upper case) or "ke8"
// (black, lower case) on an empty board with turn to move.
func Board(tb testing.TB, turn base.Color, specs ...string) *board.Board {
	tb.Helper()
	b := board.New()
	for _, s := range specs {
		if len(s) != 3 {
			tb.Fatalf("bad piece spec %q", s)
		}
		r := rune(s[0])
		color := base.White
		if r >= 'a' && r <= 'z' {
			color = base.Black
			r -= 'a' - 'A'
		}
		k, ok := kinds[r]
		if !ok {
			tb.Fatalf("bad piece letter in %q", s)
		}
		c, err := base.ParseCell(s[1:])
		if err != nil {
			tb.Fatalf("bad cell in %q: %v", s, err)
		}
		if _, err := b.Place(k, color, c); err != nil {
			tb.Fatalf("place %q: %v", s, err)
		}
	}
	b.SetTurn(turn)
	return b
}

// At returns the piece on the named cell or fails the test.
func At(tb testing.TB, b *board.Board, name string) base.Piece {
	tb.Helper()
	p, ok := b.PieceAt(Cell(name))
	if !ok {
		tb.Fatalf("no piece on %s", name)
	}
	return p
}

// SortCells orders cells a1, b1, ... h8 for stable comparisons.
func SortCells(cells []base.Cell) []base.Cell {
	out := append([]base.Cell(nil), cells...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].File < out[j].File
	})
	return out
}

// AssertEqual compares got and want using cmp.Diff and reports differences.
func AssertEqual(t *testing.T, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", msg, diff)
		} else {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	}
}

// AssertCells compares two cell sets ignoring order.
func AssertCells(t *testing.T, got, want []base.Cell, msgAndArgs ...interface{}) {
	t.Helper()
	AssertEqual(t, SortCells(got), SortCells(want), msgAndArgs...)
}

func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(s, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs[0])
}
