package cli

import (
	"cellchess/src/base"
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

// ANSI-code
const (
	reset    = "\033[0m"
	lightBg  = "\033[47m"
	darkBg   = "\033[100m"
	markBg   = "\033[42m"
	selectBg = "\033[43m"
	whiteF   = "\033[97m"
	blackF   = "\033[30m"
	dimF     = "\033[90m"
)

type Style struct {
	Color bool // ANSI colors
	ASCII bool // letters instead of chess glyphs
	// Attacks draws the attack counts after every board
	Attacks bool
}

// Scene is everything one board drawing needs.
type Scene struct {
	Pieces   []base.Piece
	Selected *base.Piece
	Targets  []base.Cell
}

func glyph(p base.Piece, ascii bool) string {
	if ascii {
		r := p.Kind.Rune()
		if p.Color == base.Black {
			r += 'a' - 'A'
		}
		return string(r)
	}
	white := map[base.Kind]string{
		base.King: "♔", base.Queen: "♕", base.Rook: "♖", base.Bishop: "♗", base.Knight: "♘", base.Pawn: "♙",
	}
	black := map[base.Kind]string{
		base.King: "♚", base.Queen: "♛", base.Rook: "♜", base.Bishop: "♝", base.Knight: "♞", base.Pawn: "♟",
	}
	if p.Color == base.White {
		return white[p.Kind]
	}
	return black[p.Kind]
}

func DrawBoard(w io.Writer, sc Scene, st Style) {
	var mb [base.BoardSize][base.BoardSize]*base.Piece
	for i := range sc.Pieces {
		p := &sc.Pieces[i]
		mb[p.Cell.Rank][p.Cell.File] = p
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	for rank := base.BoardSize - 1; rank >= 0; rank-- {
		fmt.Fprintf(w, "%d ", rank+1)
		for file := 0; file < base.BoardSize; file++ {
			cell := base.Cell{File: file, Rank: rank}
			p := mb[rank][file]
			target := slices.Contains(sc.Targets, cell)

			g := " "
			if p != nil {
				g = glyph(*p, st.ASCII)
			} else if target && !st.Color {
				g = "*"
			} else if !st.Color {
				g = "."
			}

			if !st.Color {
				if target && p != nil {
					fmt.Fprintf(w, "x%s ", g)
				} else {
					fmt.Fprintf(w, " %s ", g)
				}
				continue
			}

			var bg, fg string
			switch {
			case sc.Selected != nil && sc.Selected.Cell == cell:
				bg = selectBg
			case target:
				bg = markBg
			case (rank+file)%2 == 1:
				bg = lightBg
			default:
				bg = darkBg
			}
			switch {
			case p == nil:
				fg = dimF
			case p.Color == base.White:
				fg = whiteF
			default:
				fg = blackF
			}
			fmt.Fprintf(w, "%s%s %s %s", bg, fg, g, reset)
		}
		fmt.Fprintf(w, " %d\n", rank+1)
	}
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	fmt.Fprintln(w)
}

// DrawAttacks prints white/black attacker counts for every attacked cell.
func DrawAttacks(w io.Writer, counts map[base.Cell][2]int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    a   b   c   d   e   f   g   h")
	for rank := base.BoardSize - 1; rank >= 0; rank-- {
		fmt.Fprintf(w, "%d ", rank+1)
		for file := 0; file < base.BoardSize; file++ {
			v, ok := counts[base.Cell{File: file, Rank: rank}]
			if !ok {
				fmt.Fprint(w, "  . ")
				continue
			}
			fmt.Fprintf(w, " %d/%d", v[base.White], v[base.Black])
		}
		fmt.Fprintf(w, " %d\n", rank+1)
	}
	fmt.Fprintln(w, "    a   b   c   d   e   f   g   h")
	fmt.Fprintln(w, "(white/black attackers)")
}
