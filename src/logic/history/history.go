package history

import (
	"cellchess/src/base"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// append-only ledger of committed moves, one list per color
type History struct {
	moves [2][]Entry
	plies int
}

type Entry struct {
	Piece base.PieceID
	Color base.Color
	From  base.Cell
	To    base.Cell
	// 1-based index of the ply over both colors
	Ply int
}

func NewHistory() *History {
	return &History{moves: [2][]Entry{make([]Entry, 0), make([]Entry, 0)}}
}

func (h *History) Len() int { return h.plies }

func (h *History) Add(p base.Piece, to base.Cell) {
	h.plies++
	h.moves[p.Color] = append(h.moves[p.Color], Entry{Piece: p.ID, Color: p.Color, From: p.Cell, To: to, Ply: h.plies})
}

// IsPieceMoved looks the piece up by id, so a piece back on its
// start square still counts as moved.
func (h *History) IsPieceMoved(p base.Piece) bool {
	return slices.IndexFunc(h.moves[p.Color], func(e Entry) bool {
		return e.Piece == p.ID
	}) >= 0
}

// Last returns the latest move of the color.
func (h *History) Last(c base.Color) (Entry, bool) {
	list := h.moves[c]
	if len(list) == 0 {
		return Entry{}, false
	}
	return list[len(list)-1], true
}

// Latest returns the most recent move of either color.
func (h *History) Latest() (Entry, bool) {
	w, wok := h.Last(base.White)
	b, bok := h.Last(base.Black)
	switch {
	case wok && bok:
		if w.Ply > b.Ply {
			return w, true
		}
		return b, true
	case wok:
		return w, true
	default:
		return b, bok
	}
}

func (h *History) Moves(c base.Color) []Entry {
	return slices.Clone(h.moves[c])
}

// Plies merges both ledgers in play order.
func (h *History) Plies() []Entry {
	w, b := h.moves[base.White], h.moves[base.Black]
	out := make([]Entry, 0, len(w)+len(b))
	i, j := 0, 0
	for i < len(w) || j < len(b) {
		if j >= len(b) || (i < len(w) && w[i].Ply < b[j].Ply) {
			out = append(out, w[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	return out
}

func (h *History) Clone() *History {
	return &History{
		moves: [2][]Entry{slices.Clone(h.moves[base.White]), slices.Clone(h.moves[base.Black])},
		plies: h.plies,
	}
}

// returned string with all moves
// example: "1. e2-e4 e7-e5 2. g1-f3"
func (h *History) String() string {
	plies := h.Plies()
	var b strings.Builder
	for i, e := range plies {
		if i%2 == 0 {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(fmt.Sprintf("%d. ", i/2+1))
		} else {
			b.WriteString(" ")
		}
		b.WriteString(e.From.String() + "-" + e.To.String())
	}
	return b.String()
}
