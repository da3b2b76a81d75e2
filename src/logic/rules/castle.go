package rules

import (
	"cellchess/src/base"
	"cellchess/src/logic/board"
)

const kingFile = 4

type castleSide struct {
	rookFile int
	kingTo   int
	rookTo   int
}

var castleSides = [2]castleSide{
	{rookFile: 0, kingTo: 2, rookTo: 3}, // queen side
	{rookFile: base.BoardSize - 1, kingTo: 6, rookTo: 5},
}

type castle struct {
	kingTo base.Cell
	rook   base.Piece
	rookTo base.Cell
}

// castleTargets lists castling moves open to the king. Moved pieces are
// found by id in the history, never by looking at the squares.
func castleTargets(b *board.Board, k base.Piece) []castle {
	rank := base.HomeRank(k.Color)
	if k.Kind != base.King || k.Cell != (base.Cell{File: kingFile, Rank: rank}) {
		return nil
	}
	h := b.History()
	if h.IsPieceMoved(k) {
		return nil
	}
	att := b.Attacks()
	opp := k.Color.Other()

	out := make([]castle, 0, 2)
	for _, side := range castleSides {
		rook, ok := b.PieceAt(base.Cell{File: side.rookFile, Rank: rank})
		if !ok || rook.Kind != base.Rook || rook.Color != k.Color || h.IsPieceMoved(rook) {
			continue
		}
		if !emptyBetween(b, rank, kingFile, side.rookFile) {
			continue
		}
		if passAttacked(att.IsAttacked, opp, rank, kingFile, side.kingTo) {
			continue
		}
		out = append(out, castle{
			kingTo: base.Cell{File: side.kingTo, Rank: rank},
			rook:   rook,
			rookTo: base.Cell{File: side.rookTo, Rank: rank},
		})
	}
	return out
}

func castleTo(b *board.Board, k base.Piece, to base.Cell) (castle, bool) {
	for _, c := range castleTargets(b, k) {
		if c.kingTo == to {
			return c, true
		}
	}
	return castle{}, false
}

// squares strictly between a and b on rank
func emptyBetween(b *board.Board, rank, a, z int) bool {
	lo, hi := min(a, z), max(a, z)
	for f := lo + 1; f < hi; f++ {
		if _, ok := b.PieceAt(base.Cell{File: f, Rank: rank}); ok {
			return false
		}
	}
	return true
}

// start, intermediate and destination squares of the king
func passAttacked(attacked func(base.Cell, base.Color) bool, by base.Color, rank, from, to int) bool {
	step := 1
	if to < from {
		step = -1
	}
	for f := from; ; f += step {
		if attacked(base.Cell{File: f, Rank: rank}, by) {
			return true
		}
		if f == to {
			return false
		}
	}
}
