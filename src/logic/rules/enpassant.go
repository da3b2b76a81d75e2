package rules

import (
	"cellchess/src/base"
	"cellchess/src/logic/board"
	"cellchess/src/logic/rules/moves"

	"golang.org/x/exp/slices"
)

// enPassantVictim finds the pawn taken when p steps diagonally onto the
// empty cell to right after an enemy double step beside it.
func enPassantVictim(b *board.Board, p base.Piece, to base.Cell, opts Options) (base.Piece, bool) {
	if !opts.EnPassant || p.Kind != base.Pawn {
		return base.Piece{}, false
	}
	if _, occupied := b.PieceAt(to); occupied {
		return base.Piece{}, false
	}
	if !slices.Contains(moves.AttackedCells(b, p), to) {
		return base.Piece{}, false
	}
	last, ok := b.History().Latest()
	if !ok || last.Color == p.Color {
		return base.Piece{}, false
	}
	victim, ok := b.PieceAt(base.Cell{File: to.File, Rank: p.Cell.Rank})
	if !ok || victim.ID != last.Piece || victim.Kind != base.Pawn || victim.Color == p.Color {
		return base.Piece{}, false
	}
	if last.From.Rank != base.PawnRank(victim.Color) || abs(last.To.Rank-last.From.Rank) != 2 {
		return base.Piece{}, false
	}
	return victim, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
