package moves

import (
	"cellchess/src/base"
)

// maximum trace length for sliding pieces
const maxTrace = base.BoardSize - 1

var (
	orthogonal = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	allDirs    = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightJump = [][2]int{{2, 1}, {1, 2}, {-1, 2}, {-2, 1}, {-1, -2}, {-2, -1}, {1, -2}, {2, -1}}
)

// Position answers occupancy questions for geometry.
type Position interface {
	PieceAt(c base.Cell) (base.Piece, bool)
}

// Trace walks every direction from the piece up to length steps and returns
// the cells on the way. The first occupied cell is included, nothing behind it.
func Trace(pos Position, from base.Cell, dirs [][2]int, length int) []base.Cell {
	out := make([]base.Cell, 0, len(dirs)*length)
	for _, d := range dirs {
		for step := 1; step <= length; step++ {
			c := from.Add(d[0]*step, d[1]*step)
			if !c.Valid() {
				break
			}
			out = append(out, c)
			if _, ok := pos.PieceAt(c); ok {
				break
			}
		}
	}
	return out
}

// AttackedCells returns cells the piece could capture on.
func AttackedCells(pos Position, p base.Piece) []base.Cell {
	switch p.Kind {
	case base.King:
		return Trace(pos, p.Cell, allDirs, 1)
	case base.Queen:
		return Trace(pos, p.Cell, allDirs, maxTrace)
	case base.Rook:
		return Trace(pos, p.Cell, orthogonal, maxTrace)
	case base.Bishop:
		return Trace(pos, p.Cell, diagonal, maxTrace)
	case base.Knight:
		return Trace(pos, p.Cell, knightJump, 1)
	case base.Pawn:
		return pawnAttacks(p)
	}
	return nil
}

// MoveCandidates returns cells the piece could move to by geometry alone.
// Castling is not geometry and is added by the rules package.
func MoveCandidates(pos Position, p base.Piece) []base.Cell {
	switch p.Kind {
	case base.Pawn:
		return pawnMoves(pos, p)
	case base.King, base.Queen, base.Rook, base.Bishop, base.Knight:
		return AttackedCells(pos, p)
	}
	return nil
}

func pawnAttacks(p base.Piece) []base.Cell {
	dr := base.Forward(p.Color)
	out := make([]base.Cell, 0, 2)
	for _, df := range []int{-1, 1} {
		if c := p.Cell.Add(df, dr); c.Valid() {
			out = append(out, c)
		}
	}
	return out
}

// straight ahead plus the double step from the start rank;
// emptiness of the destination is checked by the caller
func pawnMoves(pos Position, p base.Piece) []base.Cell {
	dr := base.Forward(p.Color)
	one := p.Cell.Add(0, dr)
	if !one.Valid() {
		return nil
	}
	out := []base.Cell{one}
	if p.Cell.Rank == base.PawnRank(p.Color) {
		if _, blocked := pos.PieceAt(one); !blocked {
			if two := p.Cell.Add(0, 2*dr); two.Valid() {
				out = append(out, two)
			}
		}
	}
	return out
}
