// Package board holds the pieces of one game, the side to move, the
// derived attack map and the move ledger.
package board

import (
	"cellchess/src/base"
	"cellchess/src/logic/attack"
	"cellchess/src/logic/history"
	"fmt"
)

var backRank = [base.BoardSize]base.Kind{
	base.Rook, base.Knight, base.Bishop, base.Queen, base.King, base.Bishop, base.Knight, base.Rook,
}

// Board exclusively owns its pieces. Geometry reads it through PieceAt,
// pieces never point back to it.
type Board struct {
	pieces  []base.Piece
	turn    base.Color
	attacks attack.Map
	history *history.History
	nextID  base.PieceID
}

// New returns an empty board, White to move.
func New() *Board {
	b := &Board{pieces: make([]base.Piece, 0, 32), turn: base.White, history: history.NewHistory(), nextID: 1}
	b.rebuild()
	return b
}

// NewClassic returns the standard initial position.
func NewClassic() *Board {
	b := New()
	for _, c := range []base.Color{base.White, base.Black} {
		for file, k := range backRank {
			b.mustPlace(k, c, base.Cell{File: file, Rank: base.HomeRank(c)})
		}
		for file := 0; file < base.BoardSize; file++ {
			b.mustPlace(base.Pawn, c, base.Cell{File: file, Rank: base.PawnRank(c)})
		}
	}
	return b
}

func (b *Board) mustPlace(k base.Kind, c base.Color, at base.Cell) {
	if _, err := b.Place(k, c, at); err != nil {
		panic(err)
	}
}

// Place puts a new piece on the board and gives it the next id.
func (b *Board) Place(k base.Kind, c base.Color, at base.Cell) (base.Piece, error) {
	if !at.Valid() {
		return base.Piece{}, fmt.Errorf("%w: %v", base.ErrInvalidCoordinate, at)
	}
	if q, ok := b.PieceAt(at); ok {
		return base.Piece{}, fmt.Errorf("%w: %s by %v", base.ErrOccupied, at, q)
	}
	p := base.Piece{ID: b.nextID, Kind: k, Color: c, Cell: at}
	b.nextID++
	b.pieces = append(b.pieces, p)
	b.rebuild()
	return p, nil
}

func (b *Board) PieceAt(c base.Cell) (base.Piece, bool) {
	if i := b.indexAt(c); i >= 0 {
		return b.pieces[i], true
	}
	return base.Piece{}, false
}

func (b *Board) Piece(id base.PieceID) (base.Piece, bool) {
	if i := b.indexOf(id); i >= 0 {
		return b.pieces[i], true
	}
	return base.Piece{}, false
}

func (b *Board) indexAt(c base.Cell) int {
	for i := range b.pieces {
		if b.pieces[i].Cell == c {
			return i
		}
	}
	return -1
}

func (b *Board) indexOf(id base.PieceID) int {
	for i := range b.pieces {
		if b.pieces[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) Pieces() []base.Piece {
	out := make([]base.Piece, len(b.pieces))
	copy(out, b.pieces)
	return out
}

func (b *Board) PiecesOf(c base.Color) []base.Piece {
	out := make([]base.Piece, 0, 16)
	for _, p := range b.pieces {
		if p.Color == c {
			out = append(out, p)
		}
	}
	return out
}

// King returns the king of the color or ErrMissingKing.
func (b *Board) King(c base.Color) (base.Piece, error) {
	for _, p := range b.pieces {
		if p.Kind == base.King && p.Color == c {
			return p, nil
		}
	}
	return base.Piece{}, fmt.Errorf("%w: %s", base.ErrMissingKing, c)
}

func (b *Board) Turn() base.Color { return b.turn }

// SetTurn is meant for setting up positions, not for play.
func (b *Board) SetTurn(c base.Color) { b.turn = c }

func (b *Board) Attacks() attack.Map { return b.attacks }

func (b *Board) History() *history.History { return b.history }

// Clone copies everything, ids included, so a piece can be followed
// from the real board into the copy.
func (b *Board) Clone() *Board {
	c := &Board{
		pieces:  make([]base.Piece, len(b.pieces)),
		turn:    b.turn,
		attacks: b.attacks,
		history: b.history.Clone(),
		nextID:  b.nextID,
	}
	copy(c.pieces, b.pieces)
	return c
}

// Apply performs the plan without checking chess rules: captured piece
// removed, mover relocated, rook relocated and promotion applied when the
// plan says so. On error the board is left as it was.
func (b *Board) Apply(mv base.Move) error {
	mi := b.indexOf(mv.Piece)
	if mi < 0 {
		return fmt.Errorf("%w: mover #%d", base.ErrNoPiece, mv.Piece)
	}
	if !mv.To.Valid() {
		return fmt.Errorf("%w: %v", base.ErrInvalidCoordinate, mv.To)
	}
	ci := -1
	if mv.Capture != nil {
		if ci = b.indexOf(*mv.Capture); ci < 0 {
			return fmt.Errorf("%w: captured #%d", base.ErrNoPiece, *mv.Capture)
		}
		if ci == mi {
			return fmt.Errorf("%w: piece #%d captures itself", base.ErrIllegalMove, mv.Piece)
		}
	}
	ri := -1
	if mv.Rook != nil {
		if ri = b.indexOf(*mv.Rook); ri < 0 {
			return fmt.Errorf("%w: rook #%d", base.ErrNoPiece, *mv.Rook)
		}
		if !mv.RookTo.Valid() {
			return fmt.Errorf("%w: %v", base.ErrInvalidCoordinate, mv.RookTo)
		}
		if oi := b.indexAt(mv.RookTo); (oi >= 0 && oi != ri && oi != mi) || mv.RookTo == mv.To {
			return fmt.Errorf("%w: %s", base.ErrOccupied, mv.RookTo)
		}
	}
	// destination must be free once the captured piece is gone
	if oi := b.indexAt(mv.To); oi >= 0 && oi != ci && oi != mi {
		return fmt.Errorf("%w: %s", base.ErrOccupied, mv.To)
	}

	b.pieces[mi].Cell = mv.To
	if mv.Promote {
		b.pieces[mi].Kind = mv.PromoteTo
	}
	if ri >= 0 {
		b.pieces[ri].Cell = mv.RookTo
	}
	if ci >= 0 {
		b.pieces = append(b.pieces[:ci], b.pieces[ci+1:]...)
	}
	b.rebuild()
	return nil
}

// Commit applies the plan, records it and passes the turn.
func (b *Board) Commit(mv base.Move) error {
	p, ok := b.Piece(mv.Piece)
	if !ok {
		return fmt.Errorf("%w: mover #%d", base.ErrNoPiece, mv.Piece)
	}
	if err := b.Apply(mv); err != nil {
		return err
	}
	b.history.Add(p, mv.To)
	b.turn = b.turn.Other()
	return nil
}

func (b *Board) rebuild() {
	b.attacks = attack.Build(b, b.pieces)
}
