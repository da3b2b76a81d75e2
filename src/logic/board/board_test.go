package board_test

import (
	"errors"
	"testing"

	"cellchess/src/base"
	"cellchess/src/logic/board"
	"cellchess/src/testutil"
)

func TestNewClassic(t *testing.T) {
	b := board.NewClassic()
	if got := len(b.Pieces()); got != 32 {
		t.Fatalf("pieces = %d; want 32", got)
	}
	ids := map[base.PieceID]bool{}
	for _, p := range b.Pieces() {
		if ids[p.ID] {
			t.Errorf("duplicate id %d", p.ID)
		}
		ids[p.ID] = true
	}
	if b.Turn() != base.White {
		t.Errorf("turn = %s; want white", b.Turn())
	}
	for _, tc := range []struct {
		cell  string
		kind  base.Kind
		color base.Color
	}{
		{"e1", base.King, base.White},
		{"d1", base.Queen, base.White},
		{"a8", base.Rook, base.Black},
		{"g8", base.Knight, base.Black},
		{"c2", base.Pawn, base.White},
		{"f7", base.Pawn, base.Black},
	} {
		p := testutil.At(t, b, tc.cell)
		if p.Kind != tc.kind || p.Color != tc.color {
			t.Errorf("%s holds %v; want %s %s", tc.cell, p, tc.color, tc.kind)
		}
	}
	if _, ok := b.PieceAt(testutil.Cell("e4")); ok {
		t.Error("e4 should be empty")
	}
	// pawns attack the third and sixth ranks
	if !b.Attacks().IsAttacked(testutil.Cell("e3"), base.White) || !b.Attacks().IsAttacked(testutil.Cell("e6"), base.Black) {
		t.Error("initial attack map misses pawn attacks")
	}
}

func TestPlaceErrors(t *testing.T) {
	b := board.New()
	if _, err := b.Place(base.King, base.White, base.Cell{File: 8, Rank: 0}); !errors.Is(err, base.ErrInvalidCoordinate) {
		t.Errorf("off-board place: err = %v; want ErrInvalidCoordinate", err)
	}
	p, err := b.Place(base.King, base.White, testutil.Cell("e1"))
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 1 {
		t.Errorf("first id = %d; want 1", p.ID)
	}
	if _, err := b.Place(base.Queen, base.Black, testutil.Cell("e1")); !errors.Is(err, base.ErrOccupied) {
		t.Errorf("place on occupied: err = %v; want ErrOccupied", err)
	}
}

func TestKingMissing(t *testing.T) {
	b := testutil.Board(t, base.White, "Ke1")
	if _, err := b.King(base.Black); !errors.Is(err, base.ErrMissingKing) {
		t.Errorf("err = %v; want ErrMissingKing", err)
	}
	k, err := b.King(base.White)
	if err != nil || k.Cell != testutil.Cell("e1") {
		t.Errorf("King(white) = %v, %v", k, err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := board.NewClassic()
	c := b.Clone()
	pawn := testutil.At(t, b, "e2")

	if err := c.Commit(base.Move{Piece: pawn.ID, From: pawn.Cell, To: testutil.Cell("e4")}); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.PieceAt(testutil.Cell("e4")); ok {
		t.Error("move on the clone reached the original")
	}
	if b.Turn() != base.White || b.History().Len() != 0 {
		t.Errorf("original turn %s, plies %d", b.Turn(), b.History().Len())
	}
	moved, ok := c.Piece(pawn.ID)
	if !ok || moved.Cell != testutil.Cell("e4") {
		t.Errorf("clone lost piece #%d: %v", pawn.ID, moved)
	}
}

func TestApplyCapture(t *testing.T) {
	b := testutil.Board(t, base.White, "Ke1", "ke8", "Rd1", "bd7")
	rook := testutil.At(t, b, "d1")
	bishop := testutil.At(t, b, "d7")

	err := b.Apply(base.Move{Piece: rook.ID, From: rook.Cell, To: bishop.Cell, Capture: &bishop.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Pieces()) != 3 {
		t.Errorf("pieces = %d; want 3", len(b.Pieces()))
	}
	if _, ok := b.Piece(bishop.ID); ok {
		t.Error("captured bishop still on the board")
	}
	// Apply does not pass the turn
	if b.Turn() != base.White || b.History().Len() != 0 {
		t.Errorf("Apply changed turn or history")
	}
	if !b.Attacks().IsAttacked(testutil.Cell("d8"), base.White) {
		t.Error("attack map not rebuilt after Apply")
	}
}

func TestApplyErrorLeavesBoard(t *testing.T) {
	b := testutil.Board(t, base.White, "Ke1", "ke8", "Rd1", "Pd3")
	before := b.Pieces()
	rook := testutil.At(t, b, "d1")
	pawn := testutil.At(t, b, "d3")
	ghost := base.PieceID(99)

	tests := []struct {
		name string
		mv   base.Move
		want error
	}{
		{"unknown mover", base.Move{Piece: ghost, To: testutil.Cell("d2")}, base.ErrNoPiece},
		{"off board", base.Move{Piece: rook.ID, To: base.Cell{File: 3, Rank: -1}}, base.ErrInvalidCoordinate},
		{"unknown capture", base.Move{Piece: rook.ID, To: testutil.Cell("d2"), Capture: &ghost}, base.ErrNoPiece},
		{"occupied destination", base.Move{Piece: rook.ID, To: pawn.Cell}, base.ErrOccupied},
		{"self capture", base.Move{Piece: rook.ID, To: rook.Cell, Capture: &rook.ID}, base.ErrIllegalMove},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := b.Apply(tc.mv); !errors.Is(err, tc.want) {
				t.Errorf("err = %v; want %v", err, tc.want)
			}
			testutil.AssertEqual(t, b.Pieces(), before, "pieces after failed Apply")
		})
	}
}

func TestApplyRookAndPromotion(t *testing.T) {
	b := testutil.Board(t, base.White, "Ke1", "Rh1", "ke8", "Pa7")
	k := testutil.At(t, b, "e1")
	r := testutil.At(t, b, "h1")
	if err := b.Apply(base.Move{Piece: k.ID, From: k.Cell, To: testutil.Cell("g1"), Rook: &r.ID, RookTo: testutil.Cell("f1"), Castle: true}); err != nil {
		t.Fatal(err)
	}
	if p := testutil.At(t, b, "f1"); p.ID != r.ID {
		t.Errorf("f1 holds %v; want the rook", p)
	}

	pawn := testutil.At(t, b, "a7")
	if err := b.Apply(base.Move{Piece: pawn.ID, From: pawn.Cell, To: testutil.Cell("a8"), Promote: true, PromoteTo: base.Queen}); err != nil {
		t.Fatal(err)
	}
	q := testutil.At(t, b, "a8")
	if q.Kind != base.Queen || q.ID != pawn.ID {
		t.Errorf("a8 holds %v; want promoted queen #%d", q, pawn.ID)
	}
}

func TestCommitRecordsAndPassesTurn(t *testing.T) {
	b := board.NewClassic()
	knight := testutil.At(t, b, "g1")
	if err := b.Commit(base.Move{Piece: knight.ID, From: knight.Cell, To: testutil.Cell("f3")}); err != nil {
		t.Fatal(err)
	}
	if b.Turn() != base.Black {
		t.Errorf("turn = %s; want black", b.Turn())
	}
	last, ok := b.History().Latest()
	if !ok || last.Piece != knight.ID || last.From != testutil.Cell("g1") || last.To != testutil.Cell("f3") {
		t.Errorf("latest = %+v", last)
	}
	if !b.History().IsPieceMoved(knight) {
		t.Error("knight not marked as moved")
	}

	// a failed commit records nothing
	if err := b.Commit(base.Move{Piece: 99, To: testutil.Cell("a3")}); err == nil {
		t.Fatal("commit of a missing piece succeeded")
	}
	if b.History().Len() != 1 || b.Turn() != base.Black {
		t.Errorf("failed commit changed the board: plies %d, turn %s", b.History().Len(), b.Turn())
	}
}
