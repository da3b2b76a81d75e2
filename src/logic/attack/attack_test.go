package attack_test

import (
	"testing"

	"cellchess/src/base"
	"cellchess/src/logic/attack"
	"cellchess/src/testutil"
)

func TestBuildKeepsDuplicates(t *testing.T) {
	// both rooks hit d4
	b := testutil.Board(t, base.White, "Ra4", "Rd1", "ke8", "Kh1")
	m := attack.Build(b, b.Pieces())

	d4 := testutil.Cell("d4")
	if got := m.Count(d4, base.White); got != 2 {
		t.Errorf("Count(d4, white) = %d; want 2", got)
	}
	if got := m.Count(d4, base.Black); got != 0 {
		t.Errorf("Count(d4, black) = %d; want 0", got)
	}
	if !m.IsAttacked(d4, base.White) {
		t.Error("d4 should be attacked by white")
	}

	n := 0
	for _, e := range m.Entries() {
		if e.Cell == d4 {
			n++
		}
	}
	if n != 2 {
		t.Errorf("entries for d4 = %d; want 2", n)
	}
	if got := m.Counts()[d4]; got != [2]int{2, 0} {
		t.Errorf("Counts()[d4] = %v; want [2 0]", got)
	}
}

func TestIsAttackedByColor(t *testing.T) {
	b := testutil.Board(t, base.White, "Ke1", "ke8", "rh8")
	m := b.Attacks()

	tests := []struct {
		cell string
		by   base.Color
		want bool
	}{
		{"f8", base.Black, true},
		{"h1", base.Black, true},
		{"e1", base.Black, false},
		{"e2", base.White, true},
		{"e7", base.Black, true},
		{"e7", base.White, false},
		{"a1", base.White, false},
	}
	for _, tc := range tests {
		if got := m.IsAttacked(testutil.Cell(tc.cell), tc.by); got != tc.want {
			t.Errorf("IsAttacked(%s, %s) = %v; want %v", tc.cell, tc.by, got, tc.want)
		}
	}
	if m.IsAttacked(base.Cell{File: 8, Rank: 0}, base.Black) {
		t.Error("off-board cell reported as attacked")
	}
}

func TestInitialPositionCounts(t *testing.T) {
	b := testutil.Board(t, base.White)
	if b.Attacks().Len() != 0 {
		t.Errorf("empty board has %d attack entries", b.Attacks().Len())
	}

	m := attack.Build(nil, nil)
	if m.Len() != 0 {
		t.Errorf("empty build has %d entries", m.Len())
	}
}
