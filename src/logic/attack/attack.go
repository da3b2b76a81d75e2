// Package attack aggregates attacked cells of every piece on a board.
package attack

import (
	"cellchess/src/base"
	"cellchess/src/logic/rules/moves"
)

// Entry is one attacker's claim on a cell.
type Entry struct {
	Cell base.Cell
	By   base.Color
}

// Map is a multiset of entries. Two pieces hitting the same cell give two
// entries; legality only looks at membership, the overlay looks at counts.
type Map struct {
	entries []Entry
	// membership per color, indexed by rank*8+file
	hit [2][base.BoardSize * base.BoardSize]uint8
}

func Build(pos moves.Position, pieces []base.Piece) Map {
	var m Map
	m.entries = make([]Entry, 0, len(pieces)*8)
	for _, p := range pieces {
		for _, c := range moves.AttackedCells(pos, p) {
			m.add(Entry{Cell: c, By: p.Color})
		}
	}
	return m
}

func (m *Map) add(e Entry) {
	m.entries = append(m.entries, e)
	m.hit[e.By][index(e.Cell)]++
}

func index(c base.Cell) int {
	return c.Rank*base.BoardSize + c.File
}

// IsAttacked reports whether any piece of color by attacks c.
func (m Map) IsAttacked(c base.Cell, by base.Color) bool {
	if !c.Valid() {
		return false
	}
	return m.hit[by][index(c)] > 0
}

// Count returns the number of attackers of color by on c.
func (m Map) Count(c base.Cell, by base.Color) int {
	if !c.Valid() {
		return 0
	}
	return int(m.hit[by][index(c)])
}

// Counts returns the attack count of each color per cell, for the overlay.
func (m Map) Counts() map[base.Cell][2]int {
	out := make(map[base.Cell][2]int)
	for _, e := range m.entries {
		v := out[e.Cell]
		v[e.By]++
		out[e.Cell] = v
	}
	return out
}

func (m Map) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m Map) Len() int { return len(m.entries) }
