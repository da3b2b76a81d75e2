package rules

import (
	"cellchess/src/base"
	"cellchess/src/logic/board"
	"cellchess/src/logic/rules/moves"
	"fmt"

	"golang.org/x/exp/slices"
)

// Options switch on rules the plain engine leaves out.
// The zero value moves only the king when castling and has
// neither en passant nor promotion.
type Options struct {
	CastleRook bool
	EnPassant  bool
	Promotion  bool
}

// MoveCandidates is piece geometry plus castling destinations for kings.
func MoveCandidates(b *board.Board, p base.Piece) []base.Cell {
	out := moves.MoveCandidates(b, p)
	if p.Kind == base.King {
		for _, c := range castleTargets(b, p) {
			out = append(out, c.kingTo)
		}
	}
	return out
}

// CanMove is true when to is a candidate of p and is empty.
func CanMove(b *board.Board, p base.Piece, to base.Cell) bool {
	if _, occupied := b.PieceAt(to); occupied {
		return false
	}
	return slices.Contains(MoveCandidates(b, p), to)
}

// CanAttack is true when p attacks to.
func CanAttack(b *board.Board, p base.Piece, to base.Cell) bool {
	return slices.Contains(moves.AttackedCells(b, p), to)
}

// Resolve turns "piece p goes to to" into a plan for the board, checking
// everything except self-check.
func Resolve(b *board.Board, p base.Piece, to base.Cell, opts Options) (base.Move, error) {
	if !to.Valid() {
		return base.Move{}, fmt.Errorf("%w: %v", base.ErrInvalidCoordinate, to)
	}
	cur, ok := b.Piece(p.ID)
	if !ok {
		return base.Move{}, fmt.Errorf("%w: #%d", base.ErrNoPiece, p.ID)
	}
	mv := base.Move{Piece: cur.ID, From: cur.Cell, To: to}

	if target, occupied := b.PieceAt(to); occupied {
		if target.Color == cur.Color {
			return base.Move{}, fmt.Errorf("%w: %s holds own %s", base.ErrIllegalMove, to, target.Kind)
		}
		if !CanAttack(b, cur, to) {
			return base.Move{}, fmt.Errorf("%w: %s cannot capture on %s", base.ErrIllegalMove, cur.Kind, to)
		}
		id := target.ID
		mv.Capture = &id
	} else if CanMove(b, cur, to) {
		if cur.Kind == base.King {
			if c, ok := castleTo(b, cur, to); ok {
				mv.Castle = true
				if opts.CastleRook {
					id := c.rook.ID
					mv.Rook = &id
					mv.RookTo = c.rookTo
				}
			}
		}
	} else if victim, ok := enPassantVictim(b, cur, to, opts); ok {
		id := victim.ID
		mv.Capture = &id
	} else {
		return base.Move{}, fmt.Errorf("%w: %s cannot go %s-%s", base.ErrIllegalMove, cur.Kind, cur.Cell, to)
	}

	if opts.Promotion && cur.Kind == base.Pawn && to.Rank == base.HomeRank(cur.Color.Other()) {
		mv.Promote = true
		mv.PromoteTo = base.Queen
	}
	return mv, nil
}

// IsSafe plays the plan on a scratch copy and reports whether the mover's
// king is left unattacked. The real board is never touched.
func IsSafe(b *board.Board, mv base.Move) bool {
	p, ok := b.Piece(mv.Piece)
	if !ok {
		return false
	}
	scratch := b.Clone()
	if err := scratch.Apply(mv); err != nil {
		return false
	}
	return !kingAttacked(scratch, p.Color)
}

// IsInCheck reports whether the king of c is attacked on b. A missing king
// counts as attacked.
func IsInCheck(b *board.Board, c base.Color) bool {
	return kingAttacked(b, c)
}

func kingAttacked(b *board.Board, c base.Color) bool {
	k, err := b.King(c)
	if err != nil {
		return true
	}
	return b.Attacks().IsAttacked(k.Cell, c.Other())
}

// Targets returns candidates and attacked cells of p without duplicates.
func Targets(b *board.Board, p base.Piece) []base.Cell {
	out := MoveCandidates(b, p)
	for _, c := range moves.AttackedCells(b, p) {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// LegalTargets returns every cell p may legally go to.
func LegalTargets(b *board.Board, p base.Piece, opts Options) []base.Cell {
	out := make([]base.Cell, 0, 8)
	for _, to := range Targets(b, p) {
		mv, err := Resolve(b, p, to, opts)
		if err != nil || !IsSafe(b, mv) {
			continue
		}
		out = append(out, to)
	}
	return out
}

// HasLegalMove reports whether color c has at least one legal move.
func HasLegalMove(b *board.Board, c base.Color, opts Options) bool {
	for _, p := range b.PiecesOf(c) {
		for _, to := range Targets(b, p) {
			mv, err := Resolve(b, p, to, opts)
			if err == nil && IsSafe(b, mv) {
				return true
			}
		}
	}
	return false
}

// StateOf evaluates the side to move: InProgress, Checkmate or Stalemate.
func StateOf(b *board.Board, opts Options) base.GameState {
	c := b.Turn()
	if HasLegalMove(b, c, opts) {
		return base.InProgress
	}
	if IsInCheck(b, c) {
		return base.Checkmate
	}
	return base.Stalemate
}
