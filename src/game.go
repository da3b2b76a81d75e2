package src

import (
	"cellchess/src/base"
	"cellchess/src/logic/attack"
	"cellchess/src/logic/board"
	"cellchess/src/logic/history"
	"cellchess/src/logic/rules"
	"cellchess/src/logx"
	"errors"
	"fmt"
)

// Game is what a front end talks to: it selects pieces, tries moves and
// reads back positions, attacks and the game state.
type Game struct {
	board  *board.Board
	state  base.GameState
	opts   rules.Options
	logger logx.Logger
}

func NewGame(logger logx.Logger, opts rules.Options) *Game {
	if logger == nil {
		logger = logx.NewNopLogx()
	}
	g := &Game{opts: opts, logger: logger}
	g.Reset()
	return g
}

// NewGameFrom starts from a prepared board, e.g. a composed position.
func NewGameFrom(b *board.Board, logger logx.Logger, opts rules.Options) *Game {
	if logger == nil {
		logger = logx.NewNopLogx()
	}
	g := &Game{board: b, opts: opts, logger: logger}
	g.evaluate()
	return g
}

// Reset throws the old board away and sets up a new game.
func (g *Game) Reset() {
	g.logger.Info("new game")
	g.board = board.NewClassic()
	g.state = base.InProgress
}

func (g *Game) Turn() base.Color         { return g.board.Turn() }
func (g *Game) State() base.GameState    { return g.state }
func (g *Game) Options() rules.Options   { return g.opts }
func (g *Game) Plies() int               { return g.board.History().Len() }
func (g *Game) History() []history.Entry { return g.board.History().Plies() }
func (g *Game) Pieces() []base.Piece     { return g.board.Pieces() }
func (g *Game) HistoryString() string    { return g.board.History().String() }
func (g *Game) AttackedCells() []attack.Entry {
	return g.board.Attacks().Entries()
}

// AttackCounts gives the number of white and black attackers per cell.
func (g *Game) AttackCounts() map[base.Cell][2]int {
	return g.board.Attacks().Counts()
}

func (g *Game) InCheck() bool {
	return rules.IsInCheck(g.board, g.board.Turn())
}

func (g *Game) PieceAt(file, rank int) (base.Piece, bool) {
	c := base.Cell{File: file, Rank: rank}
	if !c.Valid() {
		return base.Piece{}, false
	}
	return g.board.PieceAt(c)
}

// TrySelect returns the piece on the cell if it belongs to the side to move
// and the game is still running.
func (g *Game) TrySelect(file, rank int) (base.Piece, bool) {
	if g.state.Terminal() {
		return base.Piece{}, false
	}
	p, ok := g.PieceAt(file, rank)
	if !ok || p.Color != g.board.Turn() {
		return base.Piece{}, false
	}
	return p, true
}

// LegalTargets lists the cells the piece may legally go to right now.
// The piece is looked up again by id, so an old handle works too.
func (g *Game) LegalTargets(p base.Piece) []base.Cell {
	if g.state.Terminal() {
		return nil
	}
	cur, ok := g.board.Piece(p.ID)
	if !ok || cur.Color != g.board.Turn() {
		return nil
	}
	return rules.LegalTargets(g.board, cur, g.opts)
}

// TryMove never fails loudly: anything illegal is Rejected and the board
// stays as it was.
func (g *Game) TryMove(p base.Piece, file, rank int) base.Outcome {
	out, err := g.move(p, base.Cell{File: file, Rank: rank})
	if err != nil {
		g.logger.Debugw("move rejected", "piece", p.String(), "to", base.Cell{File: file, Rank: rank}.String(), "reason", err.Error())
	}
	return out
}

// Move moves whatever stands on from, reporting why a move was refused.
func (g *Game) Move(from, to base.Cell) (base.Outcome, error) {
	if !from.Valid() {
		return base.Outcome{Kind: base.Rejected}, fmt.Errorf("%w: %v", base.ErrInvalidCoordinate, from)
	}
	p, ok := g.board.PieceAt(from)
	if !ok {
		return base.Outcome{Kind: base.Rejected}, fmt.Errorf("%w on %s", base.ErrNoPiece, from)
	}
	return g.move(p, to)
}

func (g *Game) move(p base.Piece, to base.Cell) (base.Outcome, error) {
	rejected := base.Outcome{Kind: base.Rejected}
	if !to.Valid() {
		return rejected, fmt.Errorf("%w: %v", base.ErrInvalidCoordinate, to)
	}
	if g.state.Terminal() {
		return rejected, fmt.Errorf("%w: %s", base.ErrGameOver, g.state)
	}
	cur, ok := g.board.Piece(p.ID)
	if !ok {
		return rejected, fmt.Errorf("%w: #%d", base.ErrNoPiece, p.ID)
	}
	if cur.Color != g.board.Turn() {
		return rejected, fmt.Errorf("%w: %s", base.ErrNotYourTurn, cur.Color)
	}
	mv, err := rules.Resolve(g.board, cur, to, g.opts)
	if err != nil {
		return rejected, err
	}
	if !rules.IsSafe(g.board, mv) {
		return rejected, fmt.Errorf("%w: %s leaves the %s king attacked", base.ErrIllegalMove, mv, cur.Color)
	}

	out := base.Outcome{Kind: base.Moved, Promoted: mv.Promote}
	if mv.Capture != nil {
		victim, _ := g.board.Piece(*mv.Capture)
		out.Kind = base.Captured
		out.Captured = victim.Kind
	} else if mv.Castle {
		out.Kind = base.CastleMoved
	}
	if err := g.board.Commit(mv); err != nil {
		// the plan was checked on a copy, so this is a bug
		g.logger.Errorf("commit %s: %v", mv, err)
		return rejected, err
	}
	g.logger.Infow("move", "ply", g.board.History().Len(), "color", cur.Color.String(), "piece", cur.Kind.String(),
		"from", mv.From.String(), "to", mv.To.String(), "outcome", out.String())
	g.evaluate()
	return out, nil
}

// evaluate runs once per ply for the side about to move.
func (g *Game) evaluate() {
	for _, c := range []base.Color{base.White, base.Black} {
		if _, err := g.board.King(c); errors.Is(err, base.ErrMissingKing) {
			g.logger.DPanicf("board invariant broken: %v", err)
		}
	}
	g.state = rules.StateOf(g.board, g.opts)
	if g.state.Terminal() {
		g.logger.Infof("game over: %s, %s to move", g.state, g.board.Turn())
	}
}

// Winner is the side that gave mate. ok is false unless the game ended in checkmate.
func (g *Game) Winner() (base.Color, bool) {
	if g.state != base.Checkmate {
		return 0, false
	}
	return g.board.Turn().Other(), true
}
