package cli

import (
	"bufio"
	"cellchess/src"
	"cellchess/src/base"
	"cellchess/src/logx"
	"cellchess/src/storage"
	"errors"
	"fmt"
	"io"
	"strings"
)

// GameRecorder keeps finished games; *storage.Storage is one.
type GameRecorder interface {
	RecordGame(res storage.Result) (storage.Record, error)
}

type CLIProcessing struct {
	game     *src.Game
	style    Style
	in       io.Reader
	out      io.Writer
	recorder GameRecorder
	logger   logx.Logger
	selected *base.Piece
}

func NewCLI(g *src.Game, in io.Reader, out io.Writer, style Style, logger logx.Logger) *CLIProcessing {
	return &CLIProcessing{game: g, style: style, in: in, out: out, logger: logger}
}

// SetRecorder makes the loop store every game that ends.
func (c *CLIProcessing) SetRecorder(r GameRecorder) {
	c.recorder = r
}

// line processing
// - "e2" selects a piece, a second cell moves it
// - "e2e4" or "e2-e4" moves at once
// - new, attacks, moves, help, q
func (c *CLIProcessing) Run() error {
	scanner := bufio.NewScanner(c.in)
	c.redraw()
	fmt.Fprintln(c.out, "Enter a cell to select, another to move ('help' for commands, 'q' to quit).")
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}
		switch line {
		case "q", "quit", "exit":
			return nil
		case "new":
			c.selected = nil
			c.game.Reset()
			c.redraw()
			continue
		case "attacks":
			DrawAttacks(c.out, c.game.AttackCounts())
			continue
		case "moves":
			fmt.Fprintf(c.out, "Moves: %s\n", c.game.HistoryString())
			continue
		case "help":
			c.printHelp()
			continue
		}
		c.handleCells(line)
	}
	return scanner.Err()
}

func (c *CLIProcessing) handleCells(line string) {
	line = strings.ReplaceAll(line, "-", "")
	switch len(line) {
	case 2:
		cell, err := base.ParseCell(line)
		if err != nil {
			fmt.Fprintf(c.out, "Invalid cell: %s\n", line)
			return
		}
		c.click(cell)
	case 4:
		from, err1 := base.ParseCell(line[:2])
		to, err2 := base.ParseCell(line[2:])
		if err := errors.Join(err1, err2); err != nil {
			fmt.Fprintf(c.out, "Invalid move: %s\n", line)
			return
		}
		c.selected = nil
		out, err := c.game.Move(from, to)
		c.afterMove(out, err)
	default:
		fmt.Fprintf(c.out, "Unknown command: %s\n", line)
	}
}

// click mimics a mouse click on a cell: select own piece, or move the
// selected one there.
func (c *CLIProcessing) click(cell base.Cell) {
	if p, ok := c.game.TrySelect(cell.File, cell.Rank); ok {
		c.selected = &p
		c.redraw()
		return
	}
	if c.selected == nil {
		fmt.Fprintf(c.out, "Nothing to select on %s\n", cell)
		return
	}
	p := *c.selected
	c.selected = nil
	out, err := c.game.Move(p.Cell, cell)
	c.afterMove(out, err)
}

func (c *CLIProcessing) afterMove(out base.Outcome, err error) {
	if err != nil {
		fmt.Fprintf(c.out, "Rejected: %v\n", err)
		c.redraw()
		return
	}
	c.redraw()
	fmt.Fprintf(c.out, "Last: %s\n", out)
	if c.game.State().Terminal() {
		c.finish()
	}
}

func (c *CLIProcessing) finish() {
	st := c.game.State()
	if w, ok := c.game.Winner(); ok {
		fmt.Fprintf(c.out, "Checkmate, %s wins. Type 'new' to play again.\n", w)
	} else {
		fmt.Fprintf(c.out, "%s, draw. Type 'new' to play again.\n", statusString(st))
	}
	if c.recorder == nil {
		return
	}
	res := storage.Result{State: st, Moves: c.game.History()}
	if w, ok := c.game.Winner(); ok {
		res.Winner = &w
	}
	rec, err := c.recorder.RecordGame(res)
	if err != nil {
		c.logger.Errorf("record game: %v", err)
		fmt.Fprintf(c.out, "error record game: %v\n", err)
		return
	}
	c.logger.Infof("game recorded: %s", rec.ID)
}

func (c *CLIProcessing) redraw() {
	sc := Scene{Pieces: c.game.Pieces(), Selected: c.selected}
	if c.selected != nil {
		sc.Targets = c.game.LegalTargets(*c.selected)
	}
	DrawBoard(c.out, sc, c.style)
	if c.style.Attacks {
		DrawAttacks(c.out, c.game.AttackCounts())
	}
	c.printStatus()
}

func (c *CLIProcessing) printStatus() {
	fmt.Fprintf(c.out, "Turn: %s\n", c.game.Turn())
	status := statusString(c.game.State())
	if c.game.State() == base.InProgress && c.game.InCheck() {
		status = "Check"
	}
	fmt.Fprintf(c.out, "Status: %s\n", status)
	if c.selected != nil {
		fmt.Fprintf(c.out, "Selected: %s %s\n", c.selected.Kind, c.selected.Cell)
	}
}

func (c *CLIProcessing) printHelp() {
	fmt.Fprintln(c.out, "  e2        select the piece on e2, or move the selected piece to e2")
	fmt.Fprintln(c.out, "  e2e4      move from e2 to e4")
	fmt.Fprintln(c.out, "  attacks   show how many pieces attack each cell")
	fmt.Fprintln(c.out, "  moves     list the moves played")
	fmt.Fprintln(c.out, "  new       start a new game")
	fmt.Fprintln(c.out, "  q         quit")
}

func statusString(s base.GameState) string {
	switch s {
	case base.Checkmate:
		return "Checkmate"
	case base.Stalemate:
		return "Stalemate"
	case base.InProgress:
		return "Normal"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}
