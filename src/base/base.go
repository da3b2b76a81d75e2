package base

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrIllegalMove       = errors.New("illegal move")
	ErrMissingKing       = errors.New("king not found")
	ErrNotYourTurn       = errors.New("not side to move")
	ErrNoPiece           = errors.New("no piece")
	ErrGameOver          = errors.New("game is over")
	ErrOccupied          = errors.New("cell occupied")
)

const BoardSize = 8

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

type Kind uint8

const (
	King Kind = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

func (k Kind) String() string {
	switch k {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	default:
		return "invalid"
	}
}

// Rune returns the upper case letter of the kind.
func (k Kind) Rune() rune {
	switch k {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	default:
		return '?'
	}
}

type PieceID int

type Cell struct {
	File int
	Rank int
}

func (c Cell) Valid() bool {
	return c.File >= 0 && c.File < BoardSize && c.Rank >= 0 && c.Rank < BoardSize
}

func (c Cell) Add(df, dr int) Cell {
	return Cell{File: c.File + df, Rank: c.Rank + dr}
}

// "e4" style
func (c Cell) String() string {
	if !c.Valid() {
		return fmt.Sprintf("(%d,%d)", c.File, c.Rank)
	}
	return string([]rune{rune('a' + c.File), rune('1' + c.Rank)})
}

func ParseCell(s string) (Cell, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	return Cell{File: int(s[0] - 'a'), Rank: int(s[1] - '1')}, nil
}

type Piece struct {
	ID    PieceID
	Kind  Kind
	Color Color
	Cell  Cell
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s#%d@%s", p.Color, p.Kind, p.ID, p.Cell)
}

// HomeRank is the back rank of the color.
func HomeRank(c Color) int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// PawnRank is the rank pawns of the color start on.
func PawnRank(c Color) int {
	if c == White {
		return 1
	}
	return BoardSize - 2
}

// Forward is the rank step of the color's pawns.
func Forward(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

type GameState uint8

const (
	InProgress GameState = iota
	Checkmate
	Stalemate
)

func (gs GameState) String() string {
	switch gs {
	case InProgress:
		return "in progress"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "invalid"
	}
}

func (gs GameState) Terminal() bool {
	return gs == Checkmate || gs == Stalemate
}

type OutcomeKind uint8

const (
	Rejected OutcomeKind = iota
	Moved
	Captured
	CastleMoved
)

func (k OutcomeKind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Captured:
		return "captured"
	case CastleMoved:
		return "castled"
	default:
		return "rejected"
	}
}

// Outcome of a move attempt. Captured is meaningful only for Kind == Captured.
type Outcome struct {
	Kind     OutcomeKind
	Captured Kind
	Promoted bool
}

func (o Outcome) Accepted() bool {
	return o.Kind != Rejected
}

func (o Outcome) String() string {
	switch {
	case o.Kind == Captured && o.Promoted:
		return fmt.Sprintf("captured %s, promoted", o.Captured)
	case o.Kind == Captured:
		return fmt.Sprintf("captured %s", o.Captured)
	case o.Promoted:
		return o.Kind.String() + ", promoted"
	default:
		return o.Kind.String()
	}
}

// Move is a resolved plan: the board applies it without checking chess rules.
type Move struct {
	Piece   PieceID
	From    Cell
	To      Cell
	Capture *PieceID
	// castling with rook relocation
	Rook   *PieceID
	RookTo Cell
	// promotion target, meaningful only when Promote is true
	Promote   bool
	PromoteTo Kind
	Castle    bool
}

func (m Move) String() string {
	s := fmt.Sprintf("#%d %s-%s", m.Piece, m.From, m.To)
	if m.Capture != nil {
		s += fmt.Sprintf(" x#%d", *m.Capture)
	}
	if m.Castle {
		s += " castle"
	}
	if m.Promote {
		s += fmt.Sprintf(" =%c", m.PromoteTo.Rune())
	}
	return s
}
