package game

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest    = errors.New("bad request")
	ErrColOutOfRange = fmt.Errorf("%w: column out of range", ErrBadRequest)
	ErrInvalidTeam   = fmt.Errorf("%w: invalid team", ErrBadRequest)
	ErrColFull       = errors.New("column full")
	ErrGameOver      = errors.New("game over")
)

type State uint8

const (
	InProgress State = iota
	Won
	Draw
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Outcome is the state of a board after a move; Winner is set only when State is Won
type Outcome struct {
	State  State
	Winner Cell
}

// Evaluate derives the outcome of a board from its lines and fullness
func Evaluate(b *Board) Outcome {
	if w, ok := Winner(b); ok {
		return Outcome{State: Won, Winner: w}
	}
	if b.IsFull() {
		return Outcome{State: Draw}
	}
	return Outcome{State: InProgress}
}

// Place drops team into col unless the board already has a winner, and returns the new outcome.
// On ErrGameOver the returned outcome carries the existing winner.
func Place(b *Board, col int, team Cell) (Outcome, error) {
	if w, ok := Winner(b); ok {
		return Outcome{State: Won, Winner: w}, ErrGameOver
	}
	if _, err := AddPeon(b, col, team); err != nil {
		return Outcome{State: InProgress}, err
	}
	return Evaluate(b), nil
}

// ParseTeam maps a team name from a request path to its cell. Names are case-sensitive.
func ParseTeam(s string) (Cell, error) {
	switch s {
	case "team-a", "cookie":
		return TeamA, nil
	case "team-b", "milk":
		return TeamB, nil
	}
	return Empty, fmt.Errorf("%w %q", ErrInvalidTeam, s)
}
