package game

import "strings"

const (
	Size  = 4
	toWin = Size
)

type Cell uint8

const (
	Empty Cell = iota
	TeamA
	TeamB
)

const borderGlyph = "⬜"

// Glyph returns the symbol a cell renders as
func (c Cell) Glyph() string {
	switch c {
	case TeamA:
		return "🍪"
	case TeamB:
		return "🥛"
	default:
		return "⬛"
	}
}

// String returns the team name used in logs and metrics
func (c Cell) String() string {
	switch c {
	case TeamA:
		return "cookie"
	case TeamB:
		return "milk"
	default:
		return "empty"
	}
}

// IsTeam reports whether c is one of the two playable teams
func (c Cell) IsTeam() bool { return c == TeamA || c == TeamB }

type Board struct {
	Grid [Size][Size]Cell // row 0 is the top, row Size-1 the bottom
}

// NewBoard creates an empty board
func NewBoard() Board {
	return Board{}
}

func (b *Board) Get(row, col int) Cell { return b.Grid[row][col] }

func (b *Board) Set(row, col int, c Cell) { b.Grid[row][col] = c }

// IsFull returns whether no empty cell remains
func (b *Board) IsFull() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Grid[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

// Render draws the grid framed by border glyphs, one line per row plus a bottom border
func (b *Board) Render() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		sb.WriteString(borderGlyph)
		for c := 0; c < Size; c++ {
			sb.WriteString(b.Grid[r][c].Glyph())
		}
		sb.WriteString(borderGlyph)
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(borderGlyph, Size+2))
	sb.WriteByte('\n')
	return sb.String()
}

func (b *Board) String() string { return b.Render() }

// Winner checks rows, then columns, then both diagonals and returns the first complete line's team
func Winner(board *Board) (Cell, bool) {
	// checks rows top to bottom
	for r := 0; r < Size; r++ {
		if p := board.Grid[r][0]; p != Empty && lineOf(p, func(i int) Cell { return board.Grid[r][i] }) {
			return p, true
		}
	}

	// checks columns left to right
	for c := 0; c < Size; c++ {
		if p := board.Grid[0][c]; p != Empty && lineOf(p, func(i int) Cell { return board.Grid[i][c] }) {
			return p, true
		}
	}

	// checks top-left to bottom-right
	if p := board.Grid[0][0]; p != Empty && lineOf(p, func(i int) Cell { return board.Grid[i][i] }) {
		return p, true
	}

	// checks top-right to bottom-left
	if p := board.Grid[0][Size-1]; p != Empty && lineOf(p, func(i int) Cell { return board.Grid[i][Size-1-i] }) {
		return p, true
	}

	return Empty, false
}

// lineOf reports whether all toWin cells returned by at equal p
func lineOf(p Cell, at func(i int) Cell) bool {
	for i := 1; i < toWin; i++ {
		if at(i) != p {
			return false
		}
	}
	return true
}
