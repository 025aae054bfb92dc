// Package navigation tracks the focused game and the visible window of each day's row.
//
// Transitions are pure: Apply takes the row lengths, the page size and a State
// and returns the next State. Grid wraps Apply for a single owner, typically a
// UI event loop; it is not safe for concurrent use.
//
// Days shorter than a page never scroll, and the focus column stops at the last
// real game. Moving between days keeps the column, clamped to the new day.
package navigation

import "mlb-scoreboard/internal/domain/games"

// DefaultPageSize is the number of games visible per row.
const DefaultPageSize = 5

// Direction is a discrete navigation input.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// State is the cursor: the focused day, the column within that day's window,
// and where each day's window begins.
type State struct {
	Day         int
	Column      int
	WindowBegin []int
}

// Initial returns the neutral cursor for a board with the given number of days.
func Initial(days int) State {
	if days < 0 {
		days = 0
	}
	return State{WindowBegin: make([]int, days)}
}

func (s State) clone() State {
	s.WindowBegin = append([]int(nil), s.WindowBegin...)
	return s
}

// Apply returns the state after moving in direction d. Moves at a boundary,
// and every move on an empty board, leave the state unchanged.
func Apply(rows []int, pageSize int, s State, d Direction) State {
	if pageSize < 1 {
		pageSize = 1
	}
	next := normalize(rows, pageSize, s)
	if len(rows) == 0 {
		return next
	}

	day := next.Day
	switch d {
	case Left:
		if next.Column > 0 {
			next.Column--
		} else if next.WindowBegin[day] > 0 {
			next.WindowBegin[day]--
		}
	case Right:
		if next.Column < visible(rows[day], pageSize)-1 {
			next.Column++
		} else if next.WindowBegin[day]+pageSize < rows[day] {
			next.WindowBegin[day]++
		}
	case Up:
		if day > 0 {
			next.Day--
			next.Column = clampColumn(next.Column, rows[next.Day], pageSize)
		}
	case Down:
		if day < len(rows)-1 {
			next.Day++
			next.Column = clampColumn(next.Column, rows[next.Day], pageSize)
		}
	}
	return next
}

// normalize copies s and forces it into the invariants for rows.
func normalize(rows []int, pageSize int, s State) State {
	next := s.clone()
	if len(next.WindowBegin) != len(rows) {
		resized := make([]int, len(rows))
		copy(resized, next.WindowBegin)
		next.WindowBegin = resized
	}
	if len(rows) == 0 {
		next.Day, next.Column = 0, 0
		return next
	}

	next.Day = clamp(next.Day, 0, len(rows)-1)
	for i, n := range rows {
		next.WindowBegin[i] = clamp(next.WindowBegin[i], 0, max(n-pageSize, 0))
	}
	next.Column = clampColumn(next.Column, rows[next.Day], pageSize)
	return next
}

func visible(n, pageSize int) int {
	return min(n, pageSize)
}

func clampColumn(column, n, pageSize int) int {
	return clamp(column, 0, max(visible(n, pageSize)-1, 0))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Grid owns a State over one Board's row lengths.
type Grid struct {
	rows     []int
	pageSize int
	state    State
}

// NewGrid builds a grid over board with the cursor at its initial position.
func NewGrid(board games.Board, pageSize int) *Grid {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	g := &Grid{pageSize: pageSize}
	g.Reset(board)
	return g
}

// Reset points the grid at a new board and returns the cursor to the start.
func (g *Grid) Reset(board games.Board) {
	g.rows = board.RowLengths()
	g.state = Initial(len(g.rows))
}

// Move applies one directional input and returns the resulting state.
func (g *Grid) Move(d Direction) State {
	g.state = Apply(g.rows, g.pageSize, g.state, d)
	return g.State()
}

// State returns a copy of the current cursor.
func (g *Grid) State() State {
	return g.state.clone()
}

// PageSize reports the number of columns visible per row.
func (g *Grid) PageSize() int {
	return g.pageSize
}

// Days reports how many rows the grid spans.
func (g *Grid) Days() int {
	return len(g.rows)
}

// Visible returns the half-open range of game indexes shown for day.
func (g *Grid) Visible(day int) (begin, end int) {
	if day < 0 || day >= len(g.rows) {
		return 0, 0
	}
	begin = g.state.WindowBegin[day]
	return begin, min(begin+g.pageSize, g.rows[day])
}

// Focused returns the focused day and the absolute index of the focused game.
// ok is false when the board is empty or the focused day has no games.
func (g *Grid) Focused() (day, index int, ok bool) {
	if len(g.rows) == 0 {
		return 0, 0, false
	}
	day = g.state.Day
	if g.rows[day] == 0 {
		return day, 0, false
	}
	return day, g.state.WindowBegin[day] + g.state.Column, true
}
