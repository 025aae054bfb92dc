package navigation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"mlb-scoreboard/internal/domain/games"
)

func boardWith(rows ...int) games.Board {
	board := games.Board{Order: games.NewestFirst}
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	for i, n := range rows {
		board.Days = append(board.Days, games.DaySchedule{
			Date:  day.AddDate(0, 0, -i),
			Games: make([]games.GameRecord, n),
		})
	}
	return board
}

func moves(g *Grid, d Direction, n int) State {
	for i := 0; i < n; i++ {
		g.Move(d)
	}
	return g.State()
}

func TestInitialState(t *testing.T) {
	g := NewGrid(boardWith(7, 3), 5)
	if diff := cmp.Diff(State{Day: 0, Column: 0, WindowBegin: []int{0, 0}}, g.State()); diff != "" {
		t.Fatalf("unexpected initial state (-want +got):\n%s", diff)
	}
}

func TestBoundaryMovesAreNoOps(t *testing.T) {
	g := NewGrid(boardWith(7, 7), 5)
	start := g.State()
	g.Move(Left)
	g.Move(Up)
	if diff := cmp.Diff(start, g.State()); diff != "" {
		t.Fatalf("expected left/up at origin to be no-ops (-want +got):\n%s", diff)
	}

	moves(g, Down, 1)
	end := moves(g, Right, 10)
	want := State{Day: 1, Column: 4, WindowBegin: []int{0, 2}}
	if diff := cmp.Diff(want, end); diff != "" {
		t.Fatalf("unexpected far corner (-want +got):\n%s", diff)
	}
	g.Move(Right)
	g.Move(Down)
	if diff := cmp.Diff(want, g.State()); diff != "" {
		t.Fatalf("expected right/down at far corner to be no-ops (-want +got):\n%s", diff)
	}
}

func TestWindowScrollsBeforeColumnResets(t *testing.T) {
	g := NewGrid(boardWith(8), 5)
	moves(g, Right, 4)
	for want := 1; want <= 3; want++ {
		s := g.Move(Right)
		if s.Column != 4 || s.WindowBegin[0] != want {
			t.Fatalf("move %d: expected column 4 window %d, got %+v", want, want, s)
		}
	}
	if s := g.Move(Right); s.WindowBegin[0] != 3 {
		t.Fatalf("expected window to stop at len-P=3, got %d", s.WindowBegin[0])
	}
	if begin, end := g.Visible(0); begin != 3 || end != 8 {
		t.Fatalf("expected visible [3,8), got [%d,%d)", begin, end)
	}
	if _, idx, ok := g.Focused(); !ok || idx != 7 {
		t.Fatalf("expected last game focused, got %d (%v)", idx, ok)
	}
}

func TestMoveLeftScrollsWindowBackAtColumnZero(t *testing.T) {
	g := NewGrid(boardWith(8), 5)
	moves(g, Right, 7) // column 4, window 3
	s := moves(g, Left, 4)
	if s.Column != 0 || s.WindowBegin[0] != 3 {
		t.Fatalf("expected column 0 window 3, got %+v", s)
	}
	s = g.Move(Left)
	if s.Column != 0 || s.WindowBegin[0] != 2 {
		t.Fatalf("expected window to scroll left with column pinned, got %+v", s)
	}
	s = moves(g, Left, 5)
	if s.Column != 0 || s.WindowBegin[0] != 0 {
		t.Fatalf("expected window back at 0, got %+v", s)
	}
}

func TestShortDayClampsFocusAndNeverScrolls(t *testing.T) {
	g := NewGrid(boardWith(3), 5)
	s := moves(g, Right, 3)
	if s.Column != 2 || s.WindowBegin[0] != 0 {
		t.Fatalf("expected column 2 window 0, got %+v", s)
	}
	if after := g.Move(Right); after.Column != 2 || after.WindowBegin[0] != 0 {
		t.Fatalf("expected fourth right to be a no-op, got %+v", after)
	}
	if begin, end := g.Visible(0); begin != 0 || end != 3 {
		t.Fatalf("expected visible [0,3), got [%d,%d)", begin, end)
	}
}

func TestVerticalMovesKeepPerDayWindows(t *testing.T) {
	g := NewGrid(boardWith(9, 2, 9), 5)
	moves(g, Right, 6) // day 0: column 4, window 2
	s := g.Move(Down)
	if s.Day != 1 || s.Column != 1 {
		t.Fatalf("expected column clamped to short day, got %+v", s)
	}
	s = g.Move(Down)
	if s.Day != 2 || s.Column != 1 || s.WindowBegin[2] != 0 {
		t.Fatalf("expected day 2 to keep its own window, got %+v", s)
	}
	s = moves(g, Up, 2)
	if s.Day != 0 || s.WindowBegin[0] != 2 {
		t.Fatalf("expected day 0 window preserved, got %+v", s)
	}
}

func TestEmptyDayAndEmptyBoard(t *testing.T) {
	g := NewGrid(boardWith(4, 0), 5)
	moves(g, Right, 3)
	s := g.Move(Down)
	if s.Day != 1 || s.Column != 0 {
		t.Fatalf("expected empty day to pin column 0, got %+v", s)
	}
	if _, _, ok := g.Focused(); ok {
		t.Fatalf("expected no focused game on an empty day")
	}
	if s := g.Move(Right); s.Column != 0 {
		t.Fatalf("expected right on empty day to be a no-op, got %+v", s)
	}

	empty := NewGrid(games.Board{}, 5)
	for _, d := range []Direction{Left, Right, Up, Down} {
		s := empty.Move(d)
		if s.Day != 0 || s.Column != 0 || len(s.WindowBegin) != 0 {
			t.Fatalf("expected %s on empty board to be a no-op, got %+v", d, s)
		}
	}
	if _, _, ok := empty.Focused(); ok {
		t.Fatalf("expected nothing focused on empty board")
	}
	if begin, end := empty.Visible(0); begin != 0 || end != 0 {
		t.Fatalf("expected empty visible range")
	}
}

func TestApplyIsPure(t *testing.T) {
	rows := []int{8}
	before := State{Column: 4, WindowBegin: []int{1}}
	after := Apply(rows, 5, before, Right)

	if before.WindowBegin[0] != 1 {
		t.Fatalf("expected input state untouched, got %+v", before)
	}
	if after.WindowBegin[0] != 2 {
		t.Fatalf("expected window to advance, got %+v", after)
	}
}

func TestApplyRepairsOutOfRangeState(t *testing.T) {
	s := Apply([]int{3, 6}, 5, State{Day: 9, Column: 7, WindowBegin: []int{4}}, Left)
	want := State{Day: 1, Column: 3, WindowBegin: []int{0, 0}}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("unexpected repaired state (-want +got):\n%s", diff)
	}
}

func TestResetReturnsToOrigin(t *testing.T) {
	g := NewGrid(boardWith(9, 9), 5)
	moves(g, Right, 7)
	g.Move(Down)

	g.Reset(boardWith(2))
	if diff := cmp.Diff(State{WindowBegin: []int{0}}, g.State()); diff != "" {
		t.Fatalf("unexpected state after reset (-want +got):\n%s", diff)
	}
	if g.Days() != 1 || g.PageSize() != 5 {
		t.Fatalf("unexpected grid shape days=%d page=%d", g.Days(), g.PageSize())
	}
}

func TestDirectionString(t *testing.T) {
	if Left.String() != "left" || Down.String() != "down" || Direction(9).String() != "unknown" {
		t.Fatalf("unexpected direction names")
	}
}
