package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"mlb-scoreboard/internal/domain/games"
)

// StubBuilder is a test double for poller.Builder.
type StubBuilder struct {
	mu     sync.Mutex
	Board  games.Board
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// Build returns the configured board and error while tracking calls.
func (s *StubBuilder) Build(ctx context.Context) (games.Board, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Board, s.Err
}

// SetResult swaps the configured board and error between calls.
func (s *StubBuilder) SetResult(board games.Board, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Board = board
	s.Err = err
}

// StubBoardWriter is a test double for poller.BoardWriter.
type StubBoardWriter struct {
	mu      sync.Mutex
	Written []games.Board
}

// SetBoard records the board for verification in tests.
func (w *StubBoardWriter) SetBoard(board games.Board) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Written = append(w.Written, board)
}

// Count returns how many boards were written.
func (w *StubBoardWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}

// StubScheduleProvider is a test double for providers.ScheduleProvider keyed by date.
type StubScheduleProvider struct {
	Days  map[string][]games.Game
	Errs  map[string]error
	Calls atomic.Int32
}

// FetchSchedule returns the configured games or error for date.
func (s *StubScheduleProvider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	s.Calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := s.Errs[date]; ok {
		return nil, err
	}
	return s.Days[date], nil
}
