package store

import (
	"sync"

	"mlb-scoreboard/internal/domain/games"
)

// BoardStore keeps the current Board in memory. A refresh replaces it wholesale;
// readers always see one complete board.
type BoardStore struct {
	mu     sync.RWMutex
	board  games.Board
	loaded bool
}

// NewBoardStore constructs an empty BoardStore.
func NewBoardStore() *BoardStore {
	return &BoardStore{}
}

// Board returns the current board and whether one has been stored yet.
func (s *BoardStore) Board() (games.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board, s.loaded
}

// SetBoard replaces the stored board.
func (s *BoardStore) SetBoard(board games.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board = board
	s.loaded = true
}
