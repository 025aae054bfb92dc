// Package tui renders the board in the terminal and drives the navigation grid
// from key presses.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"mlb-scoreboard/internal/aggregator"
	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/logging"
	"mlb-scoreboard/internal/navigation"
)

// DefaultImage is shown in place of a missing recap image.
const DefaultImage = "[ no recap image ]"

// Builder produces a fresh board.
type Builder interface {
	Build(ctx context.Context) (games.Board, error)
}

// Config controls the viewer.
type Config struct {
	PageSize int
	// DefaultImage replaces absent recap images; empty means DefaultImage.
	DefaultImage string
}

type boardLoadedMsg struct {
	board games.Board
	err   error
}

// Model is the bubbletea model for the board viewer.
type Model struct {
	ctx     context.Context
	builder Builder
	logger  *slog.Logger
	cfg     Config

	grid    *navigation.Grid
	board   games.Board
	loaded  bool
	loading bool
	err     error

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	width   int
}

// New creates a viewer over builder. The board is built on Init.
func New(ctx context.Context, builder Builder, cfg Config, logger *slog.Logger) *Model {
	if cfg.PageSize < 1 {
		cfg.PageSize = navigation.DefaultPageSize
	}
	if cfg.DefaultImage == "" {
		cfg.DefaultImage = DefaultImage
	}
	if ctx == nil {
		ctx = context.Background()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &Model{
		ctx:     ctx,
		builder: builder,
		logger:  logger,
		cfg:     cfg,
		grid:    navigation.NewGrid(games.Board{}, cfg.PageSize),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.refresh()
}

func (m *Model) refresh() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m *Model) fetch() tea.Msg {
	board, err := m.builder.Build(m.ctx)
	return boardLoadedMsg{board: board, err: err}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		m.applyBoard(msg.board, msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) applyBoard(board games.Board, err error) {
	m.err = err
	switch {
	case err == nil, errors.Is(err, aggregator.ErrNoDays):
		// An all-failed build still yields a valid, empty board.
		m.board = board
		m.loaded = true
		m.grid.Reset(board)
	default:
		// Keep whatever was on screen.
	}
	if err != nil {
		logging.Error(m.ctx, m.logger, "board refresh failed", err)
		return
	}
	logging.Info(m.ctx, m.logger, "board loaded",
		logging.FieldCount, len(board.Days),
		logging.FieldGames, board.GameCount(),
	)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		return m, m.refresh()
	case key.Matches(msg, m.keys.Left):
		m.grid.Move(navigation.Left)
	case key.Matches(msg, m.keys.Right):
		m.grid.Move(navigation.Right)
	case key.Matches(msg, m.keys.Up):
		m.grid.Move(navigation.Up)
	case key.Matches(msg, m.keys.Down):
		m.grid.Move(navigation.Down)
	}
	return m, nil
}

// Focused returns the record under the cursor.
func (m *Model) Focused() (games.GameRecord, bool) {
	day, idx, ok := m.grid.Focused()
	if !ok {
		return games.GameRecord{}, false
	}
	return m.board.Days[day].Games[idx], true
}
