// Package aggregator builds a multi-day Board from a schedule provider and a game enricher.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/logging"
	"mlb-scoreboard/internal/metrics"
	"mlb-scoreboard/internal/providers"
	"mlb-scoreboard/internal/timeutil"
)

var (
	// ErrNoOffsets is returned when the aggregator has no days to fetch.
	ErrNoOffsets = errors.New("no day offsets configured")
	// ErrNoDays is returned, alongside an empty board, when every day failed.
	ErrNoDays = errors.New("no schedule days could be loaded")
)

const defaultConcurrency = 8

// GameEnricher converts a raw game into its display record. Implementations must not fail.
type GameEnricher interface {
	Enrich(ctx context.Context, g games.Game) games.GameRecord
}

// Config controls which days are fetched and how the board is ordered.
type Config struct {
	Offsets  []int
	Order    games.Order
	Location *time.Location
	// Concurrency bounds the tasks in flight at each layer (days, and games per day).
	Concurrency int
	// Timeout bounds each provider and enrichment call; zero leaves it to the providers.
	Timeout time.Duration
	// FetchAttempts and RetryBackoff describe the retry policy wrapped around
	// the schedule provider so a day's deadline covers every attempt.
	FetchAttempts int
	RetryBackoff  time.Duration
}

// fetchBudget is the deadline for one day's schedule: Timeout per attempt plus
// the longest exponential backoff between attempts.
func (c Config) fetchBudget() time.Duration {
	if c.Timeout <= 0 {
		return 0
	}
	budget := c.Timeout
	initial := c.RetryBackoff
	if initial <= 0 {
		initial = backoff.DefaultInitialInterval
	}
	delay := time.Duration(float64(initial) * (1 + backoff.DefaultRandomizationFactor))
	for i := 1; i < c.FetchAttempts; i++ {
		budget += c.Timeout + delay
		delay = time.Duration(float64(delay) * backoff.DefaultMultiplier)
	}
	return budget
}

// Aggregator fans out one fetch per day and one enrichment per game, then joins
// the survivors into a Board sorted by date.
type Aggregator struct {
	schedules providers.ScheduleProvider
	enricher  GameEnricher
	cfg       Config
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time
}

type dayTask struct {
	offset int
	date   time.Time
}

type dayResult struct {
	day games.DaySchedule
	err error
}

// New constructs an Aggregator.
func New(schedules providers.ScheduleProvider, enricher GameEnricher, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Aggregator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Order == "" {
		cfg.Order = games.NewestFirst
	}
	return &Aggregator{
		schedules: schedules,
		enricher:  enricher,
		cfg:       cfg,
		logger:    logger,
		metrics:   recorder,
		now:       time.Now,
	}
}

// Build runs one aggregation. Failed days are logged and left out; a failed
// enrichment never drops its game. When every day fails the returned board is
// empty but valid and the error is ErrNoDays.
func (a *Aggregator) Build(ctx context.Context) (games.Board, error) {
	start := time.Now()
	now := a.now()
	board := games.Board{Order: a.cfg.Order, BuiltAt: now, Days: []games.DaySchedule{}}

	tasks := a.plan(now)
	if len(tasks) == 0 {
		a.metrics.RecordAggregation(time.Since(start), 0, 0, ErrNoOffsets)
		return board, ErrNoOffsets
	}

	results := make([]dayResult, len(tasks))
	g := new(errgroup.Group)
	g.SetLimit(a.cfg.Concurrency)
	for i, task := range tasks {
		g.Go(func() error {
			// Each task writes only its own slot; nothing is shared until Wait returns.
			results[i] = a.buildDay(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	dropped := 0
	for i, res := range results {
		if res.err != nil {
			dropped++
			logging.Warn(ctx, a.logger, "schedule day dropped",
				logging.FieldDate, timeutil.FormatDate(tasks[i].date),
				logging.FieldOffset, tasks[i].offset,
				"error", res.err,
			)
			continue
		}
		board.Days = append(board.Days, res.day)
	}
	order := a.cfg.Order
	slices.SortStableFunc(board.Days, func(x, y games.DaySchedule) int {
		switch {
		case order.Less(x.Date, y.Date):
			return -1
		case order.Less(y.Date, x.Date):
			return 1
		default:
			return 0
		}
	})

	var err error
	switch {
	case ctx.Err() != nil:
		err = ctx.Err()
	case len(board.Days) == 0:
		err = ErrNoDays
	}

	elapsed := time.Since(start)
	a.metrics.RecordAggregation(elapsed, len(board.Days), dropped, err)
	logging.Info(ctx, a.logger, "board built",
		logging.FieldCount, len(board.Days),
		logging.FieldDropped, dropped,
		logging.FieldGames, board.GameCount(),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return board, err
}

// plan resolves offsets to calendar dates, collapsing offsets that land on the same day.
func (a *Aggregator) plan(now time.Time) []dayTask {
	seen := make(map[string]struct{}, len(a.cfg.Offsets))
	tasks := make([]dayTask, 0, len(a.cfg.Offsets))
	for _, offset := range a.cfg.Offsets {
		date := timeutil.DateForOffset(now, offset, a.cfg.Location)
		key := timeutil.FormatDate(date)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tasks = append(tasks, dayTask{offset: offset, date: date})
	}
	return tasks
}

func (a *Aggregator) buildDay(ctx context.Context, task dayTask) dayResult {
	date := timeutil.FormatDate(task.date)
	raw, err := a.fetch(ctx, date)
	if err != nil {
		return dayResult{err: err}
	}

	records := make([]games.GameRecord, len(raw))
	g := new(errgroup.Group)
	g.SetLimit(a.cfg.Concurrency)
	for i, game := range raw {
		g.Go(func() error {
			records[i] = a.enrich(ctx, game)
			return nil
		})
	}
	_ = g.Wait()

	return dayResult{day: games.DaySchedule{Date: task.date, Games: records}}
}

func (a *Aggregator) fetch(ctx context.Context, date string) ([]games.Game, error) {
	if a.schedules == nil {
		return nil, providers.ErrProviderUnavailable
	}
	ctx, cancel := withTimeout(ctx, a.cfg.fetchBudget())
	defer cancel()

	raw, err := a.schedules.FetchSchedule(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule %s: %w", date, err)
	}
	return raw, nil
}

func (a *Aggregator) enrich(ctx context.Context, game games.Game) games.GameRecord {
	if a.enricher == nil {
		return games.GameRecord{Title: game.Title()}
	}
	ctx, cancel := withTimeout(ctx, a.cfg.Timeout)
	defer cancel()
	return a.enricher.Enrich(ctx, game)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
