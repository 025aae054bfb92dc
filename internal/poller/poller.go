package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/logging"
	"mlb-scoreboard/internal/metrics"
)

const defaultInterval = 10 * time.Minute

// Builder assembles a fresh board.
type Builder interface {
	Build(ctx context.Context) (games.Board, error)
}

// BoardWriter receives each successfully built board.
type BoardWriter interface {
	SetBoard(board games.Board)
}

// Poller rebuilds the board on an interval and hands it to the writer.
// A failed build leaves the previously stored board in place.
type Poller struct {
	builder  Builder
	writer   BoardWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	refreshMu sync.Mutex

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	Days                int
	Games               int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(builder Builder, writer BoardWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		builder:  builder,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Build once on boot so the board is served before the first tick.
		_ = p.Refresh(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				_ = p.Refresh(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// Refresh builds a board now and stores it on success. Concurrent calls are serialized.
func (p *Poller) Refresh(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	start := time.Now()
	p.recordAttempt(start)
	board, err := p.builder.Build(ctx)
	p.metrics.RecordRefreshCycle(time.Since(start), err)
	if err != nil {
		p.logError("board refresh failed, keeping previous board", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return err
	}

	if p.writer != nil {
		p.writer.SetBoard(board)
	}
	p.recordSuccess(start, board)
	p.logInfo("board refreshed",
		logging.FieldCount, len(board.Days),
		logging.FieldGames, board.GameCount(),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, board games.Board) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.Days = len(board.Days)
	p.status.Games = board.GameCount()
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
