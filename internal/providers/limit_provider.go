package providers

import (
	"context"
	"log/slog"
	"time"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/logging"
)

// rateLimitedProvider wraps a ScheduleProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     ScheduleProvider
	interval time.Duration
	ticker   *time.Ticker
	log      providerLog
}

// NewRateLimitedProvider returns a ScheduleProvider that limits calls to the given interval.
// Concurrent callers queue on the same ticker, so a burst of day fetches is spread out.
func NewRateLimitedProvider(next ScheduleProvider, interval time.Duration, logger *slog.Logger) ScheduleProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		log:      providerLog{logger: logger, name: "rate-limited"},
	}
}

func (p *rateLimitedProvider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	if p == nil || p.next == nil {
		if p != nil {
			p.log.log(ctx, slog.LevelWarn, "provider unavailable")
		}
		return nil, ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		p.log.log(ctx, slog.LevelWarn, "rate-limited fetch canceled", slog.String(logging.FieldDate, date))
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	p.log.log(ctx, slog.LevelDebug, "rate-limited schedule fetch", slog.String(logging.FieldDate, date))
	return p.next.FetchSchedule(ctx, date)
}

// Close stops the underlying ticker.
func (p *rateLimitedProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}
