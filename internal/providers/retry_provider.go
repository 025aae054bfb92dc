package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/logging"
	"mlb-scoreboard/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

// retryingProvider wraps a ScheduleProvider with exponential backoff and records every attempt.
type retryingProvider struct {
	inner       ScheduleProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/initial are <= 0, defaults are used.
// Errors that Retryable rejects are returned after the first attempt.
func NewRetryingProvider(inner ScheduleProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) ScheduleProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			exp := backoff.NewExponentialBackOff()
			exp.InitialInterval = initial
			exp.MaxElapsedTime = 0
			exp.Reset()
			return exp
		},
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	attempt := 0
	op := func() ([]games.Game, error) {
		attempt++
		start := time.Now()
		result, err := r.inner.FetchSchedule(ctx, date)
		r.metrics.RecordFetchAttempt(metrics.SourceSchedule, time.Since(start), err)
		if err == nil {
			return result, nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(metrics.SourceSchedule, rl.RetryAfter)
		}
		if !Retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)), ctx)
	notify := func(err error, delay time.Duration) {
		r.log(ctx, slog.LevelWarn, "schedule fetch retry",
			logging.FieldDate, date,
			logging.FieldAttempt, attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)
	}

	result, err := backoff.RetryNotifyWithData(op, policy, notify)
	if err != nil {
		r.log(ctx, slog.LevelWarn, "schedule fetch failed", logging.FieldDate, date, logging.FieldAttempt, attempt, "error", err)
		return nil, err
	}
	return result, nil
}

func (r *retryingProvider) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	providerLog{logger: r.logger, name: r.name}.log(ctx, level, msg, args...)
}
