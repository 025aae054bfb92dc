package testutil

import (
	"context"

	"mlb-scoreboard/internal/metrics"
)

// NewRecorderWithShutdown pairs a fresh recorder with a shutdown func. Only the
// first call consults ctx.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	rec := metrics.NewRecorder()
	closed := false
	return rec, func(ctx context.Context) error {
		if closed {
			return nil
		}
		closed = true
		return ctx.Err()
	}
}
