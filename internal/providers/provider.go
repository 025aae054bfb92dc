package providers

import (
	"context"

	"mlb-scoreboard/internal/domain/games"
)

// ScheduleProvider fetches one calendar day's schedule.
// The date is a YYYY-MM-DD string; games come back in upstream order.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, date string) ([]games.Game, error)
}

// ImageProvider retrieves the raw bytes of a recap image.
type ImageProvider interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// ScheduleFunc adapts a plain function to ScheduleProvider.
type ScheduleFunc func(ctx context.Context, date string) ([]games.Game, error)

func (f ScheduleFunc) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	return f(ctx, date)
}

// ImageFunc adapts a plain function to ImageProvider.
type ImageFunc func(ctx context.Context, url string) ([]byte, error)

func (f ImageFunc) FetchImage(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}
