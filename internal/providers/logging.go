package providers

import (
	"context"
	"log/slog"

	"mlb-scoreboard/internal/logging"
)

// providerLog tags every record with the wrapped provider's name. The request
// logger in ctx wins over the one captured at construction.
type providerLog struct {
	logger *slog.Logger
	name   string
}

func (l providerLog) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logger := logging.FromContext(ctx, l.logger)
	if logger == nil || !logger.Enabled(ctx, level) {
		return
	}
	logger.Log(ctx, level, msg, append(args, logging.FieldProvider, l.name)...)
}
