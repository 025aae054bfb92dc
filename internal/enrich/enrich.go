// Package enrich turns raw schedule entries into display-ready game records.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/logging"
	"mlb-scoreboard/internal/metrics"
	"mlb-scoreboard/internal/providers"
	"mlb-scoreboard/internal/timeutil"
)

// FallbackPrefix leads the time-based summary shown when no headline is usable.
const FallbackPrefix = "Live "

// Enricher resolves the summary and recap image for a game. It is safe for
// concurrent use; every call owns its own inputs.
type Enricher struct {
	images  providers.ImageProvider
	loc     *time.Location
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New builds an Enricher that formats kickoff times in loc (UTC when nil).
func New(images providers.ImageProvider, loc *time.Location, logger *slog.Logger, recorder *metrics.Recorder) *Enricher {
	if loc == nil {
		loc = time.UTC
	}
	return &Enricher{
		images:  images,
		loc:     loc,
		logger:  logger,
		metrics: recorder,
	}
}

// Enrich always produces a record. Image failures degrade to the fallback
// summary with no image; the headline is only used alongside its image.
func (e *Enricher) Enrich(ctx context.Context, g games.Game) games.GameRecord {
	record := games.GameRecord{
		Title:   g.Title(),
		Summary: e.Fallback(g),
	}
	// A recap without an image cut is displayed as if there were no recap.
	if g.Recap == nil || len(g.Recap.ImageURLs) == 0 {
		return record
	}

	img, err := e.fetchImage(ctx, g.Recap)
	if err != nil {
		logging.Warn(ctx, e.logger, "recap image unavailable",
			logging.FieldTitle, record.Title,
			"error", err,
		)
		return record
	}

	record.Image = img
	// A blank headline would leave the entry with no summary at all.
	if g.Recap.Headline != "" {
		record.Summary = g.Recap.Headline
	}
	return record
}

// Fallback renders the time-based summary for g in the enricher's timezone.
func (e *Enricher) Fallback(g games.Game) string {
	return FallbackPrefix + timeutil.FormatKickoff(g.StartTime, e.loc)
}

func (e *Enricher) fetchImage(ctx context.Context, recap *games.Recap) ([]byte, error) {
	if e.images == nil {
		return nil, providers.ErrProviderUnavailable
	}

	url := recap.ImageURLs[0]
	start := time.Now()
	img, err := e.images.FetchImage(ctx, url)
	e.metrics.RecordFetchAttempt(metrics.SourceImage, time.Since(start), err)
	if err != nil {
		if rl, ok := providers.AsRateLimitError(err); ok {
			e.metrics.RecordRateLimit(metrics.SourceImage, rl.RetryAfter)
		}
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if len(img) == 0 {
		return nil, providers.Wrap(providers.ErrResponse, errors.New("empty image body"))
	}
	return img, nil
}
