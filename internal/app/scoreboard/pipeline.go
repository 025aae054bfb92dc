// Package scoreboard wires configuration into a ready-to-run board pipeline.
package scoreboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mlb-scoreboard/internal/aggregator"
	"mlb-scoreboard/internal/config"
	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/enrich"
	"mlb-scoreboard/internal/metrics"
	"mlb-scoreboard/internal/timeutil"
)

// Pipeline owns the providers, the enricher and the aggregator built from one Config.
type Pipeline struct {
	aggregator *aggregator.Aggregator
	location   *time.Location
	provider   string
	closers    []func()
}

// NewPipeline validates cfg and builds the pipeline. Close releases provider resources.
func NewPipeline(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Pipeline, error) {
	loc, ok := timeutil.ResolveLocation(cfg.Timezone)
	if !ok {
		return nil, fmt.Errorf("unknown display timezone %q", cfg.Timezone)
	}
	order, err := games.ParseOrder(cfg.BoardOrder)
	if err != nil {
		return nil, err
	}
	if len(cfg.DayOffsets) == 0 {
		return nil, aggregator.ErrNoOffsets
	}

	up, err := newProviderFactory(logger, recorder).build(cfg)
	if err != nil {
		return nil, err
	}

	enricher := enrich.New(up.images, loc, logger, recorder)
	agg := aggregator.New(up.schedules, enricher, aggregator.Config{
		Offsets:     cfg.DayOffsets,
		Order:       order,
		Location:    loc,
		Concurrency: cfg.FetchConcurrency,
		Timeout:     cfg.RequestTimeout,
		// Must mirror the retry wrapper built by the provider factory.
		FetchAttempts: cfg.RetryAttempts,
		RetryBackoff:  cfg.RetryBackoff,
	}, logger, recorder)

	return &Pipeline{
		aggregator: agg,
		location:   loc,
		provider:   up.name,
		closers:    up.closers,
	}, nil
}

// Build runs one aggregation.
func (p *Pipeline) Build(ctx context.Context) (games.Board, error) {
	return p.aggregator.Build(ctx)
}

// Location is the display timezone used for dates and kickoff times.
func (p *Pipeline) Location() *time.Location {
	return p.location
}

// Provider names the upstream in use.
func (p *Pipeline) Provider() string {
	return p.provider
}

// Close stops background resources such as rate-limit tickers.
func (p *Pipeline) Close() {
	for _, c := range p.closers {
		c()
	}
	p.closers = nil
}
