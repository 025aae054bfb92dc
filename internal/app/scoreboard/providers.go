package scoreboard

import (
	"errors"
	"log/slog"
	"strings"

	"mlb-scoreboard/internal/config"
	"mlb-scoreboard/internal/metrics"
	"mlb-scoreboard/internal/providers"
	"mlb-scoreboard/internal/providers/file"
	"mlb-scoreboard/internal/providers/fixture"
	"mlb-scoreboard/internal/providers/statsapi"
)

// Provider names accepted in configuration.
const (
	ProviderStatsAPI = "statsapi"
	ProviderFixture  = "fixture"
	ProviderFile     = "file"
)

var errNoScheduleDir = errors.New("file provider needs SCHEDULE_DIR")

type upstream struct {
	name      string
	schedules providers.ScheduleProvider
	images    providers.ImageProvider
	closers   []func()
}

// providerFactory assembles the upstream with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: recorder}
}

func (f providerFactory) build(cfg config.Config) (upstream, error) {
	up, err := f.selectProvider(cfg)
	if err != nil {
		return upstream{}, err
	}

	if interval := cfg.StatsAPI.MinInterval; interval > 0 {
		limited := providers.NewRateLimitedProvider(up.schedules, interval, f.logger)
		if c, ok := limited.(interface{ Close() }); ok {
			up.closers = append(up.closers, c.Close)
		}
		up.schedules = limited
	}
	up.schedules = providers.NewRetryingProvider(up.schedules, f.logger, f.metrics, up.name, cfg.RetryAttempts, cfg.RetryBackoff)
	return up, nil
}

func (f providerFactory) selectProvider(cfg config.Config) (upstream, error) {
	name := normalizeProviderName(cfg.Provider)
	switch name {
	case ProviderStatsAPI:
		client := f.statsAPIClient(cfg)
		return upstream{name: name, schedules: client, images: client}, nil
	case ProviderFixture:
		p := fixture.New()
		return upstream{name: name, schedules: p, images: p}, nil
	case ProviderFile:
		if strings.TrimSpace(cfg.ScheduleDir) == "" {
			return upstream{}, errNoScheduleDir
		}
		p := file.New(cfg.ScheduleDir, f.statsAPIClient(cfg), f.logger)
		return upstream{name: name, schedules: p, images: p}, nil
	default:
		if f.logger != nil {
			f.logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		p := fixture.New()
		return upstream{name: ProviderFixture, schedules: p, images: p}, nil
	}
}

func (f providerFactory) statsAPIClient(cfg config.Config) *statsapi.Client {
	return statsapi.NewClient(statsapi.Config{
		BaseURL:   cfg.StatsAPI.BaseURL,
		UserAgent: cfg.StatsAPI.UserAgent,
		Timeout:   cfg.RequestTimeout,
	})
}

// normalizeProviderName lower-cases the configured provider, defaulting to the Stats API.
func normalizeProviderName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return ProviderStatsAPI
	}
	return name
}
