package config

import "time"

const (
	envStatsAPIBaseURL   = "STATSAPI_BASE_URL"
	envStatsAPIUserAgent = "STATSAPI_USER_AGENT"
	envStatsAPIInterval  = "STATSAPI_MIN_INTERVAL"

	defaultStatsAPIBaseURL = "https://statsapi.mlb.com/api/v1"
)

// StatsAPIConfig controls how we talk to the MLB Stats API.
type StatsAPIConfig struct {
	BaseURL   string
	UserAgent string
	// MinInterval spaces schedule requests apart; zero disables the limiter.
	MinInterval time.Duration
}

func loadStatsAPI() StatsAPIConfig {
	return StatsAPIConfig{
		BaseURL:     envOrDefault(envStatsAPIBaseURL, defaultStatsAPIBaseURL),
		UserAgent:   envOrDefault(envStatsAPIUserAgent, ""),
		MinInterval: durationEnvOrDefault(envStatsAPIInterval, 0),
	}
}
