package config

import "time"

// Config holds runtime configuration for the scoreboard.
type Config struct {
	Port             string
	Provider         string
	Timezone         string
	DayOffsets       []int
	BoardOrder       string
	PageSize         int
	RequestTimeout   time.Duration
	FetchConcurrency int
	RetryAttempts    int
	RetryBackoff     time.Duration
	RefreshInterval  time.Duration
	ScheduleDir      string
	LogFile          string
	AdminToken       string
	StatsAPI         StatsAPIConfig
	Metrics          MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:             envOrDefault(envPort, defaultPort),
		Provider:         envOrDefault(envProvider, defaultProvider),
		Timezone:         envOrDefault(envTimezone, defaultTimezone),
		DayOffsets:       offsetsEnvOrDefault(envDayOffsets, defaultDayOffsets),
		BoardOrder:       envOrDefault(envBoardOrder, defaultBoardOrder),
		PageSize:         intEnvOrDefault(envPageSize, defaultPageSize),
		RequestTimeout:   durationEnvOrDefault(envRequestTimeout, defaultRequestTimeout),
		FetchConcurrency: intEnvOrDefault(envFetchConcurrency, defaultFetchConcurrency),
		RetryAttempts:    intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
		RetryBackoff:     durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
		RefreshInterval:  durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		ScheduleDir:      envOrDefault(envScheduleDir, ""),
		LogFile:          envOrDefault(envLogFile, defaultLogFile),
		AdminToken:       envOrDefault(envAdminToken, ""),
		StatsAPI:         loadStatsAPI(),
		Metrics:          loadMetrics(),
	}
}
