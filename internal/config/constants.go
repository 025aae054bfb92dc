package config

import "time"

const (
	envPort             = "PORT"
	envProvider         = "PROVIDER"
	envTimezone         = "DISPLAY_TIMEZONE"
	envDayOffsets       = "DAY_OFFSETS"
	envBoardOrder       = "BOARD_ORDER"
	envPageSize         = "PAGE_SIZE"
	envRequestTimeout   = "REQUEST_TIMEOUT"
	envFetchConcurrency = "FETCH_CONCURRENCY"
	envRetryAttempts    = "RETRY_ATTEMPTS"
	envRetryBackoff     = "RETRY_BACKOFF"
	envRefreshInterval  = "REFRESH_INTERVAL"
	envScheduleDir      = "SCHEDULE_DIR"
	envLogFile          = "LOG_FILE"
	envAdminToken       = "ADMIN_TOKEN"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort             = "4000"
	defaultProvider         = "statsapi"
	defaultTimezone         = "Local"
	defaultDayOffsets       = "0,-1,-2"
	defaultBoardOrder       = "newest-first"
	defaultPageSize         = 5
	defaultRequestTimeout   = 10 * time.Second
	defaultFetchConcurrency = 8
	defaultRetryAttempts    = 1
	defaultRetryBackoff     = 200 * time.Millisecond
	// Recaps land well after the final out.
	defaultRefreshInterval = 10 * time.Minute
	defaultLogFile         = "scoreboard.log"
	defaultMetricsPort     = "9090"
	defaultServiceName     = "mlb-scoreboard"
)
