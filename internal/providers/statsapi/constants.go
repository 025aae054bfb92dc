package statsapi

import "time"

const (
	providerName = "statsapi"

	defaultBaseURL     = "https://statsapi.mlb.com/api/v1"
	defaultHTTPTimeout = 10 * time.Second
	defaultSportID     = "1"
	// Inlines each game's editorial recap so no second request per game is needed for headlines.
	scheduleHydrate = "game(content(editorial(recap))),decisions"

	maxScheduleBytes = 4 << 20
	maxImageBytes    = 8 << 20
	errorBodyBytes   = 512
)
