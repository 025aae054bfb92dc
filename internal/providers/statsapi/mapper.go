package statsapi

import (
	"fmt"
	"strings"
	"time"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/providers"
)

func mapSchedule(payload scheduleResponse) ([]games.Game, error) {
	// The endpoint is queried for a single date, so only the first entry matters.
	// No entry at all is an off day, not an error.
	if len(payload.Dates) == 0 {
		return []games.Game{}, nil
	}

	raw := payload.Dates[0].Games
	result := make([]games.Game, 0, len(raw))
	for _, g := range raw {
		mapped, err := mapGame(g)
		if err != nil {
			return nil, err
		}
		result = append(result, mapped)
	}
	return result, nil
}

func mapGame(g gameResponse) (games.Game, error) {
	start, err := time.Parse(time.RFC3339, g.GameDate)
	if err != nil {
		return games.Game{}, providers.Wrap(providers.ErrSchema, fmt.Errorf("game %d: gameDate %q: %w", g.GamePk, g.GameDate, err))
	}
	return games.Game{
		AwayTeam:  strings.TrimSpace(g.Teams.Away.Team.Name),
		HomeTeam:  strings.TrimSpace(g.Teams.Home.Team.Name),
		StartTime: start.UTC(),
		Recap:     mapRecap(g.Content),
	}, nil
}

func mapRecap(content contentResponse) *games.Recap {
	if content.Editorial == nil || content.Editorial.Recap.MLB == nil {
		return nil
	}
	article := content.Editorial.Recap.MLB
	urls := make([]string, 0, len(article.Image.Cuts))
	for _, cut := range article.Image.Cuts {
		if src := strings.TrimSpace(cut.Src); src != "" {
			urls = append(urls, src)
		}
	}
	return &games.Recap{
		Headline:  strings.TrimSpace(article.Headline),
		ImageURLs: urls,
	}
}
