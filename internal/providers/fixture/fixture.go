package fixture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/providers"
	"mlb-scoreboard/internal/timeutil"
)

const (
	imageScheme = "fixture://"
	// Games per day; more than a page so the grid has something to scroll.
	gamesPerDay = 7
	// Every day the game at this position carries a recap whose image cannot be fetched.
	brokenImageSlot = 3
)

var clubs = []string{
	"Arizona Diamondbacks", "Atlanta Braves", "Baltimore Orioles", "Boston Red Sox",
	"Chicago Cubs", "Chicago White Sox", "Cincinnati Reds", "Cleveland Guardians",
	"Colorado Rockies", "Detroit Tigers", "Houston Astros", "Kansas City Royals",
	"Los Angeles Angels", "Los Angeles Dodgers", "Miami Marlins", "Milwaukee Brewers",
}

// Provider returns a deterministic schedule useful for local testing and offline demos.
// Games that have already started carry a recap; images resolve to placeholder bytes.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchSchedule returns a deterministic slate of games for date.
func (p *Provider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, providers.Wrap(providers.ErrInvalidRequest, err)
	}

	now := p.now()
	rotate := day.YearDay() % len(clubs)
	slate := make([]games.Game, 0, gamesPerDay)
	for i := 0; i < gamesPerDay; i++ {
		away := clubs[(rotate+2*i)%len(clubs)]
		home := clubs[(rotate+2*i+1)%len(clubs)]
		// First pitches from 17:05 UTC, staggered by 40 minutes.
		start := day.Add(17*time.Hour + 5*time.Minute + time.Duration(i)*40*time.Minute)

		g := games.Game{AwayTeam: away, HomeTeam: home, StartTime: start}
		if start.Before(now) {
			g.Recap = &games.Recap{
				Headline:  fmt.Sprintf("%s edge %s", shortName(away), shortName(home)),
				ImageURLs: []string{imageURL(date, i)},
			}
		}
		slate = append(slate, g)
	}
	return slate, nil
}

// FetchImage returns placeholder bytes for fixture image URLs.
func (p *Provider) FetchImage(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(url, imageScheme) {
		return nil, providers.Wrap(providers.ErrInvalidRequest, fmt.Errorf("not a fixture image: %q", url))
	}
	if strings.HasSuffix(url, "/missing.jpg") {
		return nil, &providers.StatusError{Provider: "fixture", StatusCode: 404}
	}
	// JPEG SOI marker followed by the path, so every image is distinct.
	return append([]byte{0xff, 0xd8}, strings.TrimPrefix(url, imageScheme)...), nil
}

func imageURL(date string, slot int) string {
	if slot == brokenImageSlot {
		return fmt.Sprintf("%s%s/missing.jpg", imageScheme, date)
	}
	return fmt.Sprintf("%s%s/%d.jpg", imageScheme, date, slot)
}

func shortName(club string) string {
	parts := strings.Fields(club)
	return parts[len(parts)-1]
}
