package statsapi

import (
	"errors"
	"testing"
	"time"

	"mlb-scoreboard/internal/providers"
)

func TestMapScheduleNoDatesIsEmptyDay(t *testing.T) {
	result, err := mapSchedule(scheduleResponse{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result == nil || len(result) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", result)
	}
}

func TestMapGameWithRecap(t *testing.T) {
	g := gameResponse{
		GamePk:   745001,
		GameDate: "2024-06-01T23:05:00Z",
		Teams: teamsResponse{
			Away: sideResponse{Team: teamResponse{Name: "New York Yankees"}},
			Home: sideResponse{Team: teamResponse{Name: " Boston Red Sox "}},
		},
		Content: contentResponse{Editorial: &editorialResponse{Recap: recapResponse{MLB: &articleResponse{
			Headline: "Judge homers twice",
			Image:    imageResponse{Cuts: []cutResponse{{Src: ""}, {Src: "https://img.mlbstatic.com/a.jpg"}}},
		}}}},
	}

	mapped, err := mapGame(g)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if mapped.Title() != "New York Yankees at Boston Red Sox" {
		t.Fatalf("unexpected title %q", mapped.Title())
	}
	if !mapped.StartTime.Equal(time.Date(2024, 6, 1, 23, 5, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start time %s", mapped.StartTime)
	}
	if mapped.Recap == nil || mapped.Recap.Headline != "Judge homers twice" {
		t.Fatalf("expected recap headline, got %+v", mapped.Recap)
	}
	if len(mapped.Recap.ImageURLs) != 1 || mapped.Recap.ImageURLs[0] != "https://img.mlbstatic.com/a.jpg" {
		t.Fatalf("expected blank cuts to be skipped, got %v", mapped.Recap.ImageURLs)
	}
}

func TestMapGameWithoutEditorial(t *testing.T) {
	mapped, err := mapGame(gameResponse{GameDate: "2024-06-01T17:10:00Z"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if mapped.Recap != nil {
		t.Fatalf("expected nil recap, got %+v", mapped.Recap)
	}

	mapped, err = mapGame(gameResponse{GameDate: "2024-06-01T17:10:00Z", Content: contentResponse{Editorial: &editorialResponse{}}})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if mapped.Recap != nil {
		t.Fatalf("expected nil recap when editorial has no mlb article, got %+v", mapped.Recap)
	}
}

func TestMapGameRejectsBadTimestamp(t *testing.T) {
	_, err := mapGame(gameResponse{GamePk: 1, GameDate: "June 1st"})
	if !errors.Is(err, providers.ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}
