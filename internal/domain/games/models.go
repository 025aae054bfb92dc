package games

import (
	"fmt"
	"strings"
	"time"
)

// Recap is the editorial write-up attached to a started or finished game.
type Recap struct {
	Headline string
	// ImageURLs lists the recap image cuts in upstream order; the first one is displayed.
	ImageURLs []string
}

// Game is one raw schedule entry as returned by a schedule provider.
type Game struct {
	AwayTeam  string
	HomeTeam  string
	StartTime time.Time
	Recap     *Recap
}

// Title renders the display title for the game.
func (g Game) Title() string {
	return fmt.Sprintf("%s at %s", g.AwayTeam, g.HomeTeam)
}

// GameRecord is the display-ready shape of a game. Image is nil when no recap
// image could be obtained; consumers substitute their own default.
type GameRecord struct {
	Title   string
	Image   []byte
	Summary string
}

// HasImage reports whether a recap image was retrieved.
func (r GameRecord) HasImage() bool {
	return len(r.Image) > 0
}

// DaySchedule holds one calendar day's games in upstream order.
type DaySchedule struct {
	Date  time.Time
	Games []GameRecord
}

// Order is the fixed convention used to sort days on a Board.
type Order string

const (
	// NewestFirst puts the most recent date in the first row.
	NewestFirst Order = "newest-first"
	// OldestFirst puts the earliest date in the first row.
	OldestFirst Order = "oldest-first"
)

// ParseOrder accepts the configured board order, case-insensitively.
func ParseOrder(raw string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(raw))) {
	case NewestFirst, "":
		return NewestFirst, nil
	case OldestFirst:
		return OldestFirst, nil
	default:
		return "", fmt.Errorf("unknown board order %q (want %s or %s)", raw, NewestFirst, OldestFirst)
	}
}

// Less reports whether day a sorts before day b under the order.
func (o Order) Less(a, b time.Time) bool {
	if o == OldestFirst {
		return a.Before(b)
	}
	return a.After(b)
}

// Board is the assembled multi-day schedule. It is read-only once built.
type Board struct {
	Days    []DaySchedule
	Order   Order
	BuiltAt time.Time
}

// RowLengths returns the number of games per day, in board order.
func (b Board) RowLengths() []int {
	rows := make([]int, len(b.Days))
	for i, day := range b.Days {
		rows[i] = len(day.Games)
	}
	return rows
}

// Day looks up a day by calendar date (YYYY-MM-DD in the day's own location).
func (b Board) Day(date string) (DaySchedule, bool) {
	for _, day := range b.Days {
		if day.Date.Format("2006-01-02") == date {
			return day, true
		}
	}
	return DaySchedule{}, false
}

// GameCount totals the games across every day.
func (b Board) GameCount() int {
	total := 0
	for _, day := range b.Days {
		total += len(day.Games)
	}
	return total
}
