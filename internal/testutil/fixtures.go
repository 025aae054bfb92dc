package testutil

import (
	"fmt"
	"time"

	"mlb-scoreboard/internal/domain/games"
)

// SampleImage is a minimal JPEG-looking payload.
var SampleImage = []byte{0xff, 0xd8, 0xff, 0xe0}

// SampleRecord returns a display record; withImage attaches SampleImage and a headline.
func SampleRecord(title string, withImage bool) games.GameRecord {
	if withImage {
		return games.GameRecord{Title: title, Image: SampleImage, Summary: title + " recap"}
	}
	return games.GameRecord{Title: title, Summary: "Live 07:05 PM"}
}

// SampleBoard builds a newest-first board of consecutive days ending on 2024-06-03.
// rows gives the number of games per day; even-indexed games carry an image.
func SampleBoard(rows ...int) games.Board {
	board := games.Board{
		Order:   games.NewestFirst,
		BuiltAt: time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC),
		Days:    make([]games.DaySchedule, 0, len(rows)),
	}
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	for i, n := range rows {
		date := day.AddDate(0, 0, -i)
		records := make([]games.GameRecord, n)
		for j := range records {
			records[j] = SampleRecord(fmt.Sprintf("Away%d at Home%d", j, j), j%2 == 0)
		}
		board.Days = append(board.Days, games.DaySchedule{Date: date, Games: records})
	}
	return board
}
