package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mlb-scoreboard/internal/aggregator"
	"mlb-scoreboard/internal/app/scoreboard"
	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/timeutil"
)

type fetchBoard struct {
	Order   games.Order `json:"order"`
	BuiltAt time.Time   `json:"builtAt"`
	Days    []fetchDay  `json:"days"`
}

type fetchDay struct {
	Date  string      `json:"date"`
	Games []fetchGame `json:"games"`
}

type fetchGame struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	ImageBytes int    `json:"imageBytes"`
}

func newFetchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Build the board once and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr())

			pipeline, err := scoreboard.NewPipeline(cfg, logger, nil)
			if err != nil {
				return err
			}
			defer pipeline.Close()

			board, buildErr := pipeline.Build(cmd.Context())
			if buildErr != nil && !errors.Is(buildErr, aggregator.ErrNoDays) {
				return buildErr
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(newFetchBoard(board)); err != nil {
				return fmt.Errorf("encode board: %w", err)
			}
			// The empty board is still printed, but the exit status reports it.
			return buildErr
		},
	}
}

func newFetchBoard(board games.Board) fetchBoard {
	out := fetchBoard{Order: board.Order, BuiltAt: board.BuiltAt, Days: make([]fetchDay, 0, len(board.Days))}
	for _, day := range board.Days {
		d := fetchDay{Date: timeutil.FormatDate(day.Date), Games: make([]fetchGame, 0, len(day.Games))}
		for _, g := range day.Games {
			d.Games = append(d.Games, fetchGame{Title: g.Title, Summary: g.Summary, ImageBytes: len(g.Image)})
		}
		out.Days = append(out.Days, d)
	}
	return out
}
