package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mlb-scoreboard/internal/app/scoreboard"
	"mlb-scoreboard/internal/tui"
)

func newViewCmd(flags *globalFlags) *cobra.Command {
	var defaultImage string
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the board in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			// The terminal belongs to the viewer, so logs go to a file.
			logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logFile.Close()
			logger := newLogger(logFile)

			pipeline, err := scoreboard.NewPipeline(cfg, logger, nil)
			if err != nil {
				return err
			}
			defer pipeline.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			model := tui.New(ctx, pipeline, tui.Config{
				PageSize:     cfg.PageSize,
				DefaultImage: defaultImage,
			}, logger)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run viewer: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&defaultImage, "default-image", "", "label shown for games without a recap image")
	return cmd
}
