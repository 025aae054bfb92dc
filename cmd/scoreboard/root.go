package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mlb-scoreboard/internal/config"
	"mlb-scoreboard/internal/logging"
)

const serviceName = "mlb-scoreboard"

// globalFlags override the environment for a single invocation.
type globalFlags struct {
	provider string
	timezone string
	offsets  string
	order    string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "scoreboard",
		Short:         "Multi-day MLB scoreboard",
		Long:          "Builds a board of recent MLB games with recap headlines and images, then serves it over HTTP or in the terminal.",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.provider, "provider", "", "schedule provider: statsapi, fixture or file (env PROVIDER)")
	pf.StringVar(&flags.timezone, "tz", "", "display timezone, e.g. America/New_York (env DISPLAY_TIMEZONE)")
	pf.StringVar(&flags.offsets, "offsets", "", "comma separated day offsets from today, e.g. 0,-1,-2 (env DAY_OFFSETS)")
	pf.StringVar(&flags.order, "order", "", "newest-first or oldest-first (env BOARD_ORDER)")

	root.AddCommand(newServeCmd(flags), newViewCmd(flags), newFetchCmd(flags))
	return root
}

// loadConfig reads the environment and applies any flags that were set.
func (f *globalFlags) loadConfig() (config.Config, error) {
	cfg := config.Load()
	if v := strings.TrimSpace(f.provider); v != "" {
		cfg.Provider = v
	}
	if v := strings.TrimSpace(f.timezone); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(f.order); v != "" {
		cfg.BoardOrder = v
	}
	if strings.TrimSpace(f.offsets) != "" {
		offsets, ok := config.ParseOffsets(f.offsets)
		if !ok {
			return config.Config{}, fmt.Errorf("invalid --offsets %q", f.offsets)
		}
		cfg.DayOffsets = offsets
	}
	return cfg, nil
}

func newLogger(out io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: serviceName,
		Version: appVersion,
		Output:  out,
	})
}
