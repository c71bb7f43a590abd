package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tilemon/internal/dashboard"
	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/logger"
	"github.com/rileyhilliard/tilemon/internal/telemetry"
	"github.com/rileyhilliard/tilemon/internal/ui"
)

var monitorIntervalFlag string

var monitorCmd = &cobra.Command{
	Use:   "monitor [address]",
	Short: "Show live readings as a tile dashboard",
	Long: `Poll a telemetry endpoint and show every reading as a tile.

The address can be a host (port 8085 is assumed), host:port, or a full URL.
Without one, the configured endpoint or the last address that answered is
used; with neither, you are asked for one.

New sensors appear as tiles in the first column. Press e for edit mode to
drag tiles, ? for all shortcuts.

Examples:
  tilemon monitor 192.168.1.5
  tilemon monitor gaming-pc:9000 --interval 5s
  tilemon monitor --ephemeral`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var address string
		if len(args) > 0 {
			address = args[0]
		}
		return monitorCommand(cmd.Context(), address, monitorIntervalFlag)
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().StringVarP(&monitorIntervalFlag, "interval", "i", "", "gap between polls (default from config, 2s)")
}

// monitorCommand starts the TUI dashboard.
func monitorCommand(ctx context.Context, address, intervalFlag string) error {
	interval, err := ParseInterval(intervalFlag)
	if err != nil {
		return err
	}
	if !ui.IsTerminal(os.Stdout) {
		return errors.New(errors.ErrConfig,
			"The dashboard needs an interactive terminal",
			"Use 'tilemon probe' to fetch readings from a script.")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if interval == 0 {
		interval = s.cfg.Interval
	}

	source := telemetry.NewHTTPSource(s.cfg.FetchTimeout)
	defer source.Close()

	m := dashboard.New(ctx, s.engine, s.repo, dashboard.Config{
		Address:  resolveAddress(address, s.cfg.Endpoint, s.repo.Endpoint),
		Source:   source,
		Interval: interval,
		Scale:    s.scale(),
		Log:      logger.NewEnvLogger("[poll]"),
	})
	return dashboard.Run(ctx, m, s.cfg.LogFile)
}
