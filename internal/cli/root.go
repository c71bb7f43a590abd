package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tilemon/internal/ui"
)

// Global flags
var (
	cfgFile   string
	storeFlag string
	ephemeral bool
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "tilemon",
	Short: "Live hardware telemetry as a tile dashboard",
	Long: `tilemon polls a telemetry endpoint and shows every sensor reading as a
tile you can move, resize, recolor and hide. Layout edits are saved locally
and survive restarts.

Run 'tilemon serve' on the machine you want to watch, then
'tilemon monitor <address>' wherever you want the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.DisableColors()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./tilemon.yaml or ~/.config/tilemon/config.yaml)")
	pf.StringVar(&storeFlag, "store", "", "layout database path (overrides 'store' in the config)")
	pf.BoolVar(&ephemeral, "ephemeral", false, "keep the layout in memory only; nothing is saved")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.BoolVar(&machineMode, "json", false, "machine-readable JSON output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	if machineMode {
		_ = WriteJSONFromError(os.Stdout, err)
	} else {
		fmt.Fprintln(os.Stderr, strings.TrimRight(err.Error(), "\n"))
		if isUnknownCommandError(err) {
			fmt.Fprintln(os.Stderr, "Run 'tilemon --help' for usage.")
		}
	}
	os.Exit(1)
}

// isUnknownCommandError detects cobra's unknown command and flag errors.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}
