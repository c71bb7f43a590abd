package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tilemon/internal/config"
	"github.com/rileyhilliard/tilemon/internal/logger"
	"github.com/rileyhilliard/tilemon/internal/server"
	"github.com/rileyhilliard/tilemon/internal/telemetry"
	"github.com/rileyhilliard/tilemon/internal/ui"
)

var (
	servePortFlag   int
	serveSourceFlag string
	serveFileFlag   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve this machine's sensor readings",
	Long: `Run the telemetry endpoint that 'tilemon monitor' polls.

GET /api/data answers with a JSON array of {Id, Label, Value, Sensor}.
With --source host (the default) readings come from this machine: CPU,
memory, swap, disk, load, uptime and temperatures where available. With
--source file they are read from an indexed sensor dump (Label0=, Value0=,
Sensor0=, ...) that another tool keeps rewriting.

Examples:
  tilemon serve
  tilemon serve --port 9000
  tilemon serve --source file --file /tmp/sensors.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		applyServeFlags(cmd, &cfg.Serve)
		if err := config.Validate(cfg); err != nil {
			return err
		}
		return serveCommand(cmd.Context(), cmd.OutOrStdout(), cfg.Serve)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePortFlag, "port", "p", config.DefaultPort, "port to listen on")
	serveCmd.Flags().StringVar(&serveSourceFlag, "source", config.SourceHost, "where readings come from: host or file")
	serveCmd.Flags().StringVar(&serveFileFlag, "file", "", "sensor dump path for --source file")
}

// applyServeFlags overrides config values with flags the user actually set.
func applyServeFlags(cmd *cobra.Command, s *config.ServeConfig) {
	if cmd.Flags().Changed("port") {
		s.Port = servePortFlag
	}
	if cmd.Flags().Changed("source") {
		s.Source = serveSourceFlag
	}
	if cmd.Flags().Changed("file") {
		s.File = config.ExpandTilde(serveFileFlag)
	}
}

func newProvider(s config.ServeConfig) server.Provider {
	if s.Source == config.SourceFile {
		return server.NewFileProvider(s.File)
	}
	return server.NewHostProvider()
}

// serveCommand prints the banner and serves until ctx is cancelled.
func serveCommand(ctx context.Context, w io.Writer, s config.ServeConfig) error {
	srv := server.New(newProvider(s), net.JoinHostPort("", strconv.Itoa(s.Port)), logger.NewEnvLogger("[serve]"))

	if !machineMode {
		fmt.Fprint(w, ui.RenderHeader(ui.HeaderInfo{
			Version: formatVersion(version),
			Tagline: "Telemetry endpoint (" + s.Source + ")",
			Lines:   endpointURLs(server.LocalAddresses(), s.Port),
		}))
	}
	return srv.Run(ctx)
}

// endpointURLs lists the data URLs a dashboard on another device can use.
func endpointURLs(ips []string, port int) []string {
	if len(ips) == 0 {
		ips = []string{"localhost"}
	}
	out := make([]string, 0, len(ips))
	for _, ip := range ips {
		out = append(out, "http://"+net.JoinHostPort(ip, strconv.Itoa(port))+"/"+telemetry.DataPath)
	}
	return out
}
