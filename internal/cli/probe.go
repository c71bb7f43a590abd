package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/telemetry"
	"github.com/rileyhilliard/tilemon/internal/ui"
)

var probeCmd = &cobra.Command{
	Use:   "probe [address]",
	Short: "Fetch readings once and print them",
	Long: `Fetch one set of readings from a telemetry endpoint and print it as a
table, or as JSON with --json. Handy for checking an endpoint before
starting the dashboard.

The address is resolved like 'tilemon monitor'. Nothing is saved.

Examples:
  tilemon probe 192.168.1.5
  tilemon probe --json | jq '.data[].Label'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var address string
		if len(args) > 0 {
			address = args[0]
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		source := telemetry.NewHTTPSource(s.cfg.FetchTimeout)
		defer source.Close()

		address = resolveAddress(address, s.cfg.Endpoint, s.repo.Endpoint)
		return probeCommand(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), source, address)
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

// probeCommand runs a single fetch with a spinner on errW and prints the
// readings to w.
func probeCommand(ctx context.Context, w, errW io.Writer, source telemetry.Source, address string) error {
	base, err := telemetry.NormalizeEndpoint(address)
	if err != nil {
		return err
	}
	url := telemetry.DataURL(base)

	var spinner *ui.Spinner
	if !machineMode {
		spinner = ui.NewSpinner("Fetching "+url, errW)
		spinner.Start()
	}

	readings, err := source.Fetch(ctx, url)
	if err != nil {
		if spinner != nil {
			spinner.Fail()
		}
		if !errors.IsCode(err, errors.ErrFetch) && !errors.IsCode(err, errors.ErrEndpoint) {
			err = errors.WrapWithCode(err, errors.ErrFetch, "Failed to fetch readings", "")
		}
		return err
	}
	if spinner != nil {
		spinner.Success()
	}

	if machineMode {
		return WriteJSONSuccess(w, readings)
	}
	if len(readings) == 0 {
		fmt.Fprintln(w, "The endpoint answered with no readings.")
		return nil
	}

	rows := make([][]string, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, []string{strconv.Itoa(r.ID), r.Label, r.Value, r.Group})
	}
	fmt.Fprintln(w, ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "ID", Width: 4},
		{Title: "Label", Width: 12},
		{Title: "Value", Width: 8},
		{Title: "Sensor", Width: 10},
	}, rows))
	return nil
}
