package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/layout"
	"github.com/rileyhilliard/tilemon/internal/ui"
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Show or change dashboard-wide settings",
}

var displayShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the display settings",
	Args:  cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, eng *layout.Engine, args []string) error {
		return showDisplay(cmd.OutOrStdout(), eng.Display())
	}),
}

var displayFlags struct {
	cellSize   int
	blur       bool
	background string
}

var displaySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the display settings",
	Long: `Change the grid cell size, the glass blur behind tiles, or the
background reference. Only the flags you pass are changed. With no flags in
an interactive terminal, a form asks for each setting.

The cell size is clamped to 50-250 display units.

Examples:
  tilemon display set --cell-size 150
  tilemon display set --blur=false --background ""`,
	Args: cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, eng *layout.Engine, args []string) error {
		opts := collectDisplayOptions(cmd)
		if opts.empty() {
			if !isInteractive() || machineMode {
				return errors.New(errors.ErrConfig,
					"Nothing to change",
					"Pass --cell-size, --blur or --background")
			}
			var err error
			if opts, err = promptDisplay(eng.Display()); err != nil {
				return err
			}
		}
		return setDisplay(cmd.OutOrStdout(), eng, opts)
	}),
}

func init() {
	f := displaySetCmd.Flags()
	f.IntVar(&displayFlags.cellSize, "cell-size", layout.DefaultCellSize, "grid cell size in display units")
	f.BoolVar(&displayFlags.blur, "blur", true, "draw tiles on a frosted glass fill")
	f.StringVar(&displayFlags.background, "background", "", "background image reference (empty clears it)")

	displayCmd.AddCommand(displayShowCmd, displaySetCmd)
	rootCmd.AddCommand(displayCmd)
}

// displayOptions holds the settings to change; nil means keep.
type displayOptions struct {
	cellSize   *int
	blur       *bool
	background *string
}

func (o displayOptions) empty() bool {
	return o.cellSize == nil && o.blur == nil && o.background == nil
}

func collectDisplayOptions(cmd *cobra.Command) displayOptions {
	var o displayOptions
	if cmd.Flags().Changed("cell-size") {
		o.cellSize = &displayFlags.cellSize
	}
	if cmd.Flags().Changed("blur") {
		o.blur = &displayFlags.blur
	}
	if cmd.Flags().Changed("background") {
		o.background = &displayFlags.background
	}
	return o
}

func showDisplay(w io.Writer, d layout.DisplayConfig) error {
	if machineMode {
		return WriteJSONSuccess(w, d)
	}

	blur := "off"
	if d.UseBlurEffect {
		blur = "on"
	}
	background := d.Background()
	if background == "" {
		background = "none"
	}
	fmt.Fprint(w, ui.RenderKeyValues([]ui.KeyValue{
		{Key: "cell size", Value: strconv.Itoa(d.CellSizeUnits)},
		{Key: "blur", Value: blur},
		{Key: "background", Value: background},
	}))
	return nil
}

func setDisplay(w io.Writer, eng *layout.Engine, o displayOptions) error {
	if o.cellSize != nil {
		if err := eng.SetCellSize(*o.cellSize); err != nil {
			return err
		}
	}
	if o.blur != nil {
		if err := eng.SetBlur(*o.blur); err != nil {
			return err
		}
	}
	if o.background != nil {
		if err := eng.SetBackground(strings.TrimSpace(*o.background)); err != nil {
			return err
		}
	}
	return showDisplay(w, eng.Display())
}

// promptDisplay asks for every setting, starting from the current values.
func promptDisplay(current layout.DisplayConfig) (displayOptions, error) {
	size := strconv.Itoa(current.CellSizeUnits)
	blur := current.UseBlurEffect
	background := current.Background()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cell size").
				Description(fmt.Sprintf("Display units per grid cell (%d-%d)", layout.MinCellSize, layout.MaxCellSize)).
				Value(&size).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("enter a whole number")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Glass blur behind tiles?").
				Value(&blur),
			huh.NewInput().
				Title("Background").
				Description("Image reference, or empty for none").
				Value(&background),
		),
	)
	if err := form.Run(); err != nil {
		return displayOptions{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Pass --cell-size, --blur or --background instead")
	}

	n, _ := strconv.Atoi(strings.TrimSpace(size))
	return displayOptions{cellSize: &n, blur: &blur, background: &background}, nil
}
