package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/layout"
	"github.com/rileyhilliard/tilemon/internal/ui"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "List and edit saved tiles",
	Long: `Inspect and change the saved tile layout without opening the dashboard.

Tiles are addressed by their original sensor label, as shown in the first
column of 'tilemon layout list'. Renaming a tile never changes that label.`,
}

var layoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved tiles",
	Args:    cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, eng *layout.Engine, args []string) error {
		return listLayout(cmd.OutOrStdout(), eng)
	}),
}

var layoutHideCmd = &cobra.Command{
	Use:   "hide <label>",
	Short: "Hide a tile",
	Args:  cobra.ExactArgs(1),
	RunE: withEngine(func(cmd *cobra.Command, eng *layout.Engine, args []string) error {
		return setTileHidden(cmd.OutOrStdout(), eng, args[0], true)
	}),
}

var layoutUnhideCmd = &cobra.Command{
	Use:   "unhide <label>",
	Short: "Show a hidden tile again",
	Args:  cobra.ExactArgs(1),
	RunE: withEngine(func(cmd *cobra.Command, eng *layout.Engine, args []string) error {
		return setTileHidden(cmd.OutOrStdout(), eng, args[0], false)
	}),
}

var layoutMoveCmd = &cobra.Command{
	Use:   "move <label> <x> <y>",
	Short: "Place a tile at a grid cell",
	Long: `Place a tile with its top-left corner at grid cell (x, y).

Cells count from 0 at the top-left. Tiles may overlap.

Examples:
  tilemon layout move "CPU Package" 2 0`,
	Args: cobra.ExactArgs(3),
	RunE: withEngine(func(cmd *cobra.Command, eng *layout.Engine, args []string) error {
		x, err := parseCell("x", args[1])
		if err != nil {
			return err
		}
		y, err := parseCell("y", args[2])
		if err != nil {
			return err
		}
		return moveTile(cmd.OutOrStdout(), eng, args[0], x, y)
	}),
}

// withEngine opens a session for the duration of fn.
func withEngine(fn func(cmd *cobra.Command, eng *layout.Engine, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(cmd, s.engine, args)
	}
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutListCmd, layoutHideCmd, layoutUnhideCmd, layoutMoveCmd)
}

func listLayout(w io.Writer, eng *layout.Engine) error {
	entries := eng.Entries()
	if machineMode {
		return WriteJSONSuccess(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No tiles saved yet. Run 'tilemon monitor' to discover sensors.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		status := ui.SymbolComplete
		if e.Hidden {
			status = ui.SymbolHidden
		}
		rows = append(rows, []string{
			status,
			e.OriginalLabel,
			e.DisplayLabel(""),
			fmt.Sprintf("%d,%d", e.GridX, e.GridY),
			fmt.Sprintf("%dx%d", e.SpanX, e.SpanY),
			strings.ToLower(e.Shape.String()),
		})
	}
	fmt.Fprintln(w, ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "", Width: 1},
		{Title: "Label", Width: 12},
		{Title: "Shown as", Width: 10},
		{Title: "Cell", Width: 5},
		{Title: "Span", Width: 4},
		{Title: "Shape", Width: 8},
	}, rows))
	return nil
}

func setTileHidden(w io.Writer, eng *layout.Engine, label string, hidden bool) error {
	if err := eng.Edit(label, layout.SetHidden(hidden)); err != nil {
		return err
	}
	verb := "Unhid"
	if hidden {
		verb = "Hid"
	}
	return report(w, eng, label, fmt.Sprintf("%s '%s'", verb, label))
}

func moveTile(w io.Writer, eng *layout.Engine, label string, x, y int) error {
	if err := eng.Edit(label, layout.Move(x, y)); err != nil {
		return err
	}
	return report(w, eng, label, fmt.Sprintf("Moved '%s' to %d,%d", label, x, y))
}

// report prints a success line, or the edited entry in --json mode.
func report(w io.Writer, eng *layout.Engine, label, msg string) error {
	if machineMode {
		e, _ := eng.Entry(label)
		return WriteJSONSuccess(w, e)
	}
	fmt.Fprintln(w, ui.SuccessStyle().Render(ui.SymbolSuccess)+" "+msg)
	return nil
}

// tileEdits collects the edit flags the user actually set.
type tileEdits struct {
	label      *string
	colors     map[string]*layout.ARGB
	titleScale *float64
	valueScale *float64
	shape      *layout.Shape
	spanX      *int
	spanY      *int
}

func (t tileEdits) empty() bool {
	return t.label == nil && len(t.colors) == 0 && t.titleScale == nil &&
		t.valueScale == nil && t.shape == nil && t.spanX == nil && t.spanY == nil
}

// editFunc turns the collected flags into one edit. Unset fields keep the
// stored value.
func (t tileEdits) editFunc() layout.EditFunc {
	return func(e layout.Entry) layout.Entry {
		if t.label != nil {
			e = layout.Rename(*t.label)(e)
		}
		if c, ok := t.colors["color"]; ok {
			e.CustomColor = c
		}
		if c, ok := t.colors["title-color"]; ok {
			e.CustomTitleColor = c
		}
		if c, ok := t.colors["value-color"]; ok {
			e.CustomValueColor = c
		}
		if t.titleScale != nil {
			e.TitleScale = *t.titleScale
		}
		if t.valueScale != nil {
			e.ValueScale = *t.valueScale
		}
		if t.shape != nil {
			e.Shape = *t.shape
		}
		if t.spanX != nil {
			e.SpanX = *t.spanX
		}
		if t.spanY != nil {
			e.SpanY = *t.spanY
		}
		return e
	}
}

var editFlags struct {
	label      string
	color      string
	titleColor string
	valueColor string
	titleScale float64
	valueScale float64
	shape      string
	spanX      int
	spanY      int
}

var layoutEditCmd = &cobra.Command{
	Use:   "edit <label>",
	Short: "Change a tile's name, colors, text size, shape or span",
	Long: `Change how one tile looks. Only the flags you pass are changed.

Colors take #RRGGBB or #AARRGGBB; 'none' restores the default. Text scales
are clamped to 0.5-2.0 (title) and 0.5-2.5 (value), spans to 1-4 cells.
An empty --label restores the sensor's own name.

Examples:
  tilemon layout edit "CPU Package" --label CPU --color "#FF1744"
  tilemon layout edit GPU --shape circle --span-x 2`,
	Args: cobra.ExactArgs(1),
	RunE: withEngine(func(cmd *cobra.Command, eng *layout.Engine, args []string) error {
		edits, err := collectTileEdits(cmd)
		if err != nil {
			return err
		}
		return editTile(cmd.OutOrStdout(), eng, args[0], edits)
	}),
}

func init() {
	f := layoutEditCmd.Flags()
	f.StringVar(&editFlags.label, "label", "", "custom label (empty restores the sensor name)")
	f.StringVar(&editFlags.color, "color", "", "tile background color")
	f.StringVar(&editFlags.titleColor, "title-color", "", "title text color")
	f.StringVar(&editFlags.valueColor, "value-color", "", "value text color")
	f.Float64Var(&editFlags.titleScale, "title-scale", 1, "title text scale")
	f.Float64Var(&editFlags.valueScale, "value-scale", 1, "value text scale")
	f.StringVar(&editFlags.shape, "shape", "", "square, circle or triangle")
	f.IntVar(&editFlags.spanX, "span-x", 1, "width in cells")
	f.IntVar(&editFlags.spanY, "span-y", 1, "height in cells")
	layoutCmd.AddCommand(layoutEditCmd)
}

func collectTileEdits(cmd *cobra.Command) (tileEdits, error) {
	var t tileEdits
	changed := cmd.Flags().Changed

	if changed("label") {
		t.label = &editFlags.label
	}
	for name, value := range map[string]string{
		"color":       editFlags.color,
		"title-color": editFlags.titleColor,
		"value-color": editFlags.valueColor,
	} {
		if !changed(name) {
			continue
		}
		c, err := parseColorFlag(name, value)
		if err != nil {
			return t, err
		}
		if t.colors == nil {
			t.colors = make(map[string]*layout.ARGB)
		}
		t.colors[name] = c
	}
	if changed("title-scale") {
		t.titleScale = &editFlags.titleScale
	}
	if changed("value-scale") {
		t.valueScale = &editFlags.valueScale
	}
	if changed("shape") {
		s, err := parseShapeFlag(editFlags.shape)
		if err != nil {
			return t, err
		}
		t.shape = &s
	}
	if changed("span-x") {
		t.spanX = &editFlags.spanX
	}
	if changed("span-y") {
		t.spanY = &editFlags.spanY
	}
	return t, nil
}

func editTile(w io.Writer, eng *layout.Engine, label string, edits tileEdits) error {
	if edits.empty() {
		return errors.New(errors.ErrLayout,
			"Nothing to change",
			"Pass at least one of --label, --color, --title-color, --value-color, --title-scale, --value-scale, --shape, --span-x, --span-y")
	}
	if err := eng.Edit(label, edits.editFunc()); err != nil {
		return err
	}
	e, _ := eng.Entry(label)
	return report(w, eng, label, fmt.Sprintf("Updated '%s' (%s, %dx%d, title %sx, value %sx)",
		label, strings.ToLower(e.Shape.String()), e.SpanX, e.SpanY,
		strconv.FormatFloat(e.TitleScale, 'f', -1, 64),
		strconv.FormatFloat(e.ValueScale, 'f', -1, 64)))
}
