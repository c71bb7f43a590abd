package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/tilemon/internal/layout"
)

// tileForm holds the values bound to the edit form. It lives on the heap so
// the form's field pointers survive model copies.
type tileForm struct {
	entry layout.Entry

	name       string
	color      string
	titleColor string
	valueColor string
	titleScale float64
	valueScale float64
	shape      layout.Shape
	spanX      int
	spanY      int
	hidden     bool
}

func newTileForm(e layout.Entry) *tileForm {
	f := &tileForm{
		entry:      e.Clone(),
		color:      colorKey(e.CustomColor),
		titleColor: colorKey(e.CustomTitleColor),
		valueColor: colorKey(e.CustomValueColor),
		titleScale: e.TitleScale,
		valueScale: e.ValueScale,
		shape:      e.Shape,
		spanX:      e.SpanX,
		spanY:      e.SpanY,
		hidden:     e.Hidden,
	}
	if e.CustomLabel != nil {
		f.name = *e.CustomLabel
	}
	return f
}

// Label returns the original label of the tile being edited.
func (f *tileForm) Label() string {
	return f.entry.OriginalLabel
}

// Form builds the huh form bound to f.
func (f *tileForm) Form() *huh.Form {
	keys := huh.NewDefaultKeyMap()
	keys.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Label").
				Description("Leave empty to use the sensor's own name").
				Placeholder(f.entry.OriginalLabel).
				Value(&f.name),
			huh.NewSelect[string]().
				Title("Background").
				Options(colorOptions(f.color)...).
				Value(&f.color),
			huh.NewSelect[string]().
				Title("Title color").
				Options(colorOptions(f.titleColor)...).
				Value(&f.titleColor),
			huh.NewSelect[string]().
				Title("Value color").
				Options(colorOptions(f.valueColor)...).
				Value(&f.valueColor),
		).Title(f.entry.OriginalLabel),
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Title size").
				Options(scaleOptions(layout.MinTitleScale, layout.MaxTitleScale, f.titleScale)...).
				Value(&f.titleScale),
			huh.NewSelect[float64]().
				Title("Value size").
				Options(scaleOptions(layout.MinValueScale, layout.MaxValueScale, f.valueScale)...).
				Value(&f.valueScale),
			huh.NewSelect[layout.Shape]().
				Title("Shape").
				Options(shapeOptions()...).
				Value(&f.shape),
			huh.NewSelect[int]().
				Title("Width (cells)").
				Options(spanOptions()...).
				Value(&f.spanX),
			huh.NewSelect[int]().
				Title("Height (cells)").
				Options(spanOptions()...).
				Value(&f.spanY),
			huh.NewConfirm().
				Title("Hide this tile?").
				Affirmative("Hide").
				Negative("Show").
				Value(&f.hidden),
		),
	).WithKeyMap(keys).WithShowHelp(true).WithWidth(60)
}

// Entry returns the edited entry. Colors were chosen from the option list,
// so a parse failure means the form was tampered with.
func (f *tileForm) Entry() (layout.Entry, error) {
	e := f.entry.Clone()

	name := strings.TrimSpace(f.name)
	e.CustomLabel = nil
	if name != "" {
		e.CustomLabel = &name
	}

	var err error
	if e.CustomColor, err = parseColorKey(f.color); err != nil {
		return e, err
	}
	if e.CustomTitleColor, err = parseColorKey(f.titleColor); err != nil {
		return e, err
	}
	if e.CustomValueColor, err = parseColorKey(f.valueColor); err != nil {
		return e, err
	}

	e.TitleScale = f.titleScale
	e.ValueScale = f.valueScale
	e.Shape = f.shape
	e.SpanX = f.spanX
	e.SpanY = f.spanY
	e.Hidden = f.hidden
	return e.Sanitize(), nil
}

func colorKey(c *layout.ARGB) string {
	if c == nil {
		return ""
	}
	return c.String()
}

func parseColorKey(s string) (*layout.ARGB, error) {
	if s == "" {
		return nil, nil
	}
	c, err := layout.ParseARGB(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// colorOptions lists the swatches. A current color that is not a swatch is
// offered too so saving without touching it keeps it.
func colorOptions(current string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Default", "")}
	found := current == ""
	for _, s := range layout.Swatches {
		opts = append(opts, huh.NewOption(s.Name, s.Color.String()))
		if s.Color.String() == current {
			found = true
		}
	}
	if !found {
		opts = append(opts, huh.NewOption("Custom "+current, current))
	}
	return opts
}

func scaleOptions(lo, hi, current float64) []huh.Option[float64] {
	var opts []huh.Option[float64]
	found := false
	for v := lo; v <= hi+1e-9; v += 0.25 {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%.2fx", v), v))
		if v == current {
			found = true
		}
	}
	if !found {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%.2fx", current), current))
	}
	return opts
}

func shapeOptions() []huh.Option[layout.Shape] {
	opts := make([]huh.Option[layout.Shape], 0, len(layout.Shapes))
	for _, s := range layout.Shapes {
		name := strings.ToLower(s.String())
		opts = append(opts, huh.NewOption(strings.ToUpper(name[:1])+name[1:], s))
	}
	return opts
}

func spanOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, layout.MaxSpan)
	for n := layout.MinSpan; n <= layout.MaxSpan; n++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d", n), n))
	}
	return opts
}
