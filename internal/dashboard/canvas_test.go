package dashboard

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tilemon/internal/grid"
	"github.com/rileyhilliard/tilemon/internal/layout"
	"github.com/rileyhilliard/tilemon/internal/telemetry"
)

func TestSpliceOverlay(t *testing.T) {
	tests := []struct {
		name    string
		view    string
		overlay []string
		x, y    int
		want    string
	}{
		{
			name:    "middle",
			view:    "..........\n..........",
			overlay: []string{"ab"},
			x:       3,
			y:       1,
			want:    "..........\n...\x1b[0mab\x1b[0m.....",
		},
		{
			name:    "left edge",
			view:    "....",
			overlay: []string{"xy"},
			want:    "\x1b[0mxy\x1b[0m..",
		},
		{
			name:    "rows below the view are dropped",
			view:    "....",
			overlay: []string{"ab", "cd"},
			x:       1,
			want:    ".\x1b[0mab\x1b[0m.",
		},
		{
			name:    "empty overlay",
			view:    "....",
			overlay: nil,
			want:    "....",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spliceOverlay(tt.view, tt.overlay, tt.x, tt.y))
		})
	}
}

func tileView(label, value string, e layout.Entry) layout.TileView {
	e.OriginalLabel = label
	return layout.TileView{Metric: telemetry.Metric{Label: label, Value: value}, Entry: e}
}

func TestRenderTile_FillsBox(t *testing.T) {
	tests := []struct {
		name string
		box  grid.Rect
	}{
		{"default cell", grid.Rect{Width: 20, Height: 6}},
		{"wide", grid.Rect{Width: 40, Height: 6}},
		{"minimum", grid.Rect{Width: 3, Height: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := renderTile(placedTile{
				view: tileView("CPU Package Temperature", "45 °C", layout.NewEntry("", 0, 0)),
				box:  tt.box,
			}, true)

			require.Len(t, lines, tt.box.Height)
			for _, l := range lines {
				assert.Equal(t, tt.box.Width, ansi.StringWidth(l))
			}
		})
	}
}

func TestRenderTile_ShapesAndLabels(t *testing.T) {
	e := layout.NewEntry("", 0, 0)
	e.Shape = layout.ShapeCircle
	name := "Processor"
	e.CustomLabel = &name

	out := strings.Join(renderTile(placedTile{view: tileView("CPU", "45 °C", e), box: grid.Rect{Width: 20, Height: 6}}, false), "\n")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "Processor")
	assert.Contains(t, out, "45 °C")
	assert.NotContains(t, out, "CPU")

	e.Shape = layout.ShapeTriangle
	out = strings.Join(renderTile(placedTile{view: tileView("CPU", "1", e), box: grid.Rect{Width: 20, Height: 6}}, false), "\n")
	assert.Contains(t, out, "╱")

	e.Shape = layout.ShapeSquare
	out = strings.Join(renderTile(placedTile{view: tileView("CPU", "1", e), box: grid.Rect{Width: 20, Height: 6}}, false), "\n")
	assert.Contains(t, out, "┌")
}

func TestComposeCanvas(t *testing.T) {
	a := placedTile{view: tileView("A", "1", layout.NewEntry("", 0, 0)), box: grid.Rect{Col: 0, Row: 0, Width: 10, Height: 4}}
	b := placedTile{view: tileView("B", "2", layout.NewEntry("", 0, 0)), box: grid.Rect{Col: 25, Row: 2, Width: 10, Height: 4}}

	out := composeCanvas([]placedTile{a, b}, 30, 5, false)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5, "rows past the canvas are clipped")
	for _, l := range lines {
		assert.Equal(t, 30, ansi.StringWidth(l), "columns past the canvas are clipped")
	}
	assert.Contains(t, out, "A")
	assert.Contains(t, lines[2], "┌")

	assert.Empty(t, composeCanvas([]placedTile{a}, 0, 5, false))
}

func TestComposeCanvas_LaterTilesCoverEarlier(t *testing.T) {
	under := placedTile{view: tileView("Under", "1", layout.NewEntry("", 0, 0)), box: grid.Rect{Width: 12, Height: 5}}
	over := placedTile{view: tileView("Over", "2", layout.NewEntry("", 0, 0)), box: grid.Rect{Width: 12, Height: 5}}

	out := composeCanvas([]placedTile{under, over}, 20, 5, false)
	assert.Contains(t, out, "Over")
	assert.NotContains(t, out, "Under")
}

func TestShapeBorder(t *testing.T) {
	assert.Equal(t, "╭", ShapeBorder(layout.ShapeCircle).TopLeft)
	assert.Equal(t, "┌", ShapeBorder(layout.ShapeSquare).TopLeft)
	assert.Equal(t, "╱", ShapeBorder(layout.ShapeTriangle).TopLeft)
}

func TestARGBColor(t *testing.T) {
	assert.Equal(t, "#FF1744", string(ARGBColor(0xFFFF1744)))
	assert.Equal(t, "#FFFFFF", string(ARGBColor(0x80FFFFFF)))
}
