package grid

import (
	"testing"

	"github.com/rileyhilliard/tilemon/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_PixelOffsetAndFootprint(t *testing.T) {
	r := NewResolver(120)
	e := layout.NewEntry("CPU", 2, 3)
	e.SpanX = 2
	e.SpanY = 0

	x, y := r.PixelOffset(e)
	assert.Equal(t, 240, x)
	assert.Equal(t, 360, y)

	w, h := r.FootprintSize(e)
	assert.Equal(t, 240, w)
	assert.Equal(t, 120, h, "spans below one count as one")
}

func TestNewResolver_Clamps(t *testing.T) {
	assert.Equal(t, layout.MinCellSize, NewResolver(10).Cell)
	assert.Equal(t, layout.MaxCellSize, NewResolver(1000).Cell)
	assert.Equal(t, 120, NewResolver(120).Cell)
}

func TestResolver_Snap(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy int
		dx, dy float64
		wantX  int
		wantY  int
	}{
		{"drag right and up", 240, 0, 110, -50, 3, 0},
		{"no movement", 120, 240, 0, 0, 1, 2},
		{"just under half stays", 0, 0, 59, 59.9, 0, 0},
		{"half rounds away from zero", 0, 0, 60, 60, 1, 1},
		{"negative half clamps", 0, 0, -60, -300, 0, 0},
		{"back to origin", 360, 120, -361, -121, 0, 0},
	}

	r := NewResolver(120)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := r.Snap(tt.cx, tt.cy, tt.dx, tt.dy)
			assert.Equal(t, tt.wantX, gx)
			assert.Equal(t, tt.wantY, gy)
		})
	}
}

func TestDragTracker_RequiresEditMode(t *testing.T) {
	var d DragTracker
	assert.False(t, d.Begin(layout.NewEntry("CPU", 0, 0), 120))
	assert.False(t, d.Active())

	d.Move(500, 500)
	_, _, moved := d.End()
	assert.False(t, moved)
	assert.Equal(t, ActionEdit, d.Tap(), "tap opens the editor regardless of mode")
}

func TestDragTracker_DragAndDrop(t *testing.T) {
	var d DragTracker
	d.SetEditMode(true)

	require.True(t, d.Begin(layout.NewEntry("CPU", 2, 0), 120))
	assert.Equal(t, "CPU", d.Label())
	d.Move(60, -20)
	d.Move(50, -30)
	assert.Equal(t, Placement{X: 3, Y: 0}, d.Preview())

	dx, dy := d.Delta()
	assert.Equal(t, 110.0, dx)
	assert.Equal(t, -50.0, dy)

	label, p, moved := d.End()
	assert.Equal(t, "CPU", label)
	assert.Equal(t, Placement{X: 3, Y: 0}, p)
	assert.True(t, moved)
	assert.False(t, d.Active())
}

func TestDragTracker_NullDrag(t *testing.T) {
	var d DragTracker
	d.SetEditMode(true)

	require.True(t, d.Begin(layout.NewEntry("CPU", 1, 1), 120))
	d.Move(30, -30)
	_, p, moved := d.End()
	assert.False(t, moved)
	assert.Equal(t, Placement{X: 1, Y: 1}, p)
}

func TestDragTracker_CancelAndLeaveEditMode(t *testing.T) {
	var d DragTracker
	d.SetEditMode(true)

	require.True(t, d.Begin(layout.NewEntry("CPU", 0, 0), 120))
	d.Move(500, 0)
	d.Cancel()
	_, _, moved := d.End()
	assert.False(t, moved)

	require.True(t, d.Begin(layout.NewEntry("CPU", 0, 0), 120))
	d.SetEditMode(false)
	assert.False(t, d.Active())
	assert.False(t, d.EditMode())
}

func TestScale_Box(t *testing.T) {
	s := DefaultScale()
	r := NewResolver(120)

	e := layout.NewEntry("CPU", 1, 2)
	e.SpanX = 2
	assert.Equal(t, Rect{Col: 20, Row: 12, Width: 40, Height: 6}, s.Box(r, e))

	tiny := NewResolver(50)
	box := Scale{UnitsPerColumn: 100, UnitsPerRow: 100}.Box(tiny, layout.NewEntry("x", 0, 0))
	assert.Equal(t, 3, box.Width)
	assert.Equal(t, 3, box.Height)
}

func TestScale_ZeroUsesDefaults(t *testing.T) {
	var s Scale
	assert.Equal(t, 20, s.Columns(120))
	assert.Equal(t, 6, s.Rows(120))
	assert.Equal(t, 12.0, s.UnitsX(2))
	assert.Equal(t, 40.0, s.UnitsY(2))
}

func TestScale_Hit(t *testing.T) {
	s := DefaultScale()
	r := NewResolver(120)
	entries := []layout.Entry{
		layout.NewEntry("A", 0, 0),
		layout.NewEntry("B", 1, 0),
		layout.NewEntry("C", 0, 0),
	}

	assert.Equal(t, 2, s.Hit(r, entries, 5, 2), "overlapping tiles: last drawn wins")
	assert.Equal(t, 1, s.Hit(r, entries, 25, 1))
	assert.Equal(t, -1, s.Hit(r, entries, 5, 20))
}

func TestRect_Contains(t *testing.T) {
	r := Rect{Col: 2, Row: 2, Width: 3, Height: 2}
	assert.True(t, r.Contains(2, 2))
	assert.True(t, r.Contains(4, 3))
	assert.False(t, r.Contains(5, 3))
	assert.False(t, r.Contains(2, 4))
}
