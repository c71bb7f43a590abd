// Package grid maps tile grid cells to display units and back.
//
// Display units are the abstract pixels the layout is measured in: a tile at
// grid cell (x, y) sits at (x*cell, y*cell) units. Scale converts units into
// terminal columns and rows so the dashboard can draw and hit-test tiles.
package grid

import (
	"math"

	"github.com/rileyhilliard/tilemon/internal/layout"
)

// Resolver converts between grid cells and display units for one cell size.
type Resolver struct {
	Cell int
}

// NewResolver creates a resolver, clamping cell into the allowed range.
func NewResolver(cell int) Resolver {
	return Resolver{Cell: min(max(cell, layout.MinCellSize), layout.MaxCellSize)}
}

// PixelOffset returns the top-left corner of e in display units.
func (r Resolver) PixelOffset(e layout.Entry) (x, y int) {
	return e.GridX * r.Cell, e.GridY * r.Cell
}

// FootprintSize returns the size of e in display units. Spans below one count
// as one.
func (r Resolver) FootprintSize(e layout.Entry) (w, h int) {
	return max(e.SpanX, 1) * r.Cell, max(e.SpanY, 1) * r.Cell
}

// Snap returns the grid cell nearest to a committed offset moved by delta.
// Halves round away from zero and results clamp to zero.
func (r Resolver) Snap(committedX, committedY int, dx, dy float64) (gx, gy int) {
	return r.snapAxis(float64(committedX) + dx), r.snapAxis(float64(committedY) + dy)
}

func (r Resolver) snapAxis(v float64) int {
	if r.Cell <= 0 {
		return 0
	}
	return max(int(math.Round(v/float64(r.Cell))), 0)
}
