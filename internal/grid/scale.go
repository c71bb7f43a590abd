package grid

import (
	"math"

	"github.com/rileyhilliard/tilemon/internal/layout"
)

// Default terminal scale. A 120-unit cell becomes a 20x6 character box,
// which looks roughly square in most terminal fonts.
const (
	DefaultUnitsPerColumn = 6
	DefaultUnitsPerRow    = 20
)

// Scale converts display units to terminal cells.
type Scale struct {
	UnitsPerColumn float64
	UnitsPerRow    float64
}

// DefaultScale returns the default terminal scale.
func DefaultScale() Scale {
	return Scale{UnitsPerColumn: DefaultUnitsPerColumn, UnitsPerRow: DefaultUnitsPerRow}
}

func (s Scale) orDefault() Scale {
	if s.UnitsPerColumn <= 0 {
		s.UnitsPerColumn = DefaultUnitsPerColumn
	}
	if s.UnitsPerRow <= 0 {
		s.UnitsPerRow = DefaultUnitsPerRow
	}
	return s
}

// Columns converts a horizontal distance in units to terminal columns.
func (s Scale) Columns(units int) int {
	s = s.orDefault()
	return int(math.Round(float64(units) / s.UnitsPerColumn))
}

// Rows converts a vertical distance in units to terminal rows.
func (s Scale) Rows(units int) int {
	s = s.orDefault()
	return int(math.Round(float64(units) / s.UnitsPerRow))
}

// UnitsX converts a column delta back into display units.
func (s Scale) UnitsX(cols int) float64 {
	return float64(cols) * s.orDefault().UnitsPerColumn
}

// UnitsY converts a row delta back into display units.
func (s Scale) UnitsY(rows int) float64 {
	return float64(rows) * s.orDefault().UnitsPerRow
}

// Rect is a box in terminal cells.
type Rect struct {
	Col, Row      int
	Width, Height int
}

// Contains reports whether (col, row) falls inside r.
func (r Rect) Contains(col, row int) bool {
	return col >= r.Col && col < r.Col+r.Width && row >= r.Row && row < r.Row+r.Height
}

// Box returns where e is drawn, in terminal cells. Boxes are at least 3x3
// so a border always fits.
func (s Scale) Box(r Resolver, e layout.Entry) Rect {
	x, y := r.PixelOffset(e)
	w, h := r.FootprintSize(e)
	return Rect{
		Col:    s.Columns(x),
		Row:    s.Rows(y),
		Width:  max(s.Columns(w), 3),
		Height: max(s.Rows(h), 3),
	}
}

// Hit returns the index of the topmost entry whose box contains (col, row),
// or -1. Later entries are drawn over earlier ones, so the search runs
// backwards.
func (s Scale) Hit(r Resolver, entries []layout.Entry, col, row int) int {
	for i := len(entries) - 1; i >= 0; i-- {
		if s.Box(r, entries[i]).Contains(col, row) {
			return i
		}
	}
	return -1
}
