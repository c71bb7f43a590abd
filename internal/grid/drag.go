package grid

import "github.com/rileyhilliard/tilemon/internal/layout"

// Action is what a gesture asks the dashboard to do.
type Action int

const (
	ActionNone Action = iota
	ActionEdit
)

// Placement is a grid cell.
type Placement struct {
	X, Y int
}

// DragTracker follows one drag gesture at a time. Drags only start while edit
// mode is on; a tap always asks for the tile's edit dialog.
type DragTracker struct {
	editMode bool
	active   bool
	entry    layout.Entry
	resolver Resolver
	dx, dy   float64
}

// SetEditMode turns drag support on or off. Turning it off drops any drag in
// progress.
func (d *DragTracker) SetEditMode(on bool) {
	d.editMode = on
	if !on {
		d.Cancel()
	}
}

// EditMode reports whether drags are enabled.
func (d *DragTracker) EditMode() bool {
	return d.editMode
}

// Begin starts dragging entry on a grid of the given cell size. It returns
// false, and does nothing, outside edit mode.
func (d *DragTracker) Begin(entry layout.Entry, cell int) bool {
	if !d.editMode {
		return false
	}
	d.active = true
	d.entry = entry
	d.resolver = NewResolver(cell)
	d.dx, d.dy = 0, 0
	return true
}

// Move adds a pointer delta in display units.
func (d *DragTracker) Move(dx, dy float64) {
	if !d.active {
		return
	}
	d.dx += dx
	d.dy += dy
}

// End finishes the drag and returns the dragged tile's label and snapped
// cell. moved is false when there was no drag or the tile lands where it
// started, in which case nothing should be written.
func (d *DragTracker) End() (label string, p Placement, moved bool) {
	if !d.active {
		return "", Placement{}, false
	}
	p = d.Preview()
	label = d.entry.OriginalLabel
	moved = p.X != d.entry.GridX || p.Y != d.entry.GridY
	d.Cancel()
	return label, p, moved
}

// Cancel discards the drag in progress.
func (d *DragTracker) Cancel() {
	d.active = false
	d.entry = layout.Entry{}
	d.dx, d.dy = 0, 0
}

// Tap reports the action for a tap on a tile.
func (d *DragTracker) Tap() Action {
	return ActionEdit
}

// Active reports whether a drag is in progress.
func (d *DragTracker) Active() bool {
	return d.active
}

// Label returns the label of the tile being dragged, or "".
func (d *DragTracker) Label() string {
	if !d.active {
		return ""
	}
	return d.entry.OriginalLabel
}

// Delta returns the accumulated pointer delta in display units.
func (d *DragTracker) Delta() (dx, dy float64) {
	return d.dx, d.dy
}

// Preview returns the cell the tile would land on if released now.
func (d *DragTracker) Preview() Placement {
	if !d.active {
		return Placement{}
	}
	x, y := d.resolver.PixelOffset(d.entry)
	gx, gy := d.resolver.Snap(x, y, d.dx, d.dy)
	return Placement{X: gx, Y: gy}
}
