package dashboard

import "github.com/rileyhilliard/tilemon/internal/grid"

// wheelStep is how many rows one mouse wheel notch scrolls.
const wheelStep = 3

// contentRows is the height of the tile grid in terminal rows, with one empty
// cell below the lowest tile to drop onto.
func (m Model) contentRows() int {
	r := m.resolver()
	bottom := 0
	for _, v := range m.engine.Visible() {
		box := m.cfg.Scale.Box(r, v.Entry)
		bottom = max(bottom, box.Row+box.Height)
	}
	if bottom == 0 {
		return 0
	}
	return bottom + m.cfg.Scale.Rows(m.engine.Display().CellSizeUnits)
}

func (m Model) maxScroll() int {
	_, h := m.canvasSize()
	return max(m.contentRows()-h, 0)
}

// offset returns the scroll position clamped to the current content.
func (m Model) offset() int {
	return min(max(m.scroll, 0), m.maxScroll())
}

func (m *Model) scrollBy(rows int) {
	m.scroll = min(max(m.offset()+rows, 0), m.maxScroll())
}

// revealSelected scrolls just enough to bring the selected tile on screen.
func (m *Model) revealSelected() {
	e, ok := m.engine.Entry(m.selected)
	if !ok || m.selected == "" {
		return
	}
	box := m.cfg.Scale.Box(m.resolver(), e)
	_, h := m.canvasSize()
	off := m.offset()
	switch {
	case box.Row < off:
		off = box.Row
	case box.Row+box.Height > off+h:
		off = box.Row + box.Height - h
	}
	m.scroll = min(max(off, 0), m.maxScroll())
}

// shiftRows moves a grid box up by the scroll offset into canvas rows.
func shiftRows(box grid.Rect, off int) grid.Rect {
	box.Row -= off
	return box
}
