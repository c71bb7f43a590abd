package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/tilemon/internal/grid"
	"github.com/rileyhilliard/tilemon/internal/layout"
)

// mouseState tracks one press-move-release sequence on the canvas.
type mouseState struct {
	pressed bool
	label   string
	lastX   int
	lastY   int
	moved   bool
}

func (m Model) resolver() grid.Resolver {
	return grid.NewResolver(m.engine.Display().CellSizeUnits)
}

// tileAt returns the entry under a screen position, allowing for the scroll
// offset.
func (m Model) tileAt(x, y int) (layout.Entry, bool) {
	tiles := m.engine.Visible()
	entries := make([]layout.Entry, len(tiles))
	for i, t := range tiles {
		entries[i] = t.Entry
	}
	idx := m.cfg.Scale.Hit(m.resolver(), entries, x, y-headerHeight+m.offset())
	if idx < 0 {
		return layout.Entry{}, false
	}
	return entries[idx], true
}

// handleMouse turns left-button gestures into drags and taps. A release
// without any motion is a tap and opens the editor. In edit mode a drag
// moves the tile to the snapped cell when released.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-wheelStep)
			return nil
		case tea.MouseButtonWheelDown:
			m.scrollBy(wheelStep)
			return nil
		}
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		e, ok := m.tileAt(msg.X, msg.Y)
		if !ok {
			m.mouse = mouseState{}
			return nil
		}
		m.selected = e.OriginalLabel
		m.mouse = mouseState{pressed: true, label: e.OriginalLabel, lastX: msg.X, lastY: msg.Y}
		m.drag.Begin(e, m.engine.Display().CellSizeUnits)

	case tea.MouseActionMotion:
		m.trackMotion(msg.X, msg.Y)

	case tea.MouseActionRelease:
		if !m.mouse.pressed {
			return nil
		}
		m.trackMotion(msg.X, msg.Y)
		state := m.mouse
		m.mouse = mouseState{}

		if m.drag.Active() {
			label, p, moved := m.drag.End()
			if moved {
				m.editTile(label, layout.Move(p.X, p.Y))
				return nil
			}
		}
		if !state.moved && m.drag.Tap() == grid.ActionEdit {
			return m.openEditor(state.label)
		}
	}
	return nil
}

// trackMotion feeds pointer movement since the last event to the drag.
func (m *Model) trackMotion(x, y int) {
	if !m.mouse.pressed {
		return
	}
	dx, dy := x-m.mouse.lastX, y-m.mouse.lastY
	if dx == 0 && dy == 0 {
		return
	}
	m.mouse.moved = true
	m.mouse.lastX, m.mouse.lastY = x, y
	m.drag.Move(m.cfg.Scale.UnitsX(dx), m.cfg.Scale.UnitsY(dy))
}
