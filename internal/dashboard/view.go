package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/grid"
	"github.com/rileyhilliard/tilemon/internal/telemetry"
)

// StatusText returns the status line wording for a connectivity token.
func StatusText(status string) string {
	switch status {
	case telemetry.StatusConnected:
		return "Connected"
	case errors.StatusInvalidEndpoint:
		return "Invalid address format"
	case errors.StatusConnecting:
		return "Connecting..."
	default:
		return "Disconnected"
	}
}

func renderStatus(status string) string {
	text := StatusText(status)
	switch status {
	case telemetry.StatusConnected:
		return StatusConnectedStyle.Render(StatusConnectedGlyph + " " + text)
	case errors.StatusInvalidEndpoint:
		return StatusInvalidStyle.Render(StatusInvalidGlyph + " " + text)
	default:
		return StatusConnectingStyle.Render(StatusConnectingGlyph + " " + text)
	}
}

// renderDashboard renders the header, the tile canvas and the footer.
func (m Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderCanvas())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("tilemon")

	parts := []string{title, m.address, renderStatus(m.status)}
	if m.drag.EditMode() {
		parts = append(parts, EditModeStyle.Render("EDIT"))
	}
	if bg := m.engine.Display().Background(); bg != "" {
		parts = append(parts, LabelStyle.Render("bg "+bg))
	}

	header := HeaderStyle.Render(strings.Join(parts, "  "))
	if m.width > 0 {
		header = lipgloss.PlaceHorizontal(m.width, lipgloss.Left, header)
	}
	return header
}

// canvasSize returns the rows and columns available to tiles.
func (m Model) canvasSize() (width, height int) {
	width, height = m.width, m.height-headerHeight-footerHeight
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 20
	}
	return width, height
}

// placedTiles lays out the visible tiles, shifted by the scroll offset. The
// dragged tile is moved to its snap preview and drawn last.
func (m Model) placedTiles() []placedTile {
	r := grid.NewResolver(m.engine.Display().CellSizeUnits)
	scale := m.cfg.Scale
	off := m.offset()

	var out []placedTile
	var dragged *placedTile
	for _, v := range m.engine.Visible() {
		e := v.Entry
		label := e.OriginalLabel
		if m.drag.Active() && m.drag.Label() == label {
			p := m.drag.Preview()
			e.GridX, e.GridY = p.X, p.Y
			v.Entry = e
			dragged = &placedTile{view: v, box: shiftRows(scale.Box(r, e), off), highlight: true}
			continue
		}
		out = append(out, placedTile{
			view:      v,
			box:       shiftRows(scale.Box(r, e), off),
			highlight: label == m.selected,
		})
	}
	if dragged != nil {
		out = append(out, *dragged)
	}
	return out
}

func (m Model) renderCanvas() string {
	width, height := m.canvasSize()
	tiles := m.placedTiles()
	if len(tiles) == 0 {
		msg := "Waiting for readings"
		if len(m.engine.Readings()) > 0 {
			msg = "All tiles are hidden. Press u to bring some back"
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, LabelStyle.Render(msg))
	}
	return composeCanvas(tiles, width, height, m.engine.Display().UseBlurEffect)
}

func (m Model) renderFooter() string {
	var line string
	switch {
	case m.engine.PersistErr() != nil:
		line = ErrorStyle.Render("✗ " + errors.Summary(m.engine.PersistErr()))
	case m.pollErr != nil:
		line = ErrorStyle.Render(errors.Summary(m.pollErr))
	case !m.lastUpdate.IsZero():
		line = LabelStyle.Render("updated " + m.lastUpdate.Format("15:04:05"))
	}
	if m.maxScroll() > 0 {
		_, h := m.canvasSize()
		off := m.offset()
		line += LabelStyle.Render(fmt.Sprintf("  rows %d-%d of %d", off+1, min(off+h, m.contentRows()), m.contentRows()))
	}
	return FooterStyle.Render(line) + "\n" + FooterStyle.Render(m.help.View(m.keys))
}

// renderConnect renders the endpoint prompt.
func (m Model) renderConnect() string {
	var lines []string
	lines = append(lines, PanelTitleStyle.Render("Connect to a telemetry endpoint"))
	lines = append(lines, LabelStyle.Render(fmt.Sprintf("Address or host:port (port %s is assumed)", telemetry.DefaultPort)))
	lines = append(lines, "")
	lines = append(lines, m.input.View())
	if m.pollErr != nil {
		lines = append(lines, "", ErrorStyle.Render(errors.Summary(m.pollErr)))
	}
	lines = append(lines, "")
	hint := "enter connect | esc quit"
	if m.loop != nil {
		hint = "enter connect | esc back"
	}
	lines = append(lines, FooterStyle.Render(hint))

	return m.center(PanelStyle.Render(strings.Join(lines, "\n")))
}

// renderEdit renders the tile edit form.
func (m Model) renderEdit() string {
	if m.form == nil {
		return ""
	}
	return m.center(PanelStyle.Render(m.form.View()))
}

// renderHidden renders the hidden tile list.
func (m Model) renderHidden() string {
	var lines []string
	lines = append(lines, PanelTitleStyle.Render("Hidden tiles"))

	hidden := m.engine.Hidden()
	if len(hidden) == 0 {
		lines = append(lines, LabelStyle.Render("Nothing is hidden"))
	}
	for i, v := range hidden {
		cursor := "  "
		style := LabelStyle
		if i == m.hiddenAt {
			cursor = "› "
			style = lipgloss.NewStyle().Foreground(ColorTextPrimary).Bold(true)
		}
		lines = append(lines, cursor+style.Render(fmt.Sprintf("%s  %s", v.Title(), v.Metric.Value)))
	}
	lines = append(lines, "", FooterStyle.Render("enter show | esc back"))

	return m.center(PanelStyle.Render(strings.Join(lines, "\n")))
}

func (m Model) center(box string) string {
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorDarkBg))
}
