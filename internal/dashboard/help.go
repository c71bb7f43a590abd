package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Width(10)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

// renderHelpOverlay renders a centered box listing every binding.
func (m Model) renderHelpOverlay() string {
	var lines []string
	lines = append(lines, PanelTitleStyle.Render("Keyboard Shortcuts"))

	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, helpKeyStyle.Render(h.Key)+helpDescStyle.Render(h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, LabelStyle.Render("Mouse: click a tile to edit it, drag in edit mode to move it"))
	lines = append(lines, LabelStyle.Render("Press ? to close"))

	return m.center(PanelStyle.Render(strings.Join(lines, "\n")))
}
