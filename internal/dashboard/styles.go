package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tilemon/internal/layout"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorGlassBg   = lipgloss.Color("#1C1C2A") // tile fill with blur on
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	EditModeStyle = lipgloss.NewStyle().
			Foreground(ColorDarkBg).
			Background(ColorAccent).
			Bold(true).
			Padding(0, 1)

	StatusConnectedStyle = lipgloss.NewStyle().
				Foreground(ColorHealthy)

	StatusConnectingStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	StatusInvalidStyle = lipgloss.NewStyle().
				Foreground(ColorCritical)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)
)

// Status glyphs
const (
	StatusConnectedGlyph  = "◉"
	StatusConnectingGlyph = "◐"
	StatusInvalidGlyph    = "◌"
)

// triangleBorder marks triangle tiles. Terminals cannot draw the shape, so
// slanted corners stand in for it.
var triangleBorder = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "╱",
	TopRight:    "╲",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// ShapeBorder returns the border drawn for a tile shape.
func ShapeBorder(s layout.Shape) lipgloss.Border {
	switch s {
	case layout.ShapeCircle:
		return lipgloss.RoundedBorder()
	case layout.ShapeTriangle:
		return triangleBorder
	default:
		return lipgloss.NormalBorder()
	}
}

// ARGBColor converts a stored color to a terminal color. Alpha is dropped.
func ARGBColor(c layout.ARGB) lipgloss.Color {
	return lipgloss.Color(c.RGBHex())
}

// tileStyle builds the box style for one tile. highlight marks the selected
// or dragged tile.
func tileStyle(e layout.Entry, width, height int, blur, highlight bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(ShapeBorder(e.Shape)).
		BorderForeground(ColorBorder).
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center)

	switch {
	case e.CustomColor != nil:
		s = s.Background(ARGBColor(*e.CustomColor)).BorderBackground(ARGBColor(*e.CustomColor))
	case blur:
		s = s.Background(ColorGlassBg).BorderBackground(ColorGlassBg)
	}

	if e.CustomTitleColor != nil {
		s = s.BorderForeground(ARGBColor(*e.CustomTitleColor))
	}
	if highlight {
		s = s.BorderForeground(ColorAccent)
	}
	return s
}

// textStyle picks emphasis from a text scale: large text is bold, small text
// is faint.
func textStyle(scale float64, color *layout.ARGB, fallback lipgloss.Color) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(fallback)
	if color != nil {
		s = s.Foreground(ARGBColor(*color))
	}
	switch {
	case scale >= 1.25:
		s = s.Bold(true)
	case scale < 0.75:
		s = s.Faint(true)
	}
	return s
}
