package dashboard

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/rileyhilliard/tilemon/internal/grid"
	"github.com/rileyhilliard/tilemon/internal/layout"
)

// placedTile is a tile view with the box it is drawn in.
type placedTile struct {
	view      layout.TileView
	box       grid.Rect
	highlight bool
}

// renderTile draws one tile as lines exactly box.Width wide.
func renderTile(t placedTile, blur bool) []string {
	e := t.view.Entry
	inner := max(t.box.Width-2, 1)

	title := ansi.Truncate(t.view.Title(), inner, "…")
	value := ansi.Truncate(t.view.Metric.Value, inner, "…")

	body := textStyle(e.TitleScale, e.CustomTitleColor, ColorTextSecondary).Render(title)
	if t.box.Height > 3 {
		body += "\n" + textStyle(e.ValueScale, e.CustomValueColor, ColorTextPrimary).Render(value)
	} else {
		// One inner row: value only, title lives in the border color.
		body = textStyle(e.ValueScale, e.CustomValueColor, ColorTextPrimary).Render(value)
	}

	out := tileStyle(e, t.box.Width, t.box.Height, blur, t.highlight).Render(body)
	return strings.Split(out, "\n")
}

// composeCanvas draws tiles in order onto a blank width x height canvas.
// Later tiles cover earlier ones. Anything outside the canvas is clipped.
func composeCanvas(tiles []placedTile, width, height int, blur bool) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	// Pad past the right edge so overlays anchored near it keep their
	// column, then clip at the end.
	padded := width
	for _, t := range tiles {
		padded = max(padded, t.box.Col+t.box.Width)
	}

	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", padded)
	}
	view := strings.Join(lines, "\n")

	for _, t := range tiles {
		view = spliceOverlay(view, renderTile(t, blur), t.box.Col, t.box.Row)
	}

	lines = strings.Split(view, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return strings.Join(lines, "\n")
}

// spliceOverlay writes overlay lines over view with the top-left corner at
// (anchorX, anchorY), keeping the view's text on both sides.
func spliceOverlay(view string, overlay []string, anchorX, anchorY int) string {
	if len(overlay) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlay[0])

	for i, line := range overlay {
		row := anchorY + i
		if row < 0 || row >= len(viewLines) {
			continue
		}
		base := viewLines[row]
		baseWidth := ansi.StringWidth(base)

		var b strings.Builder
		if anchorX > 0 {
			b.WriteString(ansi.Truncate(base, anchorX, ""))
		}
		b.WriteString("\x1b[0m")
		b.WriteString(line)
		b.WriteString("\x1b[0m")
		if end := anchorX + overlayWidth; end < baseWidth {
			b.WriteString(ansi.TruncateLeft(base, end, ""))
		}
		viewLines[row] = b.String()
	}

	return strings.Join(viewLines, "\n")
}
