// Package dashboard implements the terminal tile dashboard for live sensor
// readings.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: the layout engine, the polling session, the current screen
//   - Update: keystrokes, mouse gestures, poll results
//   - View: the tile canvas, or the connect, edit and hidden-tile screens
//
// # Message Flow
//
// Polling runs on its own goroutine inside a telemetry.Loop:
//
//  1. connect starts (or restarts) the loop and arms waitForUpdate
//  2. updateMsg arrives with one poll result and the session tag it came from
//  3. results from an older tag are dropped; current ones go through
//     layout.Engine.Observe, which saves new tiles before views are rebuilt
//  4. waitForUpdate is re-armed for the next result
//
// User edits (drag end, form save, hide and unhide) run in Update too, so
// they never interleave with a reconciliation pass.
//
// # Tiles
//
// Each tile is drawn as a lipgloss box sized from its grid span and the
// configured cell size, then spliced onto the canvas. Later tiles cover
// earlier ones; overlaps are allowed. Circle and triangle tiles get their
// own border styles.
//
// # Keyboard and Mouse
//
//	tab / S-tab   - Select next / previous tile
//	enter         - Edit selected tile
//	e             - Toggle edit mode
//	arrows, hjkl  - Move selected tile (edit mode)
//	pgup / pgdn   - Scroll the grid (also the mouse wheel)
//	x             - Hide selected tile (edit mode)
//	u             - Hidden tile list
//	+ / -         - Grow / shrink the grid cell size
//	b             - Toggle the glass fill
//	c             - Change endpoint
//	d             - Disconnect
//	?             - Help
//	q, Ctrl+C     - Quit
//
// Clicking a tile opens its editor. In edit mode, dragging a tile moves it
// to the nearest grid cell on release.
package dashboard
