// Package cli implements the tilemon command-line interface.
//
// Each Cobra command parses its flags and delegates to a plain function that
// takes an io.Writer and, where it needs the layout, a *layout.Engine. The
// functions are what the tests call; the commands only wire config, the
// store and the terminal to them.
//
// # Command Structure
//
//	tilemon monitor [address]      - Tile dashboard (full screen)
//	tilemon probe [address]        - Fetch readings once and print them
//	tilemon serve                  - Telemetry endpoint for this machine
//	tilemon layout list            - Saved tiles
//	tilemon layout hide|unhide     - Hide or show a tile
//	tilemon layout move            - Place a tile at a grid cell
//	tilemon layout edit            - Name, colors, scales, shape, span
//	tilemon layout export|import   - YAML out, YAML or JSON in
//	tilemon display show|set       - Cell size, blur, background
//	tilemon config init|set        - Config file
//	tilemon version
//
// # Sessions
//
// Commands that touch the layout open a session: config is loaded and
// validated, the SQLite store is opened (or an in-memory one with
// --ephemeral), and a layout.Engine loads the saved tiles. The engine is the
// only writer, so CLI edits follow the same clamping and persistence rules
// as edits made in the dashboard.
//
// # Flag Handling
//
// Global flags (--config, --store, --ephemeral, --json, --no-color) live on
// the root command. Edit commands only change what was passed: they check
// cmd.Flags().Changed rather than comparing against defaults.
//
// With --json, output and errors use JSONEnvelope.
package cli
