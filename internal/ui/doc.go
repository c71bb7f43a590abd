// Package ui provides the styled terminal output used by tilemon's
// non-interactive commands: tables for 'layout list', key/value blocks for
// 'display show', the 'serve' banner and the one-shot 'probe' spinner.
//
// The full-screen dashboard has its own styles in internal/dashboard and
// shares only the palette defined here.
//
// # Color Scheme
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (amber)  - Warnings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//
// Use DisableColors() to switch to monochrome output (for --no-color).
//
// # Spinner Usage
//
//	s := ui.NewSpinner("Fetching readings", os.Stderr)
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail()
//
// The spinner animates only on a terminal; elsewhere it prints the final
// line alone.
package ui
