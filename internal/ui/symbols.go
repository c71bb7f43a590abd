package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Reading fetched, value saved
	SymbolFail     = "✗" // Operation failed
	SymbolPending  = "○" // Not started
	SymbolComplete = "●" // Done
	SymbolSkipped  = "⊘" // Skipped
	SymbolWarning  = "⚠"
	SymbolHidden   = "◌" // Tile is hidden
)
