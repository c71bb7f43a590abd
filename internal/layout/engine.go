package layout

import (
	"fmt"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/logger"
	"github.com/rileyhilliard/tilemon/internal/telemetry"
)

// Store persists the entry list and display config. Every save carries the
// complete value.
type Store interface {
	LoadEntries() ([]Entry, error)
	SaveEntries([]Entry) error
	LoadDisplay() (DisplayConfig, error)
	SaveDisplay(DisplayConfig) error
}

// Engine owns the entry list for one dashboard session. It is the only
// writer to the store and is not safe for concurrent use; callers run it from
// a single goroutine (the dashboard's update loop or a CLI command).
//
// A failed save leaves the in-memory state in place. The error is returned
// and kept in PersistErr until a later save succeeds.
type Engine struct {
	store Store
	log   logger.Logger

	entries  []Entry
	display  DisplayConfig
	readings []telemetry.Metric
	visible  []TileView
	hidden   []TileView

	persistErr error
}

// NewEngine creates an engine backed by store. Call Load before use.
func NewEngine(store Store, log logger.Logger) *Engine {
	return &Engine{
		store:   store,
		log:     logger.OrDefault(log),
		display: DefaultDisplayConfig(),
	}
}

// Load reads the saved entries and display config. A read failure leaves the
// defaults in place and is returned so the caller can surface it.
func (e *Engine) Load() error {
	entries, err := e.store.LoadEntries()
	if err != nil {
		return persistError(err, "Failed to load saved tiles")
	}
	display, err := e.store.LoadDisplay()
	if err != nil {
		return persistError(err, "Failed to load display settings")
	}

	e.entries = make([]Entry, 0, len(entries))
	for _, en := range entries {
		e.entries = append(e.entries, en.Sanitize())
	}
	e.display = display.Sanitize()
	e.log.Debug("loaded %d tiles, cell size %d", len(e.entries), e.display.CellSizeUnits)
	return nil
}

// Observe runs one reconciliation pass over a fresh reading set. New entries
// are saved before the views are rebuilt. An empty set keeps the previous
// readings and views on screen.
func (e *Engine) Observe(readings []telemetry.Metric) error {
	if len(readings) == 0 {
		return nil
	}
	e.readings = readings

	var err error
	entries, changed := Discover(readings, e.entries)
	if changed {
		e.log.Info("discovered %d new tiles", len(entries)-len(e.entries))
		e.entries = entries
		err = e.saveEntries()
	}

	e.rebuild()
	return err
}

// Edit applies fn to the entry for label and saves the full list.
// An unknown label changes nothing and returns an ErrLayout error.
func (e *Engine) Edit(label string, fn EditFunc) error {
	entries, err := Apply(e.entries, label, fn)
	if err != nil {
		return err
	}
	e.entries = entries
	err = e.saveEntries()
	e.rebuild()
	return err
}

// ReplaceAll swaps the whole entry list, as done by an import. Labels must be
// unique and non-empty.
func (e *Engine) ReplaceAll(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for i, en := range entries {
		if en.OriginalLabel == "" {
			return errors.New(errors.ErrLayout,
				fmt.Sprintf("Tile #%d has no original label", i+1), "")
		}
		if _, dup := seen[en.OriginalLabel]; dup {
			return errors.New(errors.ErrLayout,
				fmt.Sprintf("Tile '%s' appears more than once", en.OriginalLabel),
				"Each tile label may appear only once")
		}
		seen[en.OriginalLabel] = struct{}{}
		out = append(out, en.Clone().Sanitize())
	}

	e.entries = out
	err := e.saveEntries()
	e.rebuild()
	return err
}

// SetDisplay replaces the whole display config, as done by an import.
func (e *Engine) SetDisplay(d DisplayConfig) error {
	return e.saveDisplay(d)
}

// SetCellSize sets the grid cell size, clamped into range.
func (e *Engine) SetCellSize(units int) error {
	d := e.display
	d.CellSizeUnits = clampInt(units, MinCellSize, MaxCellSize)
	return e.saveDisplay(d)
}

// ToggleBlur flips the background blur setting.
func (e *Engine) ToggleBlur() error {
	d := e.display
	d.UseBlurEffect = !d.UseBlurEffect
	return e.saveDisplay(d)
}

// SetBlur sets the background blur setting.
func (e *Engine) SetBlur(on bool) error {
	d := e.display
	d.UseBlurEffect = on
	return e.saveDisplay(d)
}

// SetBackground sets the background image reference. An empty ref clears it.
func (e *Engine) SetBackground(ref string) error {
	if ref == "" {
		return e.ClearBackground()
	}
	d := e.display
	d.BackgroundImageRef = &ref
	return e.saveDisplay(d)
}

// ClearBackground removes the background image and saves the display config.
func (e *Engine) ClearBackground() error {
	d := e.display
	d.BackgroundImageRef = nil
	return e.saveDisplay(d)
}

// Entries returns a copy of the current entry list.
func (e *Engine) Entries() []Entry {
	out := make([]Entry, len(e.entries))
	for i, en := range e.entries {
		out[i] = en.Clone()
	}
	return out
}

// Entry returns the entry for label.
func (e *Engine) Entry(label string) (Entry, bool) {
	idx := Find(e.entries, label)
	if idx < 0 {
		return Entry{}, false
	}
	return e.entries[idx].Clone(), true
}

// Visible returns views of tiles that are shown.
func (e *Engine) Visible() []TileView { return e.visible }

// Hidden returns views of hidden tiles that still have a live reading.
func (e *Engine) Hidden() []TileView { return e.hidden }

// Display returns the current display config.
func (e *Engine) Display() DisplayConfig { return e.display }

// Readings returns the reading set the views were built from.
func (e *Engine) Readings() []telemetry.Metric { return e.readings }

// PersistErr returns the last save failure, or nil once a save succeeds.
func (e *Engine) PersistErr() error { return e.persistErr }

func (e *Engine) rebuild() {
	if len(e.readings) == 0 {
		e.visible, e.hidden = nil, nil
		return
	}
	e.visible, e.hidden = BuildViews(e.readings, e.entries)
}

func (e *Engine) saveEntries() error {
	if err := e.store.SaveEntries(e.entries); err != nil {
		e.persistErr = persistError(err, "Failed to save tile layout")
		e.log.Error("save tiles: %v", err)
		return e.persistErr
	}
	e.persistErr = nil
	return nil
}

func (e *Engine) saveDisplay(d DisplayConfig) error {
	e.display = d.Sanitize()
	if err := e.store.SaveDisplay(e.display); err != nil {
		e.persistErr = persistError(err, "Failed to save display settings")
		e.log.Error("save display: %v", err)
		return e.persistErr
	}
	e.persistErr = nil
	return nil
}

func persistError(err error, message string) error {
	if errors.IsCode(err, errors.ErrPersist) {
		return err
	}
	return errors.WrapWithCode(err, errors.ErrPersist, message, "Check that the layout store is writable")
}
