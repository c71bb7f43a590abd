package layout

import "github.com/rileyhilliard/tilemon/internal/telemetry"

// TileView pairs a reading with the entry that customizes it. Views are
// rebuilt on every pass and never stored.
type TileView struct {
	Metric telemetry.Metric
	Entry  Entry
}

// Title returns the label shown on the tile.
func (v TileView) Title() string {
	return v.Entry.DisplayLabel(v.Metric.Label)
}

// Result is the outcome of one reconciliation pass.
type Result struct {
	// Entries is the full entry list after discovery. It is a new slice
	// whenever Changed is true.
	Entries []Entry
	// Visible and Hidden hold views for entries that matched a reading,
	// in entry order.
	Visible []TileView
	Hidden  []TileView
	// Changed is true when new entries were appended and must be persisted.
	Changed bool
}

// Reconcile matches readings to entries by label.
//
// Every labelled reading without an entry gets a new default entry in
// column 0 on the row below the lowest existing tile. Readings without a
// label are skipped. When readings is empty the entries come back as they
// are and no views are produced. Neither input is modified.
func Reconcile(readings []telemetry.Metric, entries []Entry) Result {
	if len(readings) == 0 {
		return Result{Entries: entries}
	}

	out, changed := Discover(readings, entries)
	visible, hidden := BuildViews(readings, out)
	return Result{
		Entries: out,
		Visible: visible,
		Hidden:  hidden,
		Changed: changed,
	}
}

// Discover appends a default entry for every labelled reading that has none.
// It returns entries itself when nothing was added.
func Discover(readings []telemetry.Metric, entries []Entry) ([]Entry, bool) {
	known := make(map[string]struct{}, len(entries))
	maxRow := -1
	for _, e := range entries {
		known[e.OriginalLabel] = struct{}{}
		maxRow = max(maxRow, e.GridY)
	}

	out := entries
	changed := false
	for _, r := range readings {
		if !r.HasLabel() {
			continue
		}
		if _, ok := known[r.Label]; ok {
			continue
		}
		if !changed {
			out = make([]Entry, len(entries), len(entries)+1)
			copy(out, entries)
			changed = true
		}
		maxRow++
		out = append(out, NewEntry(r.Label, 0, maxRow))
		known[r.Label] = struct{}{}
	}
	return out, changed
}

// BuildViews pairs each entry with the first reading carrying its label and
// splits the result by visibility. Entries with no reading are left out.
func BuildViews(readings []telemetry.Metric, entries []Entry) (visible, hidden []TileView) {
	first := make(map[string]telemetry.Metric, len(readings))
	for _, r := range readings {
		if !r.HasLabel() {
			continue
		}
		if _, seen := first[r.Label]; !seen {
			first[r.Label] = r
		}
	}

	visible = []TileView{}
	hidden = []TileView{}
	for _, e := range entries {
		m, ok := first[e.OriginalLabel]
		if !ok {
			continue
		}
		v := TileView{Metric: m, Entry: e.Clone()}
		if e.Hidden {
			hidden = append(hidden, v)
		} else {
			visible = append(visible, v)
		}
	}
	return visible, hidden
}
