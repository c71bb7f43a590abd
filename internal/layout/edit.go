package layout

import (
	"fmt"

	"github.com/rileyhilliard/tilemon/internal/errors"
)

// EditFunc transforms one entry. It receives a clone and may modify it freely.
type EditFunc func(Entry) Entry

// Apply returns a copy of entries with the entry for label replaced by
// fn's result, clamped into range. The original label cannot be changed by
// fn. An unknown label returns an ErrLayout error and nil.
func Apply(entries []Entry, label string, fn EditFunc) ([]Entry, error) {
	idx := Find(entries, label)
	if idx < 0 {
		return nil, errors.New(errors.ErrLayout,
			fmt.Sprintf("No tile named '%s'", label),
			"Run 'tilemon layout list' to see the known tiles")
	}

	out := make([]Entry, len(entries))
	copy(out, entries)

	edited := fn(entries[idx].Clone()).Sanitize()
	edited.OriginalLabel = entries[idx].OriginalLabel
	out[idx] = edited
	return out, nil
}

// Find returns the index of the entry for label, or -1.
func Find(entries []Entry, label string) int {
	for i, e := range entries {
		if e.OriginalLabel == label {
			return i
		}
	}
	return -1
}

// Move places the tile at grid cell (x, y). Negative coordinates clamp to 0.
func Move(x, y int) EditFunc {
	return func(e Entry) Entry {
		e.GridX = x
		e.GridY = y
		return e
	}
}

// SetHidden hides or unhides the tile.
func SetHidden(hidden bool) EditFunc {
	return func(e Entry) Entry {
		e.Hidden = hidden
		return e
	}
}

// Rename sets the custom label. An empty name clears it.
func Rename(name string) EditFunc {
	return func(e Entry) Entry {
		if name == "" {
			e.CustomLabel = nil
		} else {
			e.CustomLabel = &name
		}
		return e
	}
}

// Colors groups the three customizable tile colors. A nil field clears that
// color back to the default.
type Colors struct {
	Background *ARGB
	Title      *ARGB
	Value      *ARGB
}

// SetColors replaces all three colors.
func SetColors(c Colors) EditFunc {
	return func(e Entry) Entry {
		e.CustomColor = c.Background.clone()
		e.CustomTitleColor = c.Title.clone()
		e.CustomValueColor = c.Value.clone()
		return e
	}
}

// SetScales sets the title and value text scales.
func SetScales(title, value float64) EditFunc {
	return func(e Entry) Entry {
		e.TitleScale = title
		e.ValueScale = value
		return e
	}
}

// SetShape sets the tile outline.
func SetShape(s Shape) EditFunc {
	return func(e Entry) Entry {
		e.Shape = s
		return e
	}
}

// SetSpan sets how many cells the tile covers in each direction.
func SetSpan(x, y int) EditFunc {
	return func(e Entry) Entry {
		e.SpanX = x
		e.SpanY = y
		return e
	}
}

// Replace swaps in a whole entry, as saved from the edit dialog. Grid
// position and the original label are kept from the stored entry.
func Replace(updated Entry) EditFunc {
	return func(e Entry) Entry {
		out := updated.Clone()
		out.GridX = e.GridX
		out.GridY = e.GridY
		return out
	}
}

// Chain applies several edits in order.
func Chain(fns ...EditFunc) EditFunc {
	return func(e Entry) Entry {
		for _, fn := range fns {
			e = fn(e)
		}
		return e
	}
}
