package layout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Shape is the outline a tile is drawn with.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeCircle
	ShapeTriangle
)

// Shapes lists every shape in display order.
var Shapes = []Shape{ShapeSquare, ShapeCircle, ShapeTriangle}

// String returns the stored name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "CIRCLE"
	case ShapeTriangle:
		return "TRIANGLE"
	default:
		return "SQUARE"
	}
}

// ParseShape accepts a shape name in any case.
func ParseShape(name string) (Shape, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SQUARE":
		return ShapeSquare, nil
	case "CIRCLE":
		return ShapeCircle, nil
	case "TRIANGLE":
		return ShapeTriangle, nil
	}
	return ShapeSquare, fmt.Errorf("unknown shape %q (want square, circle or triangle)", name)
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a stored shape. Unknown names fall back to square so
// a blob written by a newer version still loads.
func (s *Shape) UnmarshalText(b []byte) error {
	parsed, err := ParseShape(string(b))
	if err != nil {
		parsed = ShapeSquare
	}
	*s = parsed
	return nil
}

func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON treats null like a missing shape.
func (s *Shape) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ShapeSquare
		return nil
	}
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	return s.UnmarshalText([]byte(name))
}

// Clamp ranges for user-editable fields.
const (
	MinSpan       = 1
	MaxSpan       = 4
	MinTitleScale = 0.5
	MaxTitleScale = 2.0
	MinValueScale = 0.5
	MaxValueScale = 2.5
)

// Entry is the persisted customization of one tile. OriginalLabel is the
// key and never changes once the entry exists.
//
// The JSON names match the stored tile_configs blobs.
type Entry struct {
	OriginalLabel    string  `json:"originalLabel" yaml:"original_label"`
	CustomLabel      *string `json:"customLabel,omitempty" yaml:"custom_label,omitempty"`
	CustomColor      *ARGB   `json:"customColor,omitempty" yaml:"color,omitempty"`
	CustomTitleColor *ARGB   `json:"customTitleColor,omitempty" yaml:"title_color,omitempty"`
	CustomValueColor *ARGB   `json:"customValueColor,omitempty" yaml:"value_color,omitempty"`
	TitleScale       float64 `json:"titleSizeScale" yaml:"title_scale"`
	ValueScale       float64 `json:"valueSizeScale" yaml:"value_scale"`
	Hidden           bool    `json:"isHidden" yaml:"hidden"`
	GridX            int     `json:"gridX" yaml:"x"`
	GridY            int     `json:"gridY" yaml:"y"`
	SpanX            int     `json:"spanX" yaml:"span_x"`
	SpanY            int     `json:"spanY" yaml:"span_y"`
	Shape            Shape   `json:"shape" yaml:"shape"`
}

// NewEntry returns an entry with default customization placed at (x, y).
func NewEntry(label string, x, y int) Entry {
	return Entry{
		OriginalLabel: label,
		TitleScale:    1,
		ValueScale:    1,
		GridX:         x,
		GridY:         y,
		SpanX:         1,
		SpanY:         1,
		Shape:         ShapeSquare,
	}
}

// UnmarshalJSON fills defaults for fields missing from older blobs.
// A null shape decodes as square.
func (e *Entry) UnmarshalJSON(b []byte) error {
	type plain Entry
	aux := plain(NewEntry("", 0, 0))
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Entry(aux)
	return nil
}

// DisplayLabel returns the custom label when set, otherwise fallback.
func (e Entry) DisplayLabel(fallback string) string {
	if e.CustomLabel != nil && *e.CustomLabel != "" {
		return *e.CustomLabel
	}
	return fallback
}

// Clone returns a copy that shares no pointers with e.
func (e Entry) Clone() Entry {
	out := e
	if e.CustomLabel != nil {
		v := *e.CustomLabel
		out.CustomLabel = &v
	}
	out.CustomColor = e.CustomColor.clone()
	out.CustomTitleColor = e.CustomTitleColor.clone()
	out.CustomValueColor = e.CustomValueColor.clone()
	return out
}

// Sanitize clamps every field to its allowed range. Zero scales and spans,
// as left by a hand-written import, become defaults.
func (e Entry) Sanitize() Entry {
	if e.TitleScale == 0 {
		e.TitleScale = 1
	}
	if e.ValueScale == 0 {
		e.ValueScale = 1
	}
	e.TitleScale = clampFloat(e.TitleScale, MinTitleScale, MaxTitleScale)
	e.ValueScale = clampFloat(e.ValueScale, MinValueScale, MaxValueScale)
	e.SpanX = clampInt(e.SpanX, MinSpan, MaxSpan)
	e.SpanY = clampInt(e.SpanY, MinSpan, MaxSpan)
	e.GridX = max(e.GridX, 0)
	e.GridY = max(e.GridY, 0)
	return e
}

// Display config defaults and bounds.
const (
	DefaultCellSize = 120
	MinCellSize     = 50
	MaxCellSize     = 250
)

// DisplayConfig holds dashboard-wide settings, stored as app_config.
type DisplayConfig struct {
	BackgroundImageRef *string `json:"backgroundImageUri" yaml:"background,omitempty"`
	UseBlurEffect      bool    `json:"useGlassEffect" yaml:"blur"`
	CellSizeUnits      int     `json:"gridSizeDp" yaml:"cell_size"`
}

// DefaultDisplayConfig returns the settings used before anything is saved.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		UseBlurEffect: true,
		CellSizeUnits: DefaultCellSize,
	}
}

// UnmarshalJSON fills defaults for missing fields and clamps the cell size.
func (d *DisplayConfig) UnmarshalJSON(b []byte) error {
	type plain DisplayConfig
	aux := plain(DefaultDisplayConfig())
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*d = DisplayConfig(aux).Sanitize()
	return nil
}

// Sanitize clamps the cell size into range.
func (d DisplayConfig) Sanitize() DisplayConfig {
	if d.CellSizeUnits == 0 {
		d.CellSizeUnits = DefaultCellSize
	}
	d.CellSizeUnits = clampInt(d.CellSizeUnits, MinCellSize, MaxCellSize)
	if d.BackgroundImageRef != nil && *d.BackgroundImageRef == "" {
		d.BackgroundImageRef = nil
	}
	return d
}

// Background returns the background reference or "".
func (d DisplayConfig) Background() string {
	if d.BackgroundImageRef == nil {
		return ""
	}
	return *d.BackgroundImageRef
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampFloat(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
