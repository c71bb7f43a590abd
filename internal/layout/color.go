package layout

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ARGB is a packed 0xAARRGGBB color.
//
// Stored blobs hold colors as signed 32-bit integers (opaque white is -1), so
// JSON encodes that way and accepts either sign on decode. YAML and the CLI
// use the #AARRGGBB form.
type ARGB uint32

// Preset swatches offered by the edit form.
var Swatches = []struct {
	Name  string
	Color ARGB
}{
	{"White", 0xFFFFFFFF},
	{"Red", 0xFFFF1744},
	{"Blue", 0xFF00B0FF},
	{"Green", 0xFF00E676},
	{"Yellow", 0xFFFFEA00},
}

// ParseARGB parses #RRGGBB (opaque) or #AARRGGBB. The leading # is optional.
func ParseARGB(s string) (ARGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 6:
		hex = "FF" + hex
	case 8:
	default:
		return 0, fmt.Errorf("invalid color %q (want #RRGGBB or #AARRGGBB)", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q (want #RRGGBB or #AARRGGBB)", s)
	}
	return ARGB(v), nil
}

// RGBHex returns #RRGGBB, dropping alpha. Terminals have no alpha channel.
func (c ARGB) RGBHex() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// Alpha returns the alpha channel.
func (c ARGB) Alpha() uint8 {
	return uint8(c >> 24)
}

func (c ARGB) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// Ptr returns a pointer to a copy of c.
func (c ARGB) Ptr() *ARGB {
	return &c
}

func (c *ARGB) clone() *ARGB {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

func (c ARGB) MarshalJSON() ([]byte, error) {
	return json.Marshal(int32(c))
}

func (c *ARGB) UnmarshalJSON(b []byte) error {
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("color must be an integer: %w", err)
	}
	if n < -1<<31 || n > 1<<32-1 {
		return fmt.Errorf("color %d out of 32-bit range", n)
	}
	*c = ARGB(uint32(n))
	return nil
}

func (c ARGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ARGB) UnmarshalText(b []byte) error {
	v, err := ParseARGB(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
