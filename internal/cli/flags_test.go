package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/layout"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		want    time.Duration
		wantErr string
	}{
		{"empty uses config", "", 0, ""},
		{"seconds", "5s", 5 * time.Second, ""},
		{"minimum", "500ms", 500 * time.Millisecond, ""},
		{"too short", "100ms", 0, "too short"},
		{"garbage", "soon", 0, "doesn't look like a valid interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInterval(tt.flag)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCell(t *testing.T) {
	n, err := parseCell("x", " 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"-1", "1.5", "a"} {
		_, err := parseCell("x", bad)
		assert.True(t, errors.IsCode(err, errors.ErrLayout), bad)
	}
}

func TestParseColorFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    *layout.ARGB
		wantErr bool
	}{
		{"none", nil, false},
		{"Default", nil, false},
		{"", nil, false},
		{"#FF1744", layout.ARGB(0xFFFF1744).Ptr(), false},
		{"80FFFFFF", layout.ARGB(0x80FFFFFF).Ptr(), false},
		{"red", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColorFlag("color", tt.in)
			if tt.wantErr {
				assert.ErrorContains(t, err, "Invalid --color")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseShapeFlag(t *testing.T) {
	s, err := parseShapeFlag("Circle")
	require.NoError(t, err)
	assert.Equal(t, layout.ShapeCircle, s)

	_, err = parseShapeFlag("hexagon")
	assert.True(t, errors.IsCode(err, errors.ErrLayout))
}
