package cli

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"dev", "dev"},
		{"", ""},
		{"1.2.0", "v1.2.0"},
		{"v1.2.0", "v1.2.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVersion(tt.in), tt.in)
	}
}

func TestPrintVersion(t *testing.T) {
	oldV, oldC, oldD := version, commit, date
	t.Cleanup(func() { SetVersionInfo(oldV, oldC, oldD) })
	SetVersionInfo("0.3.1", "abc123", "2026-01-02")

	var buf bytes.Buffer
	printVersion(&buf, true)
	assert.Equal(t, "0.3.1\n", buf.String())

	buf.Reset()
	printVersion(&buf, false)
	out := buf.String()
	assert.Contains(t, out, "tilemon v0.3.1")
	assert.Contains(t, out, "commit: abc123")
	assert.Contains(t, out, "built: 2026-01-02")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}
