package logger

import (
	"bytes"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestEnvLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		expectLog bool
	}{
		{"logs when TILEMON_DEBUG is set", "1", true},
		{"logs when TILEMON_DEBUG is any value", "true", true},
		{"silent when TILEMON_DEBUG is empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdLog(t)
			t.Setenv(DebugEnv, tt.envValue)

			NewEnvLogger("[test]").Debug("poll %s", "ok")

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[test] DEBUG: poll ok")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_Levels(t *testing.T) {
	buf := captureStdLog(t)
	l := NewEnvLogger("[poll]")

	l.Info("fetched %d readings", 12)
	l.Warn("slow response")
	l.Error("store write failed")

	out := buf.String()
	assert.Contains(t, out, "[poll] fetched 12 readings")
	assert.Contains(t, out, "[poll] WARN: slow response")
	assert.Contains(t, out, "[poll] ERROR: store write failed")
}

func TestNoop(t *testing.T) {
	buf := captureStdLog(t)
	l := Noop()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	assert.Empty(t, buf.String())
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()
	l.Info("hello %s", "world")
	l.Error("bad %d", 1)

	msgs := l.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, LogMessage{Level: "info", Message: "hello world"}, msgs[0])
	assert.True(t, l.HasLevel("error"))
	assert.False(t, l.HasLevel("warn"))

	l.Clear()
	assert.Empty(t, l.Messages())
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Debug("tick %d", i)
		}(i)
	}
	wg.Wait()
	assert.Len(t, l.Messages(), 20)
}

func TestDefault(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	buf := NewBufferLogger()
	SetDefault(buf)
	assert.Same(t, buf, Default())
	assert.Same(t, buf, OrDefault(nil))

	other := Noop()
	assert.Equal(t, other, OrDefault(other))
}
