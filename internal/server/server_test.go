package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/tilemon/internal/logger"
	"github.com/rileyhilliard/tilemon/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(readings ...telemetry.Metric) Provider {
	return ProviderFunc(func(ctx context.Context) ([]telemetry.Metric, error) {
		return readings, nil
	})
}

func TestHandler_Data(t *testing.T) {
	log := logger.NewBufferLogger()
	srv := New(fixed(
		telemetry.Metric{ID: 0, Label: "CPU Temp", Value: "50 °C", Group: "CPU"},
		telemetry.Metric{ID: 1, Label: "Fan", Value: "900 RPM"},
	), ":0", log)

	req := httptest.NewRequest(http.MethodGet, "/api/data", nil)
	req.RemoteAddr = "192.168.1.20:51234"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, map[string]any{"Id": float64(0), "Label": "CPU Temp", "Value": "50 °C", "Sensor": "CPU"}, raw[0])

	msgs := log.Messages()
	require.NotEmpty(t, msgs)
	assert.Equal(t, "data requested from 192.168.1.20", msgs[0].Message)
}

func TestHandler_ProviderErrorServesEmptyList(t *testing.T) {
	log := logger.NewBufferLogger()
	srv := New(ProviderFunc(func(ctx context.Context) ([]telemetry.Metric, error) {
		return nil, stderrors.New("sensor dump missing")
	}), ":0", log)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.True(t, log.HasLevel("error"))
}

func TestHandler_OtherRoutes(t *testing.T) {
	srv := New(fixed(), ":0", logger.Noop())

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusNotFound},
		{http.MethodGet, "/api", http.StatusNotFound},
		{http.MethodGet, "/api/data/extra", http.StatusNotFound},
		{http.MethodPost, "/api/data", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(fixed(telemetry.Metric{Label: "CPU", Value: "1"}), "", logger.Noop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	src := telemetry.NewHTTPSource(time.Second)
	base, err := telemetry.NormalizeEndpoint(ln.Addr().String())
	require.NoError(t, err)

	var got []telemetry.Metric
	require.Eventually(t, func() bool {
		got, err = src.Fetch(context.Background(), telemetry.DataURL(base))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, []telemetry.Metric{{Label: "CPU", Value: "1"}}, got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_RunPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = New(fixed(), ln.Addr().String(), logger.Noop()).Run(context.Background())
	assert.Error(t, err)
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensors.reg")
	require.NoError(t, os.WriteFile(path, []byte(
		"\"Sensor1\"=\"GPU\"\n\"Label1\"=\"GPU Temp\"\n\"Value1\"=\"61 °C\"\n"+
			"\"Label0\"=\"CPU Temp\"\n\"Value0\"=\"48 °C\"\n"), 0644))

	got, err := NewFileProvider(path).Readings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []telemetry.Metric{
		{ID: 0, Label: "CPU Temp", Value: "48 °C"},
		{ID: 1, Label: "GPU Temp", Value: "61 °C", Group: "GPU"},
	}, got)

	_, err = NewFileProvider(filepath.Join(t.TempDir(), "missing")).Readings(context.Background())
	assert.Error(t, err)
}

func TestHostProvider(t *testing.T) {
	p := NewHostProvider()
	p.CPUSample = 10 * time.Millisecond

	got, err := p.Readings(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, got, "at least memory should be readable on any test host")

	seen := map[string]bool{}
	for i, m := range got {
		assert.Equal(t, i, m.ID)
		assert.NotEmpty(t, m.Label)
		assert.False(t, seen[m.Label], "duplicate label %q", m.Label)
		seen[m.Label] = true
	}
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5m", FormatUptime(5*time.Minute))
	assert.Equal(t, "2h 0m", FormatUptime(2*time.Hour))
	assert.Equal(t, "3d 4h 5m", FormatUptime(76*time.Hour+5*time.Minute))
}

func TestSensorLabel(t *testing.T) {
	assert.Equal(t, "Coretemp Core 0", sensorLabel("coretemp_core_0_input"))
	assert.Equal(t, "Acpitz", sensorLabel("acpitz_input"))
	assert.Equal(t, "Nvme Composite", sensorLabel("nvme-composite"))
	assert.Equal(t, "Sensor", sensorLabel("_input"))
}
