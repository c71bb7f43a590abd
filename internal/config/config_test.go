package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "~/.config/tilemon/layout.db", cfg.Store)
	assert.Equal(t, 6.0, cfg.Scale.UnitsPerColumn)
	assert.Equal(t, 20.0, cfg.Scale.UnitsPerRow)
	assert.Equal(t, 8085, cfg.Serve.Port)
	assert.Equal(t, SourceHost, cfg.Serve.Source)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), ConfigFileName, `
endpoint: 192.168.1.5
interval: 5s
store: /tmp/tilemon-test.db
scale:
  units_per_column: 8
serve:
  port: 9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.5", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Equal(t, "/tmp/tilemon-test.db", cfg.Store)
	assert.Equal(t, 8.0, cfg.Scale.UnitsPerColumn)
	assert.Equal(t, 20.0, cfg.Scale.UnitsPerRow, "unset keys keep defaults")
	assert.Equal(t, 9000, cfg.Serve.Port)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), ConfigFileName, "endpoint: from-file\n")
	t.Setenv("TILEMON_ENDPOINT", "from-env:9000")
	t.Setenv("TILEMON_SERVE_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env:9000", cfg.Endpoint)
	assert.Equal(t, 9100, cfg.Serve.Port)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, cfg.Interval)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/tilemon/layout.db"), cfg.Store, "tilde expanded")
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	bad := writeFile(t, dir, "bad.yaml", "interval: [not, a, duration\n")
	_, err = Load(bad)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "custom.yaml", "endpoint: x\n")
		got, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ConfigFileName, "endpoint: x\n")
		t.Chdir(dir)

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(got))
	})

	t.Run("global config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Chdir(t.TempDir())

		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0o755))
		require.NoError(t, os.WriteFile(global, []byte("endpoint: x\n"), 0644))

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, got)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Chdir(t.TempDir())

		got, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"interval too short", func(c *Config) { c.Interval = 100 * time.Millisecond }, "too short"},
		{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }, "fetch_timeout"},
		{"empty store", func(c *Config) { c.Store = "" }, "store"},
		{"bad scale", func(c *Config) { c.Scale.UnitsPerRow = 0 }, "scale"},
		{"bad port", func(c *Config) { c.Serve.Port = 70000 }, "serve.port"},
		{"unknown source", func(c *Config) { c.Serve.Source = "wmi" }, "serve.source"},
		{"file source without file", func(c *Config) { c.Serve.Source = SourceFile }, "serve.file"},
		{"file source with file", func(c *Config) {
			c.Serve.Source = SourceFile
			c.Serve.File = "/tmp/sensors.reg"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandTilde(""))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "a/b"), ExpandTilde("~/a/b"))
	assert.Equal(t, "/abs/path", ExpandTilde("/abs/path"))
	assert.Equal(t, "~other/x", ExpandTilde("~other/x"))
}
