package config

import (
	"path/filepath"
	"time"
)

// Config is the tilemon configuration, read from tilemon.yaml and TILEMON_*
// environment variables.
type Config struct {
	// Endpoint is the telemetry server address. Empty means use the address
	// saved in the layout store, or prompt.
	Endpoint     string        `mapstructure:"endpoint" yaml:"endpoint"`
	Interval     time.Duration `mapstructure:"interval" yaml:"interval"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`
	Store        string        `mapstructure:"store" yaml:"store"`
	LogFile      string        `mapstructure:"log_file" yaml:"log_file"`
	Scale        ScaleConfig   `mapstructure:"scale" yaml:"scale"`
	Serve        ServeConfig   `mapstructure:"serve" yaml:"serve"`
}

// ScaleConfig maps display units to terminal cells.
type ScaleConfig struct {
	UnitsPerColumn float64 `mapstructure:"units_per_column" yaml:"units_per_column"`
	UnitsPerRow    float64 `mapstructure:"units_per_row" yaml:"units_per_row"`
}

// ServeConfig configures 'tilemon serve'.
type ServeConfig struct {
	Port   int    `mapstructure:"port" yaml:"port"`
	Source string `mapstructure:"source" yaml:"source"` // host or file
	File   string `mapstructure:"file" yaml:"file"`
}

// Serve sources.
const (
	SourceHost = "host"
	SourceFile = "file"
)

// Defaults.
const (
	DefaultInterval     = 2 * time.Second
	MinInterval         = 500 * time.Millisecond
	DefaultFetchTimeout = 10 * time.Second
	DefaultPort         = 8085
	DefaultStoreFile    = "layout.db"
)

// DefaultStorePath is where the layout database lives unless configured.
func DefaultStorePath() string {
	return "~/" + filepath.ToSlash(filepath.Join(GlobalConfigDir, DefaultStoreFile))
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() *Config {
	return &Config{
		Interval:     DefaultInterval,
		FetchTimeout: DefaultFetchTimeout,
		Store:        DefaultStorePath(),
		Scale: ScaleConfig{
			UnitsPerColumn: 6,
			UnitsPerRow:    20,
		},
		Serve: ServeConfig{
			Port:   DefaultPort,
			Source: SourceHost,
		},
	}
}
