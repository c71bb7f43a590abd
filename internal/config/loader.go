package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the config file looked for in the working directory.
	ConfigFileName = "tilemon.yaml"
	// GlobalConfigDir is the per-user config directory, relative to home.
	GlobalConfigDir = ".config/tilemon"
	// GlobalConfigFile is the config file name inside GlobalConfigDir.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. TILEMON_ENDPOINT or
	// TILEMON_SERVE_PORT.
	EnvPrefix = "TILEMON"
)

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. tilemon.yaml in the current directory
// 3. ~/.config/tilemon/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct, or run 'tilemon config init' to create one")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}
	local := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	if global := GlobalConfigPath(); global != "" {
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// GlobalConfigPath returns ~/.config/tilemon/config.yaml, or "" when the home
// directory is unknown.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// Load reads config from path layered over defaults and environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'tilemon config init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+displayPath(path))
	}

	cfg.Store = ExpandTilde(cfg.Store)
	cfg.LogFile = ExpandTilde(cfg.LogFile)
	cfg.Serve.File = ExpandTilde(cfg.Serve.File)

	return cfg, nil
}

// LoadOrDefault finds and loads the config, falling back to defaults plus
// environment overrides when no file exists.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("interval", d.Interval.String())
	v.SetDefault("fetch_timeout", d.FetchTimeout.String())
	v.SetDefault("store", d.Store)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("scale.units_per_column", d.Scale.UnitsPerColumn)
	v.SetDefault("scale.units_per_row", d.Scale.UnitsPerRow)
	v.SetDefault("serve.port", d.Serve.Port)
	v.SetDefault("serve.source", d.Serve.Source)
	v.SetDefault("serve.file", d.Serve.File)
}

func displayPath(path string) string {
	if path == "" {
		return "your config"
	}
	return path
}
