package config

import (
	"fmt"

	"github.com/rileyhilliard/tilemon/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Poll interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use at least %s, the default is %s", MinInterval, DefaultInterval))
	}

	if cfg.FetchTimeout <= 0 {
		return errors.New(errors.ErrConfig,
			"fetch_timeout must be positive",
			fmt.Sprintf("Remove it to use the default of %s", DefaultFetchTimeout))
	}

	if cfg.Store == "" {
		return errors.New(errors.ErrConfig,
			"No layout store path configured",
			fmt.Sprintf("Set 'store' or remove it to use %s", DefaultStorePath()))
	}

	if cfg.Scale.UnitsPerColumn <= 0 || cfg.Scale.UnitsPerRow <= 0 {
		return errors.New(errors.ErrConfig,
			"scale.units_per_column and scale.units_per_row must be positive",
			"Check the 'scale' section in your tilemon.yaml.")
	}

	if err := validateServe(cfg.Serve); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'serve' section in your tilemon.yaml.")
	}

	return nil
}

func validateServe(s ServeConfig) error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("serve.port %d is out of range (1-65535)", s.Port)
	}
	switch s.Source {
	case SourceHost:
	case SourceFile:
		if s.File == "" {
			return fmt.Errorf("serve.source is 'file' but serve.file is empty")
		}
	default:
		return fmt.Errorf("serve.source must be '%s' or '%s', got '%s'", SourceHost, SourceFile, s.Source)
	}
	return nil
}
