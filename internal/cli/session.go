package cli

import (
	"github.com/rileyhilliard/tilemon/internal/config"
	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/grid"
	"github.com/rileyhilliard/tilemon/internal/layout"
	"github.com/rileyhilliard/tilemon/internal/logger"
	"github.com/rileyhilliard/tilemon/internal/store"
)

// session carries the loaded config and an opened layout store through a
// command. Close it to release the database.
type session struct {
	cfg    *config.Config
	kv     store.KV
	repo   *store.Repository
	engine *layout.Engine
}

// readConfig finds and loads the config, applying --store.
func readConfig() (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if storeFlag != "" {
		cfg.Store = config.ExpandTilde(storeFlag)
	}
	return cfg, nil
}

// loadConfig is readConfig plus validation.
func loadConfig() (*config.Config, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession loads config and opens the layout store with its saved tiles.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var kv store.KV
	if ephemeral {
		kv = store.NewMemoryKV()
	} else {
		db, err := store.OpenSQLite(cfg.Store)
		if err != nil {
			return nil, err
		}
		kv = db
	}

	s := newSession(cfg, kv)
	if err := s.engine.Load(); err != nil {
		_ = kv.Close()
		return nil, err
	}
	return s, nil
}

func newSession(cfg *config.Config, kv store.KV) *session {
	repo := store.NewRepository(kv)
	return &session{
		cfg:    cfg,
		kv:     kv,
		repo:   repo,
		engine: layout.NewEngine(repo, logger.NewEnvLogger("[layout]")),
	}
}

// Close releases the layout store.
func (s *session) Close() error {
	if err := s.kv.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrPersist, "Failed to close layout store", "")
	}
	return nil
}

// scale returns the configured terminal scale.
func (s *session) scale() grid.Scale {
	return grid.Scale{
		UnitsPerColumn: s.cfg.Scale.UnitsPerColumn,
		UnitsPerRow:    s.cfg.Scale.UnitsPerRow,
	}
}

// resolveAddress picks the endpoint to use: the argument, then the configured
// endpoint, then the address saved after the last successful poll.
func resolveAddress(arg, configured string, saved func() (string, error)) string {
	if arg != "" {
		return arg
	}
	if configured != "" {
		return configured
	}
	if saved == nil {
		return ""
	}
	addr, err := saved()
	if err != nil {
		logger.Default().Warn("read saved endpoint: %v", err)
		return ""
	}
	return addr
}
