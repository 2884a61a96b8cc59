package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"mixfleet/internal/config"
	"mixfleet/internal/execx"
	"mixfleet/internal/fleet"
	"mixfleet/internal/history"
	"mixfleet/internal/logging"
	"mixfleet/internal/paths"
	"mixfleet/internal/projects"
)

// newLogger builds the logger for a command from the loaded configuration.
// Logs always go to stderr; stdout belongs to command output and, in mcp
// mode, to the protocol.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  cfg.Logging.Level,
		Output: os.Stderr,
	})
}

// buildDispatcher wires the resolver, runner, and optional history store
// into a fleet dispatcher. The returned store is nil when history is
// disabled or unavailable; the caller owns closing it.
func buildDispatcher(cfg *config.Config, logger *slog.Logger) (*fleet.Dispatcher, *history.Store, error) {
	cachePath, err := paths.ProjectCacheFile()
	if err != nil {
		return nil, nil, err
	}
	ignorePath, err := paths.IgnoreFile()
	if err != nil {
		return nil, nil, err
	}

	resolver := &projects.Resolver{
		Cache: &projects.CacheStore{
			Store:  &projects.FileStore{Path: cachePath},
			Marker: cfg.MarkerFile,
			Logger: logger,
		},
		Ignore: &projects.IgnoreStore{
			Store: &projects.FileStore{Path: ignorePath},
		},
		Scanner: &projects.Scanner{
			Marker: cfg.MarkerFile,
			Skip:   cfg.SkipDirs,
			Logger: logger,
		},
		Root:   cfg.EffectiveScanRoot(),
		Logger: logger,
	}

	// History is strictly optional: a broken database must not take the
	// fleet commands down with it.
	var store *history.Store
	var recorder fleet.Recorder
	if cfg.History.Enabled {
		if dbPath, err := paths.HistoryDBFile(); err == nil {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				logger.Warn("cannot create history directory", "error", err)
			} else if s, err := history.Open(dbPath, logger); err != nil {
				logger.Warn("run history unavailable", "error", err)
			} else {
				store = s
				recorder = s
			}
		}
	}

	dispatcher := &fleet.Dispatcher{
		Resolver: resolver,
		Runner:   &fleet.Runner{Exec: execx.OSRunner{}, Logger: logger},
		History:  recorder,
		Logger:   logger,
	}
	return dispatcher, store, nil
}
