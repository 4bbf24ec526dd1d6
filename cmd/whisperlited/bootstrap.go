package main

import (
	"path/filepath"

	"log/slog"

	"whisperlite/internal/config"
	"whisperlite/internal/daemon"
	"whisperlite/internal/logging"
)

// streamCapacity bounds the in-memory log ring served to the browser.
const streamCapacity = 1024

func bootstrap(cfg *config.Config) (*daemon.Daemon, *slog.Logger, error) {
	hub := logging.NewStreamHub(streamCapacity)
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		OutputPaths: []string{
			"stdout",
			filepath.Join(cfg.Paths.LogDir, "whisperlited.log"),
		},
		Stream: hub,
	})
	if err != nil {
		return nil, nil, err
	}

	d, warning, err := daemon.New(cfg, logger, hub)
	if err != nil {
		return nil, nil, err
	}
	if warning != "" {
		logger.Warn(warning)
	}
	return d, logger, nil
}
