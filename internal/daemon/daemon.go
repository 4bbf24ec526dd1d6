package daemon

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"log/slog"

	"github.com/gofrs/flock"

	"whisperlite/internal/config"
	"whisperlite/internal/history"
	"whisperlite/internal/logging"
	"whisperlite/internal/output"
	"whisperlite/internal/runner"
	"whisperlite/internal/transcribe"
)

// Daemon coordinates the transcription runner and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *history.Store
	engine *transcribe.Engine
	runner *runner.Runner
	hub    *logging.StreamHub

	lockPath string
	lock     *flock.Flock

	api     *apiServer
	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	HistoryPath  string
	LockFilePath string
	Model        string
	Device       string
	ComputeType  string
}

// New constructs a daemon with initialized dependencies. The engine
// warning, when non-empty, describes a compute-type correction and has
// already been applied.
func New(cfg *config.Config, logger *slog.Logger, hub *logging.StreamHub) (*Daemon, string, error) {
	if cfg == nil || logger == nil {
		return nil, "", errors.New("daemon requires config and logger")
	}

	engine, warning, err := transcribe.NewEngine(transcribe.OptionsFromConfig(cfg.Model))
	if err != nil {
		return nil, "", err
	}

	store, err := history.Open(cfg.Paths.LogDir)
	if err != nil {
		return nil, "", fmt.Errorf("open history store: %w", err)
	}

	writer := output.NewWriter(cfg.Paths.FallbackDir, logger)
	lockPath := filepath.Join(cfg.Paths.LogDir, "whisperlited.lock")

	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		engine:   engine,
		runner:   runner.New(engine, writer, store, logger),
		hub:      hub,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.api = newAPIServer(cfg.Paths.Bind, d, logger)
	return d, warning, nil
}

// Start acquires the daemon lock and brings up the HTTP surface.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another whisperlited instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.api.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("whisperlited started",
		logging.String("lock", d.lockPath),
		logging.String("bind", d.Addr()),
	)
	return nil
}

// Stop shuts down the HTTP surface, waits for an in-flight run, and
// releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	d.runner.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("whisperlited stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr reports the bound listen address, or the configured bind before Start.
func (d *Daemon) Addr() string {
	if d.api != nil {
		return d.api.addr()
	}
	return d.cfg.Paths.Bind
}

// Status reports runtime information for API consumers.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		HistoryPath:  d.store.Path(),
		LockFilePath: d.lockPath,
		Model:        d.engine.Model(),
		Device:       d.engine.Device(),
		ComputeType:  d.engine.ComputeType(),
	}
}
