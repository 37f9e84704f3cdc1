package daemon

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"log/slog"

	"github.com/gofrs/flock"

	"readstudy/internal/auth"
	"readstudy/internal/config"
	"readstudy/internal/logging"
	"readstudy/internal/results"
	"readstudy/internal/server"
	"readstudy/internal/session"
	"readstudy/internal/volume"
)

// Daemon owns the long-lived pieces of the read-study service and
// enforces single-instance execution through a lock file.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *results.Store
	library  volume.Library
	sessions *auth.Registry
	caches   *session.Manager
	api      *server.Server

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *results.Store, library volume.Library, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || library == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, library, and logger")
	}

	sessions := auth.NewRegistry(cfg.Auth.SessionTTL())
	caches := session.NewManager(library)
	api, err := server.New(cfg, store, library, sessions, caches, logger)
	if err != nil {
		return nil, err
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "readstudyd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		library:  library,
		sessions: sessions,
		caches:   caches,
		api:      api,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another readstudy daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.api.Start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		return fmt.Errorf("start api server: %w", err)
	}
	d.cancel = cancel

	d.running.Store(true)
	d.logger.Info("readstudy daemon started",
		logging.String("lock", d.lockPath),
		logging.String("address", d.api.Addr()))
	return nil
}

// Stop shuts the API server down and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("readstudy daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr returns the API server's listen address.
func (d *Daemon) Addr() string {
	return d.api.Addr()
}
