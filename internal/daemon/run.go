package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"readstudy/internal/config"
	"readstudy/internal/logging"
	"readstudy/internal/preflight"
	"readstudy/internal/results"
	"readstudy/internal/volume"
)

// Run starts the readstudy daemon runtime loop and blocks until the
// process receives SIGINT or SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	checks := preflight.RunAll(cfg)
	for _, check := range checks {
		if check.Passed {
			logger.Info("preflight check passed",
				logging.String("check", check.Name),
				logging.String("detail", check.Detail))
			continue
		}
		logger.Error("preflight check failed",
			logging.String("check", check.Name),
			logging.String("detail", check.Detail))
	}
	if !preflight.Passed(checks) {
		return fmt.Errorf("preflight checks failed")
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, "readstudyd.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := results.Open(cfg)
	if err != nil {
		logger.Error("open results store", logging.Error(err))
		return err
	}
	defer store.Close()

	library := volume.NewStore(cfg.Paths.DataDir)

	d, err := New(cfg, store, library, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		return err
	}

	<-signalCtx.Done()
	logger.Info("readstudy daemon shutting down")
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
