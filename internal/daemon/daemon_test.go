package daemon_test

import (
	"context"
	"testing"

	"readstudy/internal/daemon"
	"readstudy/internal/logging"
	"readstudy/internal/testsupport"
	"readstudy/internal/volume"
)

func newDaemon(t *testing.T) *daemon.Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	library := volume.NewStore(cfg.Paths.DataDir)

	d, err := daemon.New(cfg, store, library, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	return d
}

func TestDaemonStartStop(t *testing.T) {
	d := newDaemon(t)
	t.Cleanup(func() { d.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if d.Addr() == "" {
		t.Fatal("expected listen address after start")
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected error starting an already running daemon")
	}
	d.Stop()
}

func TestDaemonRejectsNilDependencies(t *testing.T) {
	if _, err := daemon.New(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for nil dependencies")
	}
}
