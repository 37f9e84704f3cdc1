package testsupport

import (
	"path/filepath"
	"testing"

	"readstudy/internal/auth"
	"readstudy/internal/config"
)

// TestPassword is the shared platform password every test config accepts.
const TestPassword = "read-study-test"

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.DatabasePath = filepath.Join(base, "db", "results.db")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Auth.PasswordHash = auth.HashPassword(TestPassword)

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithPasswordHash overrides the platform password digest.
func WithPasswordHash(hash string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Auth.PasswordHash = hash
	}
}

// WithSessionTTLMinutes overrides the session lifetime.
func WithSessionTTLMinutes(minutes int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Auth.SessionTTLMinutes = minutes
	}
}
