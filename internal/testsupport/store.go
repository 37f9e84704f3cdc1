package testsupport

import (
	"context"
	"testing"

	"readstudy/internal/config"
	"readstudy/internal/results"
)

// MustOpenStore opens a results.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *results.Store {
	t.Helper()

	store, err := results.Open(cfg)
	if err != nil {
		t.Fatalf("results.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewInspector registers an inspector for tests using the provided store.
func NewInspector(t testing.TB, store *results.Store, affiliation, name string) *results.Inspector {
	t.Helper()

	inspector, err := store.GetOrCreateInspector(context.Background(), affiliation, name)
	if err != nil {
		t.Fatalf("store.GetOrCreateInspector: %v", err)
	}
	return inspector
}
