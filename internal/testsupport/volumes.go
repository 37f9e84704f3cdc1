package testsupport

import (
	"path/filepath"
	"sync"
	"testing"

	"readstudy/internal/volume"
)

// WriteVolume writes a .npy volume named identity into dir and returns
// its path. The voxel at (z, y, x) holds fill(z, y, x).
func WriteVolume(t testing.TB, dir, identity string, shape volume.Shape, fill func(z, y, x int) float32) string {
	t.Helper()

	data := make([]float32, shape.Count())
	i := 0
	for z := 0; z < shape.Depth; z++ {
		for y := 0; y < shape.Height; y++ {
			for x := 0; x < shape.Width; x++ {
				data[i] = fill(z, y, x)
				i++
			}
		}
	}
	path := filepath.Join(dir, identity+".npy")
	if err := volume.WriteNPY(path, shape, data); err != nil {
		t.Fatalf("write volume %s: %v", identity, err)
	}
	return path
}

// UniformVolume writes a volume whose every voxel holds value.
func UniformVolume(t testing.TB, dir, identity string, shape volume.Shape, value float32) string {
	t.Helper()
	return WriteVolume(t, dir, identity, shape, func(int, int, int) float32 { return value })
}

// CountingLibrary wraps a volume.Library and counts Load calls per identity.
type CountingLibrary struct {
	inner volume.Library

	mu    sync.Mutex
	loads map[string]int
}

// NewCountingLibrary wraps inner with load accounting.
func NewCountingLibrary(inner volume.Library) *CountingLibrary {
	return &CountingLibrary{inner: inner, loads: make(map[string]int)}
}

func (c *CountingLibrary) List() ([]string, error) { return c.inner.List() }

func (c *CountingLibrary) Exists(identity string) bool { return c.inner.Exists(identity) }

func (c *CountingLibrary) Load(identity string) (*volume.Volume, error) {
	c.mu.Lock()
	c.loads[identity]++
	c.mu.Unlock()
	return c.inner.Load(identity)
}

// Loads reports how many times identity has been loaded.
func (c *CountingLibrary) Loads(identity string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads[identity]
}
