// Package session holds the per-reviewer volume cache. Each reviewing
// session owns exactly one cache slot: the volume under review. The process
// never shares one slot across sessions, which is what makes concurrent
// reviewers safe without cross-request locking.
package session

import (
	"errors"
	"sync"

	"readstudy/internal/render"
	"readstudy/internal/volume"
	"readstudy/internal/window"
)

// ErrNoVolume indicates an operation that needs a resident volume was issued
// against an empty cache.
var ErrNoVolume = errors.New("no volume loaded")

// Cache is a capacity-1 volume cache. Select replaces the resident volume
// on identity mismatch and is a no-op on match; there is no eviction policy
// beyond replace-on-mismatch because a reviewer works one case at a time.
//
// All methods hold the cache mutex, so a select+extract+encode sequence
// issued through Render is atomic even if two requests share a session.
type Cache struct {
	mu      sync.Mutex
	library volume.Library
	current *volume.Volume
}

// NewCache returns an empty cache backed by library.
func NewCache(library volume.Library) *Cache {
	return &Cache{library: library}
}

// Select ensures the named volume is resident. A failed load leaves the
// previously resident volume (if any) untouched and servable.
func (c *Cache) Select(identity string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectLocked(identity)
}

func (c *Cache) selectLocked(identity string) error {
	if c.current != nil && c.current.Identity() == identity {
		return nil
	}
	loaded, err := c.library.Load(identity)
	if err != nil {
		return err
	}
	// The previous volume is dropped here; the replaced payload becomes
	// collectable as soon as no in-flight render references it.
	c.current = loaded
	return nil
}

// Clear empties the cache, releasing the resident volume.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// Shape returns the resident volume's extent, or ErrNoVolume.
func (c *Cache) Shape() (volume.Shape, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return volume.Shape{}, ErrNoVolume
	}
	return c.current.Shape(), nil
}

// Current returns the resident identity, ok=false when the cache is empty.
func (c *Cache) Current() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return "", false
	}
	return c.current.Identity(), true
}

// Info describes the resident volume for the case info endpoint.
type Info struct {
	Identity string       `json:"patient_id"`
	Shape    volume.Shape `json:"shape"`
	Stats    volume.Stats `json:"stats"`
}

// Describe selects the named volume and summarizes it in one critical section.
func (c *Cache) Describe(identity string) (Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.selectLocked(identity); err != nil {
		return Info{}, err
	}
	return Info{
		Identity: c.current.Identity(),
		Shape:    c.current.Shape(),
		Stats:    c.current.Stats(),
	}, nil
}

// Rendered is one windowed, transport-encoded axial slice. Depth is the
// rendered volume's slice count, captured in the same critical section as
// the image so the pair cannot disagree under concurrent selects.
type Rendered struct {
	Image  string
	Height int
	Width  int
	Depth  int
}

// Render runs the full slice pipeline (select, extract, window, encode)
// under the cache mutex so it cannot interleave with a competing Select
// on the same cache.
func (c *Cache) Render(identity string, index int, spec window.Spec) (Rendered, error) {
	if err := spec.Validate(); err != nil {
		return Rendered{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.selectLocked(identity); err != nil {
		return Rendered{}, err
	}

	plane, err := c.current.Plane(index)
	if err != nil {
		return Rendered{}, err
	}
	windowed, err := window.Apply(plane, spec)
	if err != nil {
		return Rendered{}, err
	}

	shape := c.current.Shape()
	return Rendered{
		Image:  render.EncodeGray(windowed),
		Height: shape.Height,
		Width:  shape.Width,
		Depth:  shape.Depth,
	}, nil
}
