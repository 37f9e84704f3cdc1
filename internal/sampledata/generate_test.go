package sampledata

import (
	"testing"

	"readstudy/internal/volume"
)

func smallParams() Params {
	return Params{Depth: 10, Height: 64, Width: 64, Seed: 42}
}

func TestVolumeGeometry(t *testing.T) {
	vol, err := Volume("patient_001", smallParams())
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	shape := vol.Shape()
	if shape != (volume.Shape{Depth: 10, Height: 64, Width: 64}) {
		t.Fatalf("shape = %v", shape)
	}

	plane, err := vol.Plane(0)
	if err != nil {
		t.Fatalf("Plane: %v", err)
	}
	// Corners sit outside the body ellipse; air plus noise stays near -1000.
	if corner := plane[0]; corner > -900 {
		t.Fatalf("corner voxel = %v, want air", corner)
	}
	// The body center holds soft tissue; the spine sits right of it and
	// must not swallow the midpoint at small extents.
	center := plane[32*64+32]
	if center < -50 || center > 150 {
		t.Fatalf("center voxel = %v, want soft tissue", center)
	}
	spine := plane[32*64+45]
	if spine < 300 {
		t.Fatalf("spine voxel = %v, want bone", spine)
	}

	stats := vol.Stats()
	if stats.MinHU > -900 {
		t.Fatalf("min HU = %v, expected air", stats.MinHU)
	}
	if stats.MaxHU < 300 {
		t.Fatalf("max HU = %v, expected bone", stats.MaxHU)
	}
}

func TestVolumeDeterministicPerSeed(t *testing.T) {
	first, err := Volume("p", smallParams())
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	second, err := Volume("p", smallParams())
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}

	planeA, _ := first.Plane(0)
	planeB, _ := second.Plane(0)
	for i := range planeA {
		if planeA[i] != planeB[i] {
			t.Fatalf("same seed diverged at voxel %d", i)
		}
	}

	other := smallParams()
	other.Seed = 43
	third, err := Volume("p", other)
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	planeC, _ := third.Plane(0)
	same := true
	for i := range planeA {
		if planeA[i] != planeC[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical volumes")
	}
}

func TestVolumeRejectsBadDimensions(t *testing.T) {
	for _, params := range []Params{
		{Depth: 0, Height: 8, Width: 8},
		{Depth: 8, Height: -1, Width: 8},
	} {
		if _, err := Volume("p", params); err == nil {
			t.Fatalf("params %+v: expected error", params)
		}
	}
}

func TestWriteSamples(t *testing.T) {
	dir := t.TempDir()
	params := smallParams()
	params.Depth = 30

	identities, err := WriteSamples(dir, 3, params)
	if err != nil {
		t.Fatalf("WriteSamples: %v", err)
	}
	want := []string{"patient_001", "patient_002", "patient_003"}
	if len(identities) != len(want) {
		t.Fatalf("identities = %v", identities)
	}
	for i := range want {
		if identities[i] != want[i] {
			t.Fatalf("identities = %v, want %v", identities, want)
		}
	}

	store := volume.NewStore(dir)
	listed, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("listed = %v", listed)
	}
	for _, identity := range want {
		vol, err := store.Load(identity)
		if err != nil {
			t.Fatalf("Load %s: %v", identity, err)
		}
		shape := vol.Shape()
		if shape.Height != params.Height || shape.Width != params.Width {
			t.Fatalf("%s shape = %v", identity, shape)
		}
		// Depth jitter stays within the configured spread.
		if shape.Depth < params.Depth-20 || shape.Depth > params.Depth+20 {
			t.Fatalf("%s depth = %d, outside jitter range", identity, shape.Depth)
		}
	}
}
