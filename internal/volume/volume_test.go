package volume

import (
	"errors"
	"testing"
)

func sequentialVolume(t *testing.T, identity string, shape Shape) *Volume {
	t.Helper()
	data := make([]float32, shape.Count())
	for i := range data {
		data[i] = float32(i)
	}
	vol, err := New(identity, shape, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return vol
}

func TestNewRejectsBadShapes(t *testing.T) {
	cases := []struct {
		name  string
		shape Shape
		data  []float32
	}{
		{"zero depth", Shape{Depth: 0, Height: 2, Width: 2}, nil},
		{"negative width", Shape{Depth: 1, Height: 1, Width: -1}, nil},
		{"payload too short", Shape{Depth: 2, Height: 2, Width: 2}, make([]float32, 7)},
		{"payload too long", Shape{Depth: 1, Height: 1, Width: 1}, make([]float32, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New("p", tc.shape, tc.data); !errors.Is(err, ErrFormat) {
				t.Fatalf("err = %v, want ErrFormat", err)
			}
		})
	}
}

func TestPlaneExtraction(t *testing.T) {
	shape := Shape{Depth: 3, Height: 2, Width: 4}
	vol := sequentialVolume(t, "p", shape)

	plane, err := vol.Plane(1)
	if err != nil {
		t.Fatalf("Plane: %v", err)
	}
	if len(plane) != shape.Height*shape.Width {
		t.Fatalf("plane length = %d, want %d", len(plane), shape.Height*shape.Width)
	}
	// Plane 1 starts right after the 8 samples of plane 0.
	for i, sample := range plane {
		if want := float32(8 + i); sample != want {
			t.Fatalf("plane[%d] = %v, want %v", i, sample, want)
		}
	}
}

func TestPlaneOutOfRange(t *testing.T) {
	vol := sequentialVolume(t, "p", Shape{Depth: 3, Height: 2, Width: 2})
	for _, index := range []int{-1, 3, 100} {
		if _, err := vol.Plane(index); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Plane(%d): err = %v, want ErrOutOfRange", index, err)
		}
	}
	if _, err := vol.Plane(2); err != nil {
		t.Fatalf("Plane(2): %v", err)
	}
}

func TestStats(t *testing.T) {
	vol, err := New("p", Shape{Depth: 1, Height: 2, Width: 2}, []float32{-1000, 0, 40, 400})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stats := vol.Stats()
	if stats.MinHU != -1000 || stats.MaxHU != 400 {
		t.Fatalf("stats = %+v, want min -1000 max 400", stats)
	}
	if stats.MeanHU != -140 {
		t.Fatalf("mean = %v, want -140", stats.MeanHU)
	}
}
