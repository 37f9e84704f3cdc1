package window

import (
	"errors"
	"testing"
)

func TestApplyPinsEdges(t *testing.T) {
	spec := Spec{Level: 40, Width: 400}

	cases := []struct {
		name  string
		value float32
		want  uint8
	}{
		{"far below lower bound", -1000, 0},
		{"at lower bound", -160, 0},
		{"at level", 40, 127},
		{"at upper bound", 240, 255},
		{"far above upper bound", 1000, 255},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Apply([]float32{tc.value}, spec)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if out[0] != tc.want {
				t.Fatalf("Apply(%v) = %d, want %d", tc.value, out[0], tc.want)
			}
		})
	}
}

func TestApplyMonotonic(t *testing.T) {
	spec := Spec{Level: -600, Width: 1500}
	values := []float32{-2000, -1350, -1000, -600, -300, 150, 400}
	out, err := Apply(values, spec)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i := 1; i < len(out); i++ {
		if out[i] < out[i-1] {
			t.Fatalf("output not monotonic at %d: %v", i, out)
		}
	}
	if out[0] != 0 {
		t.Fatalf("below-range value = %d, want 0", out[0])
	}
	if out[len(out)-1] != 255 {
		t.Fatalf("above-range value = %d, want 255", out[len(out)-1])
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	values := []float32{-1000, 40, 1000}
	out, err := Apply(values, Spec{Level: 40, Width: 400})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if values[0] != -1000 || values[1] != 40 || values[2] != 1000 {
		t.Fatalf("input mutated: %v", values)
	}
	if out[0] != 0 || out[1] != 127 || out[2] != 255 {
		t.Fatalf("Apply = %v, want [0 127 255]", out)
	}
}

func TestApplyRejectsNonPositiveWidth(t *testing.T) {
	for _, width := range []float64{0, -1, -400} {
		if _, err := Apply([]float32{0}, Spec{Level: 40, Width: width}); !errors.Is(err, ErrInvalidWindow) {
			t.Fatalf("width %v: err = %v, want ErrInvalidWindow", width, err)
		}
	}
}

func TestSpecBounds(t *testing.T) {
	lo, hi := Spec{Level: 40, Width: 400}.Bounds()
	if lo != -160 || hi != 240 {
		t.Fatalf("Bounds = (%v, %v), want (-160, 240)", lo, hi)
	}
}

func TestPresets(t *testing.T) {
	presets := Presets()
	if len(presets) == 0 {
		t.Fatal("no presets")
	}

	abdomen, ok := PresetByName("abdomen")
	if !ok {
		t.Fatal("abdomen preset missing")
	}
	if abdomen.Level != 40 || abdomen.Width != 400 {
		t.Fatalf("abdomen = %+v, want level 40 width 400", abdomen)
	}

	lung, ok := PresetByName("lung")
	if !ok {
		t.Fatal("lung preset missing")
	}
	if lung.Level != -600 || lung.Width != 1500 {
		t.Fatalf("lung = %+v, want level -600 width 1500", lung)
	}

	if _, ok := PresetByName("hepatic"); ok {
		t.Fatal("unknown preset resolved")
	}

	// Callers may mutate the returned slice without affecting later calls.
	presets[0].Level = 9999
	fresh := Presets()
	if fresh[0].Level == 9999 {
		t.Fatal("Presets returned shared backing storage")
	}
}
