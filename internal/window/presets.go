package window

// Preset pairs a human-readable name with a window spec.
type Preset struct {
	Name  string  `json:"name"`
	Level float64 `json:"level"`
	Width float64 `json:"width"`
}

// Presets returns the fixed display presets in menu order. The slice is
// rebuilt per call so callers cannot mutate the shared definitions.
func Presets() []Preset {
	return []Preset{
		{Name: "abdomen", Level: 40, Width: 400},
		{Name: "lung", Level: -600, Width: 1500},
		{Name: "bone", Level: 400, Width: 1800},
		{Name: "brain", Level: 40, Width: 80},
		{Name: "soft_tissue", Level: 50, Width: 350},
	}
}

// PresetByName looks up a preset; ok is false for unknown names.
func PresetByName(name string) (Preset, bool) {
	for _, preset := range Presets() {
		if preset.Name == name {
			return preset, true
		}
	}
	return Preset{}, false
}

// Spec returns the preset's window spec.
func (p Preset) Spec() Spec {
	return Spec{Level: p.Level, Width: p.Width}
}
