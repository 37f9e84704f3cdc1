package volume

import "fmt"

// Shape is the fixed (depth, height, width) extent of a loaded volume.
// Depth is the number of axial slices.
type Shape struct {
	Depth  int `json:"depth"`
	Height int `json:"height"`
	Width  int `json:"width"`
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Depth, s.Height, s.Width)
}

// Count returns the number of samples the shape spans.
func (s Shape) Count() int {
	return s.Depth * s.Height * s.Width
}

// Stats summarizes a volume's intensity distribution for the info endpoint.
type Stats struct {
	MinHU  float64 `json:"min_hu"`
	MaxHU  float64 `json:"max_hu"`
	MeanHU float64 `json:"mean_hu"`
}

// Volume is a rank-3 grid of Hounsfield intensity samples for one case.
// The payload is row-major (depth, height, width) and treated as immutable
// for the lifetime of the load.
type Volume struct {
	identity string
	shape    Shape
	data     []float32
}

// New wraps a row-major payload in a Volume. The payload length must match
// the shape extent.
func New(identity string, shape Shape, data []float32) (*Volume, error) {
	if shape.Depth <= 0 || shape.Height <= 0 || shape.Width <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimension in shape %s", ErrFormat, shape)
	}
	if len(data) != shape.Count() {
		return nil, fmt.Errorf("%w: payload has %d samples, shape %s needs %d", ErrFormat, len(data), shape, shape.Count())
	}
	return &Volume{identity: identity, shape: shape, data: data}, nil
}

// Identity returns the case identifier the volume was loaded under.
func (v *Volume) Identity() string { return v.identity }

// Shape returns the volume extent.
func (v *Volume) Shape() Shape { return v.shape }

// Plane returns the index-th axial plane as a height*width row-major view
// into the volume payload. Callers must not mutate the returned slice.
func (v *Volume) Plane(index int) ([]float32, error) {
	if index < 0 || index >= v.shape.Depth {
		return nil, fmt.Errorf("%w: index %d, depth %d", ErrOutOfRange, index, v.shape.Depth)
	}
	planeLen := v.shape.Height * v.shape.Width
	offset := index * planeLen
	return v.data[offset : offset+planeLen : offset+planeLen], nil
}

// Stats computes the intensity summary in a single pass.
func (v *Volume) Stats() Stats {
	min := float64(v.data[0])
	max := min
	sum := 0.0
	for _, sample := range v.data {
		value := float64(sample)
		if value < min {
			min = value
		}
		if value > max {
			max = value
		}
		sum += value
	}
	return Stats{MinHU: min, MaxHU: max, MeanHU: sum / float64(len(v.data))}
}
