// Package window implements the radiographic window level/width transform
// that maps Hounsfield intensities onto an 8-bit display range.
package window

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow indicates a non-positive window width.
var ErrInvalidWindow = errors.New("window width must be positive")

// Spec is a window level (center) and width (span) pair. Specs are
// constructed fresh per request and never persisted.
type Spec struct {
	Level float64
	Width float64
}

// Validate rejects widths that would make the mapping degenerate.
func (s Spec) Validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidWindow, s.Width)
	}
	return nil
}

// Bounds returns the [lo, hi] intensity range the spec maps onto [0, 255].
func (s Spec) Bounds() (lo, hi float64) {
	half := s.Width / 2
	return s.Level - half, s.Level + half
}

// Apply clips every intensity to the window bounds and rescales linearly to
// [0, 255], truncating to uint8. The function is pure: identical inputs
// produce identical outputs.
func Apply(intensities []float32, spec Spec) ([]uint8, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	lo, hi := spec.Bounds()
	scale := 255.0 / (hi - lo)

	out := make([]uint8, len(intensities))
	for i, sample := range intensities {
		value := float64(sample)
		switch {
		case value <= lo:
			// leave 0
		case value >= hi:
			out[i] = 255
		default:
			// Truncation, not rounding: the midpoint maps to 127.
			out[i] = uint8((value - lo) * scale)
		}
	}
	return out, nil
}
