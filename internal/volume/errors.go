package volume

import "errors"

var (
	// ErrNotFound indicates no backing file exists for the requested identity.
	ErrNotFound = errors.New("volume not found")
	// ErrFormat indicates a backing file exists but is not a rank-3 numeric array.
	ErrFormat = errors.New("volume format invalid")
	// ErrOutOfRange indicates a slice index outside [0, depth).
	ErrOutOfRange = errors.New("slice index out of range")
)
