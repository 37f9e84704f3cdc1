// Package render converts windowed planes into the transport encoding the
// viewer consumes: grayscale bytes replicated into RGB triples, then
// standard base64 with no line wrapping. The plane's height and width
// travel out-of-band since the encoding carries no header.
package render

import (
	"encoding/base64"
	"fmt"
)

const channels = 3

// EncodeGray expands each gray level into an identical R,G,B triple in
// row-major order and base64-encodes the result. Decoding the text and
// taking every third byte reproduces the plane exactly.
func EncodeGray(plane []uint8) string {
	rgb := make([]byte, len(plane)*channels)
	for i, gray := range plane {
		offset := i * channels
		rgb[offset] = gray
		rgb[offset+1] = gray
		rgb[offset+2] = gray
	}
	return base64.StdEncoding.EncodeToString(rgb)
}

// DecodeGray reverses EncodeGray. It verifies the payload is a whole number
// of equal RGB triples; mismatched channels mean the text was not produced
// by EncodeGray.
func DecodeGray(encoded string) ([]uint8, error) {
	rgb, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode slice payload: %w", err)
	}
	if len(rgb)%channels != 0 {
		return nil, fmt.Errorf("decode slice payload: %d bytes is not a whole number of RGB triples", len(rgb))
	}
	plane := make([]uint8, len(rgb)/channels)
	for i := range plane {
		offset := i * channels
		if rgb[offset] != rgb[offset+1] || rgb[offset] != rgb[offset+2] {
			return nil, fmt.Errorf("decode slice payload: unequal channels at pixel %d", i)
		}
		plane[i] = rgb[offset]
	}
	return plane, nil
}
