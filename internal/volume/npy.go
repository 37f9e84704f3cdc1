package volume

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// The .npy format is self-describing: a magic string, a format version, and
// an ASCII header dict carrying dtype, byte order, and shape. See the NumPy
// format specification (v1.0/v2.0 headers are supported here).

var npyMagic = []byte("\x93NUMPY")

// maxVolumeSamples bounds how many samples a single load may materialize.
// Crafted headers with absurd dimensions must fail as ErrFormat instead of
// reaching the allocator with an overflowed length.
const maxVolumeSamples = 1 << 31

type npyHeader struct {
	descr        string
	fortranOrder bool
	shape        []int
}

// ReadFile reads a .npy file and returns its payload widened to float32.
// Little-endian integer and floating dtypes up to 64 bits are accepted;
// anything else, a non-C byte order, or a rank other than 3 is ErrFormat.
func readNPY(r io.Reader) (Shape, []float32, error) {
	header, err := parseNPYHeader(r)
	if err != nil {
		return Shape{}, nil, err
	}
	if header.fortranOrder {
		return Shape{}, nil, fmt.Errorf("%w: fortran order arrays are not supported", ErrFormat)
	}
	if len(header.shape) != 3 {
		return Shape{}, nil, fmt.Errorf("%w: expected rank 3, got rank %d", ErrFormat, len(header.shape))
	}
	shape := Shape{Depth: header.shape[0], Height: header.shape[1], Width: header.shape[2]}
	if shape.Depth <= 0 || shape.Height <= 0 || shape.Width <= 0 {
		return Shape{}, nil, fmt.Errorf("%w: non-positive dimension in shape %s", ErrFormat, shape)
	}

	elemSize, decode, err := elementDecoder(header.descr)
	if err != nil {
		return Shape{}, nil, err
	}

	count := shape.Depth
	for _, dim := range []int{shape.Height, shape.Width} {
		if count > maxVolumeSamples/dim {
			return Shape{}, nil, fmt.Errorf("%w: shape %s exceeds %d samples", ErrFormat, shape, maxVolumeSamples)
		}
		count *= dim
	}
	raw := make([]byte, count*elemSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return Shape{}, nil, fmt.Errorf("%w: payload truncated: %v", ErrFormat, err)
	}

	data := make([]float32, count)
	for i := 0; i < count; i++ {
		data[i] = decode(raw[i*elemSize:])
	}
	return shape, data, nil
}

func parseNPYHeader(r io.Reader) (npyHeader, error) {
	preamble := make([]byte, 8)
	if _, err := io.ReadFull(r, preamble); err != nil {
		return npyHeader{}, fmt.Errorf("%w: short preamble: %v", ErrFormat, err)
	}
	if string(preamble[:6]) != string(npyMagic) {
		return npyHeader{}, fmt.Errorf("%w: missing npy magic", ErrFormat)
	}

	major := preamble[6]
	var headerLen int
	switch major {
	case 1:
		var raw [2]byte
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			return npyHeader{}, fmt.Errorf("%w: short header length: %v", ErrFormat, err)
		}
		headerLen = int(binary.LittleEndian.Uint16(raw[:]))
	case 2, 3:
		var raw [4]byte
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			return npyHeader{}, fmt.Errorf("%w: short header length: %v", ErrFormat, err)
		}
		headerLen = int(binary.LittleEndian.Uint32(raw[:]))
	default:
		return npyHeader{}, fmt.Errorf("%w: unsupported npy version %d", ErrFormat, major)
	}

	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return npyHeader{}, fmt.Errorf("%w: short header: %v", ErrFormat, err)
	}
	return parseHeaderDict(string(headerBytes))
}

func parseHeaderDict(text string) (npyHeader, error) {
	header := npyHeader{}

	descr, err := dictString(text, "descr")
	if err != nil {
		return npyHeader{}, err
	}
	header.descr = descr

	switch {
	case strings.Contains(text, "'fortran_order': False"):
		header.fortranOrder = false
	case strings.Contains(text, "'fortran_order': True"):
		header.fortranOrder = true
	default:
		return npyHeader{}, fmt.Errorf("%w: header missing fortran_order", ErrFormat)
	}

	shape, err := dictShape(text)
	if err != nil {
		return npyHeader{}, err
	}
	header.shape = shape
	return header, nil
}

func dictString(text, key string) (string, error) {
	marker := "'" + key + "':"
	start := strings.Index(text, marker)
	if start < 0 {
		return "", fmt.Errorf("%w: header missing %s", ErrFormat, key)
	}
	rest := text[start+len(marker):]
	open := strings.IndexByte(rest, '\'')
	if open < 0 {
		return "", fmt.Errorf("%w: malformed %s entry", ErrFormat, key)
	}
	rest = rest[open+1:]
	close := strings.IndexByte(rest, '\'')
	if close < 0 {
		return "", fmt.Errorf("%w: malformed %s entry", ErrFormat, key)
	}
	return rest[:close], nil
}

func dictShape(text string) ([]int, error) {
	marker := "'shape':"
	start := strings.Index(text, marker)
	if start < 0 {
		return nil, fmt.Errorf("%w: header missing shape", ErrFormat)
	}
	rest := text[start+len(marker):]
	open := strings.IndexByte(rest, '(')
	close := strings.IndexByte(rest, ')')
	if open < 0 || close < open {
		return nil, fmt.Errorf("%w: malformed shape entry", ErrFormat)
	}
	var dims []int
	for _, field := range strings.Split(rest[open+1:close], ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		dim, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: shape dimension %q: %v", ErrFormat, field, err)
		}
		dims = append(dims, dim)
	}
	return dims, nil
}

func elementDecoder(descr string) (int, func([]byte) float32, error) {
	switch descr {
	case "<f4":
		return 4, func(b []byte) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(b))
		}, nil
	case "<f8":
		return 8, func(b []byte) float32 {
			return float32(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		}, nil
	case "|i1":
		return 1, func(b []byte) float32 { return float32(int8(b[0])) }, nil
	case "|u1":
		return 1, func(b []byte) float32 { return float32(b[0]) }, nil
	case "<i2":
		return 2, func(b []byte) float32 {
			return float32(int16(binary.LittleEndian.Uint16(b)))
		}, nil
	case "<u2":
		return 2, func(b []byte) float32 {
			return float32(binary.LittleEndian.Uint16(b))
		}, nil
	case "<i4":
		return 4, func(b []byte) float32 {
			return float32(int32(binary.LittleEndian.Uint32(b)))
		}, nil
	default:
		return 0, nil, fmt.Errorf("%w: unsupported dtype %q", ErrFormat, descr)
	}
}

// WriteFile saves the volume as a version 1.0 .npy file.
func (v *Volume) WriteFile(path string) error {
	return WriteNPY(path, v.shape, v.data)
}

// WriteNPY writes a float32 volume as a version 1.0 .npy file. Used by the
// sample data generator and test fixtures.
func WriteNPY(path string, shape Shape, data []float32) error {
	if len(data) != shape.Count() {
		return fmt.Errorf("payload has %d samples, shape %s needs %d", len(data), shape, shape.Count())
	}

	dict := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d, %d), }",
		shape.Depth, shape.Height, shape.Width)
	// Pad so the payload starts on a 64-byte boundary, trailing newline included.
	headerLen := len(dict) + 1
	total := len(npyMagic) + 2 + 2 + headerLen
	if pad := (64 - total%64) % 64; pad > 0 {
		dict += strings.Repeat(" ", pad)
		headerLen += pad
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create npy file: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 0, 10+headerLen)
	buf = append(buf, npyMagic...)
	buf = append(buf, 1, 0)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(headerLen))
	buf = append(buf, dict...)
	buf = append(buf, '\n')
	if _, err := file.Write(buf); err != nil {
		return fmt.Errorf("write npy header: %w", err)
	}

	payload := make([]byte, len(data)*4)
	for i, sample := range data {
		binary.LittleEndian.PutUint32(payload[i*4:], math.Float32bits(sample))
	}
	if _, err := file.Write(payload); err != nil {
		return fmt.Errorf("write npy payload: %w", err)
	}
	return nil
}
