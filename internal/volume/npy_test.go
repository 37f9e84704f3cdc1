package volume

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readFileBytes(t *testing.T, path string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return raw
}

func TestWriteReadRoundTrip(t *testing.T) {
	shape := Shape{Depth: 2, Height: 3, Width: 4}
	data := make([]float32, shape.Count())
	for i := range data {
		data[i] = float32(i) - 1000.5
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "case.npy")
	if err := WriteNPY(path, shape, data); err != nil {
		t.Fatalf("WriteNPY: %v", err)
	}

	vol, err := NewStore(dir).Load("case")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if vol.Shape() != shape {
		t.Fatalf("shape = %v, want %v", vol.Shape(), shape)
	}
	for z := 0; z < shape.Depth; z++ {
		plane, err := vol.Plane(z)
		if err != nil {
			t.Fatalf("Plane(%d): %v", z, err)
		}
		base := z * shape.Height * shape.Width
		for i, sample := range plane {
			if sample != data[base+i] {
				t.Fatalf("plane %d sample %d = %v, want %v", z, i, sample, data[base+i])
			}
		}
	}
}

func npyBytes(t *testing.T, descr string, fortran bool, shape string, payload []byte) []byte {
	t.Helper()
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': %v, 'shape': %s, }", descr, fortranLabel(fortran), shape)
	headerLen := len(dict) + 1
	var buf bytes.Buffer
	buf.Write(npyMagic)
	buf.Write([]byte{1, 0})
	var raw [2]byte
	binary.LittleEndian.PutUint16(raw[:], uint16(headerLen))
	buf.Write(raw[:])
	buf.WriteString(dict)
	buf.WriteByte('\n')
	buf.Write(payload)
	return buf.Bytes()
}

func fortranLabel(fortran bool) string {
	if fortran {
		return "True"
	}
	return "False"
}

func TestReadNPYWidensDtypes(t *testing.T) {
	minusFortyTwo := int32(-42)
	cases := []struct {
		descr   string
		payload []byte
		want    float32
	}{
		{"<i2", []byte{0x18, 0xfc}, -1000},
		{"<u2", []byte{0xe8, 0x03}, 1000},
		{"|i1", []byte{0x80}, -128},
		{"|u1", []byte{0xff}, 255},
		{"<i4", binary.LittleEndian.AppendUint32(nil, uint32(minusFortyTwo)), -42},
		{"<f8", binary.LittleEndian.AppendUint64(nil, math.Float64bits(40.5)), 40.5},
	}
	for _, tc := range cases {
		t.Run(tc.descr, func(t *testing.T) {
			raw := npyBytes(t, tc.descr, false, "(1, 1, 1)", tc.payload)
			shape, data, err := readNPY(bytes.NewReader(raw))
			if err != nil {
				t.Fatalf("readNPY: %v", err)
			}
			if shape != (Shape{Depth: 1, Height: 1, Width: 1}) {
				t.Fatalf("shape = %v", shape)
			}
			if data[0] != tc.want {
				t.Fatalf("data[0] = %v, want %v", data[0], tc.want)
			}
		})
	}
}

func TestReadNPYRejectsMalformedFiles(t *testing.T) {
	f4 := func(values ...float32) []byte {
		var out []byte
		for _, v := range values {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		}
		return out
	}

	cases := []struct {
		name string
		raw  []byte
	}{
		{"missing magic", []byte("NOTNPY\x01\x00")},
		{"fortran order", npyBytes(t, "<f4", true, "(1, 1, 1)", f4(0))},
		{"rank 2", npyBytes(t, "<f4", false, "(2, 2)", f4(0, 0, 0, 0))},
		{"rank 4", npyBytes(t, "<f4", false, "(1, 1, 1, 1)", f4(0))},
		{"big endian dtype", npyBytes(t, ">f4", false, "(1, 1, 1)", f4(0))},
		{"string dtype", npyBytes(t, "<U8", false, "(1, 1, 1)", make([]byte, 32))},
		{"truncated payload", npyBytes(t, "<f4", false, "(2, 2, 2)", f4(0, 0, 0))},
		{"overflowing shape", npyBytes(t, "<f4", false, "(4611686018427387904, 2, 1)", nil)},
		{"oversized shape", npyBytes(t, "<f4", false, "(4096, 65536, 65536)", nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := readNPY(bytes.NewReader(tc.raw)); !errors.Is(err, ErrFormat) {
				t.Fatalf("err = %v, want ErrFormat", err)
			}
		})
	}
}

func TestWriteNPYAlignsHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aligned.npy")
	if err := WriteNPY(path, Shape{Depth: 1, Height: 1, Width: 1}, []float32{1}); err != nil {
		t.Fatalf("WriteNPY: %v", err)
	}

	raw := readFileBytes(t, path)
	if !bytes.HasPrefix(raw, npyMagic) {
		t.Fatal("missing magic")
	}
	headerLen := int(binary.LittleEndian.Uint16(raw[8:10]))
	if total := 10 + headerLen; total%64 != 0 {
		t.Fatalf("payload offset %d is not 64-byte aligned", total)
	}
	header := string(raw[10 : 10+headerLen])
	if !strings.HasSuffix(header, "\n") {
		t.Fatal("header missing trailing newline")
	}
	if !strings.Contains(header, "'descr': '<f4'") {
		t.Fatalf("header %q missing dtype", header)
	}
}
