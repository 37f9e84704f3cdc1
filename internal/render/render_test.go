package render

import (
	"bytes"
	"encoding/base64"
	"math/rand"
	"testing"
)

func TestEncodeGrayReplicatesChannels(t *testing.T) {
	encoded := EncodeGray([]uint8{0, 127, 255})
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []byte{0, 0, 0, 127, 127, 127, 255, 255, 255}
	if !bytes.Equal(raw, want) {
		t.Fatalf("payload = %v, want %v", raw, want)
	}
}

func TestEncodeGrayEmptyPlane(t *testing.T) {
	if got := EncodeGray(nil); got != "" {
		t.Fatalf("EncodeGray(nil) = %q, want empty", got)
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		plane := make([]uint8, 1+rng.Intn(4096))
		for i := range plane {
			plane[i] = uint8(rng.Intn(256))
		}
		decoded, err := DecodeGray(EncodeGray(plane))
		if err != nil {
			t.Fatalf("trial %d: DecodeGray: %v", trial, err)
		}
		if !bytes.Equal(decoded, plane) {
			t.Fatalf("trial %d: round trip mismatch", trial)
		}
	}
}

func TestDecodeGrayRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name    string
		encoded string
	}{
		{"not base64", "!!!"},
		{"partial triple", base64.StdEncoding.EncodeToString([]byte{1, 1})},
		{"unequal channels", base64.StdEncoding.EncodeToString([]byte{1, 2, 3})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeGray(tc.encoded); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
