package volume

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestVolume(t *testing.T, dir, identity string, shape Shape) {
	t.Helper()
	data := make([]float32, shape.Count())
	if err := WriteNPY(filepath.Join(dir, identity+".npy"), shape, data); err != nil {
		t.Fatalf("WriteNPY: %v", err)
	}
}

func TestStoreListSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	shape := Shape{Depth: 1, Height: 1, Width: 1}
	writeTestVolume(t, dir, "patient_002", shape)
	writeTestVolume(t, dir, "patient_001", shape)
	writeTestVolume(t, dir, "patient_010", shape)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "archive.npy"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	identities, err := NewStore(dir).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"patient_001", "patient_002", "patient_010"}
	if len(identities) != len(want) {
		t.Fatalf("List = %v, want %v", identities, want)
	}
	for i := range want {
		if identities[i] != want[i] {
			t.Fatalf("List = %v, want %v", identities, want)
		}
	}
}

func TestStoreListMissingDirectory(t *testing.T) {
	identities, err := NewStore(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(identities) != 0 {
		t.Fatalf("List = %v, want empty", identities)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.npy"), []byte("not an array"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewStore(dir).Load("bad"); !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
}

func TestStoreRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "data"))
	if err := os.MkdirAll(store.Dir(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTestVolume(t, dir, "outside", Shape{Depth: 1, Height: 1, Width: 1})

	for _, identity := range []string{"", "../outside", "a/b", `a\b`} {
		if _, err := store.Load(identity); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Load(%q): err = %v, want ErrNotFound", identity, err)
		}
		if store.Exists(identity) {
			t.Fatalf("Exists(%q) = true", identity)
		}
	}
}

func TestStoreExists(t *testing.T) {
	dir := t.TempDir()
	writeTestVolume(t, dir, "present", Shape{Depth: 1, Height: 1, Width: 1})
	store := NewStore(dir)
	if !store.Exists("present") {
		t.Fatal("Exists(present) = false")
	}
	if store.Exists("absent") {
		t.Fatal("Exists(absent) = true")
	}
}
