package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"readstudy/internal/testsupport"
)

func TestRunAllPassesOnPreparedConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	checks := RunAll(cfg)
	if len(checks) == 0 {
		t.Fatal("no checks ran")
	}
	for _, check := range checks {
		if !check.Passed {
			t.Fatalf("check %q failed: %s", check.Name, check.Detail)
		}
	}
	if !Passed(checks) {
		t.Fatal("Passed = false")
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if checks := RunAll(nil); checks != nil {
		t.Fatalf("RunAll(nil) = %v", checks)
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	if res := CheckDirectoryAccess("dir", dir); !res.Passed {
		t.Fatalf("existing dir failed: %s", res.Detail)
	}
	if res := CheckDirectoryAccess("dir", filepath.Join(dir, "absent")); res.Passed {
		t.Fatal("missing dir passed")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if res := CheckDirectoryAccess("dir", file); res.Passed {
		t.Fatal("plain file passed")
	}
}

func TestCheckVolumesCounts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"p001.npy", "p002.npy", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	res := CheckVolumes("volumes", dir)
	if !res.Passed {
		t.Fatalf("check failed: %s", res.Detail)
	}
	if want := "2 volume(s) in " + dir; res.Detail != want {
		t.Fatalf("detail = %q, want %q", res.Detail, want)
	}
}
