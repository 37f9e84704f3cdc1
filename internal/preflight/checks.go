package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDatabaseDir verifies that the directory holding the results database
// is writable. The database file itself is created on first open.
func CheckDatabaseDir(name, dbPath string) Result {
	dir := filepath.Dir(dbPath)
	res := CheckDirectoryAccess(name, dir)
	res.Name = name
	return res
}

// CheckVolumes reports how many .npy volumes the data directory holds.
// An empty directory passes; readers simply see no cases until volumes
// are generated or copied in.
func CheckVolumes(name, dataDir string) Result {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", dataDir, err)}
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".npy") {
			count++
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d volume(s) in %s", count, dataDir)}
}
