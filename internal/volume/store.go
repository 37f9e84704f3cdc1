package volume

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const volumeExtension = ".npy"

// Library abstracts the case listing and loading surface so request handlers
// and the session cache can be exercised against in-memory doubles.
type Library interface {
	// List returns all case identities in stable lexicographic order.
	List() ([]string, error)
	// Exists reports whether a backing file exists for the identity.
	Exists(identity string) bool
	// Load materializes the named volume in memory.
	Load(identity string) (*Volume, error)
}

// Store is the filesystem-backed Library: one .npy file per case in a single
// data directory.
type Store struct {
	dir string
}

// NewStore returns a Store reading volumes from dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the configured data directory.
func (s *Store) Dir() string { return s.dir }

// Load reads and parses the backing file for identity. The whole volume is
// materialized; there is no partial or streamed loading.
func (s *Store) Load(identity string) (*Volume, error) {
	path, err := s.volumePath(identity)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, identity)
		}
		return nil, fmt.Errorf("open volume %s: %w", identity, err)
	}
	defer file.Close()

	shape, data, err := readNPY(file)
	if err != nil {
		return nil, fmt.Errorf("volume %s: %w", identity, err)
	}
	return &Volume{identity: identity, shape: shape, data: data}, nil
}

// Exists reports whether a backing file is present for identity.
func (s *Store) Exists(identity string) bool {
	path, err := s.volumePath(identity)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// List scans the data directory for volume files and returns their
// identities sorted lexicographically. The directory is re-read on every
// call so newly added cases appear without a restart.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan data directory: %w", err)
	}

	identities := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), volumeExtension) {
			continue
		}
		identities = append(identities, strings.TrimSuffix(name, filepath.Ext(name)))
	}
	sort.Strings(identities)
	return identities, nil
}

// volumePath rejects identities that would escape the data directory.
func (s *Store) volumePath(identity string) (string, error) {
	if identity == "" || identity != filepath.Base(identity) || strings.ContainsAny(identity, "/\\") {
		return "", fmt.Errorf("%w: %q", ErrNotFound, identity)
	}
	return filepath.Join(s.dir, identity+volumeExtension), nil
}
