// Package storage persists uploaded files on the local disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore writes uploads under a single directory. The directory is
// created on first use. A file with the same name is overwritten.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a DiskStore rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{
		dir: dir,
	}
}

// Save writes the payload under the original filename and returns the
// stored path relative to the process working directory.
func (s *DiskStore) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory %s: %w", s.dir, err)
	}
	// Strip any client-supplied path components.
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return path, nil
}
