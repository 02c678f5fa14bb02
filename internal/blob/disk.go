package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore keeps blobs as files in a single directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns a store over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the bytes to a file under the store directory.
func (s *DiskStore) Save(_ context.Context, name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write photo file: %w", err)
	}
	return nil
}

// Load reads the file back.
func (s *DiskStore) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read photo file: %w", err)
	}
	return data, nil
}

// Remove deletes the file. A missing file is not an error.
func (s *DiskStore) Remove(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove photo file: %w", err)
	}
	return nil
}
