package objstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSStore keeps objects under a local directory. Used for development
// and by the CLI; logical paths map onto the filesystem.
type FSStore struct {
	root string
}

func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

func (f *FSStore) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object path %q", path)
	}

	return filepath.Join(f.root, clean), nil
}

func (f *FSStore) Get(_ context.Context, path string) (*Object, error) {
	full, err := f.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("reading object %s: %w", path, err)
	}

	// No content-type metadata on disk; callers sniff.
	return &Object{Bytes: data}, nil
}

func (f *FSStore) Put(_ context.Context, path string, data []byte, _ string) error {
	full, err := f.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating object directory: %w", err)
	}

	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("writing object %s: %w", path, err)
	}

	return nil
}
