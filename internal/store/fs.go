package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FSStore fetches a message's bytes from the local filesystem. A key is a
// path, optionally relative to Root.
type FSStore struct {
	Root string
}

func NewFSStore(root string) *FSStore {
	return &FSStore{Root: root}
}

func (s *FSStore) resolve(key string) string {
	if s.Root == "" {
		return key
	}
	return filepath.Join(s.Root, key)
}

func (s *FSStore) Fetch(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}
