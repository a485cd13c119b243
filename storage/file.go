package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// FileStore keeps one text file per key under a data directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: create data directory %s: %v", ErrStorageUnavailable, dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) ReadBlob(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: read %s: %v", ErrStorageUnavailable, key, err)
	}
	return string(data), true, nil
}

func (f *FileStore) WriteBlob(ctx context.Context, key, text string) error {
	if err := os.WriteFile(f.path(key), []byte(text), 0600); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			return fmt.Errorf("%w: write %s: %v", ErrStorageFull, key, err)
		}
		return fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, key, err)
	}
	return nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
