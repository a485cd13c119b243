// Package storage provides the blob persistence the record stores depend on:
// one opaque text blob per named key, with no schema awareness.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrStorageUnavailable means the persistence medium cannot be accessed.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageFull means the medium rejected a write for lack of space.
	ErrStorageFull = errors.New("storage full")
)

// BlobStore stores and retrieves a single opaque text blob per key.
// ReadBlob returns ok=false when no blob exists for the key.
type BlobStore interface {
	ReadBlob(ctx context.Context, key string) (text string, ok bool, err error)
	WriteBlob(ctx context.Context, key, text string) error
}
