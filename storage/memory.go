package storage

import "context"

// MemoryStore is a map-backed BlobStore used by tests. The hooks run before
// the underlying operation and allow tests to interleave calls or inject
// failures at specific points.
type MemoryStore struct {
	blobs map[string]string

	BeforeRead  func(key string)
	BeforeWrite func(key string)
	ReadErr     func(key string) error
	WriteErr    func(key string) error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]string)}
}

func (m *MemoryStore) ReadBlob(ctx context.Context, key string) (string, bool, error) {
	if m.BeforeRead != nil {
		m.BeforeRead(key)
	}
	if m.ReadErr != nil {
		if err := m.ReadErr(key); err != nil {
			return "", false, err
		}
	}
	text, ok := m.blobs[key]
	return text, ok, nil
}

func (m *MemoryStore) WriteBlob(ctx context.Context, key, text string) error {
	if m.BeforeWrite != nil {
		m.BeforeWrite(key)
	}
	if m.WriteErr != nil {
		if err := m.WriteErr(key); err != nil {
			return err
		}
	}
	m.blobs[key] = text
	return nil
}

// Seed stores a blob directly, bypassing hooks.
func (m *MemoryStore) Seed(key, text string) {
	m.blobs[key] = text
}

// Blob returns the stored text for key, for assertions.
func (m *MemoryStore) Blob(key string) (string, bool) {
	text, ok := m.blobs[key]
	return text, ok
}
