package storage

import (
	"context"
	"errors"
	"testing"
)

func TestBreakerStorePassesThrough(t *testing.T) {
	inner := NewMemoryStore()
	store := NewBreakerStore(inner, "test-passthrough")

	ctx := context.Background()
	if err := store.WriteBlob(ctx, "gtd_tasks", "[]"); err != nil {
		t.Fatalf("write: %v", err)
	}
	text, ok, err := store.ReadBlob(ctx, "gtd_tasks")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !ok || text != "[]" {
		t.Fatalf("expected stored blob back, got ok=%v text=%q", ok, text)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := NewMemoryStore()
	mediumDown := errors.New("disk on fire")
	inner.WriteErr = func(key string) error { return mediumDown }
	store := NewBreakerStore(inner, "test-trip")

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if err := store.WriteBlob(ctx, "gtd_tasks", "[]"); !errors.Is(err, mediumDown) {
			t.Fatalf("call %d: expected medium error, got %v", i, err)
		}
	}

	// Breaker trips after more than 3 consecutive failures; the open circuit
	// surfaces as the storage-unavailable sentinel.
	err := store.WriteBlob(ctx, "gtd_tasks", "[]")
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable from open breaker, got %v", err)
	}

	// Reads share the breaker state with writes.
	if _, _, err := store.ReadBlob(ctx, "gtd_tasks"); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable on read, got %v", err)
	}
}
