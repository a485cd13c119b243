package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"

	"github.com/Aayush9266/gtd-app/logging"
)

// BreakerStore wraps a BlobStore in a circuit breaker so a persistently
// failing medium surfaces as ErrStorageUnavailable instead of hammering
// the backend on every call.
type BreakerStore struct {
	inner   BlobStore
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerStore(inner BlobStore, name string) *BreakerStore {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return &BreakerStore{inner: inner, breaker: breaker}
}

func (b *BreakerStore) ReadBlob(ctx context.Context, key string) (string, bool, error) {
	type readResult struct {
		text string
		ok   bool
	}
	result, err := b.breaker.Execute(func() (interface{}, error) {
		text, ok, err := b.inner.ReadBlob(ctx, key)
		if err != nil {
			return nil, err
		}
		return readResult{text: text, ok: ok}, nil
	})
	if err != nil {
		return "", false, translateBreakerErr(err)
	}
	r := result.(readResult)
	return r.text, r.ok, nil
}

func (b *BreakerStore) WriteBlob(ctx context.Context, key, text string) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.inner.WriteBlob(ctx, key, text)
	})
	if err != nil {
		return translateBreakerErr(err)
	}
	return nil
}

func translateBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: circuit breaker open: %v", ErrStorageUnavailable, err)
	}
	return err
}
