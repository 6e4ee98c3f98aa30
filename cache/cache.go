// Package cache provides the shared keyed TTL store used for rate-limit
// counters and revoked tokens. Deployments without Redis run on the no-op
// variant, which never limits and never revokes.
package cache

import (
	"context"
	"time"
)

// Store is a keyed value store with per-key TTL.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Incr atomically increments the counter at key, setting ttl when the
	// key is created, and returns the new value.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type noopStore struct{}

// Noop returns a Store that holds nothing: Get always misses and Incr always
// returns 1.
func Noop() Store { return noopStore{} }

func (noopStore) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }

func (noopStore) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }

func (noopStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return 1, nil
}
