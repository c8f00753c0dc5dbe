package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer, so Redis can be swapped for
// another store (or a fake in tests).
type Cache interface {
	// Get loads the value at key into dest.
	// found = false on a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded) under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
