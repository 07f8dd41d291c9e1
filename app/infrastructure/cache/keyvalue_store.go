package cache

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
)

// KeyValueStore defines the interface for cache storage backends
type KeyValueStore interface {
	// Set stores a string value with an expiration time
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Get retrieves a string value; the bool reports whether the key was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Has checks if a key exists without reading its value
	Has(ctx context.Context, key string) (bool, error)

	// Delete removes a key from the store
	Delete(ctx context.Context, key string) error

	// DeletePattern removes all keys matching a glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Clear removes every entry owned by this store
	Clear(ctx context.Context) error

	// Close releases the underlying store connection
	Close() error

	// HealthCheck verifies store connectivity
	HealthCheck(ctx context.Context) error
}

// MutexStore is implemented by stores that can coordinate work across
// replicas with a distributed lock
type MutexStore interface {
	NewMutex(name string, options ...redsync.Option) *redsync.Mutex
}

// PurgeableStore is implemented by stores that keep expired entries
// around until something sweeps them
type PurgeableStore interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
