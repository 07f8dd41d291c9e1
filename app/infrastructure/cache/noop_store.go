package cache

import (
	"context"
	"time"
)

// NoOpStore provides a no-operation store for deployments that disable
// caching entirely
type NoOpStore struct{}

// Set is a no-op implementation
func (n *NoOpStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}

// Get always reports a miss
func (n *NoOpStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

// Has always returns false
func (n *NoOpStore) Has(ctx context.Context, key string) (bool, error) {
	return false, nil
}

// Delete is a no-op implementation
func (n *NoOpStore) Delete(ctx context.Context, key string) error {
	return nil
}

// DeletePattern is a no-op implementation
func (n *NoOpStore) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

// Clear is a no-op implementation
func (n *NoOpStore) Clear(ctx context.Context) error {
	return nil
}

// Close is a no-op implementation
func (n *NoOpStore) Close() error {
	return nil
}

// HealthCheck always returns nil (healthy)
func (n *NoOpStore) HealthCheck(ctx context.Context) error {
	return nil
}
