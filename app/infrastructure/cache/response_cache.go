package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"golang.org/x/sync/singleflight"

	"github.com/RumenDamyanov/go-seo/app/utils/logger"
	"github.com/RumenDamyanov/go-seo/app/utils/metrics"
	"github.com/RumenDamyanov/go-seo/config"
)

// ResponseCache is a read-through cache for generated SEO content. Store
// failures are swallowed and treated as misses so a broken cache only
// costs performance, never availability.
type ResponseCache struct {
	store   KeyValueStore
	keys    *KeyGenerator
	ttl     time.Duration
	enabled bool
	group   singleflight.Group
	locks   MutexStore
}

// NewResponseCache creates a response cache on top of the given store
func NewResponseCache(store KeyValueStore, keys *KeyGenerator, cfg *config.Config) *ResponseCache {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &ResponseCache{
		store:   store,
		keys:    keys,
		ttl:     ttl,
		enabled: cfg.Cache.Enabled,
	}
	if locks, ok := store.(MutexStore); ok {
		c.locks = locks
	}
	return c
}

// Enabled reports whether lookups and writes are active
func (c *ResponseCache) Enabled() bool {
	return c.enabled && c.store != nil
}

// Keys exposes the key generator so callers derive keys consistently
func (c *ResponseCache) Keys() *KeyGenerator {
	return c.keys
}

// Remember returns the cached value for key, computing and storing it on
// a miss. Empty computed values are returned but never cached. Identical
// concurrent misses share one computation.
func (c *ResponseCache) Remember(ctx context.Context, key string, compute func(context.Context) (string, error)) (string, error) {
	if !c.Enabled() {
		return compute(ctx)
	}

	if value, ok := c.lookup(ctx, key); ok {
		metrics.RecordCacheHit()
		return value, nil
	}
	metrics.RecordCacheMiss()

	result, err, _ := c.group.Do(key, func() (any, error) {
		return c.computeAndStore(ctx, key, compute)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// RememberList is Remember for string-list values, carried through the
// store as JSON
func (c *ResponseCache) RememberList(ctx context.Context, key string, compute func(context.Context) ([]string, error)) ([]string, error) {
	raw, err := c.Remember(ctx, key, func(ctx context.Context) (string, error) {
		values, err := compute(ctx)
		if err != nil {
			return "", err
		}
		if len(values) == 0 {
			return "", nil
		}
		data, err := json.Marshal(values)
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		// A corrupt entry behaves like a miss
		c.Forget(ctx, key)
		return compute(ctx)
	}
	return values, nil
}

// Forget removes a single entry
func (c *ResponseCache) Forget(ctx context.Context, key string) {
	if !c.Enabled() {
		return
	}
	if err := c.store.Delete(ctx, key); err != nil {
		// Don't return error, just log it
		logger.GetLogger().Warnf("Cache delete failed for %s: %v", key, err)
	}
}

// InvalidateContent removes the analysis entry for one piece of content.
// Generation entries are content-addressed, so a content change already
// routes them to fresh keys.
func (c *ResponseCache) InvalidateContent(ctx context.Context, content string, metadata map[string]string) {
	c.Forget(ctx, c.keys.AnalysisKey(content, metadata))
}

// InvalidateAll clears the entire store
func (c *ResponseCache) InvalidateAll(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	if err := c.store.Clear(ctx); err != nil {
		// Don't return error, just log it
		logger.GetLogger().Warnf("Cache clear failed: %v", err)
	}
}

func (c *ResponseCache) computeAndStore(ctx context.Context, key string, compute func(context.Context) (string, error)) (string, error) {
	if c.locks != nil {
		mutex := c.locks.NewMutex(fmt.Sprintf(ComputeLockKeyPattern, key),
			redsync.WithExpiry(30*time.Second),
			redsync.WithTries(8),
		)
		if err := mutex.LockContext(ctx); err != nil {
			logger.GetLogger().Warnf("Cache lock unavailable for %s: %v", key, err)
		} else {
			defer func() {
				if _, err := mutex.UnlockContext(ctx); err != nil {
					logger.GetLogger().Warnf("Cache lock release failed for %s: %v", key, err)
				}
			}()
		}
	}

	// Another flight or replica may have stored the value while we waited
	if value, ok := c.lookup(ctx, key); ok {
		return value, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return "", err
	}
	if value != "" {
		c.write(ctx, key, value)
	}
	return value, nil
}

func (c *ResponseCache) lookup(ctx context.Context, key string) (string, bool) {
	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logger.GetLogger().Warnf("Cache read failed for %s: %v", key, err)
		return "", false
	}
	return value, ok
}

func (c *ResponseCache) write(ctx context.Context, key, value string) {
	if err := c.store.Set(ctx, key, value, c.ttl); err != nil {
		// Don't return error, just log it
		logger.GetLogger().Warnf("Cache write failed for %s: %v", key, err)
	}
}
