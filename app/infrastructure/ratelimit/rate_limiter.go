package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/utils/metrics"
	"github.com/RumenDamyanov/go-seo/config"
)

const acquirePollInterval = 50 * time.Millisecond

// RateLimiter owns one token bucket per backend identifier. Buckets are
// created on first use with capacity and refill rate derived from the
// per-minute request budget: a full minute of burst, refilled continuously.
// Rate limiter state is in-memory and per-process; in a multi-instance
// deployment the effective budget per backend is instances times the
// configured rate.
type RateLimiter struct {
	mu           sync.RWMutex
	buckets      map[string]*TokenBucket
	perBackend   map[string]int
	defaultRPM   int
	enabled      bool
	blockOnLimit bool
}

var _ ai.AdmissionController = (*RateLimiter)(nil)

// NewRateLimiter builds a limiter with a shared default budget. Disabled
// limiters admit everything.
func NewRateLimiter(enabled bool, requestsPerMinute int, blockOnLimit bool) *RateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 60
	}
	return &RateLimiter{
		buckets:      make(map[string]*TokenBucket),
		perBackend:   make(map[string]int),
		defaultRPM:   requestsPerMinute,
		enabled:      enabled,
		blockOnLimit: blockOnLimit,
	}
}

// NewRateLimiterFromConfig builds the limiter plus any per-backend budget
// overrides from the configuration.
func NewRateLimiterFromConfig(cfg *config.Config) *RateLimiter {
	limiter := NewRateLimiter(
		cfg.RateLimiting.Enabled,
		cfg.RateLimiting.RequestsPerMinute,
		cfg.RateLimiting.BlockOnLimit,
	)
	for name, settings := range cfg.Providers {
		if settings.RequestsPerMinute > 0 {
			limiter.SetBackendLimit(name, settings.RequestsPerMinute)
		}
	}
	return limiter
}

// SetBackendLimit overrides the per-minute budget for one backend. It takes
// effect when the backend's bucket is next created.
func (l *RateLimiter) SetBackendLimit(backend string, requestsPerMinute int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.perBackend[backend] = requestsPerMinute
}

func (l *RateLimiter) bucketFor(backend string) *TokenBucket {
	l.mu.RLock()
	bucket := l.buckets[backend]
	l.mu.RUnlock()
	if bucket != nil {
		return bucket
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if bucket = l.buckets[backend]; bucket != nil {
		return bucket
	}
	rpm := l.defaultRPM
	if override, ok := l.perBackend[backend]; ok && override > 0 {
		rpm = override
	}
	bucket = NewTokenBucket(rpm, float64(rpm)/60)
	l.buckets[backend] = bucket
	return bucket
}

// Acquire takes one admission token for a backend. With rate limiting
// disabled it always admits. On an empty bucket it returns a RateLimitError
// when blockOnLimit is set, otherwise false with no error.
func (l *RateLimiter) Acquire(backend string) (bool, error) {
	if !l.enabled {
		return true, nil
	}
	if l.bucketFor(backend).Consume(1) {
		return true, nil
	}
	metrics.RecordRateLimitDenied(backend)
	if l.blockOnLimit {
		return false, &ai.RateLimitError{Provider: backend}
	}
	return false, nil
}

// CanAcquire reports whether an admission token is available without
// consuming it.
func (l *RateLimiter) CanAcquire(backend string) bool {
	if !l.enabled {
		return true
	}
	return l.bucketFor(backend).HasTokens(1)
}

// WaitAndAcquire polls in small increments until a token is available, the
// wait budget elapses, or the context is done.
func (l *RateLimiter) WaitAndAcquire(ctx context.Context, backend string, maxWait time.Duration) bool {
	if !l.enabled {
		return true
	}
	bucket := l.bucketFor(backend)
	deadline := time.Now().Add(maxWait)
	for {
		if bucket.Consume(1) {
			return true
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			metrics.RecordRateLimitDenied(backend)
			return false
		}
		sleep := acquirePollInterval
		if remaining < sleep {
			sleep = remaining
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(sleep):
		}
	}
}

// Reset restores one backend's bucket to full capacity. Unknown backends are
// a no-op.
func (l *RateLimiter) Reset(backend string) {
	l.mu.RLock()
	bucket := l.buckets[backend]
	l.mu.RUnlock()
	if bucket != nil {
		bucket.Reset()
	}
}

// ResetAll restores every bucket to full capacity.
func (l *RateLimiter) ResetAll() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, bucket := range l.buckets {
		bucket.Reset()
	}
}

// Enabled reports whether rate limiting is active.
func (l *RateLimiter) Enabled() bool {
	return l.enabled
}
