package ratelimit

import (
	"math"
	"sync"
	"time"
)

// TokenBucket is the atomic unit of admission control: a counter that refills
// continuously up to a capacity. Refill is computed lazily from elapsed
// wall-clock time on every access, so no background timer is needed.
//
// Invariant: 0 <= available <= capacity at all times.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64 // tokens per second
	available  float64
	lastRefill time.Time
}

// NewTokenBucket builds a full bucket. Capacity is clamped to at least one
// token and the refill rate must be positive.
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	if capacity < 1 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		available:  float64(capacity),
		lastRefill: time.Now(),
	}
}

// refill credits tokens for the time elapsed since the last refill. The
// caller must hold mu.
func (b *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	b.available = math.Min(float64(b.capacity), b.available+elapsed*b.refillRate)
	b.lastRefill = now
}

// Consume takes n tokens if available and reports whether it did. On refusal
// the bucket state is left unchanged.
func (b *TokenBucket) Consume(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	if b.available >= float64(n) {
		b.available -= float64(n)
		return true
	}
	return false
}

// HasTokens reports whether n tokens are available without consuming them.
func (b *TokenBucket) HasTokens(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	return b.available >= float64(n)
}

// TimeUntilNextToken returns how long until one full token is available, or
// zero if one already is.
func (b *TokenBucket) TimeUntilNextToken() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	if b.available >= 1 {
		return 0
	}
	seconds := (1 - b.available) / b.refillRate
	return time.Duration(seconds * float64(time.Second))
}

// Available returns the current token count after a lazy refill.
func (b *TokenBucket) Available() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	return b.available
}

// Capacity returns the bucket's maximum token count.
func (b *TokenBucket) Capacity() int {
	return b.capacity
}

// Reset restores the bucket to full capacity.
func (b *TokenBucket) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.available = float64(b.capacity)
	b.lastRefill = time.Now()
}
