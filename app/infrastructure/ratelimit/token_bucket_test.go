package ratelimit

import (
	"testing"
	"time"
)

// ── Construction ──

func TestNewTokenBucketStartsFull(t *testing.T) {
	b := NewTokenBucket(10, 1)
	if got := b.Available(); got < 9.99 || got > 10 {
		t.Errorf("new bucket Available() = %v, want 10", got)
	}
	if b.Capacity() != 10 {
		t.Errorf("Capacity() = %d, want 10", b.Capacity())
	}
}

func TestNewTokenBucketClampsInvalidInput(t *testing.T) {
	b := NewTokenBucket(0, -5)
	if b.Capacity() != 1 {
		t.Errorf("Capacity() = %d, want 1 after clamping", b.Capacity())
	}
	if !b.Consume(1) {
		t.Error("clamped bucket should still admit one token")
	}
}

// ── Bounds invariant ──

func TestTokenBucketBounds(t *testing.T) {
	b := NewTokenBucket(5, 100)
	check := func(step string) {
		got := b.Available()
		if got < 0 || got > 5 {
			t.Fatalf("%s: Available() = %v, want within [0, 5]", step, got)
		}
	}

	check("initial")
	for i := 0; i < 5; i++ {
		b.Consume(1)
		check("after consume")
	}
	b.Consume(1) // over-consume attempt
	check("after refused consume")
	time.Sleep(120 * time.Millisecond) // refill far beyond capacity at 100/s
	check("after long refill")
	b.Reset()
	check("after reset")
}

// ── Consume ──

func TestConsumeSubtractsTokens(t *testing.T) {
	b := NewTokenBucket(10, 0.001) // negligible refill during the test
	if !b.Consume(4) {
		t.Fatal("Consume(4) on a full bucket should succeed")
	}
	if got := b.Available(); got < 5.9 || got > 6.1 {
		t.Errorf("Available() = %v after consuming 4 of 10, want ~6", got)
	}
}

func TestConsumeRefusalLeavesStateUnchanged(t *testing.T) {
	b := NewTokenBucket(3, 0.001)
	if b.Consume(5) {
		t.Fatal("Consume(5) on a 3-token bucket should fail")
	}
	if got := b.Available(); got < 2.9 || got > 3 {
		t.Errorf("Available() = %v after refused consume, want ~3", got)
	}
}

// ── Lazy refill ──

func TestRefillMonotonicity(t *testing.T) {
	b := NewTokenBucket(10, 10) // 10 tokens/second
	if !b.Consume(5) {
		t.Fatal("initial Consume(5) should succeed")
	}
	before := b.Available()

	time.Sleep(100 * time.Millisecond) // ~1 token at 10/s

	after := b.Available()
	if after <= before {
		t.Errorf("Available() did not increase: before=%v after=%v", before, after)
	}
	if after < before+0.5 || after > before+3 {
		t.Errorf("refill after 100ms = %v, want roughly +1 over %v", after-before, before)
	}
}

func TestRefillNeverExceedsCapacity(t *testing.T) {
	b := NewTokenBucket(2, 1000)
	b.Consume(1)
	time.Sleep(50 * time.Millisecond) // refill budget far above capacity
	if got := b.Available(); got > 2 {
		t.Errorf("Available() = %v, want at most capacity 2", got)
	}
}

// ── HasTokens ──

func TestHasTokensDoesNotConsume(t *testing.T) {
	b := NewTokenBucket(2, 0.001)
	for i := 0; i < 5; i++ {
		if !b.HasTokens(1) {
			t.Fatalf("HasTokens(1) call %d = false, want true", i)
		}
	}
	if got := b.Available(); got < 1.9 {
		t.Errorf("Available() = %v after HasTokens calls, want ~2", got)
	}
}

// ── TimeUntilNextToken ──

func TestTimeUntilNextToken(t *testing.T) {
	b := NewTokenBucket(1, 1)
	if got := b.TimeUntilNextToken(); got != 0 {
		t.Errorf("full bucket TimeUntilNextToken() = %v, want 0", got)
	}

	b.Consume(1)
	got := b.TimeUntilNextToken()
	if got <= 500*time.Millisecond || got > time.Second {
		t.Errorf("drained bucket TimeUntilNextToken() = %v, want within (0.5s, 1s]", got)
	}
}

// ── Reset ──

func TestResetRestoresFullCapacity(t *testing.T) {
	b := NewTokenBucket(4, 0.001)
	b.Consume(4)
	if b.HasTokens(1) {
		t.Fatal("bucket should be empty before reset")
	}
	b.Reset()
	if got := b.Available(); got < 3.9 || got > 4 {
		t.Errorf("Available() = %v after Reset, want 4", got)
	}
}
