package ratelimit

import (
	"sync"
	"time"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	// Allow checks if a request is allowed under the current rate limit
	Allow() bool
	// Wait blocks until the rate limit allows another request
	Wait()
	// Reset resets the rate limiter state
	Reset()
}

// TokenBucket implements a token bucket rate limiter
type TokenBucket struct {
	capacity     int           // Maximum number of tokens
	tokens       int           // Current number of tokens
	refillPeriod time.Duration // Period after which bucket is refilled
	lastRefill   time.Time     // Last time the bucket was refilled
	mu           sync.Mutex
}

// NewTokenBucket creates a new token bucket rate limiter
func NewTokenBucket(capacity int, refillPeriod time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:     capacity,
		tokens:       capacity,
		refillPeriod: refillPeriod,
		lastRefill:   time.Now(),
	}
}

// Allow checks if a request can proceed
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}

	return false
}

// Wait blocks until a token is available
func (tb *TokenBucket) Wait() {
	for !tb.Allow() {
		tb.mu.Lock()
		timeUntilRefill := tb.refillPeriod - time.Since(tb.lastRefill)
		tb.mu.Unlock()

		if timeUntilRefill > 0 {
			time.Sleep(timeUntilRefill)
		} else {
			// Small sleep to prevent busy waiting
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// Reset resets the token bucket to full capacity
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastRefill = time.Now()
}

// refill adds tokens based on elapsed time
func (tb *TokenBucket) refill() {
	now := time.Now()
	if now.Sub(tb.lastRefill) >= tb.refillPeriod {
		tb.tokens = tb.capacity
		tb.lastRefill = now
	}
}

// Dual combines a short and a long window limiter; a request is allowed only
// when both windows have capacity. The Riot API enforces exactly this shape:
// a per-second cap and a per-two-minutes cap on the same key.
type Dual struct {
	short Limiter
	long  Limiter
}

// NewDual creates a limiter enforcing both window caps
func NewDual(perSecond, perTwoMinutes int) *Dual {
	return &Dual{
		short: NewTokenBucket(perSecond, time.Second),
		long:  NewTokenBucket(perTwoMinutes, 2*time.Minute),
	}
}

// Allow checks both windows; a token is consumed from each only when both
// would allow the request, so a denied call does not burn capacity.
func (d *Dual) Allow() bool {
	// Peek is not part of the token bucket contract, so consume from the
	// long window first and refund on short-window denial.
	if !d.long.Allow() {
		return false
	}
	if !d.short.Allow() {
		d.refundLong()
		return false
	}
	return true
}

// Wait blocks until both windows allow another request
func (d *Dual) Wait() {
	for !d.Allow() {
		time.Sleep(10 * time.Millisecond)
	}
}

// Reset resets both windows
func (d *Dual) Reset() {
	d.short.Reset()
	d.long.Reset()
}

func (d *Dual) refundLong() {
	if tb, ok := d.long.(*TokenBucket); ok {
		tb.mu.Lock()
		if tb.tokens < tb.capacity {
			tb.tokens++
		}
		tb.mu.Unlock()
	}
}
