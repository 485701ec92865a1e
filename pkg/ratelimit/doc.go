// Package ratelimit provides client-side rate limiting for Riot API requests.
//
// The Riot API enforces two caps on one key at the same time (for development
// keys: 20 requests per second and 100 requests per two minutes), so the
// scraper gates every request through a Dual limiter combining a short and a
// long token bucket window.
//
// Interface:
//
// All rate limiters implement the Limiter interface:
//   - Allow() bool - Check if a request is allowed
//   - Wait() - Block until a request is allowed
//   - Reset() - Reset the limiter state
//
// Usage:
//
//	limiter := ratelimit.NewDual(20, 100)
//	limiter.Wait() // blocks until both windows have capacity
package ratelimit
