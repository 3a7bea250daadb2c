package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outgoing catalog requests with a token bucket so a
// burst of scroll triggers across many sessions cannot flood the upstream.
type RateLimiter struct {
	limiter *rate.Limiter
	calls   atomic.Int64
}

// NewRateLimiter creates a limiter allowing perSecond requests on average
// with bursts of up to burst requests. A non-positive perSecond disables
// throttling.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a request may proceed or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	r.calls.Add(1)
	return nil
}

// Calls returns the number of requests admitted so far.
func (r *RateLimiter) Calls() int64 {
	return r.calls.Load()
}

// Limit returns the configured steady-state rate in requests per second.
func (r *RateLimiter) Limit() float64 {
	return float64(r.limiter.Limit())
}

// Burst returns the configured burst size.
func (r *RateLimiter) Burst() int {
	return r.limiter.Burst()
}
