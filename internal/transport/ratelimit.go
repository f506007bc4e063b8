// Package transport – outbound rate limiting.
//
// A single token bucket throttles the whole client: the gateway talks to one
// backend, so there is no per-identity keying here, only protection against
// hammering the API from tight loops (dashboard refreshes, bulk updates).
// The limiter waits rather than rejects — a delayed request is still a
// correct request — and honors context cancellation while waiting.
package transport

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimit wraps a Doer with a process-local token bucket.
type RateLimit struct {
	next Doer
	lim  *rate.Limiter
}

// NewRateLimit constructs a limiter with the given tokens-per-second and
// burst size. rps <= 0 disables limiting; burst values <= 0 are coerced to 1.
func NewRateLimit(next Doer, rps float64, burst int) *RateLimit {
	if rps <= 0 {
		return &RateLimit{next: next}
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimit{next: next, lim: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Do implements Doer.
func (r *RateLimit) Do(ctx context.Context, req *Request) (*Response, error) {
	if r.lim != nil {
		if err := r.lim.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return r.next.Do(ctx, req)
}
