// Package ratelimit implements polite request pacing for the ratings API.
// The API publishes no rate limit headers, so pacing is a fixed minimum
// interval between page fetches rather than header-driven gating.
package ratelimit

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ratingsThrottlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ratings_throttles_total",
		Help: "Total number of requests delayed by the pacer",
	})
)

// Limiter enforces a minimum interval between consecutive requests.
// The scraper issues requests strictly sequentially, so no locking is
// needed; a Limiter must not be shared across goroutines.
type Limiter struct {
	interval time.Duration
	last     time.Time
}

// New creates a limiter with the given minimum interval between
// requests. A zero or negative interval disables pacing.
func New(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// Wait blocks until the interval since the previous request has passed,
// or the context is cancelled. The first call never blocks.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return nil
	}

	if !l.last.IsZero() {
		wait := l.interval - time.Since(l.last)
		if wait > 0 {
			ratingsThrottlesTotal.Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}

	l.last = time.Now()
	return nil
}
