// Package ratelimit paces case execution.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter admits at most a fixed number of cases per second.
type Limiter struct {
	limiter *rate.Limiter
}

// New returns a limiter for casesPerSecond. Zero or negative disables
// limiting.
func New(casesPerSecond float64) *Limiter {
	if casesPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}

	// Burst of 1: the first case runs immediately, the rest are spaced out.
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(casesPerSecond), 1)}
}

// Wait blocks until the next case may run or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit returns the configured rate, 0 meaning unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
