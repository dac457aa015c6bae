package ratelimit

import (
	"context"
	"math/rand"
	"time"
)

// Limiter paces outgoing requests, with optional jitter so request timing
// does not form a perfectly regular pattern. It is safe for concurrent use
// by multiple goroutines.
type Limiter struct {
	ticker   *time.Ticker
	jitter   float64 // 0.0 to 1.0
	interval time.Duration
	ch       <-chan time.Time
}

// NewLimiter creates a limiter allowing rps requests per second with the
// given jitter factor (clamped to [0, 1]). If rps <= 0, the limiter never
// blocks.
func NewLimiter(rps float64, jitter float64) *Limiter {
	if rps <= 0 {
		return &Limiter{jitter: jitter}
	}

	if jitter < 0 {
		jitter = 0
	} else if jitter > 1 {
		jitter = 1
	}

	interval := time.Duration(float64(time.Second) / rps)
	ticker := time.NewTicker(interval)

	return &Limiter{
		ticker:   ticker,
		jitter:   jitter,
		interval: interval,
		ch:       ticker.C,
	}
}

// Wait blocks until the next request may proceed, or until the context is
// canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.ch == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ch:
		if l.jitter > 0 {
			// Random delay in +/- (jitter * interval). The ticker already
			// enforces the minimum interval, so negative jitter means
			// "proceed immediately on tick".
			factor := (rand.Float64() * 2) - 1.0
			delay := time.Duration(float64(l.interval) * l.jitter * factor)
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return nil
}

// Stop releases the limiter's resources.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
}
