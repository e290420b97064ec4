package manychat

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// minDispatchInterval is the spacing floor between consecutive dispatch
// attempts from one client, regardless of the configured per-minute
// budget.
const minDispatchInterval = time.Second

// RateLimiter bounds outbound throughput with an admission gate sized to
// the per-minute budget and a minimum spacing between dispatches. It is
// safe for concurrent use; responses may still arrive out of order.
type RateLimiter struct {
	gate     *semaphore.Weighted
	interval time.Duration

	mu sync.Mutex
	// last is the most recently reserved dispatch time. Reservations only
	// move it forward, so spacing holds even when many goroutines are
	// waiting.
	last time.Time
}

// NewRateLimiter creates a limiter for the given requests-per-minute
// budget. The gate holds ceil(perMinute/60) permits, never fewer than one.
func NewRateLimiter(perMinute int) *RateLimiter {
	permits := (perMinute + 59) / 60
	if permits < 1 {
		permits = 1
	}
	return &RateLimiter{
		gate:     semaphore.NewWeighted(int64(permits)),
		interval: minDispatchInterval,
	}
}

// Wait blocks until the caller may dispatch: it acquires a gate permit,
// then sleeps out any remainder of the spacing interval since the
// previous dispatch. The permit is released when Wait returns; ctx
// cancellation aborts either wait without leaking a permit.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := rl.gate.Acquire(ctx, 1); err != nil {
		return err
	}
	defer rl.gate.Release(1)

	rl.mu.Lock()
	now := time.Now()
	target := rl.last.Add(rl.interval)
	if target.Before(now) {
		target = now
	}
	rl.last = target
	rl.mu.Unlock()

	if wait := time.Until(target); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
