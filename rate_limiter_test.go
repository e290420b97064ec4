package manychat

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNewRateLimiterPermits(t *testing.T) {
	tests := []struct {
		perMinute int
		want      int64
	}{
		{1, 1},
		{59, 1},
		{60, 1},
		{61, 2},
		{100, 2},
		{600, 10},
		{0, 1},
		{-5, 1},
	}

	for _, tt := range tests {
		rl := NewRateLimiter(tt.perMinute)
		// Drain the gate to count permits.
		var got int64
		for rl.gate.TryAcquire(1) {
			got++
		}
		if got != tt.want {
			t.Errorf("NewRateLimiter(%d): expected %d permits, got %d", tt.perMinute, tt.want, got)
		}
	}
}

func TestRateLimiterSpacing(t *testing.T) {
	rl := NewRateLimiter(600)
	rl.interval = 30 * time.Millisecond

	ctx := context.Background()
	var stamps []time.Time
	for i := 0; i < 4; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("Wait() returned error: %v", err)
		}
		stamps = append(stamps, time.Now())
	}

	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		if gap < rl.interval-5*time.Millisecond {
			t.Errorf("Dispatches %d and %d only %v apart, want at least %v", i-1, i, gap, rl.interval)
		}
	}
}

func TestRateLimiterSpacingConcurrent(t *testing.T) {
	rl := NewRateLimiter(600)
	rl.interval = 20 * time.Millisecond

	const n = 5
	var mu sync.Mutex
	var stamps []time.Time

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := rl.Wait(context.Background()); err != nil {
				t.Errorf("Wait() returned error: %v", err)
				return
			}
			mu.Lock()
			stamps = append(stamps, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(stamps) != n {
		t.Fatalf("Expected %d dispatches, got %d", n, len(stamps))
	}

	// The whole batch must span at least (n-1) intervals.
	first, last := stamps[0], stamps[0]
	for _, s := range stamps[1:] {
		if s.Before(first) {
			first = s
		}
		if s.After(last) {
			last = s
		}
	}
	minSpan := time.Duration(n-1)*rl.interval - 10*time.Millisecond
	if span := last.Sub(first); span < minSpan {
		t.Errorf("Concurrent dispatches spanned %v, want at least %v", span, minSpan)
	}
}

func TestRateLimiterCancellation(t *testing.T) {
	rl := NewRateLimiter(60)
	rl.interval = time.Minute

	// Prime the reservation clock so the next Wait must sleep.
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("Priming Wait() returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := rl.Wait(ctx)
	if err == nil {
		t.Fatal("Expected cancellation error, got nil")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Wait did not return promptly after cancellation, took %v", elapsed)
	}

	// The permit must not leak on cancellation.
	if !rl.gate.TryAcquire(1) {
		t.Error("Expected gate permit to be released after cancelled Wait")
	}
	rl.gate.Release(1)
}

func TestMinDispatchInterval(t *testing.T) {
	if minDispatchInterval != time.Second {
		t.Errorf("Expected one second dispatch floor, got %v", minDispatchInterval)
	}
	rl := NewRateLimiter(6000)
	if rl.interval != minDispatchInterval {
		t.Errorf("Expected interval pinned to the floor, got %v", rl.interval)
	}
}
