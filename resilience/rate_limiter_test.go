package resilience

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 10.0, Burst: 5})

	for i := 0; i < 5; i++ {
		if !rl.Allow() {
			t.Errorf("request %d should be allowed", i)
		}
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	var limited atomic.Int32
	rl := NewRateLimiter(RateLimiterConfig{
		Name:    "test",
		Rate:    1.0,
		Burst:   2,
		OnLimit: func(string) { limited.Add(1) },
	})

	rl.Allow()
	rl.Allow()
	if rl.Allow() {
		t.Error("request should be rejected over burst limit")
	}
	if limited.Load() != 1 {
		t.Errorf("expected OnLimit once, got %d", limited.Load())
	}
}

func TestRateLimiter_WaitPacesRequests(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 20.0, Burst: 1})

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("expected pacing of ~100ms for 3 requests at 20/s, got %v", elapsed)
	}
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 0.5, Burst: 1})
	rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx); err == nil {
		t.Fatal("expected error when context expires before a token is available")
	} else if errors.Is(err, context.Canceled) {
		t.Errorf("expected deadline-related error, got %v", err)
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test"})
	if rl.Rate() != 2.0 {
		t.Errorf("expected default rate 2, got %v", rl.Rate())
	}
	if rl.Burst() != 2 {
		t.Errorf("expected burst to follow rate, got %d", rl.Burst())
	}

	cfg := DefaultRateLimiterConfig("whispir")
	if cfg.Name != "whispir" {
		t.Errorf("expected name 'whispir', got %q", cfg.Name)
	}
}
