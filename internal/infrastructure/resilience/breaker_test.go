package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGuardDisabledPassesThrough(t *testing.T) {
	guard := NewGuard(Config{Enabled: false})
	calls := 0
	err := guard.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
}

func TestGuardNeverRetries(t *testing.T) {
	guard := NewGuard(DefaultConfig())
	calls := 0
	err := guard.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return errors.New("provider down")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected exactly one call per Do, got %d", calls)
	}
}

func TestGuardOpensAfterFailureRatio(t *testing.T) {
	guard := NewGuard(Config{
		Enabled:          true,
		MinRequests:      3,
		FailureRatio:     0.5,
		OpenTimeout:      time.Minute,
		HalfOpenMaxCalls: 1,
	})

	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		_ = guard.Do(context.Background(), "op", func(context.Context) error { return boom })
	}

	calls := 0
	err := guard.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	})
	if !IsOpen(err) {
		t.Fatalf("expected open breaker error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("open breaker must fail fast without calling, got %d calls", calls)
	}
}

func TestGuardIgnoresCallerCancellation(t *testing.T) {
	guard := NewGuard(Config{
		Enabled:          true,
		MinRequests:      3,
		FailureRatio:     0.5,
		OpenTimeout:      time.Minute,
		HalfOpenMaxCalls: 1,
	})

	for i := 0; i < 5; i++ {
		_ = guard.Do(context.Background(), "op", func(context.Context) error { return context.Canceled })
	}

	calls := 0
	err := guard.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("cancellations must not trip the breaker, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected call to run, got %d", calls)
	}
}

func TestGuardSeparatesOperations(t *testing.T) {
	guard := NewGuard(Config{
		Enabled:          true,
		MinRequests:      2,
		FailureRatio:     0.5,
		OpenTimeout:      time.Minute,
		HalfOpenMaxCalls: 1,
	})

	boom := errors.New("boom")
	for i := 0; i < 2; i++ {
		_ = guard.Do(context.Background(), "a", func(context.Context) error { return boom })
	}

	err := guard.Do(context.Background(), "b", func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("breaker for a different operation must stay closed, got %v", err)
	}
}
