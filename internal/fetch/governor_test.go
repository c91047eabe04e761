package fetch

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGovernorSpacesRequestsPerSource(t *testing.T) {
	g := NewGovernor(80 * time.Millisecond)
	ctx := context.Background()

	if err := g.Acquire(ctx, "indeed"); err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	start := time.Now()
	if err := g.Acquire(ctx, "indeed"); err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Fatalf("second acquire returned after %v, want >= 80ms spacing", elapsed)
	}
}

func TestGovernorSourcesDoNotContend(t *testing.T) {
	g := NewGovernor(500 * time.Millisecond)
	ctx := context.Background()

	if err := g.Acquire(ctx, "indeed"); err != nil {
		t.Fatalf("acquire indeed: %v", err)
	}

	start := time.Now()
	if err := g.Acquire(ctx, "linkedin"); err != nil {
		t.Fatalf("acquire linkedin: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("independent source waited %v", elapsed)
	}
}

func TestGovernorHonorsContext(t *testing.T) {
	g := NewGovernor(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := g.Acquire(ctx, "indeed"); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	err := g.Acquire(ctx, "indeed")
	if err == nil {
		t.Fatalf("expected context error for second acquire")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("deadline failure must carry context.DeadlineExceeded, got %v", err)
	}
}

func TestGovernorCancelledContext(t *testing.T) {
	g := NewGovernor(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	if err := g.Acquire(ctx, "indeed"); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	cancel()
	if err := g.Acquire(ctx, "indeed"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGovernorDisabledWithoutDelay(t *testing.T) {
	g := NewGovernor(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := g.Acquire(ctx, "indeed"); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("unpaced acquires took %v", elapsed)
	}
}
