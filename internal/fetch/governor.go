package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Governor enforces a minimum spacing between successive requests to
// the same source. Each source gets its own limiter, created lazily, so
// one source waiting never holds up another.
type Governor struct {
	mu    sync.Mutex
	m     map[string]*rate.Limiter
	limit rate.Limit
}

// NewGovernor builds a Governor with the given inter-request delay.
// delay <= 0 disables pacing.
func NewGovernor(delay time.Duration) *Governor {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Governor{
		m:     make(map[string]*rate.Limiter),
		limit: limit,
	}
}

func (g *Governor) limiterFor(sourceID string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()

	if lim, ok := g.m[sourceID]; ok {
		return lim
	}
	lim := rate.NewLimiter(g.limit, 1)
	g.m[sourceID] = lim
	return lim
}

// Acquire blocks until the source's delay since its previous request
// has elapsed, or ctx is done. Deadline failures surface as
// context.DeadlineExceeded so callers can classify them; Wait's own
// errors don't carry it.
func (g *Governor) Acquire(ctx context.Context, sourceID string) error {
	err := g.limiterFor(sourceID).Wait(ctx)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	// Wait refuses up front when the pause cannot finish before the
	// deadline, while ctx.Err() is still nil.
	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("%s: rate wait: %w", sourceID, context.DeadlineExceeded)
	}
	return err
}
