package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jimezsa/jobscout/internal/models"
	"github.com/jimezsa/jobscout/internal/source"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnknownSource marks a request for a source that was never
	// registered. This is a caller mistake, not a transient condition.
	ErrUnknownSource = errors.New("unknown source")
	// ErrTimeout marks a source whose fetch did not complete before
	// the overall deadline.
	ErrTimeout = errors.New("search timed out")
)

const (
	DefaultLimit  = 25
	DefaultMax    = 100
	defaultWindow = 60 * time.Second
)

// Request describes one multi-source search. Empty Sources means all
// registered sources; Limit <= 0 falls back to the default and is
// always capped at the configured maximum.
type Request struct {
	Query    string
	Location string
	Sources  []string
	Limit    int
	Remote   bool
}

// SourceResult is the per-source outcome: listings or a failure, never
// both. A fetched page that parsed to zero valid cards is a success
// with an empty slice.
type SourceResult struct {
	Listings []models.Job
	Err      error
}

// Result maps each registered requested source to its outcome.
type Result struct {
	Sources map[string]SourceResult
}

// Total counts listings across successful sources.
func (r Result) Total() int {
	total := 0
	for _, res := range r.Sources {
		if res.Err == nil {
			total += len(res.Listings)
		}
	}
	return total
}

// Failed counts sources that ended in an error.
func (r Result) Failed() int {
	failed := 0
	for _, res := range r.Sources {
		if res.Err != nil {
			failed++
		}
	}
	return failed
}

// Orchestrator fans a search out across registered sources, isolating
// each source's failures from its siblings.
type Orchestrator struct {
	registry map[string]source.Source
	limit    int
	maxLimit int
	window   time.Duration
	logger   zerolog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLimits overrides the default and maximum per-source listing
// counts. Non-positive values keep the built-in defaults.
func WithLimits(def, max int) Option {
	return func(o *Orchestrator) {
		if def > 0 {
			o.limit = def
		}
		if max > 0 {
			o.maxLimit = max
		}
	}
}

// WithWindow sets the overall deadline applied to SearchAll when the
// caller's context has none.
func WithWindow(window time.Duration) Option {
	return func(o *Orchestrator) {
		if window > 0 {
			o.window = window
		}
	}
}

func New(registry map[string]source.Source, logger zerolog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: registry,
		limit:    DefaultLimit,
		maxLimit: DefaultMax,
		window:   defaultWindow,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Sources returns the registered source names, sorted.
func (o *Orchestrator) Sources() []string {
	return source.Names(o.registry)
}

// SearchAll runs the request against every registered requested source
// concurrently and records a per-source outcome for each. Unregistered
// requested identifiers are ignored. No source failure aborts the call;
// a source still running at the deadline is recorded as ErrTimeout.
func (o *Orchestrator) SearchAll(ctx context.Context, req Request) Result {
	selected := o.selectSources(req.Sources)
	result := Result{Sources: make(map[string]SourceResult, len(selected))}
	if len(selected) == 0 {
		return result
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.window)
		defer cancel()
	}

	params := models.SearchParams{
		Query:    req.Query,
		Location: req.Location,
		Limit:    o.capLimit(req.Limit),
		Remote:   req.Remote,
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for _, src := range selected {
		src := src
		g.Go(func() error {
			start := time.Now()
			jobs, err := src.Search(ctx, params)
			if err != nil {
				jobs = nil
				// Classify from the source's own error chain: an HTTP
				// failure arriving at the deadline is still an HTTP
				// failure, not a timeout.
				if errors.Is(err, context.DeadlineExceeded) {
					err = fmt.Errorf("%w: %s", ErrTimeout, src.Name())
				}
				o.logger.Warn().Str("source", src.Name()).Err(err).Msg("source failed")
			} else {
				o.logger.Debug().
					Str("source", src.Name()).
					Int("listings", len(jobs)).
					Dur("elapsed", time.Since(start)).
					Msg("source done")
			}

			mu.Lock()
			result.Sources[src.Name()] = SourceResult{Listings: jobs, Err: err}
			mu.Unlock()
			// Best effort: a failed source never cancels siblings.
			return nil
		})
	}
	_ = g.Wait()

	return result
}

// SearchSingle is SearchAll narrowed to one source, returning the raw
// error. An unregistered identifier fails before any network activity.
func (o *Orchestrator) SearchSingle(ctx context.Context, sourceID, query, location string, limit int) ([]models.Job, error) {
	src, ok := o.registry[sourceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, sourceID)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.window)
		defer cancel()
	}

	return src.Search(ctx, models.SearchParams{
		Query:    query,
		Location: location,
		Limit:    o.capLimit(limit),
	})
}

func (o *Orchestrator) selectSources(requested []string) []source.Source {
	requested = source.NormalizeSources(requested)
	if len(requested) == 0 {
		requested = source.Names(o.registry)
	}

	seen := make(map[string]struct{}, len(requested))
	selected := make([]source.Source, 0, len(requested))
	for _, name := range requested {
		src, ok := o.registry[name]
		if !ok {
			o.logger.Debug().Str("source", name).Msg("ignoring unregistered source")
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		selected = append(selected, src)
	}
	return selected
}

func (o *Orchestrator) capLimit(limit int) int {
	if limit <= 0 {
		limit = o.limit
	}
	if limit > o.maxLimit {
		limit = o.maxLimit
	}
	return limit
}
