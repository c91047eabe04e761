package fetch

import (
	"context"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"
)

// Body bytes read per response; anything beyond is discarded before
// parsing.
const maxBodyBytes = 1 << 20

const defaultRequestTimeout = 10 * time.Second

// Doer issues a single HTTP request. *network.Client satisfies it; tests
// substitute fixture-backed implementations.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// Fetcher performs one rate-governed GET and returns the parsed
// document. All failures are *Error values.
type Fetcher struct {
	client   Doer
	governor *Governor
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewFetcher(client Doer, governor *Governor, timeout time.Duration, logger zerolog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Fetcher{
		client:   client,
		governor: governor,
		timeout:  timeout,
		logger:   logger,
	}
}

// Fetch retrieves target on behalf of sourceID. It consumes a Governor
// slot for the source, applies the default header set plus any extras,
// and enforces the per-request timeout.
func (f *Fetcher) Fetch(ctx context.Context, sourceID string, target string, headers map[string]string) (*goquery.Document, error) {
	if f.governor != nil {
		if err := f.governor.Acquire(ctx, sourceID); err != nil {
			return nil, networkError(target, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, networkError(target, err)
	}
	applyHeaders(req, headers)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, networkError(target, err)
	}
	defer resp.Body.Close()

	f.logger.Debug().
		Str("source", sourceID).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("fetched")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(target, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, networkError(target, err)
	}
	return doc, nil
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	merged := map[string]string{
		"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"accept-language": "en-US,en;q=0.9",
	}
	for key, value := range headers {
		merged[key] = value
	}
	for key, value := range merged {
		req.Header.Set(key, value)
	}
}
