package fetch

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"
)

type fakeDoer struct {
	status  int
	body    string
	err     error
	lastReq *fhttp.Request
	calls   int
}

func (f *fakeDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &fhttp.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     fhttp.Header{},
	}, nil
}

func newTestFetcher(doer Doer) *Fetcher {
	return NewFetcher(doer, NewGovernor(0), 5*time.Second, zerolog.Nop())
}

func TestFetchParsesDocument(t *testing.T) {
	doer := &fakeDoer{status: 200, body: `<html><body><h1 class="title">hello</h1></body></html>`}
	f := newTestFetcher(doer)

	doc, err := f.Fetch(context.Background(), "indeed", "https://example.com/jobs", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := doc.Find("h1.title").Text(); got != "hello" {
		t.Fatalf("unexpected document content: %q", got)
	}
}

func TestFetchAppliesDefaultHeaders(t *testing.T) {
	doer := &fakeDoer{status: 200, body: "<html></html>"}
	f := newTestFetcher(doer)

	_, err := f.Fetch(context.Background(), "indeed", "https://example.com", map[string]string{
		"accept-language": "de-DE,de;q=0.9",
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := doer.lastReq.Header.Get("accept"); got == "" {
		t.Fatalf("expected default accept header")
	}
	if got := doer.lastReq.Header.Get("accept-language"); got != "de-DE,de;q=0.9" {
		t.Fatalf("expected caller header to win, got %q", got)
	}
}

func TestFetchStatusError(t *testing.T) {
	doer := &fakeDoer{status: 403, body: "blocked"}
	f := newTestFetcher(doer)

	_, err := f.Fetch(context.Background(), "glassdoor", "https://example.com", nil)
	if err == nil {
		t.Fatalf("expected error for 403")
	}

	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *fetch.Error, got %T", err)
	}
	if fetchErr.Kind != KindHTTPStatus || fetchErr.Status != 403 {
		t.Fatalf("unexpected error: %+v", fetchErr)
	}
}

func TestFetchNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	doer := &fakeDoer{err: cause}
	f := newTestFetcher(doer)

	_, err := f.Fetch(context.Background(), "linkedin", "https://example.com", nil)
	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *fetch.Error, got %T", err)
	}
	if fetchErr.Kind != KindNetwork {
		t.Fatalf("unexpected kind: %s", fetchErr.Kind)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause")
	}
}

func TestFetchGovernorCancellation(t *testing.T) {
	doer := &fakeDoer{status: 200, body: "<html></html>"}
	f := NewFetcher(doer, NewGovernor(time.Hour), 5*time.Second, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := f.Fetch(ctx, "indeed", "https://example.com", nil); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	_, err := f.Fetch(ctx, "indeed", "https://example.com", nil)
	if err == nil {
		t.Fatalf("expected governor wait to fail under expired context")
	}
	if doer.calls != 1 {
		t.Fatalf("expected no second request, got %d calls", doer.calls)
	}
}
