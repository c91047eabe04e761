package fetch

import "fmt"

// Kind classifies fetch failures.
type Kind string

const (
	// KindNetwork covers DNS, connection and timeout failures, plus
	// anything that prevented a usable response body.
	KindNetwork Kind = "network"
	// KindHTTPStatus means the server answered with a non-2xx status.
	KindHTTPStatus Kind = "http_status"
)

// Error is the typed failure returned by Fetcher.Fetch.
type Error struct {
	Kind   Kind
	Status int
	URL    string
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("fetch %s: http %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func networkError(url string, err error) *Error {
	return &Error{Kind: KindNetwork, URL: url, Err: err}
}

func statusError(url string, status int) *Error {
	return &Error{Kind: KindHTTPStatus, URL: url, Status: status}
}
