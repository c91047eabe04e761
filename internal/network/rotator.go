package network

import (
	"errors"
	"net/url"
	"sync"
	"time"
)

var ErrNoProxies = errors.New("no proxies available")

// Statuses that bench a proxy when the caller configures none.
var defaultBanStatuses = []int{403, 429}

type proxyEntry struct {
	url         *url.URL
	bannedUntil time.Time
}

// Rotator cycles through a fixed proxy pool, benching entries that draw
// block-ish statuses for the configured window.
type Rotator struct {
	mu          sync.Mutex
	entries     []*proxyEntry
	index       int
	banWindow   time.Duration
	banStatuses map[int]bool
}

// NewRotator parses the proxy URLs and builds a rotator that benches a
// proxy for banWindow whenever Report sees one of banStatuses (403 and
// 429 when none are given).
func NewRotator(raw []string, banWindow time.Duration, banStatuses ...int) (*Rotator, error) {
	if len(banStatuses) == 0 {
		banStatuses = defaultBanStatuses
	}

	rotator := &Rotator{
		banWindow:   banWindow,
		banStatuses: make(map[int]bool, len(banStatuses)),
	}
	for _, status := range banStatuses {
		rotator.banStatuses[status] = true
	}

	for _, proxy := range raw {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, err
		}
		rotator.entries = append(rotator.entries, &proxyEntry{url: u})
	}

	return rotator, nil
}

// Next returns the next proxy in rotation, skipping benched entries.
func (r *Rotator) Next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for range r.entries {
		entry := r.entries[r.index]
		r.index = (r.index + 1) % len(r.entries)

		if now.After(entry.bannedUntil) {
			return entry.url, nil
		}
	}

	return nil, ErrNoProxies
}

// Report records the status a proxy drew; ban statuses bench it until
// the window passes.
func (r *Rotator) Report(proxy *url.URL, status int) {
	if proxy == nil || !r.banStatuses[status] {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.url == proxy || entry.url.String() == proxy.String() {
			entry.bannedUntil = time.Now().Add(r.banWindow)
		}
	}
}
