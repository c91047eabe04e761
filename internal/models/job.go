package models

import "time"

// Job is the normalized listing produced by a source extractor.
// Title and Company are always non-empty on emitted jobs; everything
// else is best effort.
type Job struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	Snippet     string    `json:"snippet,omitempty"`
	Salary      string    `json:"salary,omitempty"`
	JobType     string    `json:"job_type,omitempty"`
	Remote      bool      `json:"remote,omitempty"`
	PostedAt    time.Time `json:"posted_at,omitempty"`
	PostedAtRaw string    `json:"posted_at_raw,omitempty"`
}

// Valid reports whether the listing satisfies the emit invariant:
// title and company both non-empty after trimming.
func (j Job) Valid() bool {
	return j.Title != "" && j.Company != ""
}
