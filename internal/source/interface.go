package source

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscout/internal/models"
)

// Fetcher retrieves and parses one page on behalf of a source.
// *fetch.Fetcher satisfies it; tests inject fixture-backed fakes.
type Fetcher interface {
	Fetch(ctx context.Context, sourceID string, url string, headers map[string]string) (*goquery.Document, error)
}

// Source is one job-listing provider. Search returns up to Limit
// normalized listings; an empty slice is a valid success.
type Source interface {
	Name() string
	Search(ctx context.Context, params models.SearchParams) ([]models.Job, error)
}
