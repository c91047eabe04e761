package source

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscout/internal/models"
	"github.com/rs/zerolog"
)

type LinkedIn struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func NewLinkedIn(fetcher Fetcher, logger zerolog.Logger) *LinkedIn {
	return &LinkedIn{fetcher: fetcher, logger: logger.With().Str("source", SourceLinkedIn).Logger()}
}

func (l *LinkedIn) Name() string {
	return SourceLinkedIn
}

func (l *LinkedIn) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	doc, err := l.fetcher.Fetch(ctx, SourceLinkedIn, buildLinkedInURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("linkedin: %w", err)
	}

	jobs, skipped := parseLinkedInJobs(doc, params.Limit)
	if params.Remote {
		jobs = filterRemote(jobs)
	}
	l.logger.Debug().Int("listings", len(jobs)).Int("skipped", skipped).Msg("extracted")
	return jobs, nil
}

func buildLinkedInURL(params models.SearchParams) string {
	values := url.Values{}
	values.Set("keywords", params.Query)
	if params.Location != "" {
		values.Set("location", params.Location)
	}
	// Past week only. The guest search page serves static markup.
	values.Set("f_TPR", "r604800")
	return fmt.Sprintf("https://www.linkedin.com/jobs/search?%s", values.Encode())
}

var linkedInCardSelectors = []string{
	"div.base-search-card",
	"div.base-card",
	"ul.jobs-search__results-list > li",
}

func parseLinkedInJobs(doc *goquery.Document, limit int) ([]models.Job, int) {
	jobs := make([]models.Job, 0, limit)
	skipped := 0

	selectCards(doc, linkedInCardSelectors...).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if limit > 0 && len(jobs) >= limit {
			return false
		}

		title := firstText(card,
			"h3.base-search-card__title",
			"span.sr-only",
		)
		company := firstText(card,
			"h4.base-search-card__subtitle a",
			"h4.base-search-card__subtitle",
			"a.hidden-nested-link",
		)
		if title == "" || company == "" {
			skipped++
			return true
		}

		location := firstText(card, "span.job-search-card__location")
		snippet := firstText(card, "div.job-search-card__snippet")

		job := models.Job{
			Source:   SourceLinkedIn,
			Title:    title,
			Company:  company,
			Location: location,
			URL: firstAttr(card, "href",
				"a.base-card__full-link",
				"a.base-search-card--link",
			),
			Snippet:     snippet,
			PostedAtRaw: firstAttr(card, "datetime", "time"),
			Remote:      isRemote(location, snippet),
		}
		if job.PostedAtRaw == "" {
			job.PostedAtRaw = firstText(card, "time")
		}
		if ts, err := parsePostedAt(job.PostedAtRaw); err == nil {
			job.PostedAt = ts
		}

		jobs = append(jobs, job)
		return true
	})

	return jobs, skipped
}
