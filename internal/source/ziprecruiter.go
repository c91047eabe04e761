package source

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscout/internal/models"
	"github.com/rs/zerolog"
)

type ZipRecruiter struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func NewZipRecruiter(fetcher Fetcher, logger zerolog.Logger) *ZipRecruiter {
	return &ZipRecruiter{fetcher: fetcher, logger: logger.With().Str("source", SourceZipRecruiter).Logger()}
}

func (z *ZipRecruiter) Name() string {
	return SourceZipRecruiter
}

func (z *ZipRecruiter) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	doc, err := z.fetcher.Fetch(ctx, SourceZipRecruiter, buildZipRecruiterURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("ziprecruiter: %w", err)
	}

	jobs, skipped := parseZipRecruiterJobs(doc, params.Limit)
	if params.Remote {
		jobs = filterRemote(jobs)
	}
	z.logger.Debug().Int("listings", len(jobs)).Int("skipped", skipped).Msg("extracted")
	return jobs, nil
}

func buildZipRecruiterURL(params models.SearchParams) string {
	values := url.Values{}
	values.Set("search", params.Query)
	if params.Location != "" {
		values.Set("location", params.Location)
	}
	values.Set("days", "10")
	return fmt.Sprintf("https://www.ziprecruiter.com/jobs-search?%s", values.Encode())
}

var zipRecruiterCardSelectors = []string{
	"article.job_result",
	"div.job_content",
	"li.job-listing",
}

func parseZipRecruiterJobs(doc *goquery.Document, limit int) ([]models.Job, int) {
	jobs := make([]models.Job, 0, limit)
	skipped := 0

	selectCards(doc, zipRecruiterCardSelectors...).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if limit > 0 && len(jobs) >= limit {
			return false
		}

		title := firstText(card,
			"h2.title",
			"a[class*='job_link'] h2",
			"h1.job_title",
		)
		company := firstText(card,
			"a[data-testid='job-card-company']",
			"a.company_name",
			"div.company_name",
		)
		if title == "" || company == "" {
			skipped++
			return true
		}

		location := firstText(card,
			"p[data-testid='job-card-location']",
			"div.location",
			"p.company_location",
		)
		snippet := firstText(card, "p.job_snippet")

		jobs = append(jobs, models.Job{
			Source:   SourceZipRecruiter,
			Title:    title,
			Company:  company,
			Location: location,
			URL: firstAttr(card, "href",
				"a[class*='job_link']",
				"h2.title a",
			),
			Snippet: snippet,
			Salary: firstText(card,
				"div[class*='salary']",
				"span.perk_item_pay",
			),
			Remote: isRemote(location, snippet),
		})
		return true
	})

	return jobs, skipped
}
