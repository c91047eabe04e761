package source

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscout/internal/models"
	"github.com/rs/zerolog"
)

type Indeed struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func NewIndeed(fetcher Fetcher, logger zerolog.Logger) *Indeed {
	return &Indeed{fetcher: fetcher, logger: logger.With().Str("source", SourceIndeed).Logger()}
}

func (i *Indeed) Name() string {
	return SourceIndeed
}

func (i *Indeed) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	doc, err := i.fetcher.Fetch(ctx, SourceIndeed, buildIndeedURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("indeed: %w", err)
	}

	jobs, skipped := parseIndeedJobs(doc, params.Limit)
	if params.Remote {
		jobs = filterRemote(jobs)
	}
	i.logger.Debug().Int("listings", len(jobs)).Int("skipped", skipped).Msg("extracted")
	return jobs, nil
}

func buildIndeedURL(params models.SearchParams) string {
	values := url.Values{}
	values.Set("q", params.Query)
	if params.Location != "" {
		values.Set("l", params.Location)
	}
	// Recent postings only; stale listings dominate the default sort.
	values.Set("sort", "date")
	values.Set("fromage", "14")
	return fmt.Sprintf("https://www.indeed.com/jobs?%s", values.Encode())
}

var indeedCardSelectors = []string{
	"div.job_seen_beacon",
	"a.tapItem",
	"td.resultContent",
}

func parseIndeedJobs(doc *goquery.Document, limit int) ([]models.Job, int) {
	jobs := make([]models.Job, 0, limit)
	skipped := 0

	selectCards(doc, indeedCardSelectors...).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if limit > 0 && len(jobs) >= limit {
			return false
		}

		title := firstText(card,
			"h2.jobTitle span[title]",
			"h2.jobTitle span",
			"h2.jobTitle a",
			"a.jcs-JobTitle",
		)
		company := firstText(card,
			"span[data-testid='company-name']",
			"span.companyName",
			"div.company",
		)
		if title == "" || company == "" {
			skipped++
			return true
		}

		link := firstAttr(card, "href",
			"h2.jobTitle a",
			"a.jcs-JobTitle",
			"a[id^='job_']",
		)
		if link == "" {
			link = card.AttrOr("href", "")
		}
		location := firstText(card,
			"div[data-testid='text-location']",
			"div.companyLocation",
		)
		snippet := firstText(card,
			"div[data-testid='jobsnippet_footer']",
			"div.job-snippet",
		)

		jobs = append(jobs, models.Job{
			Source:   SourceIndeed,
			Title:    title,
			Company:  company,
			Location: location,
			URL:      absoluteURL("https://www.indeed.com", link),
			Snippet:  snippet,
			Salary: firstText(card,
				"div[data-testid='attribute_snippet_testid']",
				"div.salary-snippet-container",
				"span.salaryText",
			),
			PostedAtRaw: firstText(card,
				"span[data-testid='myJobsStateDate']",
				"span.date",
			),
			Remote: isRemote(location, snippet),
		})
		return true
	})

	return jobs, skipped
}
