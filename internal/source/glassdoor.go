package source

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscout/internal/models"
	"github.com/rs/zerolog"
)

type Glassdoor struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func NewGlassdoor(fetcher Fetcher, logger zerolog.Logger) *Glassdoor {
	return &Glassdoor{fetcher: fetcher, logger: logger.With().Str("source", SourceGlassdoor).Logger()}
}

func (g *Glassdoor) Name() string {
	return SourceGlassdoor
}

// Search merges card extraction with the JSON-LD postings Glassdoor
// embeds in the results page; the two overlap but neither is complete
// on its own.
func (g *Glassdoor) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	doc, err := g.fetcher.Fetch(ctx, SourceGlassdoor, buildGlassdoorURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("glassdoor: %w", err)
	}

	cardJobs, skipped := parseGlassdoorJobs(doc, params.Limit)
	jobs := dedupeJobs(append(parseJSONLDJobs(doc, SourceGlassdoor), cardJobs...))
	if params.Remote {
		jobs = filterRemote(jobs)
	}
	jobs = capJobs(jobs, params.Limit)

	g.logger.Debug().Int("listings", len(jobs)).Int("skipped", skipped).Msg("extracted")
	return jobs, nil
}

func buildGlassdoorURL(params models.SearchParams) string {
	values := url.Values{}
	values.Set("sc.keyword", params.Query)
	if params.Location != "" {
		values.Set("locKeyword", params.Location)
	}
	values.Set("fromAge", "14")
	return fmt.Sprintf("https://www.glassdoor.com/Job/jobs.htm?%s", values.Encode())
}

var glassdoorCardSelectors = []string{
	"li[data-test='jobListing']",
	"li.react-job-listing",
	"div.react-job-listing",
}

func parseGlassdoorJobs(doc *goquery.Document, limit int) ([]models.Job, int) {
	jobs := make([]models.Job, 0, limit)
	skipped := 0

	selectCards(doc, glassdoorCardSelectors...).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if limit > 0 && len(jobs) >= limit {
			return false
		}

		title := firstText(card,
			"a[data-test='job-title']",
			"a.jobLink span",
			"a.jobLink",
		)
		company := firstText(card,
			"span[class*='EmployerProfile_compactEmployerName']",
			"div.jobEmployerName",
			"span[data-test='employer-name']",
		)
		if title == "" || company == "" {
			skipped++
			return true
		}

		location := firstText(card,
			"div[data-test='emp-location']",
			"div.jobLocation",
		)
		link := firstAttr(card, "href",
			"a[data-test='job-title']",
			"a.jobLink",
		)

		jobs = append(jobs, models.Job{
			Source:   SourceGlassdoor,
			Title:    title,
			Company:  company,
			Location: location,
			URL:      absoluteURL("https://www.glassdoor.com", link),
			Salary: firstText(card,
				"div[data-test='detailSalary']",
				"span.salarySnippet",
			),
			PostedAtRaw: firstText(card, "div[data-test='job-age']"),
			Remote:      isRemote(location),
		})
		return true
	})

	return jobs, skipped
}
