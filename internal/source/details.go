package source

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// rawSnippetBytes caps the diagnostic markup returned when no
// description selector matches.
const rawSnippetBytes = 5000

// Description containers tried in order, most specific conventions
// first. Covers the registered boards plus common generic patterns.
var descriptionSelectors = []string{
	"div.show-more-less-html__markup",
	"div#jobDescriptionText",
	"div.jobDescriptionContent",
	"div[class*='JobDetails_jobDescription']",
	"div.job_description",
	"div#job-description",
	"div[class*='job-description']",
	"section[class*='description']",
	"div[class*='description']",
	"article",
}

// Details is the long-form content fetched for a single listing URL.
// When Description is empty, Raw holds a bounded markup snippet for
// caller-side diagnostics.
type Details struct {
	Description string `json:"description"`
	Raw         string `json:"raw,omitempty"`
}

// DetailFetcher retrieves full descriptions source-agnostically: one
// fetch path for any listing URL, with an ordered selector chain.
type DetailFetcher struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func NewDetailFetcher(fetcher Fetcher, logger zerolog.Logger) *DetailFetcher {
	return &DetailFetcher{fetcher: fetcher, logger: logger}
}

// FetchDetails fetches target and extracts the first non-empty
// description match. A page matching no selector is still a success;
// only transport failures return an error.
func (d *DetailFetcher) FetchDetails(ctx context.Context, target string) (Details, error) {
	doc, err := d.fetcher.Fetch(ctx, governorKey(target), target, nil)
	if err != nil {
		return Details{}, err
	}

	for _, sel := range descriptionSelectors {
		if text := cleanText(doc.Find(sel).First().Text()); text != "" {
			return Details{Description: text}, nil
		}
	}

	raw, err := doc.Html()
	if err != nil {
		raw = ""
	}
	d.logger.Debug().Str("url", target).Msg("no description selector matched")
	return Details{Raw: truncateBytes(raw, rawSnippetBytes)}, nil
}

// Board domains mapped back to their registry IDs so detail fetches
// share the same pacing budget as that source's search requests.
var boardDomains = map[string]string{
	"indeed.com":       SourceIndeed,
	"linkedin.com":     SourceLinkedIn,
	"glassdoor.com":    SourceGlassdoor,
	"ziprecruiter.com": SourceZipRecruiter,
}

// governorKey attributes a detail fetch to the registered source owning
// the listing's host; unknown hosts pace under their own host key.
func governorKey(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return "details"
	}

	host := strings.ToLower(u.Host)
	for domain, id := range boardDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return id
		}
	}
	return host
}
