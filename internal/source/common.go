package source

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscout/internal/models"
)

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

// selectCards tries the container selectors in order and returns the
// matches of the first one that yields any, so a layout change degrades
// to the next known structure instead of zero results.
func selectCards(doc *goquery.Document, selectors ...string) *goquery.Selection {
	var last *goquery.Selection
	for _, sel := range selectors {
		last = doc.Find(sel)
		if last.Length() > 0 {
			return last
		}
	}
	return last
}

// firstText walks the selector chain and returns the first non-empty
// trimmed text match within the card.
func firstText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if value := cleanText(card.Find(sel).First().Text()); value != "" {
			return value
		}
	}
	return ""
}

// firstAttr is firstText for attributes.
func firstAttr(card *goquery.Selection, attr string, selectors ...string) string {
	for _, sel := range selectors {
		if value := strings.TrimSpace(card.Find(sel).First().AttrOr(attr, "")); value != "" {
			return value
		}
	}
	return ""
}

func absoluteURL(base string, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

func parsePostedAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	layouts := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02",
		"2006-01-02T15:04:05-0700",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %s", value)
}

func isRemote(values ...string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), "remote") {
			return true
		}
	}
	return false
}

func filterRemote(jobs []models.Job) []models.Job {
	filtered := jobs[:0]
	for _, job := range jobs {
		if job.Remote {
			filtered = append(filtered, job)
		}
	}
	return filtered
}

func dedupeJobs(jobs []models.Job) []models.Job {
	seen := map[string]struct{}{}
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		key := job.URL
		if key == "" {
			key = strings.ToLower(job.Title + "|" + job.Company + "|" + job.Location)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, job)
	}
	return out
}

func capJobs(jobs []models.Job, limit int) []models.Job {
	if limit > 0 && len(jobs) > limit {
		return jobs[:limit]
	}
	return jobs
}

func truncate(value string, max int) string {
	if max <= 0 {
		return value
	}
	value = strings.TrimSpace(value)
	if len(value) <= max {
		return value
	}
	return strings.TrimSpace(value[:max]) + "..."
}

// truncateBytes cuts value to at most max bytes without splitting a
// UTF-8 sequence.
func truncateBytes(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	cut := value[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
