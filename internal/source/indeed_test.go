package source

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/jimezsa/jobscout/internal/models"
	"github.com/rs/zerolog"
)

func TestBuildIndeedURL(t *testing.T) {
	url := buildIndeedURL(models.SearchParams{Query: "golang", Location: "New York, NY"})
	if !containsAll(url, []string{"q=golang", "l=New+York%2C+NY", "sort=date", "fromage=14"}) {
		t.Fatalf("unexpected indeed url: %s", url)
	}
}

func indeedCard(n int) string {
	return fmt.Sprintf(`
<div class="job_seen_beacon">
  <h2 class="jobTitle"><a href="/viewjob?jk=%d"><span title="Engineer %d">Engineer %d</span></a></h2>
  <span data-testid="company-name">Acme %d</span>
  <div data-testid="text-location">Montreal, QC</div>
  <div class="job-snippet">Build things %d</div>
</div>`, n, n, n, n, n)
}

func indeedFixture() string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 8; i++ {
		b.WriteString(indeedCard(i))
	}
	// Malformed cards: one missing company, one missing title.
	b.WriteString(`<div class="job_seen_beacon"><h2 class="jobTitle"><span>Orphan Role</span></h2></div>`)
	b.WriteString(`<div class="job_seen_beacon"><span data-testid="company-name">Ghost Corp</span></div>`)
	b.WriteString("</body></html>")
	return b.String()
}

func TestParseIndeedJobsSkipsMalformedCards(t *testing.T) {
	doc := mustDoc(t, indeedFixture())

	jobs, skipped := parseIndeedJobs(doc, 0)
	if len(jobs) != 8 {
		t.Fatalf("expected 8 valid jobs, got %d", len(jobs))
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped cards, got %d", skipped)
	}
	for _, job := range jobs {
		if !job.Valid() {
			t.Fatalf("emitted job missing required fields: %+v", job)
		}
		if !strings.HasPrefix(job.URL, "https://www.indeed.com/viewjob") {
			t.Fatalf("expected absolute url, got %q", job.URL)
		}
	}
}

func TestParseIndeedJobsHonorsLimit(t *testing.T) {
	doc := mustDoc(t, indeedFixture())
	jobs, _ := parseIndeedJobs(doc, 5)
	if len(jobs) != 5 {
		t.Fatalf("expected limit of 5, got %d", len(jobs))
	}
}

func TestParseIndeedJobsDeterministic(t *testing.T) {
	first, _ := parseIndeedJobs(mustDoc(t, indeedFixture()), 0)
	second, _ := parseIndeedJobs(mustDoc(t, indeedFixture()), 0)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated extraction diverged")
	}
}

func TestIndeedSearchEndToEnd(t *testing.T) {
	fetcher := &stubFetcher{html: indeedFixture()}
	src := NewIndeed(fetcher, zerolog.Nop())

	jobs, err := src.Search(context.Background(), models.SearchParams{
		Query:    "Software Engineer",
		Location: "Montreal",
		Limit:    5,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(jobs) != 5 {
		t.Fatalf("expected exactly 5 listings, got %d", len(jobs))
	}
	for _, job := range jobs {
		if job.Title == "" || job.Company == "" {
			t.Fatalf("listing with empty required field: %+v", job)
		}
	}
	if !containsAll(fetcher.lastURL, []string{"q=Software+Engineer", "l=Montreal"}) {
		t.Fatalf("unexpected search url: %s", fetcher.lastURL)
	}
}

func TestIndeedSearchPropagatesFetchError(t *testing.T) {
	cause := errors.New("dns failure")
	src := NewIndeed(&stubFetcher{err: cause}, zerolog.Nop())

	jobs, err := src.Search(context.Background(), models.SearchParams{Query: "go"})
	if err == nil || !errors.Is(err, cause) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
	if jobs != nil {
		t.Fatalf("expected no listings on fetch failure")
	}
}

func containsAll(value string, parts []string) bool {
	for _, part := range parts {
		if !strings.Contains(value, part) {
			return false
		}
	}
	return true
}
