package source

import (
	"context"
	"testing"

	"github.com/jimezsa/jobscout/internal/models"
	"github.com/rs/zerolog"
)

func TestBuildGlassdoorURL(t *testing.T) {
	url := buildGlassdoorURL(models.SearchParams{Query: "data engineer", Location: "Toronto"})
	if !containsAll(url, []string{"sc.keyword=data+engineer", "locKeyword=Toronto", "fromAge=14"}) {
		t.Fatalf("unexpected glassdoor url: %s", url)
	}
}

func TestParseGlassdoorJobs(t *testing.T) {
	html := `
<ul>
  <li data-test="jobListing">
    <a data-test="job-title" href="/partner/job1.htm">Data Engineer</a>
    <span class="EmployerProfile_compactEmployerName__abc">Acme Analytics</span>
    <div data-test="emp-location">Toronto, ON</div>
    <div data-test="detailSalary">CA$120K</div>
  </li>
  <li data-test="jobListing">
    <a data-test="job-title" href="/partner/job2.htm">Unattributed Role</a>
  </li>
</ul>`

	jobs, skipped := parseGlassdoorJobs(mustDoc(t, html), 0)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped card, got %d", skipped)
	}
	job := jobs[0]
	if job.Company != "Acme Analytics" || job.Salary != "CA$120K" {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.URL != "https://www.glassdoor.com/partner/job1.htm" {
		t.Fatalf("unexpected url: %q", job.URL)
	}
}

func TestGlassdoorSearchMergesJSONLDAndCards(t *testing.T) {
	html := `
<html><head>
<script type="application/ld+json">
{"@type": "JobPosting", "title": "Data Engineer", "hiringOrganization": {"name": "Acme Analytics"},
 "url": "https://www.glassdoor.com/partner/job1.htm"}
</script>
</head><body>
<ul>
  <li data-test="jobListing">
    <a data-test="job-title" href="/partner/job1.htm">Data Engineer</a>
    <span class="EmployerProfile_compactEmployerName__abc">Acme Analytics</span>
  </li>
  <li data-test="jobListing">
    <a data-test="job-title" href="/partner/job3.htm">ML Engineer</a>
    <span class="EmployerProfile_compactEmployerName__abc">Beta Labs</span>
  </li>
</ul>
</body></html>`

	src := NewGlassdoor(&stubFetcher{html: html}, zerolog.Nop())
	jobs, err := src.Search(context.Background(), models.SearchParams{Query: "engineer", Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// job1 appears in both JSON-LD and cards; dedupe keeps one.
	if len(jobs) != 2 {
		t.Fatalf("expected 2 deduped jobs, got %d", len(jobs))
	}
}
