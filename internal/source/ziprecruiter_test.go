package source

import (
	"testing"

	"github.com/jimezsa/jobscout/internal/models"
)

func TestBuildZipRecruiterURL(t *testing.T) {
	url := buildZipRecruiterURL(models.SearchParams{Query: "sre", Location: "Denver, CO"})
	if !containsAll(url, []string{"search=sre", "location=Denver%2C+CO", "days=10"}) {
		t.Fatalf("unexpected ziprecruiter url: %s", url)
	}
}

func TestParseZipRecruiterJobs(t *testing.T) {
	html := `
<div>
  <article class="job_result">
    <a class="company_job_link" href="https://www.ziprecruiter.com/jobs/1"><h2 class="title">Site Reliability Engineer</h2></a>
    <a data-testid="job-card-company" href="/co/acme">Acme Cloud</a>
    <p data-testid="job-card-location">Denver, CO</p>
    <p class="job_snippet">Keep the lights on.</p>
  </article>
  <article class="job_result">
    <h2 class="title">No Company Role</h2>
  </article>
</div>`

	jobs, skipped := parseZipRecruiterJobs(mustDoc(t, html), 0)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped card, got %d", skipped)
	}
	job := jobs[0]
	if job.Title != "Site Reliability Engineer" || job.Company != "Acme Cloud" {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.URL != "https://www.ziprecruiter.com/jobs/1" {
		t.Fatalf("unexpected url: %q", job.URL)
	}
}

func TestParseZipRecruiterJobsFallbackSelectors(t *testing.T) {
	html := `
<ul>
  <li class="job-listing">
    <h2 class="title">Platform Engineer</h2>
    <div class="company_name">Beta Infra</div>
    <div class="location">Remote</div>
  </li>
</ul>`

	jobs, _ := parseZipRecruiterJobs(mustDoc(t, html), 0)
	if len(jobs) != 1 {
		t.Fatalf("expected fallback selectors to extract 1 job, got %d", len(jobs))
	}
	if !jobs[0].Remote {
		t.Fatalf("expected remote detection")
	}
}
