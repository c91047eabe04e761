package source

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscout/internal/models"
)

// parseJSONLDJobs mines schema.org JobPosting blocks embedded in the
// page. Some boards ship these alongside the rendered cards; they
// survive layout changes better than class selectors do.
func parseJSONLDJobs(doc *goquery.Document, sourceID string) []models.Job {
	var jobs []models.Job

	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		raw = strings.TrimPrefix(raw, "<!--")
		raw = strings.TrimSuffix(raw, "-->")
		raw = strings.ReplaceAll(raw, "\u2028", "")
		raw = strings.ReplaceAll(raw, "\u2029", "")
		if raw == "" {
			return
		}

		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return
		}
		jobs = append(jobs, postingsFrom(data, sourceID)...)
	})

	return dedupeJobs(jobs)
}

func postingsFrom(data any, sourceID string) []models.Job {
	var jobs []models.Job

	switch value := data.(type) {
	case []any:
		for _, item := range value {
			jobs = append(jobs, postingsFrom(item, sourceID)...)
		}
	case map[string]any:
		switch strings.ToLower(jsonString(value["@type"])) {
		case "jobposting":
			if job := jobFromPosting(value, sourceID); job.Valid() {
				jobs = append(jobs, job)
			}
			return jobs
		case "itemlist":
			jobs = append(jobs, postingsFrom(value["itemListElement"], sourceID)...)
		}
		if graph, ok := value["@graph"]; ok {
			jobs = append(jobs, postingsFrom(graph, sourceID)...)
		}
		if item, ok := value["item"]; ok {
			jobs = append(jobs, postingsFrom(item, sourceID)...)
		}
	}

	return jobs
}

func jobFromPosting(value map[string]any, sourceID string) models.Job {
	job := models.Job{Source: sourceID}
	job.Title = jsonString(value["title"], value["name"])
	if org, ok := value["hiringOrganization"].(map[string]any); ok {
		job.Company = jsonString(org["name"])
	}
	job.URL = jsonString(value["url"], value["@id"])
	job.JobType = jsonString(value["employmentType"])
	job.Location = postingLocation(value["jobLocation"])
	job.Snippet = truncate(cleanText(jsonString(value["description"])), 240)
	job.PostedAtRaw = jsonString(value["datePosted"])
	if job.PostedAtRaw != "" {
		if ts, err := parsePostedAt(job.PostedAtRaw); err == nil {
			job.PostedAt = ts
		}
	}
	job.Remote = isRemote(job.Location, job.Snippet)
	return job
}

func postingLocation(value any) string {
	switch v := value.(type) {
	case []any:
		var parts []string
		for _, item := range v {
			if loc := postingLocation(item); loc != "" {
				parts = append(parts, loc)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		address, ok := v["address"].(map[string]any)
		if !ok {
			address = v
		}
		var parts []string
		for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
			if part := jsonString(address[key]); part != "" {
				parts = append(parts, part)
			}
		}
		return strings.Join(parts, ", ")
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

func jsonString(values ...any) string {
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case map[string]any:
			if name := jsonString(v["name"]); name != "" {
				return name
			}
		}
	}
	return ""
}
