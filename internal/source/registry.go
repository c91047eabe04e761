package source

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

const (
	SourceLinkedIn     = "linkedin"
	SourceIndeed       = "indeed"
	SourceGlassdoor    = "glassdoor"
	SourceZipRecruiter = "ziprecruiter"
)

// Registry builds the full source map over a shared fetcher.
func Registry(fetcher Fetcher, logger zerolog.Logger) map[string]Source {
	return map[string]Source{
		SourceLinkedIn:     NewLinkedIn(fetcher, logger),
		SourceIndeed:       NewIndeed(fetcher, logger),
		SourceGlassdoor:    NewGlassdoor(fetcher, logger),
		SourceZipRecruiter: NewZipRecruiter(fetcher, logger),
	}
}

// Names returns the registered source identifiers, sorted.
func Names(registry map[string]Source) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeSources lowercases and trims identifiers, dropping empties
// and expanding common aliases.
func NormalizeSources(sources []string) []string {
	out := make([]string, 0, len(sources))
	for _, src := range sources {
		src = strings.ToLower(strings.TrimSpace(src))
		if src == "" {
			continue
		}
		src = strings.TrimPrefix(src, "www.")
		switch src {
		case "zip", "zip-recruiter":
			src = SourceZipRecruiter
		}
		out = append(out, src)
	}
	return out
}
