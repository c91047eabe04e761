package source

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestRegistryNames(t *testing.T) {
	registry := Registry(&stubFetcher{}, zerolog.Nop())
	want := []string{SourceGlassdoor, SourceIndeed, SourceLinkedIn, SourceZipRecruiter}
	if got := Names(registry); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected names: %v", got)
	}
	for name, src := range registry {
		if src.Name() != name {
			t.Fatalf("registry key %q does not match source name %q", name, src.Name())
		}
	}
}

func TestNormalizeSources(t *testing.T) {
	got := NormalizeSources([]string{" LinkedIn ", "", "www.indeed", "zip", "zip-recruiter"})
	want := []string{"linkedin", "indeed", SourceZipRecruiter, SourceZipRecruiter}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected normalization: %v", got)
	}
}
