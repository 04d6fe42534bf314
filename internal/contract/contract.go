// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/devscope/schema"
)

// ProfileClient defines the upstream operations needed to explore a handle.
// This allows the pipeline to be tested without reaching the real API.
type ProfileClient interface {
	// FetchProfile returns the profile for a handle. It fails with ErrNotFound,
	// ErrRateLimited or ErrUpstream.
	FetchProfile(ctx context.Context, handle string) (schema.Profile, error)

	// FetchProjects returns the first page of a handle's public projects,
	// most recently updated first. It fails with ErrRateLimited or ErrUpstream.
	FetchProjects(ctx context.Context, handle string) ([]schema.Project, error)

	// FetchProjectLanguages returns the language byte counts of one project.
	// Failures are never returned as errors: the map is empty and ok is false.
	FetchProjectLanguages(ctx context.Context, handle, project string) (langs schema.LanguageMap, ok bool)
}

// Recorder receives observations about upstream traffic and lookups.
type Recorder interface {
	// ObserveUpstream records one upstream response (status 0 for transport failures).
	ObserveUpstream(endpoint schema.Endpoint, status int)

	// ObserveLookup records the outcome and duration of one handle lookup.
	ObserveLookup(outcome string, duration time.Duration)

	// AddLanguageFailures records projects whose language data was substituted.
	AddLanguageFailures(n int)
}

// NopRecorder discards every observation.
type NopRecorder struct{}

var _ Recorder = NopRecorder{} // Compile-time check

// ObserveUpstream implements the Recorder interface.
func (NopRecorder) ObserveUpstream(schema.Endpoint, int) {}

// ObserveLookup implements the Recorder interface.
func (NopRecorder) ObserveLookup(string, time.Duration) {}

// AddLanguageFailures implements the Recorder interface.
func (NopRecorder) AddLanguageFailures(int) {}
