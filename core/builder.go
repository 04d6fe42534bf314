package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/huangsam/devscope/core/agg"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
	"golang.org/x/sync/errgroup"
)

// ExploreResultBuilder builds the result of a handle lookup step by step.
// Each step must run after the previous one succeeded.
type ExploreResultBuilder struct {
	ctx      context.Context
	client   contract.ProfileClient
	recorder contract.Recorder
	logger   *slog.Logger
	handle   string
	start    time.Time

	profile  schema.Profile
	projects []schema.Project
	langMaps []schema.LanguageMap
	langOK   []bool
	result   *schema.ExploreResult
}

// NewExploreResultBuilder creates a new builder for a normalized handle.
func NewExploreResultBuilder(ctx context.Context, client contract.ProfileClient, recorder contract.Recorder, handle string) *ExploreResultBuilder {
	return &ExploreResultBuilder{
		ctx:      ctx,
		client:   client,
		recorder: recorder,
		logger:   slog.Default(),
		handle:   handle,
		start:    time.Now(),
	}
}

// FetchProfile retrieves the profile. It must run first.
func (b *ExploreResultBuilder) FetchProfile() (*ExploreResultBuilder, error) {
	profile, err := b.client.FetchProfile(b.ctx, b.handle)
	if err != nil {
		return nil, fmt.Errorf("fetch profile for %q: %w", b.handle, err)
	}
	b.profile = profile
	return b, nil
}

// FetchProjects retrieves the first page of projects.
func (b *ExploreResultBuilder) FetchProjects() (*ExploreResultBuilder, error) {
	projects, err := b.client.FetchProjects(b.ctx, b.handle)
	if err != nil {
		return nil, fmt.Errorf("fetch projects for %q: %w", b.handle, err)
	}
	b.projects = projects
	return b, nil
}

// FetchLanguages retrieves every project's languages concurrently and waits
// for all of them to settle. A non-positive workers value runs one goroutine
// per project. Individual failures are absorbed; only cancellation aborts.
func (b *ExploreResultBuilder) FetchLanguages(workers int) (*ExploreResultBuilder, error) {
	b.langMaps = make([]schema.LanguageMap, len(b.projects))
	b.langOK = make([]bool, len(b.projects))

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range b.projects {
		// Each goroutine writes only its own index.
		g.Go(func() error {
			b.langMaps[i], b.langOK[i] = b.client.FetchProjectLanguages(b.ctx, b.handle, p.Name)
			return nil
		})
	}
	_ = g.Wait()

	if err := b.ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch languages for %q: %w", b.handle, err)
	}
	return b, nil
}

// Aggregate reduces the language maps and assembles the final result.
func (b *ExploreResultBuilder) Aggregate(topN int) *ExploreResultBuilder {
	perProject := make(map[string]schema.LanguageMap, len(b.projects))
	failed := []string{}
	for i, p := range b.projects {
		perProject[p.Name] = b.langMaps[i]
		if !b.langOK[i] {
			failed = append(failed, p.Name)
		}
	}
	sort.Strings(failed)

	if len(failed) > 0 {
		b.recorder.AddLanguageFailures(len(failed))
		b.logger.Warn("language data degraded",
			slog.String("handle", b.handle),
			slog.Int("failed", len(failed)),
			slog.Int("projects", len(b.projects)),
		)
	}

	b.result = &schema.ExploreResult{
		Profile:          b.profile,
		Projects:         b.projects,
		Languages:        agg.Aggregate(b.langMaps, topN),
		AllLanguages:     agg.Breakdown(b.langMaps),
		ProjectLanguages: perProject,
		TotalBytes:       agg.TotalBytes(b.langMaps),
		LanguageFailures: len(failed),
		FailedProjects:   failed,
		FetchedAt:        time.Now().UTC(),
		Duration:         time.Since(b.start),
	}
	return b
}

// GetResult returns the built result, or nil if Aggregate has not run.
func (b *ExploreResultBuilder) GetResult() *schema.ExploreResult {
	return b.result
}
