// Package core has core logic for exploring a handle: fetching, aggregating and ranking.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/huangsam/devscope/core/algo"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/internal/outwriter"
	"github.com/huangsam/devscope/schema"
)

// ExecutorFunc defines the function signature for executing the different views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, client contract.ProfileClient, recorder contract.Recorder) error

// GetExploreResult runs the full lookup for the configured handle.
func GetExploreResult(ctx context.Context, cfg *contract.Config, client contract.ProfileClient, recorder contract.Recorder) (*schema.ExploreResult, error) {
	result, err := NewExplorer(client, recorder).Explore(ctx, cfg.ExploreRequest())
	if err != nil {
		return nil, err
	}
	result.Projects = SortProjects(result.Projects, cfg.Sort)
	return result, nil
}

// GetProjectsResult fetches only the projects of the configured handle,
// in the configured order.
func GetProjectsResult(ctx context.Context, cfg *contract.Config, client contract.ProfileClient, recorder contract.Recorder) (projects []schema.Project, err error) {
	if recorder == nil {
		recorder = contract.NopRecorder{}
	}
	start := time.Now()
	defer func() {
		recorder.ObserveLookup(contract.Outcome(err), time.Since(start))
	}()

	handle := schema.NormalizeHandle(cfg.Handle)
	if handle == "" {
		return nil, contract.ErrEmptyHandle
	}
	projects, err = client.FetchProjects(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("fetch projects for %q: %w", handle, err)
	}
	slog.Debug("fetched projects", slog.String("handle", handle), slog.Int("count", len(projects)))
	return SortProjects(projects, cfg.Sort), nil
}

// SortProjects returns the projects in the requested order. The upstream
// order (most recently updated first) is kept for SortUpdated.
func SortProjects(projects []schema.Project, order schema.ProjectSort) []schema.Project {
	if order != schema.SortStars {
		return projects
	}
	return algo.RankProjects(slices.Clone(projects), 0)
}

// ExecuteProfile runs the full lookup and prints the profile, languages and projects.
// It serves as the main entry point for the 'profile' view.
func ExecuteProfile(ctx context.Context, cfg *contract.Config, client contract.ProfileClient, recorder contract.Recorder) error {
	result, err := GetExploreResult(ctx, cfg, client, recorder)
	if err != nil {
		return err
	}
	logHeader(ctx, cfg, result.Profile)
	return outwriter.NewOutWriter().WriteProfile(result, cfg)
}

// ExecuteLanguages runs the full lookup and prints the ranked language breakdown.
// It serves as the main entry point for the 'languages' view.
func ExecuteLanguages(ctx context.Context, cfg *contract.Config, client contract.ProfileClient, recorder contract.Recorder) error {
	result, err := GetExploreResult(ctx, cfg, client, recorder)
	if err != nil {
		return err
	}
	logHeader(ctx, cfg, result.Profile)
	return outwriter.NewOutWriter().WriteLanguages(result, cfg)
}

// ExecuteProjects fetches and prints the projects without language data.
// It serves as the main entry point for the 'projects' view.
func ExecuteProjects(ctx context.Context, cfg *contract.Config, client contract.ProfileClient, recorder contract.Recorder) error {
	projects, err := GetProjectsResult(ctx, cfg, client, recorder)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteProjects(cfg.Handle, projects, cfg)
}

// logHeader prints the profile header for text output going to the terminal.
func logHeader(ctx context.Context, cfg *contract.Config, profile schema.Profile) {
	if shouldSuppressHeader(ctx) || cfg.Output != schema.TextOut || cfg.OutputFile != "" {
		return
	}
	outwriter.LogExploreHeader(os.Stdout, profile, cfg)
}
