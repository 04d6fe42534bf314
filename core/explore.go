package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
)

// Explorer runs handle lookups against a ProfileClient.
// It holds no per-lookup state, so one Explorer can serve concurrent lookups.
type Explorer struct {
	client   contract.ProfileClient
	recorder contract.Recorder
}

// NewExplorer creates an Explorer. A nil recorder discards observations.
func NewExplorer(client contract.ProfileClient, recorder contract.Recorder) *Explorer {
	if recorder == nil {
		recorder = contract.NopRecorder{}
	}
	return &Explorer{client: client, recorder: recorder}
}

// Explore fetches the profile, then the projects, then every project's
// languages in parallel, and aggregates them into a ranked breakdown.
// Profile and project failures abort the lookup and can be told apart with
// errors.Is against contract.ErrNotFound, contract.ErrRateLimited and
// contract.ErrUpstream. Language failures never abort; they are counted in
// the result's LanguageFailures.
func (e *Explorer) Explore(ctx context.Context, req schema.ExploreRequest) (result *schema.ExploreResult, err error) {
	start := time.Now()
	handle := schema.NormalizeHandle(req.Handle)
	defer func() {
		e.recorder.ObserveLookup(contract.Outcome(err), time.Since(start))
	}()

	if handle == "" {
		return nil, contract.ErrEmptyHandle
	}
	slog.Debug("exploring handle", slog.String("handle", handle), slog.Int("top", req.TopN), slog.Int("workers", req.Workers))

	builder := NewExploreResultBuilder(ctx, e.client, e.recorder, handle)
	if _, err = builder.FetchProfile(); err != nil {
		return nil, err
	}
	if _, err = builder.FetchProjects(); err != nil {
		return nil, err
	}
	if _, err = builder.FetchLanguages(req.Workers); err != nil {
		return nil, err
	}
	result = builder.Aggregate(req.TopN).GetResult()

	slog.Debug("explored handle",
		slog.String("handle", handle),
		slog.Int("projects", len(result.Projects)),
		slog.Int("languages", len(result.AllLanguages)),
		slog.Int("language_failures", result.LanguageFailures),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// Explore runs a single lookup with a client and no metrics.
func Explore(ctx context.Context, client contract.ProfileClient, req schema.ExploreRequest) (*schema.ExploreResult, error) {
	return NewExplorer(client, nil).Explore(ctx, req)
}
