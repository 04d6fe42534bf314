package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeClient serves a fixed profile and project list and delegates language
// lookups to a function, for tests that need control over timing.
type fakeClient struct {
	projects []schema.Project
	langs    func(ctx context.Context, project string) (schema.LanguageMap, bool)
}

func (f *fakeClient) FetchProfile(_ context.Context, handle string) (schema.Profile, error) {
	return schema.Profile{Login: handle}, nil
}

func (f *fakeClient) FetchProjects(context.Context, string) ([]schema.Project, error) {
	return f.projects, nil
}

func (f *fakeClient) FetchProjectLanguages(ctx context.Context, _, project string) (schema.LanguageMap, bool) {
	return f.langs(ctx, project)
}

func makeProjects(n int) []schema.Project {
	projects := make([]schema.Project, n)
	for i := range projects {
		projects[i] = schema.Project{ID: int64(i + 1), Name: fmt.Sprintf("project-%02d", i)}
	}
	return projects
}

func TestExplore_HappyPath(t *testing.T) {
	client := &contract.MockProfileClient{}
	recorder := &contract.MockRecorder{}
	ctx := context.Background()

	client.On("FetchProfile", mock.Anything, "octocat").Return(schema.Profile{Login: "octocat", Name: "The Octocat"}, nil)
	client.On("FetchProjects", mock.Anything, "octocat").Return([]schema.Project{
		{Name: "alpha"}, {Name: "beta"}, {Name: "gamma"},
	}, nil)
	client.On("FetchProjectLanguages", mock.Anything, "octocat", "alpha").Return(schema.LanguageMap{"Go": 300}, true)
	client.On("FetchProjectLanguages", mock.Anything, "octocat", "beta").Return(schema.LanguageMap{"Go": 100, "Shell": 100}, true)
	client.On("FetchProjectLanguages", mock.Anything, "octocat", "gamma").Return(schema.LanguageMap{}, true)
	recorder.On("ObserveLookup", contract.OutcomeOK, mock.Anything).Once()

	result, err := NewExplorer(client, recorder).Explore(ctx, schema.ExploreRequest{Handle: "octocat", TopN: 5})
	require.NoError(t, err)

	assert.Equal(t, "The Octocat", result.Profile.Name)
	assert.Len(t, result.Projects, 3)
	require.Len(t, result.Languages, 2)
	assert.Equal(t, "Go", result.Languages[0].Name)
	assert.InDelta(t, 80.0, result.Languages[0].Percentage, 1e-9)
	assert.Equal(t, "Shell", result.Languages[1].Name)
	assert.InDelta(t, 20.0, result.Languages[1].Percentage, 1e-9)
	assert.Equal(t, int64(500), result.TotalBytes)
	assert.Equal(t, 0, result.LanguageFailures)
	assert.Empty(t, result.FailedProjects)
	assert.False(t, result.Degraded())
	assert.Equal(t, schema.LanguageMap{"Go": 100, "Shell": 100}, result.ProjectLanguages["beta"])
	assert.False(t, result.FetchedAt.IsZero())

	client.AssertExpectations(t)
	recorder.AssertExpectations(t)
	recorder.AssertNotCalled(t, "AddLanguageFailures", mock.Anything)
}

func TestExplore_TopNLimitsLanguages(t *testing.T) {
	client := &contract.MockProfileClient{}
	client.On("FetchProfile", mock.Anything, "octocat").Return(schema.Profile{Login: "octocat"}, nil)
	client.On("FetchProjects", mock.Anything, "octocat").Return([]schema.Project{{Name: "mono"}}, nil)
	client.On("FetchProjectLanguages", mock.Anything, "octocat", "mono").
		Return(schema.LanguageMap{"A": 1, "B": 1, "C": 1, "D": 1, "E": 1, "F": 1}, true)

	result, err := Explore(context.Background(), client, schema.ExploreRequest{Handle: "octocat", TopN: 2})
	require.NoError(t, err)
	assert.Len(t, result.Languages, 2)
	assert.Len(t, result.AllLanguages, 6)

	result, err = Explore(context.Background(), client, schema.ExploreRequest{Handle: "octocat"})
	require.NoError(t, err)
	assert.Len(t, result.Languages, schema.DefaultTopLanguages)
}

func TestExplore_NormalizesHandle(t *testing.T) {
	client := &contract.MockProfileClient{}
	client.On("FetchProfile", mock.Anything, "octocat").Return(schema.Profile{Login: "octocat"}, nil)
	client.On("FetchProjects", mock.Anything, "octocat").Return([]schema.Project{}, nil)

	result, err := Explore(context.Background(), client, schema.ExploreRequest{Handle: "  @octocat\n"})
	require.NoError(t, err)
	assert.Empty(t, result.Languages)
	assert.NotNil(t, result.Languages)
	client.AssertExpectations(t)
}

func TestExplore_EmptyHandle(t *testing.T) {
	client := &contract.MockProfileClient{}
	recorder := &contract.MockRecorder{}
	recorder.On("ObserveLookup", contract.OutcomeInvalid, mock.Anything).Once()

	_, err := NewExplorer(client, recorder).Explore(context.Background(), schema.ExploreRequest{Handle: "   "})
	require.ErrorIs(t, err, contract.ErrEmptyHandle)
	client.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
	recorder.AssertExpectations(t)
}

func TestExplore_ProfileErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		target  error
		outcome string
	}{
		{"not found", contract.ErrNotFound, contract.ErrNotFound, contract.OutcomeNotFound},
		{"rate limited", &contract.RateLimitError{Endpoint: schema.ProfileEndpoint}, contract.ErrRateLimited, contract.OutcomeRateLimited},
		{"upstream", &contract.UpstreamError{Endpoint: schema.ProfileEndpoint, StatusCode: 500}, contract.ErrUpstream, contract.OutcomeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &contract.MockProfileClient{}
			recorder := &contract.MockRecorder{}
			client.On("FetchProfile", mock.Anything, "ghost").Return(schema.Profile{}, tt.err)
			recorder.On("ObserveLookup", tt.outcome, mock.Anything).Once()

			result, err := NewExplorer(client, recorder).Explore(context.Background(), schema.ExploreRequest{Handle: "ghost"})
			assert.Nil(t, result)
			require.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), `fetch profile for "ghost"`)

			client.AssertNotCalled(t, "FetchProjects", mock.Anything, mock.Anything)
			recorder.AssertExpectations(t)
		})
	}
}

func TestExplore_ProjectsErrorSkipsLanguages(t *testing.T) {
	client := &contract.MockProfileClient{}
	client.On("FetchProfile", mock.Anything, "octocat").Return(schema.Profile{Login: "octocat"}, nil)
	client.On("FetchProjects", mock.Anything, "octocat").
		Return(nil, &contract.RateLimitError{Endpoint: schema.ProjectsEndpoint})

	_, err := Explore(context.Background(), client, schema.ExploreRequest{Handle: "octocat"})
	require.ErrorIs(t, err, contract.ErrRateLimited)
	assert.False(t, errors.Is(err, contract.ErrNotFound))
	client.AssertNotCalled(t, "FetchProjectLanguages", mock.Anything, mock.Anything, mock.Anything)
}

func TestExplore_LanguageFailuresDegrade(t *testing.T) {
	client := &contract.MockProfileClient{}
	recorder := &contract.MockRecorder{}

	client.On("FetchProfile", mock.Anything, "octocat").Return(schema.Profile{Login: "octocat"}, nil)
	client.On("FetchProjects", mock.Anything, "octocat").Return([]schema.Project{
		{Name: "zeta"}, {Name: "ok"}, {Name: "alpha"},
	}, nil)
	client.On("FetchProjectLanguages", mock.Anything, "octocat", "ok").Return(schema.LanguageMap{"Rust": 10}, true)
	client.On("FetchProjectLanguages", mock.Anything, "octocat", "zeta").Return(schema.LanguageMap{}, false)
	client.On("FetchProjectLanguages", mock.Anything, "octocat", "alpha").Return(schema.LanguageMap{}, false)
	recorder.On("AddLanguageFailures", 2).Once()
	recorder.On("ObserveLookup", contract.OutcomeOK, mock.Anything).Once()

	result, err := NewExplorer(client, recorder).Explore(context.Background(), schema.ExploreRequest{Handle: "octocat"})
	require.NoError(t, err)

	assert.True(t, result.Degraded())
	assert.Equal(t, 2, result.LanguageFailures)
	assert.Equal(t, []string{"alpha", "zeta"}, result.FailedProjects)
	require.Len(t, result.Languages, 1)
	assert.Equal(t, schema.LanguageStat{Name: "Rust", Percentage: 100}, result.Languages[0])
	recorder.AssertExpectations(t)
}

func TestExplore_AllLanguageFailures(t *testing.T) {
	client := &fakeClient{
		projects: makeProjects(4),
		langs: func(context.Context, string) (schema.LanguageMap, bool) {
			return schema.LanguageMap{}, false
		},
	}

	result, err := Explore(context.Background(), client, schema.ExploreRequest{Handle: "octocat"})
	require.NoError(t, err)
	assert.Empty(t, result.Languages)
	assert.Equal(t, 4, result.LanguageFailures)
	assert.Len(t, result.Projects, 4)
}

func TestExplore_FetchesLanguagesConcurrently(t *testing.T) {
	const n = 8
	var started sync.WaitGroup
	started.Add(n)
	release := make(chan struct{})

	client := &fakeClient{
		projects: makeProjects(n),
		langs: func(context.Context, string) (schema.LanguageMap, bool) {
			started.Done()
			<-release
			return schema.LanguageMap{"Go": 1}, true
		},
	}

	done := make(chan error, 1)
	go func() {
		_, err := Explore(context.Background(), client, schema.ExploreRequest{Handle: "octocat"})
		done <- err
	}()

	// Every fetch must be in flight before any of them completes.
	allStarted := make(chan struct{})
	go func() {
		started.Wait()
		close(allStarted)
	}()
	select {
	case <-allStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("language fetches did not run concurrently")
	}
	close(release)
	require.NoError(t, <-done)
}

func TestExplore_WorkersBoundConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	client := &fakeClient{
		projects: makeProjects(20),
		langs: func(context.Context, string) (schema.LanguageMap, bool) {
			cur := inFlight.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return schema.LanguageMap{"Go": 1}, true
		},
	}

	result, err := Explore(context.Background(), client, schema.ExploreRequest{Handle: "octocat", Workers: 3})
	require.NoError(t, err)
	assert.Len(t, result.ProjectLanguages, 20)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Greater(t, peak.Load(), int32(0))
}

func TestExplore_ResultIndependentOfCompletionOrder(t *testing.T) {
	projects := makeProjects(6)
	langs := map[string]schema.LanguageMap{}
	for i, p := range projects {
		langs[p.Name] = schema.LanguageMap{fmt.Sprintf("L%d", i%3): int64(100 * (i + 1))}
	}

	run := func(delay func(i int) time.Duration) *schema.ExploreResult {
		client := &fakeClient{
			projects: projects,
			langs: func(_ context.Context, project string) (schema.LanguageMap, bool) {
				var idx int
				_, _ = fmt.Sscanf(project, "project-%02d", &idx)
				time.Sleep(delay(idx))
				return langs[project], true
			},
		}
		result, err := Explore(context.Background(), client, schema.ExploreRequest{Handle: "octocat"})
		require.NoError(t, err)
		return result
	}

	forward := run(func(i int) time.Duration { return time.Duration(i) * time.Millisecond })
	backward := run(func(i int) time.Duration { return time.Duration(6-i) * time.Millisecond })
	assert.Equal(t, forward.Languages, backward.Languages)
	assert.Equal(t, forward.ProjectLanguages, backward.ProjectLanguages)
}

func TestExplore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	recorder := &contract.MockRecorder{}
	recorder.On("AddLanguageFailures", mock.Anything).Maybe()
	recorder.On("ObserveLookup", contract.OutcomeCanceled, mock.Anything).Once()

	client := &fakeClient{
		projects: makeProjects(3),
		langs: func(ctx context.Context, _ string) (schema.LanguageMap, bool) {
			cancel()
			<-ctx.Done()
			return schema.LanguageMap{}, false
		},
	}

	_, err := NewExplorer(client, recorder).Explore(ctx, schema.ExploreRequest{Handle: "octocat"})
	require.ErrorIs(t, err, context.Canceled)
	recorder.AssertExpectations(t)
}
