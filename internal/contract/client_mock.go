package contract

import (
	"context"
	"time"

	"github.com/huangsam/devscope/schema"
	"github.com/stretchr/testify/mock"
)

// MockProfileClient is a mock implementation of ProfileClient for testing.
type MockProfileClient struct {
	mock.Mock
}

var _ ProfileClient = &MockProfileClient{} // Compile-time check

// FetchProfile implements the ProfileClient interface.
func (m *MockProfileClient) FetchProfile(ctx context.Context, handle string) (schema.Profile, error) {
	ret := m.Called(ctx, handle)
	profile, _ := ret.Get(0).(schema.Profile)
	return profile, ret.Error(1)
}

// FetchProjects implements the ProfileClient interface.
func (m *MockProfileClient) FetchProjects(ctx context.Context, handle string) ([]schema.Project, error) {
	ret := m.Called(ctx, handle)
	projects, _ := ret.Get(0).([]schema.Project)
	return projects, ret.Error(1)
}

// FetchProjectLanguages implements the ProfileClient interface.
func (m *MockProfileClient) FetchProjectLanguages(ctx context.Context, handle, project string) (schema.LanguageMap, bool) {
	ret := m.Called(ctx, handle, project)
	langs, _ := ret.Get(0).(schema.LanguageMap)
	if langs == nil {
		langs = schema.LanguageMap{}
	}
	return langs, ret.Bool(1)
}

// MockRecorder is a mock implementation of Recorder for testing.
type MockRecorder struct {
	mock.Mock
}

var _ Recorder = &MockRecorder{} // Compile-time check

// ObserveUpstream implements the Recorder interface.
func (m *MockRecorder) ObserveUpstream(endpoint schema.Endpoint, status int) {
	m.Called(endpoint, status)
}

// ObserveLookup implements the Recorder interface.
func (m *MockRecorder) ObserveLookup(outcome string, duration time.Duration) {
	m.Called(outcome, duration)
}

// AddLanguageFailures implements the Recorder interface.
func (m *MockRecorder) AddLanguageFailures(n int) {
	m.Called(n)
}
