// Package ghclient has the GitHub REST client used to explore a handle.
package ghclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
)

// Header names and values used against the upstream API.
const (
	acceptHeader         = "application/vnd.github.v3+json"
	rateRemainingHeader  = "X-RateLimit-Remaining"
	rateResetHeader      = "X-RateLimit-Reset"
	defaultUserAgentName = "devscope"
)

// Options configures an HTTPClient. Every field is explicit; nothing is read
// from the environment.
type Options struct {
	BaseURL    string        // e.g. https://api.github.com
	Token      string        // Optional personal access token
	Timeout    time.Duration // Per-request timeout
	UserAgent  string        // Sent on every request
	HTTPClient *http.Client  // Optional transport override
	Recorder   contract.Recorder
	Logger     *slog.Logger
}

// HTTPClient implements the ProfileClient interface over the GitHub REST API.
type HTTPClient struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client
	recorder  contract.Recorder
	logger    *slog.Logger
}

var _ contract.ProfileClient = &HTTPClient{} // Compile-time check

// New creates a new instance of the GitHub client.
func New(opts Options) *HTTPClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = schema.DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgentName
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = contract.NopRecorder{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPClient{
		baseURL:   baseURL,
		token:     opts.Token,
		userAgent: userAgent,
		http:      httpClient,
		recorder:  recorder,
		logger:    logger,
	}
}

// NewFromConfig creates a client from the validated configuration.
func NewFromConfig(cfg *contract.Config, recorder contract.Recorder) *HTTPClient {
	return New(Options{
		BaseURL:   cfg.BaseURL,
		Token:     cfg.Token,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Recorder:  recorder,
	})
}

// FetchProfile implements the ProfileClient interface.
func (c *HTTPClient) FetchProfile(ctx context.Context, handle string) (schema.Profile, error) {
	var profile schema.Profile
	path := "/users/" + url.PathEscape(handle)
	if err := c.getJSON(ctx, schema.ProfileEndpoint, path, &profile); err != nil {
		return schema.Profile{}, err
	}
	return profile, nil
}

// FetchProjects implements the ProfileClient interface.
func (c *HTTPClient) FetchProjects(ctx context.Context, handle string) ([]schema.Project, error) {
	var projects []schema.Project
	path := fmt.Sprintf("/users/%s/repos?per_page=%d&sort=updated&direction=desc", url.PathEscape(handle), schema.ProjectsPerPage)
	if err := c.getJSON(ctx, schema.ProjectsEndpoint, path, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []schema.Project{}
	}
	return projects, nil
}

// FetchProjectLanguages implements the ProfileClient interface.
func (c *HTTPClient) FetchProjectLanguages(ctx context.Context, handle, project string) (schema.LanguageMap, bool) {
	var langs schema.LanguageMap
	path := fmt.Sprintf("/repos/%s/%s/languages", url.PathEscape(handle), url.PathEscape(project))
	if err := c.getJSON(ctx, schema.LanguagesEndpoint, path, &langs); err != nil {
		c.logger.Warn("could not fetch project languages",
			slog.String("handle", handle),
			slog.String("project", project),
			slog.Any("error", err),
		)
		return schema.LanguageMap{}, false
	}
	if langs == nil {
		langs = schema.LanguageMap{}
	}
	return langs, true
}

// getJSON performs a single GET and decodes a successful response into out.
func (c *HTTPClient) getJSON(ctx context.Context, endpoint schema.Endpoint, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &contract.UpstreamError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.recorder.ObserveUpstream(endpoint, 0)
		return &contract.UpstreamError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.recorder.ObserveUpstream(endpoint, resp.StatusCode)
	c.logger.Debug("upstream response",
		slog.String("endpoint", string(endpoint)),
		slog.Int("status", resp.StatusCode),
		slog.String("remaining", resp.Header.Get(rateRemainingHeader)),
	)

	if err := checkResponse(endpoint, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &contract.UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// checkResponse maps a non-success response onto the error taxonomy.
func checkResponse(endpoint schema.Endpoint, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusForbidden && resp.Header.Get(rateRemainingHeader) == "0" {
		return &contract.RateLimitError{
			Endpoint: endpoint,
			Reset:    parseReset(resp.Header.Get(rateResetHeader)),
		}
	}
	if resp.StatusCode == http.StatusNotFound && endpoint == schema.ProfileEndpoint {
		return contract.ErrNotFound
	}
	return &contract.UpstreamError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}

// parseReset converts the reset header (Unix seconds) into a time.
// It returns the zero time when the header is missing or malformed.
func parseReset(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	secs, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}
