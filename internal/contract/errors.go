package contract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/huangsam/devscope/schema"
)

// Sentinel errors for a handle lookup.
var (
	ErrNotFound    = errors.New("handle not found")
	ErrRateLimited = errors.New("rate limit exceeded")
	ErrUpstream    = errors.New("upstream error")
	ErrEmptyHandle = errors.New("handle must not be empty")
)

// Lookup outcomes reported to the Recorder.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeRateLimited = "rate_limited"
	OutcomeUpstream    = "upstream_error"
	OutcomeInvalid     = "invalid"
	OutcomeCanceled    = "canceled"
)

// RateLimitError is returned when the upstream quota is exhausted.
// It matches ErrRateLimited with errors.Is.
type RateLimitError struct {
	Endpoint schema.Endpoint
	Reset    time.Time // Zero when the upstream did not report it
}

func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return fmt.Sprintf("%s: rate limit exceeded", e.Endpoint)
	}
	return fmt.Sprintf("%s: rate limit exceeded until %s", e.Endpoint, e.Reset.Format(time.RFC3339))
}

// Is reports whether target is ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// UpstreamError is returned for any other failed upstream call.
// It matches ErrUpstream with errors.Is.
type UpstreamError struct {
	Endpoint   schema.Endpoint
	StatusCode int    // 0 when no response was received
	Status     string // e.g. "500 Internal Server Error"
	Err        error  // Transport or decode cause, if any
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: upstream request failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: upstream responded %s", e.Endpoint, e.StatusText())
}

// Is reports whether target is ErrUpstream.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// Unwrap returns the transport or decode cause.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StatusText returns the best available description of the failure status.
func (e *UpstreamError) StatusText() string {
	switch {
	case e.Status != "":
		return e.Status
	case e.StatusCode != 0:
		return strconv.Itoa(e.StatusCode)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "unknown error"
	}
}

// Outcome classifies an error returned by a lookup.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, ErrEmptyHandle):
		return OutcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeUpstream
	}
}

// UserMessage converts a lookup error into a message suitable for end users.
func UserMessage(handle string, err error) string {
	if err == nil {
		return ""
	}
	var rateErr *RateLimitError
	var upErr *UpstreamError
	switch {
	case errors.Is(err, ErrEmptyHandle):
		return "Please enter a GitHub username."
	case errors.Is(err, ErrNotFound):
		return fmt.Sprintf("User %q not found.", handle)
	case errors.As(err, &rateErr):
		if rateErr.Endpoint == schema.ProjectsEndpoint {
			return "GitHub API rate limit exceeded for repositories. Please try again later."
		}
		return "GitHub API rate limit exceeded. Please try again later."
	case errors.Is(err, ErrRateLimited):
		return "GitHub API rate limit exceeded. Please try again later."
	case errors.As(err, &upErr):
		if upErr.Endpoint == schema.ProjectsEndpoint {
			return "Failed to fetch repos: " + upErr.StatusText()
		}
		return "API error: " + upErr.StatusText()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Request cancelled before it completed."
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}

// HTTPStatus maps a lookup error onto the status the web API responds with.
func HTTPStatus(err error) int {
	switch Outcome(err) {
	case OutcomeOK:
		return http.StatusOK
	case OutcomeNotFound:
		return http.StatusNotFound
	case OutcomeRateLimited:
		return http.StatusTooManyRequests
	case OutcomeInvalid:
		return http.StatusBadRequest
	case OutcomeCanceled:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
