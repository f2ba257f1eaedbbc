package github

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrorKind classifies an upstream failure
type ErrorKind string

const (
	KindRateLimited  ErrorKind = "RATE_LIMITED"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindUpstream     ErrorKind = "UPSTREAM_ERROR"
	KindTransport    ErrorKind = "TRANSPORT_FAILURE"
)

const (
	msgUnauthorized = "unauthorized: invalid or missing credential"
	msgNotFound     = "resource not found"

	// rendering of the rate limit reset clock time
	resetTimeLayout = "3:04:05 PM"
	maxErrorBody    = 1024
)

// APIError is the mapped form of a failed upstream call.
// Status is 0 when no response was received at all.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Body    string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AsAPIError extracts an *APIError from err's chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusOf returns the upstream status carried by err, or 0 if there is none
func StatusOf(err error) int {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Status
	}
	return 0
}

// mapResponseError converts a non-2xx upstream response into an *APIError.
// body is the (possibly truncated) response body.
func mapResponseError(resp *http.Response, body []byte, loc *time.Location) *APIError {
	switch resp.StatusCode {
	case http.StatusForbidden:
		return &APIError{
			Kind:    KindRateLimited,
			Status:  resp.StatusCode,
			Message: rateLimitMessage(resp.Header.Get("X-RateLimit-Reset"), loc),
			Body:    string(body),
		}
	case http.StatusUnauthorized:
		return &APIError{
			Kind:    KindUnauthorized,
			Status:  resp.StatusCode,
			Message: msgUnauthorized,
			Body:    string(body),
		}
	case http.StatusNotFound:
		return &APIError{
			Kind:    KindNotFound,
			Status:  resp.StatusCode,
			Message: msgNotFound,
			Body:    string(body),
		}
	default:
		return &APIError{
			Kind:    KindUpstream,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("upstream request failed with status %d", resp.StatusCode),
			Body:    string(body),
		}
	}
}

// transportError wraps a failure where no response was received
func transportError(err error) *APIError {
	return &APIError{
		Kind:    KindTransport,
		Message: fmt.Sprintf("upstream request failed: %v", err),
		Err:     err,
	}
}

func rateLimitMessage(reset string, loc *time.Location) string {
	epoch, err := strconv.ParseInt(reset, 10, 64)
	if err != nil {
		return "rate limit exceeded, retry later"
	}
	at := time.Unix(epoch, 0).In(loc)
	return "rate limit exceeded, retry at " + at.Format(resetTimeLayout)
}
