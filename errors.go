package manychat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrorType identifies one variant of the closed error taxonomy. Callers
// should branch on the type (via errors.Is or *APIError.Type), not on the
// message text.
type ErrorType string

const (
	// ErrorTypeAuth: the API key was rejected (401). Never retried.
	ErrorTypeAuth ErrorType = "Auth"
	// ErrorTypeRateLimit: the API throttled the request (429). Retried;
	// carries the server's Retry-After hint.
	ErrorTypeRateLimit ErrorType = "RateLimit"
	// ErrorTypeValidation: the request was malformed (400), a local
	// argument check failed, or a response body did not match the
	// expected shape. Never retried.
	ErrorTypeValidation ErrorType = "Validation"
	// ErrorTypeNotFound: the resource does not exist (404). Never retried.
	ErrorTypeNotFound ErrorType = "NotFound"
	// ErrorTypeConflict: the request conflicts with current state (409).
	// Never retried.
	ErrorTypeConflict ErrorType = "Conflict"
	// ErrorTypeServer: the API failed (5xx). Retried.
	ErrorTypeServer ErrorType = "Server"
	// ErrorTypeTimeout: no response within Config.Timeout. Retried.
	ErrorTypeTimeout ErrorType = "Timeout"
	// ErrorTypeConnection: the request never completed at the transport
	// level (DNS failure, refused connection, reset). Retried.
	ErrorTypeConnection ErrorType = "Connection"
	// ErrorTypeAPI: any other non-success status. Never retried.
	ErrorTypeAPI ErrorType = "API"
)

// defaultRetryAfter is used when a 429 response carries no parseable
// Retry-After header.
const defaultRetryAfter = 60

// APIError is the error returned for every classified failure. Exactly
// one is produced per failed call; retryable kinds are surfaced only
// after the attempt budget is exhausted.
type APIError struct {
	Type       ErrorType
	Message    string
	StatusCode int    // 0 for transport-level failures
	Body       []byte // raw response body, if one was received
	RetryAfter int    // seconds, set on RateLimit errors
	Cause      error  // underlying transport error, if any
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("manychat: %s: %s", e.Type, e.Message)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying transport cause.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types so that
// errors.Is(err, &APIError{Type: ErrorTypeAuth}) works.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*APIError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// Retryable reports whether the executor may retry this failure.
func (e *APIError) Retryable() bool {
	if e == nil {
		return false
	}
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeServer, ErrorTypeTimeout, ErrorTypeConnection:
		return true
	default:
		return false
	}
}

// IsRetryable reports whether err represents a transient failure that
// might succeed on retry: connection errors, timeouts, 429 and 5xx
// responses. Auth, validation, not-found and conflict failures are final.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return false
}

// classifyTransport maps a failed round trip (no HTTP response) onto the
// taxonomy. Caller cancellation is not a taxonomy case and must be
// filtered out before calling this.
func classifyTransport(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{
			Type:    ErrorTypeTimeout,
			Message: "request timed out",
			Cause:   err,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{
			Type:    ErrorTypeTimeout,
			Message: "request timed out",
			Cause:   err,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &APIError{
			Type:    ErrorTypeTimeout,
			Message: "request timed out",
			Cause:   err,
		}
	}

	return &APIError{
		Type:    ErrorTypeConnection,
		Message: "connection failed",
		Cause:   err,
	}
}

// classifyStatus maps a completed HTTP exchange with a non-success status
// onto the taxonomy. The raw body is attached for caller diagnostics.
func classifyStatus(statusCode int, header http.Header, body []byte) *APIError {
	switch {
	case statusCode == http.StatusUnauthorized:
		return &APIError{
			Type:       ErrorTypeAuth,
			Message:    "invalid API key",
			StatusCode: statusCode,
			Body:       body,
		}
	case statusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(header.Get("Retry-After"))
		return &APIError{
			Type:       ErrorTypeRateLimit,
			Message:    fmt.Sprintf("rate limit exceeded, retry after %d seconds", retryAfter),
			StatusCode: statusCode,
			Body:       body,
			RetryAfter: retryAfter,
		}
	case statusCode == http.StatusBadRequest:
		return &APIError{
			Type:       ErrorTypeValidation,
			Message:    "request rejected by the API",
			StatusCode: statusCode,
			Body:       body,
		}
	case statusCode == http.StatusNotFound:
		return &APIError{
			Type:       ErrorTypeNotFound,
			Message:    "resource not found",
			StatusCode: statusCode,
			Body:       body,
		}
	case statusCode == http.StatusConflict:
		return &APIError{
			Type:       ErrorTypeConflict,
			Message:    "conflict with current state",
			StatusCode: statusCode,
			Body:       body,
		}
	case statusCode >= http.StatusInternalServerError:
		return &APIError{
			Type:       ErrorTypeServer,
			Message:    "server error",
			StatusCode: statusCode,
			Body:       body,
		}
	default:
		return &APIError{
			Type:       ErrorTypeAPI,
			Message:    fmt.Sprintf("request failed with status %d", statusCode),
			StatusCode: statusCode,
			Body:       body,
		}
	}
}

// parseRetryAfter parses a Retry-After header value in delay-seconds or
// HTTP-date format, returning defaultRetryAfter when absent or
// unparseable.
func parseRetryAfter(value string) int {
	if value == "" {
		return defaultRetryAfter
	}

	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if seconds > 0 {
			return seconds
		}
		return defaultRetryAfter
	}

	if t, err := http.ParseTime(value); err == nil {
		if secs := int(time.Until(t).Seconds()); secs > 0 {
			return secs
		}
	}

	return defaultRetryAfter
}
