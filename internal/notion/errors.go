package notion

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the Notion client.
var (
	// ErrNotFound indicates the database or page was not found, or is not
	// shared with the integration.
	ErrNotFound = errors.New("not found in Notion")

	// ErrAuthError indicates an authentication error (missing/invalid token).
	ErrAuthError = errors.New("Notion authentication error")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("Notion rate limit exceeded")

	// ErrAPIError indicates a general API error.
	ErrAPIError = errors.New("Notion API error")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with Notion")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from Notion")

	// ErrInvalidDatabaseID indicates an input that holds no database ID.
	ErrInvalidDatabaseID = errors.New("invalid Notion database ID")
)

// APIError represents an error object returned by the Notion API.
type APIError struct {
	StatusCode int
	Code       string // Error code from API (e.g., "object_not_found", "unauthorized")
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Notion API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the status code to one of the sentinel errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return ErrAuthError
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrAPIError
	}
}

// IsNotFound returns true if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthError)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
