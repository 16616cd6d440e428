package notion

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the Notion client.
var (
	// ErrNotFound indicates the database, page or block does not exist or is
	// not shared with the integration.
	ErrNotFound = errors.New("not found in Notion")

	// ErrAuthError indicates a missing, invalid or revoked token.
	ErrAuthError = errors.New("Notion authentication error")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("Notion rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with Notion")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from Notion")
)

// APIError is an error object returned by the Notion API.
type APIError struct {
	StatusCode int
	Code       string // e.g. "validation_error", "object_not_found"
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Notion API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps well-known statuses onto the sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthError
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

// IsNotFound returns true if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == "object_not_found"
	}
	return false
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == "unauthorized" || apiErr.Code == "restricted_resource"
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == "rate_limited"
	}
	return false
}
