package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the provider. StatusCode is the
// provider's HTTP status; Message is extracted from the error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a provider 404. A 404 means the bot id
// is unknown or expired, so callers must not retry.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// StatusCode returns the provider status code carried by err, or fallback
// when err is not an APIError.
func StatusCode(err error, fallback int) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return fallback
}
