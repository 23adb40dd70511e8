package places

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid places client configuration")
	// ErrInvalidOptions indicates search options rejected before the request
	ErrInvalidOptions = errors.New("invalid search options")
	// ErrNotFound indicates a details lookup matched no spot
	ErrNotFound = errors.New("spot not found")
)

// TransportError represents a network failure or a non-2xx HTTP response
type TransportError struct {
	Endpoint   Endpoint
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("places %s: unexpected HTTP status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("places %s: request failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError represents a body that could not be decoded or is
// missing required fields
type MalformedResponseError struct {
	Endpoint Endpoint
	Reason   string
	Err      error
}

// Error implements the error interface
func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("places %s: malformed response: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("places %s: malformed response: %s", e.Endpoint, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// APIStatusError represents a non-OK status returned by the API
type APIStatusError struct {
	Endpoint Endpoint
	Status   Status
	Message  string
}

// Error implements the error interface
func (e *APIStatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("places %s: status %s: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("places %s: status %s", e.Endpoint, e.Status)
}

// Is reports NOT_FOUND and ZERO_RESULTS statuses as ErrNotFound
func (e *APIStatusError) Is(target error) bool {
	return target == ErrNotFound && e.IsNotFound()
}

// IsNotFound checks if the status means the lookup matched nothing
func (e *APIStatusError) IsNotFound() bool {
	return e.Status == StatusNotFound || e.Status == StatusZeroResults
}

// IsDenied checks if the status indicates a rejected API key or quota
func (e *APIStatusError) IsDenied() bool {
	return e.Status == StatusRequestDenied || e.Status == StatusOverQueryLimit
}

// ValidationError represents an option rejected before any request was made
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidOptions, e.Field, e.Reason)
}

// Unwrap returns ErrInvalidOptions so callers can match with errors.Is
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidOptions, e.Err}
	}
	return []error{ErrInvalidOptions}
}
