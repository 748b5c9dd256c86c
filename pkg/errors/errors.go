package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for the console. Every failed network call is normalized to
// an *APIError wrapping one of these sentinels, so callers branch with
// errors.Is instead of inspecting status codes.

var (
	// ErrUnauthorized indicates the server rejected the bearer token (401).
	// Callers must clear the session and route back to login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates a single-resource fetch hit a missing record (404)
	ErrNotFound = errors.New("not found")

	// ErrTransport indicates a network failure or an unrecognized server error
	ErrTransport = errors.New("transport error")

	// ErrValidation indicates a client-side form rule failed before submission
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedFile indicates a selected image has a disallowed media type
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrNoSession indicates an operation requiring authentication was
	// attempted with no stored session
	ErrNoSession = errors.New("no active session")
)

// genericMessage is surfaced when the server supplied no usable message.
const genericMessage = "request failed"

// APIError is the structured failure returned by the API client: the HTTP
// status (0 for pure transport failures), the server-supplied message when
// one was decoded, and the sentinel the status maps to.
type APIError struct {
	StatusCode int
	Message    string
	err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.err, e.Message)
	}
	return fmt.Sprintf("%s (status %d): %s", e.err, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// UserMessage returns the text to surface in the UI banner.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return genericMessage
}

// FromStatus builds an APIError from an HTTP response status and the message
// decoded from the error body (may be empty).
func FromStatus(status int, message string) *APIError {
	sentinel := ErrTransport
	switch status {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	}
	if message == "" {
		message = genericMessage
	}
	return &APIError{StatusCode: status, Message: message, err: sentinel}
}

// Transport wraps a network-level failure (no HTTP status available).
func Transport(err error) *APIError {
	return &APIError{Message: err.Error(), err: ErrTransport}
}

// MessageFor extracts the user-facing text from any error produced by the
// API client, falling back to the generic message.
func MessageFor(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if err != nil {
		return err.Error()
	}
	return genericMessage
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
