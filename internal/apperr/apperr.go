// Package apperr defines the stable error codes for the rendering pipeline.
package apperr

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ContentNotFound indicates a slug or title resolves to nothing
	ContentNotFound ErrorCode = "CONTENT_NOT_FOUND"
	// BackendUnavailable indicates the data API is unreachable or failing
	BackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	// Timeout indicates a backend fetch exceeded its deadline
	Timeout ErrorCode = "TIMEOUT"
	// TemplateMissing indicates the HTML template could not be loaded
	TemplateMissing ErrorCode = "TEMPLATE_MISSING"
	// MarkerMissing indicates a placeholder marker is absent from the template
	MarkerMissing ErrorCode = "MARKER_MISSING"
	// RenderFailure indicates the application render entry point failed
	RenderFailure ErrorCode = "RENDER_FAILURE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Error represents a pipeline error with a stable code and an optional cause.
//
// Fetch-side codes (ContentNotFound, BackendUnavailable, Timeout) are
// recovered inside the dispatcher; render-side codes terminate the request.
type Error struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates a new Error
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// CodeOf extracts the stable code from err, or InternalError when err does not
// carry one.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// IsRecoverable reports whether the pipeline should degrade to fallback
// metadata instead of failing the request.
func IsRecoverable(err error) bool {
	switch CodeOf(err) {
	case ContentNotFound, BackendUnavailable, Timeout:
		return true
	default:
		return false
	}
}
