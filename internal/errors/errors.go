package errors

import (
	"errors"
	"fmt"
)

// Error codes for programmatic handling.
const (
	CodeInvalidSession   = "INVALID_SESSION"
	CodeTemplateNotFound = "TEMPLATE_NOT_FOUND"
	CodeCurationFailed   = "CURATION_FAILED"
	CodeStoreError       = "STORE_ERROR"
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeAPIKeyMissing    = "API_KEY_MISSING"
)

// ServiceError is a structured error with a code and actionable suggestion.
type ServiceError struct {
	Code       string // machine-readable code (e.g. INVALID_SESSION)
	Message    string // human-readable description
	Suggestion string // actionable fix
	Err        error  // wrapped underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap supports errors.Is / errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// New creates a ServiceError with the given code and message.
func New(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

// Wrap creates a ServiceError wrapping an existing error.
func Wrap(code, message string, err error) *ServiceError {
	return &ServiceError{Code: code, Message: message, Err: err}
}

// WithSuggestion returns a copy with the suggestion set.
func (e *ServiceError) WithSuggestion(suggestion string) *ServiceError {
	e.Suggestion = suggestion
	return e
}

// Is checks whether target matches this error's code.
func (e *ServiceError) Is(target error) bool {
	var se *ServiceError
	if errors.As(target, &se) {
		return e.Code == se.Code
	}
	return false
}

// AsCode extracts the ServiceError code from an error, or "" if not a ServiceError.
func AsCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// Suggestion extracts the suggestion from an error, or "" if not a ServiceError.
func Suggestion(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Suggestion
	}
	return ""
}
