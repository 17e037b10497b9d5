package errors

import (
	"context"
	"errors"
	"strings"
)

// Code identifies a structured error type used across the application.
type Code string

const (
	// Generic codes
	CodeUnknown Code = "unknown"

	// Update check failures
	CodeNetworkUnavailable Code = "network_unavailable"
	CodeMalformedResponse  Code = "malformed_response"
	CodeTimeout            Code = "timeout"

	// Local problems
	CodeInvalidVersion     Code = "invalid_version"
	CodeConfigurationError Code = "configuration_error"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
// Context deadlines are reported as CodeTimeout even when unstructured.
func CodeOf(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Reason returns a short sentence suitable for a toast. It is never empty.
func Reason(err error) string {
	var detail string
	var structured Error
	if errors.As(err, &structured) {
		detail = strings.TrimSpace(structured.Message)
	}

	switch CodeOf(err) {
	case CodeNetworkUnavailable:
		if detail != "" {
			return "Update server unreachable: " + detail
		}
		return "Update server unreachable"
	case CodeMalformedResponse:
		if detail != "" {
			return "Unexpected response from update server: " + detail
		}
		return "Unexpected response from update server"
	case CodeTimeout:
		return "Update check timed out"
	case CodeInvalidVersion:
		if detail != "" {
			return detail
		}
		return "Current version is not a release version"
	case CodeConfigurationError:
		if detail != "" {
			return "Update source misconfigured: " + detail
		}
		return "Update source misconfigured"
	}

	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			return msg
		}
	}
	return "Update check failed"
}
