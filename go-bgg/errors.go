package bgg

import (
	"errors"
	"fmt"
)

// AuthRequiredError is returned when no API token is configured.
type AuthRequiredError struct {
	Message string
}

func (e *AuthRequiredError) Error() string {
	return e.Message
}

// AuthRejectedError represents a token the server refused.
type AuthRejectedError struct {
	Message    string
	StatusCode int
}

func (e *AuthRejectedError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Message string
	Cause   error
	ID      int
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// NetworkError represents a network or HTTP error. When returned by a
// ProxyClient it describes the last endpoint tried.
type NetworkError struct {
	Message    string
	Cause      error
	StatusCode int
	Endpoint   string
	Attempts   int
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response that is not well-formed XML.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// newAuthRequiredError creates a new AuthRequiredError.
func newAuthRequiredError() *AuthRequiredError {
	return &AuthRequiredError{Message: "API token is required"}
}

// newAuthRejectedError creates a new AuthRejectedError.
func newAuthRejectedError(statusCode int) *AuthRejectedError {
	return &AuthRejectedError{
		Message:    "invalid or expired token",
		StatusCode: statusCode,
	}
}

// newNotFoundError creates a new NotFoundError.
func newNotFoundError(id int) *NotFoundError {
	return &NotFoundError{
		Message: fmt.Sprintf("resource with ID %d not found", id),
		ID:      id,
	}
}

// newNetworkError creates a new NetworkError.
func newNetworkError(message string, statusCode int, cause error) *NetworkError {
	return &NetworkError{
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// newParseError creates a new ParseError.
func newParseError(message string, cause error) *ParseError {
	return &ParseError{
		Message: message,
		Cause:   cause,
	}
}

// IsAuthRequired reports whether err means no token is configured.
func IsAuthRequired(err error) bool {
	var target *AuthRequiredError
	return errors.As(err, &target)
}

// IsAuthRejected reports whether err means the server refused the token.
func IsAuthRejected(err error) bool {
	var target *AuthRejectedError
	return errors.As(err, &target)
}

// IsTransport reports whether err is a network or HTTP status failure.
func IsTransport(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsMalformed reports whether err is a response parsing failure.
func IsMalformed(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// Describe turns an error from this package into a short message for the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var netErr *NetworkError
	switch {
	case IsAuthRequired(err):
		return "API token not configured. Please set your token from the API Token menu item."
	case IsAuthRejected(err):
		return "The API token was rejected. Please check it from the API Token menu item."
	case errors.As(err, &netErr):
		if netErr.StatusCode != 0 {
			return fmt.Sprintf("BoardGameGeek request failed (HTTP %d).", netErr.StatusCode)
		}
		return "Could not reach BoardGameGeek. Check your connection and try again."
	case IsMalformed(err):
		return "BoardGameGeek returned a response that could not be read."
	}
	return err.Error()
}
