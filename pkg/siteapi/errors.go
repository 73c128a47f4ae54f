package siteapi

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an operation failed.
type ErrorKind string

const (
	// ErrorKindNetwork covers connection, DNS, context, and request-build failures.
	ErrorKindNetwork ErrorKind = "network"

	// ErrorKindEncode means the request payload could not be serialized to JSON.
	ErrorKindEncode ErrorKind = "encode"

	// ErrorKindParse means a 2xx response body was not valid JSON.
	ErrorKindParse ErrorKind = "parse"

	// ErrorKindHTTPStatus means a non-2xx response body was not valid JSON.
	ErrorKindHTTPStatus ErrorKind = "http_status"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrBaseURLRequired  = errors.New("base URL is required")
	ErrInvalidJSON      = errors.New("response body is not valid JSON")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrNotAList         = errors.New("response field is not a list")
	ErrNullBody         = errors.New("response body is null")
	ErrOperationFailed  = errors.New("operation failed")
)

// OperationError is the single failure type observable by callers. It is
// carried on a failed Envelope and rendered as {"success":false,"error":...}.
type OperationError struct {
	// Op is the client operation name, e.g. "GetLeads".
	Op   string
	Kind ErrorKind
	// StatusCode is set when a response was received.
	StatusCode int
	Err        error
}

// Error implements the error interface. The message is never empty.
func (e *OperationError) Error() string {
	if e.Err != nil && e.Err.Error() != "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is matches ErrOperationFailed so callers can test for any operation failure.
func (e *OperationError) Is(target error) bool {
	return target == ErrOperationFailed
}

// KindOf returns the ErrorKind of err, or "" when err is not an OperationError.
func KindOf(err error) ErrorKind {
	opErr := &OperationError{}
	if errors.As(err, &opErr) {
		return opErr.Kind
	}

	return ""
}

// IsNetworkError checks if the error is a network failure.
func IsNetworkError(err error) bool {
	return KindOf(err) == ErrorKindNetwork
}

// IsEncodeError checks if the error is a request encoding failure.
func IsEncodeError(err error) bool {
	return KindOf(err) == ErrorKindEncode
}

// IsParseError checks if the error is a response parse failure.
func IsParseError(err error) bool {
	return KindOf(err) == ErrorKindParse
}

// IsHTTPStatusError checks if the error is a non-2xx response without a JSON body.
func IsHTTPStatusError(err error) bool {
	return KindOf(err) == ErrorKindHTTPStatus
}
