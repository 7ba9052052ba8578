package api

import "fmt"

// ErrorType represents the category of an error envelope on the wire.
type ErrorType string

const (
	ErrorTypeServerError    ErrorType = "server_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeBackendError   ErrorType = "backend_error"
	ErrorTypeTimeout        ErrorType = "timeout"
)

// APIError is the structured error envelope serialized to gateway clients.
type APIError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorResponse wraps an APIError for JSON serialization as the top-level
// error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidRequestError creates an APIError for invalid request parameters.
func NewInvalidRequestError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Message: message,
	}
}

// NewNotFoundError creates an APIError for resources that cannot be found.
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}

// NewBackendError creates an APIError for failures reported by or while
// talking to the backend.
func NewBackendError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeBackendError,
		Message: message,
	}
}

// NewTimeoutError creates an APIError for a request that exceeded its
// deadline.
func NewTimeoutError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeTimeout,
		Message: message,
	}
}

// BackendHTTPError reports a non-2xx status from any backend endpoint. The
// response body is captured verbatim for diagnostics. It is never retried.
type BackendHTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *BackendHTTPError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// NewBackendHTTPError creates a BackendHTTPError from a status code and the
// raw response body.
func NewBackendHTTPError(statusCode int, body string) *BackendHTTPError {
	return &BackendHTTPError{
		StatusCode: statusCode,
		Body:       body,
	}
}

// TransportError reports a failure to reach the backend or to read from it:
// request construction, connection failures, a missing body where one was
// expected, or a mid-stream read failure.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err with the operation that failed.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// DecodeError reports malformed JSON or missing required structure in a
// whole-response parse. Unlike a skipped stream frame, a DecodeError is a
// hard failure of the entire call.
type DecodeError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding backend response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decoding backend response: %s", e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a DecodeError with an optional underlying cause.
func NewDecodeError(reason string, err error) *DecodeError {
	return &DecodeError{Reason: reason, Err: err}
}

// ValidationError reports a request rejected before any backend call.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid request: %s (field: %s)", e.Reason, e.Field)
	}
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
