package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestErrorInterfaces(t *testing.T) {
	var _ error = &APIError{}
	var _ error = &BackendHTTPError{}
	var _ error = &TransportError{}
	var _ error = &DecodeError{}
	var _ error = &ValidationError{}
}

func TestAPIErrorString(t *testing.T) {
	err := &APIError{Type: ErrorTypeInvalidRequest, Message: "contents is required"}
	want := "invalid_request: contents is required"
	if got := err.Error(); got != want {
		t.Errorf("APIError.Error() = %q, want %q", got, want)
	}
}

func TestBackendHTTPErrorString(t *testing.T) {
	err := NewBackendHTTPError(500, "overloaded")
	want := "backend returned status 500: overloaded"
	if got := err.Error(); got != want {
		t.Errorf("BackendHTTPError.Error() = %q, want %q", got, want)
	}
	if err.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", err.StatusCode)
	}
	if err.Body != "overloaded" {
		t.Errorf("Body = %q, want %q", err.Body, "overloaded")
	}
}

func TestBackendHTTPErrorAs(t *testing.T) {
	wrapped := fmt.Errorf("generate: %w", NewBackendHTTPError(429, "slow down"))

	var httpErr *BackendHTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatal("errors.As failed to find BackendHTTPError")
	}
	if httpErr.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", httpErr.StatusCode)
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("sending chat request", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to find the underlying cause")
	}
	want := "sending chat request: connection refused"
	if got := err.Error(); got != want {
		t.Errorf("TransportError.Error() = %q, want %q", got, want)
	}
}

func TestDecodeErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *DecodeError
		want string
	}{
		{
			"with cause",
			NewDecodeError("invalid JSON", errors.New("unexpected end of input")),
			"decoding backend response: invalid JSON: unexpected end of input",
		},
		{
			"without cause",
			NewDecodeError("no choices in completion", nil),
			"decoding backend response: no choices in completion",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("DecodeError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			"with field",
			NewValidationError("contents", "must contain at least one turn"),
			"invalid request: must contain at least one turn (field: contents)",
		},
		{
			"without field",
			&ValidationError{Reason: "malformed body"},
			"invalid request: malformed body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := ErrorResponse{Error: NewBackendError("backend returned status 500")}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	inner, ok := decoded["error"]
	if !ok {
		t.Fatal("missing top-level error key")
	}
	if inner["type"] != "backend_error" {
		t.Errorf("type = %v, want backend_error", inner["type"])
	}
	if inner["message"] != "backend returned status 500" {
		t.Errorf("message = %v, want backend returned status 500", inner["message"])
	}
}
