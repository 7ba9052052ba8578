package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
)

// HTTPStatusFromError maps an APIError type to the corresponding HTTP
// status code.
func HTTPStatusFromError(err *api.APIError) int {
	switch err.Type {
	case api.ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case api.ErrorTypeNotFound:
		return http.StatusNotFound
	case api.ErrorTypeBackendError:
		return http.StatusBadGateway
	case api.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	case api.ErrorTypeServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// MapError classifies any error from the bridge into an APIError and the
// HTTP status it should be served with. Typed errors from the provider
// layer keep their diagnostic detail; everything unrecognized becomes a
// generic server error.
func MapError(err error) (*api.APIError, int) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr, HTTPStatusFromError(apiErr)
	}

	var valErr *api.ValidationError
	if errors.As(err, &valErr) {
		return api.NewInvalidRequestError(valErr.Error()), http.StatusBadRequest
	}

	var backendErr *api.BackendHTTPError
	if errors.As(err, &backendErr) {
		return api.NewBackendError(backendErr.Error()), http.StatusBadGateway
	}

	var transportErr *api.TransportError
	if errors.As(err, &transportErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			return api.NewTimeoutError(transportErr.Error()), http.StatusGatewayTimeout
		}
		return api.NewBackendError(transportErr.Error()), http.StatusBadGateway
	}

	var decodeErr *api.DecodeError
	if errors.As(err, &decodeErr) {
		return api.NewBackendError(decodeErr.Error()), http.StatusBadGateway
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return api.NewTimeoutError("request deadline exceeded"), http.StatusGatewayTimeout
	}

	return api.NewServerError(err.Error()), http.StatusInternalServerError
}

// WriteErrorResponse writes an APIError as a JSON error envelope with the
// given HTTP status code.
func WriteErrorResponse(w http.ResponseWriter, apiErr *api.APIError, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: apiErr})
}

// WriteAPIError maps err and writes the resulting envelope. It is the
// one-call form handlers use when a request fails before any response
// bytes have been written.
func WriteAPIError(w http.ResponseWriter, err error) {
	apiErr, status := MapError(err)
	WriteErrorResponse(w, apiErr, status)
}
