package openaicompat

import (
	"io"
	"net/http"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
)

// maxErrorBodyBytes caps how much of a failed response body is captured
// into a BackendHTTPError.
const maxErrorBodyBytes = 64 * 1024

// HTTPErrorFromResponse converts a non-2xx response into a BackendHTTPError
// carrying the status code and the raw body. The body is read verbatim (up
// to a cap) rather than parsed: whatever the backend said is what the
// caller gets to see.
func HTTPErrorFromResponse(resp *http.Response) *api.BackendHTTPError {
	var body string
	if resp.Body != nil {
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if err == nil {
			body = string(data)
		}
	}
	return api.NewBackendHTTPError(resp.StatusCode, body)
}
