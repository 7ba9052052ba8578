package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MetricsMiddleware wraps an HTTP handler to record request metrics.
//
// It captures:
//   - geminiproxy_requests_total (counter): incremented per request with method, status class, and operation labels
//   - geminiproxy_request_duration_seconds (histogram): request duration with method and operation labels
//   - geminiproxy_streaming_connections_active (gauge): incremented while a streaming request is in flight
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		operation := operationFromRequest(r)

		if operation == "streamGenerateContent" {
			StreamingConnections.Inc()
			defer StreamingConnections.Dec()
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()

		// Build a status class label like "2xx", "4xx", "5xx".
		statusStr := strconv.Itoa(sw.status/100) + "xx"

		RequestsTotal.WithLabelValues(r.Method, statusStr, operation).Inc()
		RequestDuration.WithLabelValues(r.Method, operation).Observe(duration)
	})
}

// operationFromRequest derives the operation label from the request path.
// Model-scoped routes carry the operation as a colon suffix; the fixed
// routes map to fixed labels, and everything else collapses to "other" to
// keep label cardinality bounded.
func operationFromRequest(r *http.Request) string {
	path := r.URL.Path
	if path == "/v1beta/models" {
		return "listModels"
	}
	if rest, ok := strings.CutPrefix(path, "/v1beta/models/"); ok {
		if i := strings.LastIndex(rest, ":"); i >= 0 && i < len(rest)-1 {
			return rest[i+1:]
		}
		return "unknown"
	}
	return "other"
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

// WriteHeader captures the status code and delegates to the underlying writer.
func (w *statusWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

// Write delegates to the underlying writer and marks the status as written.
func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}

// Flush delegates to the underlying writer if it implements http.Flusher.
// This is essential for SSE streaming support.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter, enabling http.ResponseController
// and similar utilities to access the original writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
