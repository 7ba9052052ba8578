// Package transport provides the HTTP middleware chain and error mapping
// for the geminiproxy gateway.
//
// The transport layer sits between external clients and the bridge. It
// carries cross-cutting concerns as composable http.Handler middleware and
// translates the bridge's typed errors into the JSON error envelope with
// the right HTTP status.
//
// # Middleware
//
// Middleware wraps http.Handler with cross-cutting behavior. Built-in
// middleware provides panic recovery, request ID assignment (X-Request-ID),
// and structured request logging via log/slog. Chain composes them so the
// first middleware is the outermost wrapper.
//
// # Error Mapping
//
// MapError classifies any error coming out of the bridge: validation
// failures map to 400, backend and decode failures to 502, deadline
// expiry to 504, and everything else to 500. WriteAPIError serializes the
// envelope.
package transport
