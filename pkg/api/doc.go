// Package api defines the caller-facing protocol types for the geminiproxy
// bridge.
//
// Callers speak the Gemini generate-content vocabulary: conversation turns
// are [google.golang.org/genai] Content values, and responses are returned
// as genai response types unmodified. This package contributes the request
// envelopes that carry those turns across the HTTP surface, request
// validation, and the error taxonomy shared by the bridge and the gateway.
//
// Core types:
//   - [GenerateContentRequest]: multi-turn generation request (streaming and non-streaming)
//   - [EmbedContentRequest]: embedding request over the same turn structure
//   - [CountTokensRequest]: token-count request over the same turn structure
//   - [BackendHTTPError]: non-2xx backend status with the raw body captured
//   - [TransportError], [DecodeError], [ValidationError]: the remaining failure classes
//   - [APIError]: the structured error envelope returned on the wire
//
// The error types implement error and support errors.As; TransportError and
// DecodeError additionally support errors.Unwrap.
package api
