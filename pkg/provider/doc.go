// Package provider defines the backend-agnostic interface of the bridge.
// Each adapter implementation (e.g., openaicompat) handles its own wire
// protocol internally; callers see only the Gemini generate-content
// vocabulary carried by the api package and google.golang.org/genai.
package provider
