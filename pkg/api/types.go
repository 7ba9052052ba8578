package api

import "google.golang.org/genai"

// GenerateContentRequest is a multi-turn generation request. The same
// envelope serves the streaming and non-streaming operations.
type GenerateContentRequest struct {
	// Model is the requested model identifier. On the HTTP surface it
	// arrives in the URL path and is filled in by the gateway before
	// dispatch; library callers set it directly.
	Model string `json:"model,omitempty"`

	// Contents is the ordered conversation history. Only text parts are
	// meaningful to the bridge; any other part kind contributes the empty
	// string when a turn is flattened.
	Contents []*genai.Content `json:"contents"`
}

// EmbedContentRequest carries the turns whose text fragments are embedded.
type EmbedContentRequest struct {
	Model    string           `json:"model,omitempty"`
	Contents []*genai.Content `json:"contents"`
}

// CountTokensRequest carries the turns to count tokens for.
type CountTokensRequest struct {
	Model    string           `json:"model,omitempty"`
	Contents []*genai.Content `json:"contents"`
}

// ModelList is the gateway's model listing payload. Identifiers are plain
// strings in the order the backend reported them.
type ModelList struct {
	Models []string `json:"models"`
}
