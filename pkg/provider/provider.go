package provider

import (
	"context"
	"iter"

	"google.golang.org/genai"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
)

// Provider abstracts a generate-content backend. The interface is
// protocol-agnostic: each adapter translates between the normalized
// vocabulary and its own backend protocol internally.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Provider interface {
	// Name returns the provider identifier (e.g., "openaicompat").
	Name() string

	// Capabilities returns what this provider supports.
	Capabilities() Capabilities

	// Generate performs non-streaming generation.
	Generate(ctx context.Context, req *api.GenerateContentRequest) (*genai.GenerateContentResponse, error)

	// GenerateStream performs streaming generation. The returned sequence
	// is finite and single-pass: it yields normalized partial responses as
	// frames arrive and ends when the backend closes its stream. Setup
	// failures are returned directly before any element is produced;
	// failures after setup end the sequence through its error value.
	GenerateStream(ctx context.Context, req *api.GenerateContentRequest) (iter.Seq2[*genai.GenerateContentResponse, error], error)

	// CountTokens reports token usage for the given turns.
	CountTokens(ctx context.Context, req *api.CountTokensRequest) (*genai.CountTokensResponse, error)

	// EmbedContent embeds every text fragment in the request, in order.
	EmbedContent(ctx context.Context, req *api.EmbedContentRequest) (*genai.EmbedContentResponse, error)

	// ListModels returns the model identifiers the backend advertises.
	ListModels(ctx context.Context) ([]string, error)

	// Close releases provider resources (HTTP clients, connections).
	Close() error
}
