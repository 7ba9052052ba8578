package provider

// Operation identifies one of the bridge's public operations. The gateway
// uses the same tokens as path suffixes on its model routes.
type Operation string

const (
	OpGenerateContent       Operation = "generateContent"
	OpStreamGenerateContent Operation = "streamGenerateContent"
	OpCountTokens           Operation = "countTokens"
	OpEmbedContent          Operation = "embedContent"
)

// Capabilities declares what operations the backend supports. Used by the
// gateway for early request validation.
type Capabilities struct {
	// Streaming indicates whether the provider supports streamed generation.
	Streaming bool

	// Embeddings indicates whether the provider exposes an embeddings
	// endpoint.
	Embeddings bool
}
