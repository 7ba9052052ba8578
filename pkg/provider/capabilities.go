package provider

import (
	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
)

// ValidateCapabilities checks whether the given operation is compatible
// with the provider's declared capabilities. Returns an APIError naming the
// unsupported operation, or nil if the operation is supported.
func ValidateCapabilities(caps Capabilities, op Operation) *api.APIError {
	switch op {
	case OpStreamGenerateContent:
		if !caps.Streaming {
			return api.NewInvalidRequestError(
				"the configured provider does not support streamed generation")
		}
	case OpEmbedContent:
		if !caps.Embeddings {
			return api.NewInvalidRequestError(
				"the configured provider does not support embeddings")
		}
	}
	return nil
}
