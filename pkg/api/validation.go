package api

import (
	"fmt"

	"google.golang.org/genai"
)

// ValidationConfig holds configurable limits for request validation.
type ValidationConfig struct {
	MaxContents  int
	MaxTextBytes int
}

// DefaultValidationConfig returns a ValidationConfig with sensible defaults.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxContents:  1000,
		MaxTextBytes: 10 * 1024 * 1024, // 10MB
	}
}

// ValidateGenerateContentRequest checks a GenerateContentRequest for
// validity. It returns a *ValidationError describing the first validation
// failure, or nil if the request is valid.
func ValidateGenerateContentRequest(req *GenerateContentRequest, cfg ValidationConfig) *ValidationError {
	return validateContents(req.Contents, cfg)
}

// ValidateEmbedContentRequest checks an EmbedContentRequest for validity.
func ValidateEmbedContentRequest(req *EmbedContentRequest, cfg ValidationConfig) *ValidationError {
	return validateContents(req.Contents, cfg)
}

func validateContents(contents []*genai.Content, cfg ValidationConfig) *ValidationError {
	if len(contents) == 0 {
		return NewValidationError("contents", "contents must contain at least one turn")
	}

	if cfg.MaxContents > 0 && len(contents) > cfg.MaxContents {
		return NewValidationError("contents",
			fmt.Sprintf("contents exceeds maximum of %d turns", cfg.MaxContents))
	}

	total := 0
	for i, c := range contents {
		if c == nil {
			return NewValidationError("contents",
				fmt.Sprintf("contents[%d] must not be null", i))
		}
		for _, p := range c.Parts {
			if p != nil {
				total += len(p.Text)
			}
		}
	}

	if cfg.MaxTextBytes > 0 && total > cfg.MaxTextBytes {
		return NewValidationError("contents",
			fmt.Sprintf("total text size exceeds maximum of %d bytes", cfg.MaxTextBytes))
	}

	return nil
}
