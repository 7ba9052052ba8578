package openaicompat

import (
	"fmt"
	"time"
)

const (
	// DefaultBaseURL points at a local Ollama's OpenAI-compatible surface.
	DefaultBaseURL = "http://localhost:11434/v1"

	// DefaultModel is the backend model substituted for Gemini-family
	// model names.
	DefaultModel = "llama3"
)

// Config holds configuration for the OpenAI-compatible bridge.
type Config struct {
	// BaseURL is the backend URL including the API prefix
	// (e.g., "http://localhost:11434/v1"). Fixed at construction.
	BaseURL string

	// DefaultModel is the backend model used when a request names a
	// Gemini-family model or no model at all.
	DefaultModel string

	// Timeout for non-streaming HTTP requests. Defaults to 120s.
	// Streaming requests are governed by their context instead.
	Timeout time.Duration
}

// DefaultConfig returns a Config targeting a local Ollama.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		DefaultModel: DefaultModel,
		Timeout:      120 * time.Second,
	}
}

// Validate checks the configuration for completeness.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL must not be empty")
	}
	if c.DefaultModel == "" {
		return fmt.Errorf("default model must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
