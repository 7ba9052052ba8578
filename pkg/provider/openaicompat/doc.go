// Package openaicompat bridges the Gemini generate-content vocabulary onto
// any OpenAI-compatible Chat Completions and embeddings backend (Ollama,
// vLLM, LiteLLM, and friends). It handles request translation, whole-response
// parsing, incremental SSE stream decoding, and error mapping.
//
// Translation is lossy for non-text parts: a conversation turn is flattened
// into a single plain-text message by concatenating its text parts in order,
// and any other part kind contributes the empty string.
package openaicompat
