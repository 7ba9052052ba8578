package openaicompat

import (
	"strings"

	"google.golang.org/genai"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
)

// geminiModelPrefix marks model names belonging to the caller-side model
// family. Such names are substituted with the configured backend default so
// callers written against the Gemini vocabulary can target a foreign
// backend without renaming every call site.
const geminiModelPrefix = "gemini"

// MapRole translates a normalized role into the Chat Completions
// vocabulary: "user" stays "user", "model" becomes "assistant", and
// anything else (including an absent role) becomes "system".
func MapRole(role string) string {
	switch role {
	case "user":
		return "user"
	case "model":
		return "assistant"
	default:
		return "system"
	}
}

// FlattenContent reduces one conversation turn to a single plain-text
// string by concatenating the text of every part in order. Parts without
// text contribute the empty string, not a separator. Non-text part kinds
// are dropped; the translation is lossy.
func FlattenContent(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// TranslateContents converts conversation turns into Chat Completions
// messages, one message per turn, order preserved.
func TranslateContents(contents []*genai.Content) []ChatMessage {
	messages := make([]ChatMessage, 0, len(contents))
	for _, content := range contents {
		role := ""
		if content != nil {
			role = content.Role
		}
		messages = append(messages, ChatMessage{
			Role:    MapRole(role),
			Content: FlattenContent(content),
		})
	}
	return messages
}

// ResolveModel selects the effective backend model. Gemini-family names and
// empty names resolve to the configured default; any other name passes
// through verbatim.
func ResolveModel(requested, defaultModel string) string {
	if requested == "" || strings.HasPrefix(requested, geminiModelPrefix) {
		return defaultModel
	}
	return requested
}

// BuildChatRequest assembles the backend payload for a generation request.
func BuildChatRequest(req *api.GenerateContentRequest, defaultModel string, stream bool) ChatCompletionRequest {
	return ChatCompletionRequest{
		Model:    ResolveModel(req.Model, defaultModel),
		Messages: TranslateContents(req.Contents),
		Stream:   stream,
	}
}

// CollectTexts extracts every text fragment from the given turns in
// encounter order: turn order first, then part order within a turn. Parts
// without text are skipped entirely rather than represented as empty
// strings.
func CollectTexts(contents []*genai.Content) []string {
	var texts []string
	for _, content := range contents {
		if content == nil {
			continue
		}
		for _, part := range content.Parts {
			if part != nil && part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
	}
	return texts
}
