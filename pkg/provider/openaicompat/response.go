package openaicompat

import (
	"strings"

	"google.golang.org/genai"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
)

// TranslateCompletion converts a whole Chat Completions response into the
// normalized response. Every choice maps to one candidate, in order: role
// fixed to "model", a single text part carrying the message content, the
// finish reason upper-cased, and the index copied through. Usage is copied
// field by field.
//
// A payload with no choices is rejected with a DecodeError rather than
// surfaced as an empty response: a backend that answered 2xx but produced
// no output is a decoding failure of this call.
func TranslateCompletion(resp *ChatCompletionResponse) (*genai.GenerateContentResponse, error) {
	if len(resp.Choices) == 0 {
		return nil, api.NewDecodeError("completion has no choices", nil)
	}

	out := &genai.GenerateContentResponse{}
	for _, choice := range resp.Choices {
		out.Candidates = append(out.Candidates, &genai.Candidate{
			Content: genai.NewContentFromParts(
				[]*genai.Part{genai.NewPartFromText(choice.Message.Content)},
				genai.RoleModel,
			),
			FinishReason: MapFinishReason(choice.FinishReason),
			Index:        int32(choice.Index),
		})
	}

	if resp.Usage != nil {
		out.UsageMetadata = &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     int32(resp.Usage.PromptTokens),
			CandidatesTokenCount: int32(resp.Usage.CompletionTokens),
			TotalTokenCount:      int32(resp.Usage.TotalTokens),
		}
	}

	return out, nil
}

// MapFinishReason upper-cases a Chat Completions finish_reason into the
// normalized enumeration ("stop" becomes "STOP"). An absent reason maps to
// the zero value so it stays off the wire.
func MapFinishReason(reason string) genai.FinishReason {
	if reason == "" {
		return ""
	}
	return genai.FinishReason(strings.ToUpper(reason))
}
