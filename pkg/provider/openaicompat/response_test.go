package openaicompat

import (
	"errors"
	"testing"

	"google.golang.org/genai"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
)

func TestTranslateCompletion(t *testing.T) {
	resp := &ChatCompletionResponse{
		ID:     "chatcmpl-1",
		Object: "chat.completion",
		Model:  "llama3",
		Choices: []ChatChoice{
			{Index: 0, Message: ChatMessage{Role: "assistant", Content: "first answer"}, FinishReason: "stop"},
			{Index: 1, Message: ChatMessage{Role: "assistant", Content: "second answer"}, FinishReason: "length"},
		},
		Usage: &ChatUsage{PromptTokens: 12, CompletionTokens: 34, TotalTokens: 46},
	}

	out, err := TranslateCompletion(resp)
	if err != nil {
		t.Fatalf("TranslateCompletion failed: %v", err)
	}

	if len(out.Candidates) != 2 {
		t.Fatalf("len(Candidates) = %d, want 2", len(out.Candidates))
	}

	first := out.Candidates[0]
	if first.Content == nil || first.Content.Role != string(genai.RoleModel) {
		t.Errorf("Candidates[0].Content.Role = %v, want model", first.Content)
	}
	if len(first.Content.Parts) != 1 || first.Content.Parts[0].Text != "first answer" {
		t.Errorf("Candidates[0] parts = %+v, want single text part", first.Content.Parts)
	}
	if first.FinishReason != "STOP" {
		t.Errorf("Candidates[0].FinishReason = %q, want STOP", first.FinishReason)
	}
	if first.Index != 0 {
		t.Errorf("Candidates[0].Index = %d, want 0", first.Index)
	}

	second := out.Candidates[1]
	if len(second.Content.Parts) != 1 || second.Content.Parts[0].Text != "second answer" {
		t.Errorf("Candidates[1] parts = %+v, want single text part", second.Content.Parts)
	}
	if second.FinishReason != "LENGTH" {
		t.Errorf("Candidates[1].FinishReason = %q, want LENGTH", second.FinishReason)
	}
	if second.Index != 1 {
		t.Errorf("Candidates[1].Index = %d, want 1", second.Index)
	}

	usage := out.UsageMetadata
	if usage == nil {
		t.Fatal("UsageMetadata is nil")
	}
	if usage.PromptTokenCount != 12 {
		t.Errorf("PromptTokenCount = %d, want 12", usage.PromptTokenCount)
	}
	if usage.CandidatesTokenCount != 34 {
		t.Errorf("CandidatesTokenCount = %d, want 34", usage.CandidatesTokenCount)
	}
	if usage.TotalTokenCount != 46 {
		t.Errorf("TotalTokenCount = %d, want 46", usage.TotalTokenCount)
	}
}

func TestTranslateCompletionNoChoices(t *testing.T) {
	_, err := TranslateCompletion(&ChatCompletionResponse{ID: "chatcmpl-2"})
	if err == nil {
		t.Fatal("expected error for response with no choices")
	}
	var decodeErr *api.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %T, want *api.DecodeError", err)
	}
}

func TestTranslateCompletionEmptyContent(t *testing.T) {
	resp := &ChatCompletionResponse{
		Choices: []ChatChoice{
			{Index: 0, Message: ChatMessage{Role: "assistant", Content: ""}, FinishReason: "stop"},
		},
	}

	out, err := TranslateCompletion(resp)
	if err != nil {
		t.Fatalf("TranslateCompletion failed: %v", err)
	}
	if len(out.Candidates) != 1 {
		t.Fatalf("len(Candidates) = %d, want 1", len(out.Candidates))
	}
	parts := out.Candidates[0].Content.Parts
	if len(parts) != 1 || parts[0].Text != "" {
		t.Errorf("parts = %+v, want single empty text part", parts)
	}
}

func TestTranslateCompletionNoUsage(t *testing.T) {
	resp := &ChatCompletionResponse{
		Choices: []ChatChoice{
			{Index: 0, Message: ChatMessage{Role: "assistant", Content: "ok"}, FinishReason: "stop"},
		},
	}

	out, err := TranslateCompletion(resp)
	if err != nil {
		t.Fatalf("TranslateCompletion failed: %v", err)
	}
	if out.UsageMetadata != nil {
		t.Errorf("UsageMetadata = %+v, want nil", out.UsageMetadata)
	}
}

func TestMapFinishReason(t *testing.T) {
	tests := []struct {
		reason string
		want   genai.FinishReason
	}{
		{"stop", "STOP"},
		{"length", "LENGTH"},
		{"content_filter", "CONTENT_FILTER"},
		{"tool_calls", "TOOL_CALLS"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MapFinishReason(tt.reason); got != tt.want {
			t.Errorf("MapFinishReason(%q) = %q, want %q", tt.reason, got, tt.want)
		}
	}
}
