package integration

import (
	"net/http"
	"testing"

	"google.golang.org/genai"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
)

func TestGenerateContentBasic(t *testing.T) {
	resp := postJSON(t, operationURL("mock-model", "generateContent"), genRequest("Say hello"))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, readBody(t, resp))
	}

	var got genai.GenerateContentResponse
	decodeJSON(t, resp, &got)

	if len(got.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got.Candidates))
	}
	cand := got.Candidates[0]
	if text := cand.Content.Parts[0].Text; text != "Hello from mock!" {
		t.Errorf("text = %q", text)
	}
	if cand.Content.Role != genai.RoleModel {
		t.Errorf("role = %q, want model", cand.Content.Role)
	}
	if cand.FinishReason != genai.FinishReason("STOP") {
		t.Errorf("finishReason = %q, want STOP", cand.FinishReason)
	}

	usage := got.UsageMetadata
	if usage == nil {
		t.Fatal("expected usage metadata")
	}
	if usage.PromptTokenCount != 10 || usage.CandidatesTokenCount != 5 || usage.TotalTokenCount != 15 {
		t.Errorf("usage = %d/%d/%d, want 10/5/15",
			usage.PromptTokenCount, usage.CandidatesTokenCount, usage.TotalTokenCount)
	}
}

func TestGenerateContentCounting(t *testing.T) {
	resp := postJSON(t, operationURL("mock-model", "generateContent"), genRequest("Please count from 1 to 5"))

	var got genai.GenerateContentResponse
	decodeJSON(t, resp, &got)

	if text := got.Candidates[0].Content.Parts[0].Text; text != "1, 2, 3, 4, 5" {
		t.Errorf("text = %q", text)
	}
}

func TestGenerateContentMultipleCandidates(t *testing.T) {
	resp := postJSON(t, operationURL("mock-model", "generateContent"), genRequest("Give me two answers"))

	var got genai.GenerateContentResponse
	decodeJSON(t, resp, &got)

	if len(got.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got.Candidates))
	}
	if text := got.Candidates[0].Content.Parts[0].Text; text != "First answer." {
		t.Errorf("candidates[0] text = %q", text)
	}
	if text := got.Candidates[1].Content.Parts[0].Text; text != "Second answer." {
		t.Errorf("candidates[1] text = %q", text)
	}
	if got.Candidates[1].Index != 1 {
		t.Errorf("candidates[1] index = %d, want 1", got.Candidates[1].Index)
	}
}

func TestGeminiPrefixedModelResolvesToDefault(t *testing.T) {
	resp := postJSON(t, operationURL("gemini-2.0-flash", "generateContent"), genRequest("echo model"))

	var got genai.GenerateContentResponse
	decodeJSON(t, resp, &got)

	if text := got.Candidates[0].Content.Parts[0].Text; text != "model=mock-model" {
		t.Errorf("backend saw %q, want the configured default model", text)
	}
}

func TestExplicitModelPassedVerbatim(t *testing.T) {
	resp := postJSON(t, operationURL("custom-model", "generateContent"), genRequest("echo model"))

	var got genai.GenerateContentResponse
	decodeJSON(t, resp, &got)

	if text := got.Candidates[0].Content.Parts[0].Text; text != "model=custom-model" {
		t.Errorf("backend saw %q, want custom-model verbatim", text)
	}
}

func TestMultiPartTurnsAreFlattened(t *testing.T) {
	req := &api.GenerateContentRequest{
		Contents: []*genai.Content{
			genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromText("count from "),
				genai.NewPartFromText("1 to 5"),
			}, genai.RoleUser),
		},
	}

	resp := postJSON(t, operationURL("mock-model", "generateContent"), req)

	var got genai.GenerateContentResponse
	decodeJSON(t, resp, &got)

	// The counting trigger only fires if both parts arrived as one string.
	if text := got.Candidates[0].Content.Parts[0].Text; text != "1, 2, 3, 4, 5" {
		t.Errorf("text = %q, want the counting completion", text)
	}
}

func TestCountTokensAlwaysZero(t *testing.T) {
	resp := postJSON(t, operationURL("mock-model", "countTokens"), genRequest("any text at all"))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got genai.CountTokensResponse
	decodeJSON(t, resp, &got)
	if got.TotalTokens != 0 {
		t.Errorf("totalTokens = %d, want 0", got.TotalTokens)
	}
}

func TestListModels(t *testing.T) {
	resp := getURL(t, testEnv.BaseURL()+"/v1beta/models")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var list api.ModelList
	decodeJSON(t, resp, &list)

	if len(list.Models) != 2 || list.Models[0] != "mock-model" || list.Models[1] != "mock-mini" {
		t.Errorf("models = %v", list.Models)
	}
}
