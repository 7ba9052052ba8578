package integration

import (
	"net/http"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestStreamingBasic(t *testing.T) {
	resp := postJSON(t, operationURL("mock-model", "streamGenerateContent"), genRequest("count from 1 to 5"))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, readBody(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Cache-Control = %q, want no-cache", cc)
	}

	body := readBody(t, resp)
	frames := collectSSEFrames(t, body)
	if len(frames) == 0 {
		t.Fatal("expected at least one frame")
	}

	var sb strings.Builder
	for _, frame := range frames {
		text := frameText(frame)
		if text == "" {
			t.Error("empty-delta chunks must not surface as frames")
		}
		sb.WriteString(text)
	}
	if got := sb.String(); got != "1, 2, 3, 4, 5" {
		t.Errorf("concatenated stream = %q", got)
	}

	if strings.Contains(body, "[DONE]") {
		t.Error("the backend's [DONE] sentinel must not be forwarded")
	}
}

func TestStreamingFrameShape(t *testing.T) {
	resp := postJSON(t, operationURL("mock-model", "streamGenerateContent"), genRequest("stream please"))
	body := readBody(t, resp)

	frames := collectSSEFrames(t, body)
	for i, frame := range frames {
		if len(frame.Candidates) != 1 {
			t.Fatalf("frame %d: expected exactly one candidate, got %d", i, len(frame.Candidates))
		}
		if frame.Candidates[0].Content.Role != genai.RoleModel {
			t.Errorf("frame %d: role = %q, want model", i, frame.Candidates[0].Content.Role)
		}
	}
}

func TestStreamingSkipsMalformedLine(t *testing.T) {
	resp := postJSON(t, operationURL("mock-model", "streamGenerateContent"), genRequest("malformed stream"))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	frames := collectSSEFrames(t, readBody(t, resp))
	var sb strings.Builder
	for _, frame := range frames {
		sb.WriteString(frameText(frame))
	}
	// The corrupt line sits between valid chunks; everything else arrives.
	if got := sb.String(); got != "Hello from mock!" {
		t.Errorf("concatenated stream = %q, want full text despite the corrupt line", got)
	}
}
