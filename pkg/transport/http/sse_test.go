package http

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStreamWriterFrameFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStreamWriter(rec)

	if err := sw.WriteFrame(textResponse("Hello", "")); err != nil {
		t.Fatalf("WriteFrame error: %v", err)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, "data: ") {
		t.Errorf("frame must start with data prefix, got %q", body)
	}
	if !strings.HasSuffix(body, "\n\n") {
		t.Errorf("frame must end with a blank line, got %q", body)
	}
	if !strings.Contains(body, `"Hello"`) {
		t.Errorf("frame must carry the candidate text, got %q", body)
	}
	if !rec.Flushed {
		t.Error("expected frame to be flushed")
	}
}

func TestStreamWriterHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStreamWriter(rec)

	sw.WriteFrame(textResponse("a", ""))

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if conn := rec.Header().Get("Connection"); conn != "keep-alive" {
		t.Errorf("Connection = %q", conn)
	}
}

func TestStreamWriterStarted(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStreamWriter(rec)

	if sw.Started() {
		t.Error("writer must not report started before the first frame")
	}
	sw.WriteFrame(textResponse("a", ""))
	if !sw.Started() {
		t.Error("writer must report started after a frame")
	}
}

func TestStreamWriterMultipleFrames(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStreamWriter(rec)

	for _, text := range []string{"one", "two", "three"} {
		if err := sw.WriteFrame(textResponse(text, "")); err != nil {
			t.Fatalf("WriteFrame(%q) error: %v", text, err)
		}
	}

	body := rec.Body.String()
	if got := strings.Count(body, "data: "); got != 3 {
		t.Errorf("frame count = %d, want 3", got)
	}
	if strings.Contains(body, "[DONE]") {
		t.Error("stream must not carry a terminator frame")
	}
}
