package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"google.golang.org/genai"
)

// streamWriter emits generate-content frames as server-sent events.
// Headers are written lazily on the first frame so a failure before any
// output can still produce a JSON error response with a proper status.
type streamWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController

	mu      sync.Mutex
	started bool
}

func newStreamWriter(w http.ResponseWriter) *streamWriter {
	return &streamWriter{
		w:  w,
		rc: http.NewResponseController(w),
	}
}

// WriteFrame sends a single frame. The frame is formatted as:
//
//	data: {json}\n
//	\n
//
// and flushed immediately. There is no terminator frame; the stream ends
// when the handler returns and the connection drains.
func (s *streamWriter) WriteFrame(resp *genai.GenerateContentResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		s.w.Header().Set("Content-Type", "text/event-stream")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.Header().Set("Connection", "keep-alive")
		s.started = true
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if err := s.rc.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}

	return nil
}

// Started reports whether at least one frame has been written, meaning
// headers and status are already on the wire.
func (s *streamWriter) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}
