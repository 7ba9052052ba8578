package openaicompat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
	"github.com/geminiproxy-dev/geminiproxy/pkg/debug"
)

const (
	// dataPrefix marks an SSE frame line.
	dataPrefix = "data: "

	// doneLine is the terminator the backend sends before closing the
	// stream. It carries no payload and is skipped; the sequence ends on
	// transport end-of-stream.
	doneLine = "data: [DONE]"
)

// DecodeFrames turns a streaming Chat Completions body into a lazy sequence
// of normalized partial responses. The sequence is finite and single-pass:
// the decode loop runs on the consumer's goroutine, reads the body
// incrementally, and yields one chunk per frame whose first choice carries
// non-empty delta text.
//
// Byte handling is line-buffered: bytes are accumulated until a newline
// completes a line, so a frame split across arbitrary read boundaries
// (including mid-character) decodes identically to one delivered whole. A
// trailing line that never terminates is discarded at end of stream.
//
// A malformed frame is logged and skipped; it never ends the sequence. A
// transport read failure ends the sequence with a TransportError, and a
// context cancellation ends it with the context's error. The body is closed
// on every exit path, including the consumer abandoning the sequence early.
func DecodeFrames(ctx context.Context, body io.ReadCloser) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		defer body.Close()

		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), 2<<20)
		scanner.Split(splitCompleteLines)

		for scanner.Scan() {
			// Surface cancellation between lines even while the backend
			// keeps sending.
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" || line == doneLine {
				continue
			}
			if !strings.HasPrefix(line, dataPrefix) {
				// SSE comments and any other non-frame lines are ignored.
				continue
			}
			payload := line[len(dataPrefix):]

			var chunk ChatCompletionChunk
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				slog.Warn("skipping malformed stream frame",
					"error", err.Error(),
					"data", debug.Truncate(payload, 200),
				)
				continue
			}

			resp := TranslateChunk(&chunk)
			if resp == nil {
				continue
			}
			if !yield(resp, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				yield(nil, ctxErr)
				return
			}
			yield(nil, api.NewTransportError("reading stream", err))
		}
	}
}

// TranslateChunk converts one decoded stream frame into a normalized
// partial response. Only the first choice is inspected. Frames whose delta
// carries no text, including role-only and finish-only frames, produce nil.
func TranslateChunk(chunk *ChatCompletionChunk) *genai.GenerateContentResponse {
	if len(chunk.Choices) == 0 {
		return nil
	}
	choice := chunk.Choices[0]

	if choice.Delta.Content == nil || *choice.Delta.Content == "" {
		return nil
	}

	candidate := &genai.Candidate{
		Content: genai.NewContentFromParts(
			[]*genai.Part{genai.NewPartFromText(*choice.Delta.Content)},
			genai.RoleModel,
		),
		Index: 0,
	}
	if choice.FinishReason != nil {
		candidate.FinishReason = MapFinishReason(*choice.FinishReason)
	}

	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{candidate},
	}
}

// splitCompleteLines is a bufio.SplitFunc that returns only
// newline-terminated lines. Unlike bufio.ScanLines it does not surface a
// trailing unterminated fragment at end of stream; that fragment is
// discarded with the buffer.
func splitCompleteLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, dropCR(data[:i]), nil
	}
	return 0, nil, nil
}

// dropCR drops a terminal \r from the line.
func dropCR(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[:len(data)-1]
	}
	return data
}
