package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
	"github.com/geminiproxy-dev/geminiproxy/pkg/debug"
	"github.com/geminiproxy-dev/geminiproxy/pkg/provider"
)

// Client bridges the Gemini generate-content vocabulary onto an
// OpenAI-compatible backend. Configuration is read-only after construction,
// so a single Client is safe for concurrent use; each in-flight streaming
// call owns its own body handle and decode buffer.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	defaultModel string
}

var _ provider.Provider = (*Client)(nil)

// NewClient creates a Client for the backend described by cfg. Zero-value
// fields fall back to the Ollama defaults.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	defaultModel := cfg.DefaultModel
	if defaultModel == "" {
		defaultModel = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultConfig().Timeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:      baseURL,
		defaultModel: defaultModel,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return "openaicompat"
}

// Capabilities reports what the Chat Completions protocol supports.
func (c *Client) Capabilities() provider.Capabilities {
	return provider.Capabilities{
		Streaming:  true,
		Embeddings: true,
	}
}

// Generate performs non-streaming generation.
func (c *Client) Generate(ctx context.Context, req *api.GenerateContentRequest) (*genai.GenerateContentResponse, error) {
	chatReq := BuildChatRequest(req, c.defaultModel, false)

	httpResp, err := c.postJSON(ctx, c.httpClient, c.baseURL+"/chat/completions", chatReq, false)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, HTTPErrorFromResponse(httpResp)
	}

	var chatResp ChatCompletionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&chatResp); err != nil {
		return nil, api.NewDecodeError("invalid completion JSON", err)
	}

	return TranslateCompletion(&chatResp)
}

// GenerateStream performs streaming generation. Setup failures (a non-2xx
// status, an unreachable backend, a response without a body) are returned
// directly before any element is produced; after setup the returned
// sequence carries the stream. The sequence is single-pass and not
// restartable.
//
// The HTTP client timeout is not applied: a stream can legitimately outlive
// any fixed timeout, so its lifetime is governed by ctx instead.
func (c *Client) GenerateStream(ctx context.Context, req *api.GenerateContentRequest) (iter.Seq2[*genai.GenerateContentResponse, error], error) {
	chatReq := BuildChatRequest(req, c.defaultModel, true)

	streamClient := &http.Client{
		Transport: c.httpClient.Transport,
	}

	httpResp, err := c.postJSON(ctx, streamClient, c.baseURL+"/chat/completions", chatReq, true)
	if err != nil {
		return nil, err
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		defer httpResp.Body.Close()
		return nil, HTTPErrorFromResponse(httpResp)
	}

	if httpResp.Body == nil || httpResp.Body == http.NoBody {
		return nil, api.NewTransportError("opening stream", io.ErrUnexpectedEOF)
	}

	return DecodeFrames(ctx, httpResp.Body), nil
}

// CountTokens reports token usage for the given turns. The backend exposes
// no token-counting endpoint, so this always reports zero without a
// backend call.
func (c *Client) CountTokens(ctx context.Context, req *api.CountTokensRequest) (*genai.CountTokensResponse, error) {
	return &genai.CountTokensResponse{TotalTokens: 0}, nil
}

// EmbedContent embeds every text fragment of the request, one sequential
// backend call per fragment in encounter order. A non-2xx status aborts the
// whole call with no partial result. A 2xx response without embedding data
// contributes nothing, so the result may hold fewer vectors than the
// request had fragments.
func (c *Client) EmbedContent(ctx context.Context, req *api.EmbedContentRequest) (*genai.EmbedContentResponse, error) {
	model := ResolveModel(req.Model, c.defaultModel)

	var embeddings []*genai.ContentEmbedding
	for _, text := range CollectTexts(req.Contents) {
		embReq := EmbeddingRequest{Model: model, Input: text}

		httpResp, err := c.postJSON(ctx, c.httpClient, c.baseURL+"/embeddings", embReq, false)
		if err != nil {
			return nil, err
		}

		embedding, err := decodeEmbedding(httpResp)
		if err != nil {
			return nil, err
		}
		if embedding != nil {
			embeddings = append(embeddings, embedding)
		}
	}

	return &genai.EmbedContentResponse{Embeddings: embeddings}, nil
}

// decodeEmbedding reads one embeddings response and returns the first
// vector, or nil when the backend answered 2xx without data.
func decodeEmbedding(httpResp *http.Response) (*genai.ContentEmbedding, error) {
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, HTTPErrorFromResponse(httpResp)
	}

	var embResp EmbeddingResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&embResp); err != nil {
		return nil, api.NewDecodeError("invalid embedding JSON", err)
	}

	if len(embResp.Data) == 0 {
		return nil, nil
	}
	return &genai.ContentEmbedding{Values: embResp.Data[0].Embedding}, nil
}

// ListModels queries {baseURL}/models and returns the advertised model
// identifiers as plain strings, in response order.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, api.NewTransportError("creating models request", err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, api.NewTransportError("listing models", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, HTTPErrorFromResponse(httpResp)
	}

	var modelsResp ModelsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&modelsResp); err != nil {
		return nil, api.NewDecodeError("invalid models JSON", err)
	}

	models := make([]string, 0, len(modelsResp.Data))
	for _, m := range modelsResp.Data {
		models = append(models, m.ID)
	}
	return models, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// postJSON marshals body and issues a POST. Network-level failures come
// back as TransportError; status handling is left to the caller.
func (c *Client) postJSON(ctx context.Context, client *http.Client, url string, body any, stream bool) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, api.NewTransportError("marshaling request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, api.NewTransportError("creating request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	debug.Log("providers", "backend request", "method", http.MethodPost, "url", url, "stream", stream)
	if debug.TraceIsEnabled("providers") {
		debug.Raw("providers", string(data))
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, api.NewTransportError("sending request", err)
	}
	return httpResp, nil
}
