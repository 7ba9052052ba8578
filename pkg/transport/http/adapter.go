package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/genai"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
	"github.com/geminiproxy-dev/geminiproxy/pkg/debug"
	"github.com/geminiproxy-dev/geminiproxy/pkg/observability"
	"github.com/geminiproxy-dev/geminiproxy/pkg/provider"
	"github.com/geminiproxy-dev/geminiproxy/pkg/transport"
)

// Adapter serves the generate-content API over HTTP. It routes requests
// to the provider and serializes responses, plain JSON for unary
// operations and server-sent events for streaming generation.
type Adapter struct {
	provider provider.Provider
	mux      *http.ServeMux
	config   Config
	logger   *slog.Logger

	middleware transport.Middleware
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr        string
	MaxBodySize int64
	MetricsPath string // empty disables the scrape endpoint
	Validation  api.ValidationConfig
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		MaxBodySize: 10 << 20, // 10 MB
		MetricsPath: "/metrics",
		Validation:  api.DefaultValidationConfig(),
	}
}

// NewAdapter creates an HTTP adapter backed by the given provider.
// Middleware is applied around the whole route table in the given order.
func NewAdapter(p provider.Provider, cfg Config, logger *slog.Logger, middlewares ...transport.Middleware) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}

	a := &Adapter{
		provider:   p,
		mux:        http.NewServeMux(),
		config:     cfg,
		logger:     logger,
		middleware: transport.Chain(middlewares...),
	}

	// The model segment embeds the operation after a colon
	// (e.g. llama3:generateContent); ServeMux wildcards cannot split on
	// the colon, so one handler dispatches on the suffix.
	a.mux.HandleFunc("POST /v1beta/models/{modelAndOp}", a.handleModelOperation)
	a.mux.HandleFunc("GET /v1beta/models", a.handleListModels)
	a.mux.HandleFunc("GET /healthz", a.handleHealth)
	if cfg.MetricsPath != "" {
		a.mux.Handle("GET "+cfg.MetricsPath, promhttp.Handler())
	}

	return a
}

// Handler returns the http.Handler for this adapter with its middleware
// applied. Use this to integrate with an http.Server or test with httptest.
func (a *Adapter) Handler() http.Handler {
	return a.middleware(a.mux)
}

// handleModelOperation dispatches POST /v1beta/models/{model}:{operation}.
func (a *Adapter) handleModelOperation(w http.ResponseWriter, r *http.Request) {
	modelAndOp := r.PathValue("modelAndOp")
	model, op, ok := splitModelOperation(modelAndOp)
	if !ok {
		transport.WriteErrorResponse(w,
			api.NewNotFoundError(fmt.Sprintf("no operation in %q, expected model:operation", modelAndOp)),
			http.StatusNotFound,
		)
		return
	}

	debug.Log("transport", "dispatching model operation", "model", model, "operation", op)

	operation := provider.Operation(op)
	if capErr := provider.ValidateCapabilities(a.provider.Capabilities(), operation); capErr != nil {
		transport.WriteAPIError(w, capErr)
		return
	}

	switch operation {
	case provider.OpGenerateContent:
		a.handleGenerateContent(w, r, model)
	case provider.OpStreamGenerateContent:
		a.handleStreamGenerateContent(w, r, model)
	case provider.OpCountTokens:
		a.handleCountTokens(w, r, model)
	case provider.OpEmbedContent:
		a.handleEmbedContent(w, r, model)
	default:
		transport.WriteErrorResponse(w,
			api.NewNotFoundError(fmt.Sprintf("unknown operation %q", op)),
			http.StatusNotFound,
		)
	}
}

// splitModelOperation splits a path segment of the form model:operation at
// the last colon. Model names may themselves contain colons
// (e.g. llama3.2:1b:generateContent).
func splitModelOperation(s string) (model, op string, ok bool) {
	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// handleGenerateContent handles the non-streaming generation operation.
func (a *Adapter) handleGenerateContent(w http.ResponseWriter, r *http.Request, model string) {
	var req api.GenerateContentRequest
	if !a.decodeBody(w, r, &req) {
		return
	}
	req.Model = model

	if verr := api.ValidateGenerateContentRequest(&req, a.config.Validation); verr != nil {
		transport.WriteAPIError(w, verr)
		return
	}

	start := time.Now()
	resp, err := a.provider.Generate(r.Context(), &req)
	recordBackendMetrics("generateContent", model, start, err)
	if err != nil {
		transport.WriteAPIError(w, err)
		return
	}
	recordTokenUsage(model, resp.UsageMetadata)

	writeJSON(w, resp)
}

// handleStreamGenerateContent handles the streaming generation operation.
// Frames are emitted as SSE data events as the backend produces them. An
// error before the first frame maps to an HTTP status; once streaming has
// begun the stream is terminated silently and the error is logged, since
// the status line is already on the wire.
func (a *Adapter) handleStreamGenerateContent(w http.ResponseWriter, r *http.Request, model string) {
	var req api.GenerateContentRequest
	if !a.decodeBody(w, r, &req) {
		return
	}
	req.Model = model

	if verr := api.ValidateGenerateContentRequest(&req, a.config.Validation); verr != nil {
		transport.WriteAPIError(w, verr)
		return
	}

	start := time.Now()
	seq, err := a.provider.GenerateStream(r.Context(), &req)
	if err != nil {
		recordBackendMetrics("streamGenerateContent", model, start, err)
		transport.WriteAPIError(w, err)
		return
	}

	sw := newStreamWriter(w)
	var streamErr error
	for resp, err := range seq {
		if err != nil {
			streamErr = err
			break
		}
		if werr := sw.WriteFrame(resp); werr != nil {
			// Client went away. Breaking the loop releases the
			// backend stream.
			debug.Log("streaming", "client disconnected mid-stream", "error", werr)
			break
		}
	}
	recordBackendMetrics("streamGenerateContent", model, start, streamErr)

	if streamErr == nil {
		return
	}
	if sw.Started() {
		a.logger.Error("stream failed after frames were sent",
			slog.String("request_id", transport.RequestIDFromContext(r.Context())),
			slog.String("model", model),
			slog.String("error", streamErr.Error()),
		)
		return
	}
	transport.WriteAPIError(w, streamErr)
}

// handleCountTokens handles the token counting operation. Any body that
// decodes is accepted.
func (a *Adapter) handleCountTokens(w http.ResponseWriter, r *http.Request, model string) {
	var req api.CountTokensRequest
	if !a.decodeBody(w, r, &req) {
		return
	}
	req.Model = model

	resp, err := a.provider.CountTokens(r.Context(), &req)
	if err != nil {
		transport.WriteAPIError(w, err)
		return
	}

	writeJSON(w, resp)
}

// handleEmbedContent handles the embedding operation.
func (a *Adapter) handleEmbedContent(w http.ResponseWriter, r *http.Request, model string) {
	var req api.EmbedContentRequest
	if !a.decodeBody(w, r, &req) {
		return
	}
	req.Model = model

	if verr := api.ValidateEmbedContentRequest(&req, a.config.Validation); verr != nil {
		transport.WriteAPIError(w, verr)
		return
	}

	start := time.Now()
	resp, err := a.provider.EmbedContent(r.Context(), &req)
	recordBackendMetrics("embedContent", model, start, err)
	if err != nil {
		transport.WriteAPIError(w, err)
		return
	}

	writeJSON(w, resp)
}

// handleListModels handles GET /v1beta/models.
func (a *Adapter) handleListModels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	models, err := a.provider.ListModels(r.Context())
	recordBackendMetrics("listModels", "", start, err)
	if err != nil {
		transport.WriteAPIError(w, err)
		return
	}
	if models == nil {
		models = []string{}
	}

	writeJSON(w, api.ModelList{Models: models})
}

// handleHealth handles GET /healthz.
func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// decodeBody validates the Content-Type, enforces the body size limit, and
// decodes the JSON body into dst. It writes the error response itself and
// returns false when the request cannot proceed.
func (a *Adapter) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError(fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return false
		}
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("invalid JSON: "+err.Error()),
			http.StatusBadRequest,
		)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// recordBackendMetrics records one backend round trip. countTokens never
// reaches the backend and is covered by the request-level metrics instead.
func recordBackendMetrics(operation, model string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	observability.BackendRequestsTotal.WithLabelValues(operation, model, status).Inc()
	observability.BackendLatency.WithLabelValues(operation, model).Observe(time.Since(start).Seconds())
}

// recordTokenUsage records prompt and completion token counts when the
// backend reported usage.
func recordTokenUsage(model string, usage *genai.GenerateContentResponseUsageMetadata) {
	if usage == nil {
		return
	}
	if usage.PromptTokenCount > 0 {
		observability.TokensTotal.WithLabelValues(model, "input").Add(float64(usage.PromptTokenCount))
	}
	if usage.CandidatesTokenCount > 0 {
		observability.TokensTotal.WithLabelValues(model, "output").Add(float64(usage.CandidatesTokenCount))
	}
}
