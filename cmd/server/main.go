// Command server runs the geminiproxy generate-content gateway.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then environment variables. The file is discovered via -config,
// GEMINIPROXY_CONFIG, ./config.yaml, or /etc/geminiproxy/config.yaml.
//
// Environment overrides:
//
//	GEMINIPROXY_BACKEND_URL - chat-completions backend base URL
//	GEMINIPROXY_MODEL       - default model name
//	GEMINIPROXY_PORT        - listen port
//	GEMINIPROXY_LOG_LEVEL   - trace, debug, info, warn, error
//	GEMINIPROXY_LOG_FORMAT  - text or json
//	GEMINIPROXY_DEBUG       - comma-separated debug categories
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
	"github.com/geminiproxy-dev/geminiproxy/pkg/config"
	"github.com/geminiproxy-dev/geminiproxy/pkg/debug"
	"github.com/geminiproxy-dev/geminiproxy/pkg/provider/openaicompat"
	transporthttp "github.com/geminiproxy-dev/geminiproxy/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	debug.Init(cfg.Logging.Debug, cfg.Logging.Level, cfg.Logging.Format)

	prov := openaicompat.NewClient(openaicompat.Config{
		BaseURL:      cfg.Backend.BaseURL,
		DefaultModel: cfg.Backend.DefaultModel,
		Timeout:      cfg.Backend.Timeout,
	})
	defer prov.Close()

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	srv := transporthttp.NewServer(prov,
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithReadTimeout(cfg.Server.ReadTimeout),
		transporthttp.WithWriteTimeout(cfg.Server.WriteTimeout),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithMetricsPath(metricsPath),
		transporthttp.WithValidation(api.ValidationConfig{
			MaxContents:  cfg.Limits.MaxContents,
			MaxTextBytes: cfg.Limits.MaxTextBytes,
		}),
	)

	slog.Info("gateway starting",
		"port", cfg.Server.Port,
		"backend", cfg.Backend.BaseURL,
		"model", cfg.Backend.DefaultModel,
	)
	return srv.ListenAndServe()
}
