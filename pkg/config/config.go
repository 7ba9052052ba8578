// Package config provides unified configuration for the geminiproxy gateway.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (GEMINIPROXY_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the geminiproxy gateway.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Backend       BackendConfig       `yaml:"backend"`
	Logging       LoggingConfig       `yaml:"logging"`
	Limits        LimitsConfig        `yaml:"limits"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 0 (no deadline; streams are long-lived)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 10s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 10 MB
}

// BackendConfig holds the OpenAI-compatible backend settings.
type BackendConfig struct {
	BaseURL      string        `yaml:"base_url"`      // default: http://localhost:11434/v1
	BaseURLFile  string        `yaml:"base_url_file"` // _file variant for base_url (URLs may embed credentials)
	DefaultModel string        `yaml:"default_model"` // default: llama3
	Timeout      time.Duration `yaml:"timeout"`       // non-streaming request timeout, default: 120s
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error; default: info
	Format string `yaml:"format"` // text or json; default: text
	Debug  string `yaml:"debug"`  // debug categories, comma-separated or "all"
}

// LimitsConfig holds request validation limits.
type LimitsConfig struct {
	MaxContents  int `yaml:"max_contents"`   // max turns per request, default: 1000
	MaxTextBytes int `yaml:"max_text_bytes"` // max bytes per text part, default: 10 MB
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    0,
			ShutdownTimeout: 10 * time.Second,
			MaxBodySize:     10 << 20,
		},
		Backend: BackendConfig{
			BaseURL:      "http://localhost:11434/v1",
			DefaultModel: "llama3",
			Timeout:      120 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Limits: LimitsConfig{
			MaxContents:  1000,
			MaxTextBytes: 10 << 20,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
