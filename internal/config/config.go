// Package config loads service settings from RPG_COMPANION_* environment
// variables. Command line flags override individual values.
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

// Content sources
const (
	ContentSourceYAML  = "yaml"
	ContentSourceRedis = "redis"
)

// Config is the service configuration
type Config struct {
	GRPCPort int    `env:"RPG_COMPANION_GRPC_PORT" envDefault:"50051"`
	RedisURL string `env:"RPG_COMPANION_REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// ContentSource selects where documents come from: a directory of YAML
	// packs or documents imported into redis
	ContentSource string `env:"RPG_COMPANION_CONTENT_SOURCE" envDefault:"yaml"`
	ContentDir    string `env:"RPG_COMPANION_CONTENT_DIR" envDefault:"content"`

	SessionTTL       time.Duration `env:"RPG_COMPANION_SESSION_TTL" envDefault:"2h"`
	RerollExhaustion string        `env:"RPG_COMPANION_REROLL_EXHAUSTION" envDefault:"surface"`

	LogLevel  string `env:"RPG_COMPANION_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"RPG_COMPANION_LOG_FORMAT" envDefault:"text"`

	// Tracing is off unless an OTLP endpoint is set
	OTelEndpoint string `env:"RPG_COMPANION_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"RPG_COMPANION_OTEL_ENABLED" envDefault:"true"`
}

// Load parses the environment into a Config
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return &cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("grpc_port", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRequired("redis_url", c.RedisURL, vb)

	switch c.ContentSource {
	case ContentSourceYAML:
		errors.ValidateRequired("content_dir", c.ContentDir, vb)
	case ContentSourceRedis:
	default:
		vb.Fieldf("content_source", "must be %s or %s", ContentSourceYAML, ContentSourceRedis)
	}

	if c.SessionTTL <= 0 {
		vb.Field("session_ttl", "must be positive")
	}
	switch c.RerollExhaustion {
	case "surface", "accept":
	default:
		vb.Field("reroll_exhaustion", "must be surface or accept")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.Field("log_level", "must be debug, info, warn or error")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		vb.Field("log_format", "must be text or json")
	}

	return vb.Build()
}

// TracingEnabled reports whether spans should be exported
func (c *Config) TracingEnabled() bool {
	return c.OTelEnabled && c.OTelEndpoint != ""
}

// NewLogger builds the structured logger the service writes with
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
