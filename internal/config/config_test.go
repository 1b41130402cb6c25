package config_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-companion/internal/config"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, config.ContentSourceYAML, cfg.ContentSource)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "surface", cfg.RerollExhaustion)
	assert.False(t, cfg.TracingEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RPG_COMPANION_GRPC_PORT", "9090")
	t.Setenv("RPG_COMPANION_CONTENT_SOURCE", "redis")
	t.Setenv("RPG_COMPANION_SESSION_TTL", "30m")
	t.Setenv("RPG_COMPANION_OTEL_ENDPOINT", "http://localhost:4318")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, config.ContentSourceRedis, cfg.ContentSource)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.TracingEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("RPG_COMPANION_GRPC_PORT", "not-a-port")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*config.Config)
	}{
		{name: "port out of range", modify: func(c *config.Config) { c.GRPCPort = 70000 }},
		{name: "unknown content source", modify: func(c *config.Config) { c.ContentSource = "s3" }},
		{name: "yaml without directory", modify: func(c *config.Config) { c.ContentDir = "" }},
		{name: "zero ttl", modify: func(c *config.Config) { c.SessionTTL = 0 }},
		{name: "unknown exhaustion policy", modify: func(c *config.Config) { c.RerollExhaustion = "panic" }},
		{name: "unknown log level", modify: func(c *config.Config) { c.LogLevel = "loud" }},
		{name: "unknown log format", modify: func(c *config.Config) { c.LogFormat = "xml" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.Load()
			require.NoError(t, err)
			tc.modify(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "session_id", "s1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"session_id":"s1"`)
}
