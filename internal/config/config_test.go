package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "CANDIDATES_SEED_FILE",
		"CANDIDATES_DEFAULT_PAGE_SIZE", "FEED_BUFFER", "FEED_HEARTBEAT_SECONDS", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.Candidates.SeedFile)
	assert.Equal(t, 10, cfg.Candidates.DefaultPageSize)
	assert.Equal(t, 16, cfg.Feed.Buffer)
	assert.Equal(t, 15*time.Second, cfg.Feed.Heartbeat)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://desk.example.com")
	t.Setenv("CANDIDATES_SEED_FILE", "/etc/candidates.yaml")
	t.Setenv("CANDIDATES_DEFAULT_PAGE_SIZE", "25")
	t.Setenv("FEED_BUFFER", "0")
	t.Setenv("FEED_HEARTBEAT_SECONDS", "5")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173", "https://desk.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/etc/candidates.yaml", cfg.Candidates.SeedFile)
	assert.Equal(t, 25, cfg.Candidates.DefaultPageSize)
	assert.Equal(t, 1, cfg.Feed.Buffer)
	assert.Equal(t, 5*time.Second, cfg.Feed.Heartbeat)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                         "80 80",
		"CANDIDATES_DEFAULT_PAGE_SIZE": "0",
		"FEED_BUFFER":                  "many",
		"FEED_HEARTBEAT_SECONDS":       "-1",
		"METRICS_ENABLED":              "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
