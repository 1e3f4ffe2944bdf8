package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"DayTradeDesk/internal/sanitizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8501, cfg.Server.Port)
	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, "6mo", cfg.DataSource.Period)
	assert.Equal(t, 10*time.Minute, cfg.DataSource.CacheTTL)
	assert.Equal(t, 20, cfg.Indicators.SMAWindow)
	assert.Equal(t, 20, cfg.Indicators.EMASpan)
	require.NotNil(t, cfg.Agent.MaxRetries)
	assert.Equal(t, 2, *cfg.Agent.MaxRetries)
	assert.Equal(t, []sanitizer.Pattern{sanitizer.DefaultPattern}, cfg.Sanitizer.Patterns)
	assert.Equal(t, []string{"MSFT", "TSLA", "AMZN", "GOOG"}, cfg.Warmup.Tickers)
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
data_source:
  provider: alpaca
  period: 1y
  cache_ttl: 90s
agent:
  model: deepseek-r1-distill-llama-70b
  max_retries: 4
indicators:
  sma_window: 50
sanitizer:
  patterns:
    - marker: "Running:"
      separator: "\n\n"
      transfer_notice: 'transfer_task_to_\w+'
    - marker: "Calling:"
      separator: "\n"
      transfer_notice: 'handoff_\w+'
`)
	t.Setenv("PORT", "9100")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("ALPACA_API_KEY", "ak")
	t.Setenv("ALPACA_SECRET_KEY", "as")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "alpaca", cfg.DataSource.Provider)
	assert.Equal(t, "1y", cfg.DataSource.Period)
	assert.Equal(t, 90*time.Second, cfg.DataSource.CacheTTL)
	assert.Equal(t, "ak", cfg.DataSource.APIKey)
	assert.Equal(t, "as", cfg.DataSource.APISecret)
	assert.Equal(t, "gsk-test", cfg.Agent.APIKey)
	assert.Equal(t, "deepseek-r1-distill-llama-70b", cfg.Agent.Model)
	require.NotNil(t, cfg.Agent.MaxRetries)
	assert.Equal(t, 4, *cfg.Agent.MaxRetries)
	assert.Equal(t, 50, cfg.Indicators.SMAWindow)
	assert.Equal(t, 20, cfg.Indicators.EMASpan)
	require.Len(t, cfg.Sanitizer.Patterns, 2)
	assert.Equal(t, "\n\n", cfg.Sanitizer.Patterns[0].Separator)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ZeroRetriesKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, "agent:\n  max_retries: 0\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Agent.MaxRetries)
	assert.Equal(t, 0, *cfg.Agent.MaxRetries)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unterminated"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }},
		{"rest without url", func(c *Config) { c.DataSource.Provider = "rest"; c.DataSource.BaseURL = "" }},
		{"period", func(c *Config) { c.DataSource.Period = "6 months" }},
		{"sma window", func(c *Config) { c.Indicators.SMAWindow = -3 }},
		{"ema span", func(c *Config) { c.Indicators.EMASpan = -1 }},
		{"max retries", func(c *Config) { n := -1; c.Agent.MaxRetries = &n }},
		{"sanitizer", func(c *Config) { c.Sanitizer.Patterns = []sanitizer.Pattern{{Marker: ""}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
