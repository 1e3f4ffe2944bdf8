package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"DayTradeDesk/internal/agent"
	"DayTradeDesk/internal/collector"
	"DayTradeDesk/internal/sanitizer"
	"DayTradeDesk/internal/scheduler"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	DataSource struct {
		Provider  string        `yaml:"provider"` // yahoo, alpaca, rest, mock
		BaseURL   string        `yaml:"base_url"`
		APIKey    string        `yaml:"api_key"`
		APISecret string        `yaml:"api_secret"`
		Period    string        `yaml:"period"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
	} `yaml:"data_source"`
	Agent struct {
		BaseURL      string        `yaml:"base_url"`
		APIKey       string        `yaml:"api_key"`
		Model        string        `yaml:"model"`
		Instructions []string      `yaml:"instructions"`
		MaxRetries   *int          `yaml:"max_retries"` // nil means default; 0 disables retries
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"agent"`
	Indicators struct {
		SMAWindow int `yaml:"sma_window"`
		EMASpan   int `yaml:"ema_span"`
	} `yaml:"indicators"`
	Sanitizer struct {
		Patterns []sanitizer.Pattern `yaml:"patterns"`
	} `yaml:"sanitizer"`
	Warmup struct {
		Cron    string   `yaml:"cron"`
		Tickers []string `yaml:"tickers"`
	} `yaml:"warmup"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads the .env file and the YAML config, then applies environment
// variable overrides and defaults. Missing files are not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.Agent.APIKey = v
	}
	if v := os.Getenv("AGENT_BASE_URL"); v != "" {
		c.Agent.BaseURL = v
	}
	if v := os.Getenv("AGENT_MODEL"); v != "" {
		c.Agent.Model = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	// Provider credentials.
	switch c.DataSource.Provider {
	case "alpaca":
		if v := os.Getenv("ALPACA_API_KEY"); v != "" {
			c.DataSource.APIKey = v
		}
		if v := os.Getenv("ALPACA_SECRET_KEY"); v != "" {
			c.DataSource.APISecret = v
		}
	case "rest":
		if v := os.Getenv("BARS_BASE_URL"); v != "" {
			c.DataSource.BaseURL = v
		}
		if v := os.Getenv("BARS_API_KEY"); v != "" {
			c.DataSource.APIKey = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8501
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.DataSource.Period == "" {
		c.DataSource.Period = collector.DefaultPeriod
	}
	if c.DataSource.CacheTTL == 0 {
		c.DataSource.CacheTTL = 10 * time.Minute
	}
	if c.Agent.BaseURL == "" {
		c.Agent.BaseURL = agent.GroqBaseURL
	}
	if c.Agent.Model == "" {
		c.Agent.Model = agent.DefaultModel
	}
	if len(c.Agent.Instructions) == 0 {
		c.Agent.Instructions = agent.DefaultInstructions
	}
	if c.Agent.MaxRetries == nil {
		retries := 2
		c.Agent.MaxRetries = &retries
	}
	if c.Agent.Timeout == 0 {
		c.Agent.Timeout = 60 * time.Second
	}
	if c.Indicators.SMAWindow == 0 {
		c.Indicators.SMAWindow = 20
	}
	if c.Indicators.EMASpan == 0 {
		c.Indicators.EMASpan = 20
	}
	if len(c.Sanitizer.Patterns) == 0 {
		c.Sanitizer.Patterns = []sanitizer.Pattern{sanitizer.DefaultPattern}
	}
	if c.Warmup.Cron == "" {
		c.Warmup.Cron = scheduler.DefaultWarmupCron
	}
	if len(c.Warmup.Tickers) == 0 {
		c.Warmup.Tickers = []string{"MSFT", "TSLA", "AMZN", "GOOG"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that all settings are usable. Credentials are checked
// when the collaborators are constructed.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	switch c.DataSource.Provider {
	case "yahoo", "alpaca", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if err := collector.ValidatePeriod(c.DataSource.Period); err != nil {
		return fmt.Errorf("data_source.period: %w", err)
	}
	if c.DataSource.CacheTTL < 0 {
		return fmt.Errorf("data_source.cache_ttl must not be negative")
	}
	if c.Indicators.SMAWindow <= 0 {
		return fmt.Errorf("indicators.sma_window must be positive")
	}
	if c.Indicators.EMASpan <= 0 {
		return fmt.Errorf("indicators.ema_span must be positive")
	}
	if c.Agent.MaxRetries != nil && *c.Agent.MaxRetries < 0 {
		return fmt.Errorf("agent.max_retries must not be negative")
	}
	if _, err := sanitizer.New(c.Sanitizer.Patterns...); err != nil {
		return fmt.Errorf("sanitizer.patterns: %w", err)
	}
	return nil
}
