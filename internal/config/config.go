package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the AutoSEO server.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Batch  BatchConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type AIConfig struct {
	Provider       string
	RequestTimeout time.Duration
	Gemini         GeminiConfig
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// BatchConfig carries the generation policy knobs. The defaults are the
// documented contract; tests override them to avoid sleeping in real time.
type BatchConfig struct {
	Size               int
	InterBatchDelay    time.Duration
	RetryDelay         time.Duration
	MaxRetries         int
	FailureStreakLimit int
}

var validProviders = map[string]bool{
	"gemini": true,
	"mock":   true,
}

// Load reads configuration from environment variables and returns a validated
// Config. Returns an error with a descriptive message if any required value
// is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("AUTOSEO_PORT", 8080),
			Env:  envString("AUTOSEO_ENV", "development"),
		},
		AI: AIConfig{
			Provider:       envString("AI_PROVIDER", "gemini"),
			RequestTimeout: envDurationSecs("AI_REQUEST_TIMEOUT_SECS", 60*time.Second),
			Gemini: GeminiConfig{
				APIKey:  os.Getenv("GEMINI_API_KEY"),
				Model:   envString("GEMINI_MODEL", "gemini-2.5-flash"),
				BaseURL: envString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			},
		},
		Batch: BatchConfig{
			Size:               envInt("SEO_BATCH_SIZE", 3),
			InterBatchDelay:    envMillis("SEO_BATCH_DELAY_MS", 5000*time.Millisecond),
			RetryDelay:         envMillis("SEO_RETRY_DELAY_MS", 3000*time.Millisecond),
			MaxRetries:         envInt("SEO_MAX_RETRIES", 1),
			FailureStreakLimit: envInt("SEO_FAILURE_STREAK_LIMIT", 3),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("AI_PROVIDER must be one of gemini, mock; got %q", c.AI.Provider)
	}

	// Missing credential is a pre-flight failure: the server refuses to start
	// rather than failing the first batch at runtime.
	if c.AI.Provider == "gemini" && c.AI.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDER is gemini")
	}
	if !strings.HasPrefix(c.AI.Gemini.BaseURL, "http://") && !strings.HasPrefix(c.AI.Gemini.BaseURL, "https://") {
		return fmt.Errorf("GEMINI_BASE_URL must start with http:// or https://, got %q", c.AI.Gemini.BaseURL)
	}

	if c.Batch.Size < 1 {
		return fmt.Errorf("SEO_BATCH_SIZE must be at least 1, got %d", c.Batch.Size)
	}
	if c.Batch.MaxRetries < 0 {
		return fmt.Errorf("SEO_MAX_RETRIES must not be negative, got %d", c.Batch.MaxRetries)
	}
	if c.Batch.FailureStreakLimit < 1 {
		return fmt.Errorf("SEO_FAILURE_STREAK_LIMIT must be at least 1, got %d", c.Batch.FailureStreakLimit)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envMillis(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
