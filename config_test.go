package manychat

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "https://api.manychat.com" {
		t.Errorf("Expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("Expected 3 max retries, got %d", cfg.MaxRetries)
	}
	if cfg.RateLimit != 100 {
		t.Errorf("Expected rate limit 100, got %d", cfg.RateLimit)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.APIKey = "test_api_key"

	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid config, got error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"missing API key", func(c *Config) { c.APIKey = "" }, "APIKey"},
		{"missing base URL", func(c *Config) { c.BaseURL = "" }, "BaseURL"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "Timeout"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "Timeout"},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }, "MaxRetries"},
		{"zero retry delay", func(c *Config) { c.RetryDelay = 0 }, "RetryDelay"},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }, "RateLimit"},
		{"negative rate limit", func(c *Config) { c.RateLimit = -10 }, "RateLimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error mentioning %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MANYCHAT_API_KEY", "env_api_key")
	t.Setenv("MANYCHAT_BASE_URL", "https://example.test")
	t.Setenv("MANYCHAT_TIMEOUT", "10")
	t.Setenv("MANYCHAT_MAX_RETRIES", "5")
	t.Setenv("MANYCHAT_RETRY_DELAY", "0.5")
	t.Setenv("MANYCHAT_RATE_LIMIT", "30")
	t.Setenv("MANYCHAT_DEBUG", "true")
	t.Setenv("MANYCHAT_WEBHOOK_SECRET", "hush")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() returned error: %v", err)
	}

	if cfg.APIKey != "env_api_key" {
		t.Errorf("Expected APIKey from env, got %q", cfg.APIKey)
	}
	if cfg.BaseURL != "https://example.test" {
		t.Errorf("Expected BaseURL from env, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %v", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("Expected 5 max retries, got %d", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 500*time.Millisecond {
		t.Errorf("Expected 500ms retry delay, got %v", cfg.RetryDelay)
	}
	if cfg.RateLimit != 30 {
		t.Errorf("Expected rate limit 30, got %d", cfg.RateLimit)
	}
	if !cfg.Debug {
		t.Error("Expected Debug to be enabled")
	}
	if cfg.WebhookSecret != "hush" {
		t.Errorf("Expected webhook secret from env, got %q", cfg.WebhookSecret)
	}
}

func TestConfigFromEnvMissingKey(t *testing.T) {
	t.Setenv("MANYCHAT_API_KEY", "")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("Expected error for missing API key, got nil")
	}
}

func TestConfigFromEnvInvalidValue(t *testing.T) {
	t.Setenv("MANYCHAT_API_KEY", "env_api_key")
	t.Setenv("MANYCHAT_TIMEOUT", "not-a-number")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("Expected error for invalid MANYCHAT_TIMEOUT, got nil")
	}
}
