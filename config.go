package manychat

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envPrefix scopes every environment variable consumed by ConfigFromEnv.
const envPrefix = "MANYCHAT_"

// Config holds the immutable client settings. It is copied into the
// Client at construction and shared read-only by all in-flight requests;
// validate once with Validate (New does this for you).
type Config struct {
	// APIKey authenticates every request (Authorization: Bearer <key>).
	// Required.
	APIKey string

	// BaseURL is the API origin requests are issued against.
	BaseURL string

	// APIVersion is carried for forward compatibility; the current API is
	// unversioned in the path and the client does not consume it.
	APIVersion string

	// Timeout bounds each individual request attempt.
	Timeout time.Duration

	// MaxRetries is the total number of attempts per call, including the
	// first one.
	MaxRetries int

	// RetryDelay is the base backoff delay; it doubles on every further
	// retry.
	RetryDelay time.Duration

	// RateLimit caps outbound throughput in requests per minute. A floor
	// of one request per second is enforced regardless of this value.
	RateLimit int

	// LogLevel and Debug control diagnostic logging. Debug enables
	// request/response body logging through the configured Logger.
	LogLevel string
	Debug    bool

	// WebhookSecret is reserved for webhook signature verification and is
	// not consumed by the request pipeline.
	WebhookSecret string

	// CacheTTL is reserved for a response cache and is not consumed by
	// the request pipeline.
	CacheTTL time.Duration
}

// DefaultConfig returns the defaults used by the hosted ManyChat API.
// APIKey is left empty and must be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://api.manychat.com",
		APIVersion: "v1",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Second,
		RateLimit:  100,
		LogLevel:   "INFO",
		CacheTTL:   5 * time.Minute,
	}
}

// ConfigFromEnv builds a Config from MANYCHAT_-prefixed environment
// variables, loading a .env file first when one is present. Unset
// variables keep their defaults. The result is validated.
//
// Recognized variables: API_KEY, BASE_URL, API_VERSION, TIMEOUT (seconds),
// MAX_RETRIES, RETRY_DELAY (seconds, fractional allowed), RATE_LIMIT,
// LOG_LEVEL, DEBUG, WEBHOOK_SECRET, CACHE_TTL (seconds).
func ConfigFromEnv() (Config, error) {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv(envPrefix + "API_KEY")

	if v := os.Getenv(envPrefix + "BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(envPrefix + "API_VERSION"); v != "" {
		cfg.APIVersion = v
	}
	if v := os.Getenv(envPrefix + "TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("manychat: invalid %sTIMEOUT %q: %w", envPrefix, v, err)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv(envPrefix + "MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("manychat: invalid %sMAX_RETRIES %q: %w", envPrefix, v, err)
		}
		cfg.MaxRetries = n
	}
	if v := os.Getenv(envPrefix + "RETRY_DELAY"); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("manychat: invalid %sRETRY_DELAY %q: %w", envPrefix, v, err)
		}
		cfg.RetryDelay = time.Duration(secs * float64(time.Second))
	}
	if v := os.Getenv(envPrefix + "RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("manychat: invalid %sRATE_LIMIT %q: %w", envPrefix, v, err)
		}
		cfg.RateLimit = n
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envPrefix + "DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("manychat: invalid %sDEBUG %q: %w", envPrefix, v, err)
		}
		cfg.Debug = debug
	}
	cfg.WebhookSecret = os.Getenv(envPrefix + "WEBHOOK_SECRET")
	if v := os.Getenv(envPrefix + "CACHE_TTL"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("manychat: invalid %sCACHE_TTL %q: %w", envPrefix, v, err)
		}
		cfg.CacheTTL = time.Duration(secs) * time.Second
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting. New rejects configurations
// that fail validation.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("manychat: APIKey is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("manychat: BaseURL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("manychat: Timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("manychat: MaxRetries must be positive, got %d", c.MaxRetries)
	}
	if c.RetryDelay <= 0 {
		return fmt.Errorf("manychat: RetryDelay must be positive, got %v", c.RetryDelay)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("manychat: RateLimit must be positive, got %d", c.RateLimit)
	}
	return nil
}
