package manychat

import (
	"net/http"
	"time"
)

// Option represents a configuration option applied at construction.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the session. The
// configured Timeout is left untouched; callers supplying their own
// client own its timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger for diagnostic output. Bodies are only
// logged when Config.Debug is set.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebugLogger enables debug logging with a simple console logger.
func WithDebugLogger() Option {
	return func(c *Client) {
		c.config.Debug = true
		c.logger = NewSimpleLogger()
	}
}

// WithJitter sets the backoff jitter fraction (0.0 to 1.0).
func WithJitter(f float64) Option {
	return func(c *Client) {
		if f < 0 {
			f = 0
		}
		if f > 1 {
			f = 1
		}
		c.jitter = f
	}
}

// WithMaxBackoff caps the delay between retry attempts.
func WithMaxBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.maxBackoff = d
		}
	}
}

// WithMetrics enables Prometheus metrics collection on the default
// registerer.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector, e.g. one bound to
// a private registry.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}
