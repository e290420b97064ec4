package manychat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client executes authenticated requests against the ManyChat API with
// rate limiting, bounded retries and error classification. It is safe
// for concurrent use; all in-flight requests share one HTTP session and
// one rate limiter.
type Client struct {
	config      Config
	rateLimiter *RateLimiter
	logger      Logger
	metrics     *MetricsCollector

	jitter     float64
	maxBackoff time.Duration

	mu         sync.Mutex
	httpClient *http.Client
}

// New constructs a Client from a validated Config and functional options.
func New(cfg Config, options ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:      cfg,
		rateLimiter: NewRateLimiter(cfg.RateLimit),
		jitter:      0.1,
		maxBackoff:  30 * time.Second,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// NewFromEnv constructs a Client from MANYCHAT_-prefixed environment
// variables (see ConfigFromEnv).
func NewFromEnv(options ...Option) (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return New(cfg, options...)
}

// session returns the shared HTTP session, opening it if the client has
// never started or has been closed. Idempotent.
func (c *Client) session() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.config.Timeout}
	}
	return c.httpClient
}

// Close releases the HTTP session's idle connections. The client remains
// usable; the next request opens a fresh session.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
	}
}

// do executes one API call and decodes the response body into T.
func do[T any](ctx context.Context, c *Client, method, path string, body any, query url.Values) (*T, error) {
	var out T
	if err := c.execute(ctx, method, path, body, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// execute runs the full request pipeline: serialize, then per attempt
// rate-limit admission, dispatch, classification, and backoff between
// retryable failures. out, when non-nil, receives the decoded success
// body.
func (c *Client) execute(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &APIError{
				Type:    ErrorTypeValidation,
				Message: "cannot encode request body",
				Cause:   err,
			}
		}
	}

	u := c.buildURL(path, query)

	c.metrics.RecordRequestStart(method, path)
	defer c.metrics.RecordRequestEnd(method, path)
	start := time.Now()

	var lastErr *APIError
	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 1 {
			delay := c.backoffDelay(attempt - 1)
			c.metrics.RecordRetry(method, path, attempt)
			c.logDebug("retrying request",
				"method", method, "url", u, "attempt", attempt, "backoff", delay)
			if err := sleepContext(ctx, delay); err != nil {
				return err
			}
		}

		waitStart := time.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		c.metrics.RecordRateLimitWait(time.Since(waitStart))

		statusCode, err := c.doAttempt(ctx, method, u, payload, out)
		if err == nil {
			c.metrics.RecordRequest(method, path, statusCode, time.Since(start))
			return nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			// Caller cancellation propagates unchanged.
			return err
		}
		c.metrics.RecordError(string(apiErr.Type), method, path)

		if !apiErr.Retryable() {
			c.metrics.RecordRequest(method, path, apiErr.StatusCode, time.Since(start))
			return apiErr
		}
		lastErr = apiErr
	}

	c.metrics.RecordRequest(method, path, lastErr.StatusCode, time.Since(start))
	return lastErr
}

// doAttempt performs a single HTTP exchange and classifies the outcome.
// The returned status code is 0 when no response was received.
func (c *Client) doAttempt(ctx context.Context, method, u string, payload []byte, out any) (int, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return 0, &APIError{
			Type:    ErrorTypeValidation,
			Message: "cannot build request",
			Cause:   err,
		}
	}

	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent())

	c.logDebug("sending request", "method", method, "url", u, "body", string(payload))

	resp, err := c.session().Do(req)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return 0, ctx.Err()
		}
		return 0, classifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, classifyTransport(err)
	}

	c.logDebug("received response",
		"method", method, "url", u, "status", resp.StatusCode, "body", string(respBody))

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, classifyStatus(resp.StatusCode, resp.Header, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, &APIError{
				Type:       ErrorTypeValidation,
				Message:    "response body does not match the expected shape",
				StatusCode: resp.StatusCode,
				Body:       respBody,
				Cause:      err,
			}
		}
	}

	return resp.StatusCode, nil
}

// buildURL joins the configured base URL with an endpoint path and
// optional query parameters.
func (c *Client) buildURL(path string, query url.Values) string {
	u := strings.TrimSuffix(c.config.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// backoffDelay computes the wait before the given retry (1-based). The
// base delay doubles each retry; jitter adds a random fraction of the
// computed delay so concurrent clients do not retry in lockstep.
func (c *Client) backoffDelay(retry int) time.Duration {
	backoff := time.Duration(float64(c.config.RetryDelay) * pow(2.0, retry-1))
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	if c.jitter > 0 {
		backoff += time.Duration(float64(backoff) * c.jitter * rand.Float64())
	}
	return backoff
}

func pow(base float64, exponent int) float64 {
	result := 1.0
	for i := 0; i < exponent; i++ {
		result *= base
	}
	return result
}

// sleepContext sleeps for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) logDebug(msg string, keysAndValues ...any) {
	if c.logger != nil && c.config.Debug {
		c.logger.Debug(msg, keysAndValues...)
	}
}

// validationError builds the local-argument-check failure returned before
// any request is issued.
func validationError(format string, args ...any) *APIError {
	return &APIError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}
