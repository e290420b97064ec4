// Package manychat provides a typed client for the ManyChat HTTP API
// (subscribers, tags, custom fields, page metadata) built around a
// resilient request pipeline:
//
//   - Bearer authentication on every request
//   - Rate limiting (admission gate + minimum dispatch spacing)
//   - Retries with exponential backoff + jitter for transient failures
//   - A closed error taxonomy carrying status code, raw body and
//     Retry-After hints
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area: a validated Config plus functional options
//   - Safe concurrent use of a single *Client instance
//   - Callers branch on error kind (errors.Is / *APIError.Type), never on
//     message text
//
// Typical usage:
//
//	cfg := manychat.DefaultConfig()
//	cfg.APIKey = os.Getenv("MANYCHAT_API_KEY")
//	client, err := manychat.New(cfg,
//	    manychat.WithMetrics(),
//	    manychat.WithDebugLogger(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	tags, err := client.GetTags(ctx)
//
// Auth, validation, not-found and conflict responses surface immediately;
// connection failures, timeouts, 429 and 5xx responses are retried up to
// Config.MaxRetries attempts before the terminal error is returned.
package manychat
