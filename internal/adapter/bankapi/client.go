// Package bankapi is the REST client for the core banking backend.
package bankapi

import (
	"context"
	"fmt"
	"net/http"

	"secure-bank-console/config"
	"secure-bank-console/internal/core/ports"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

var (
	_ ports.CustomerAPI = (*Client)(nil)
	_ ports.AccountAPI  = (*Client)(nil)
)

// Client talks JSON to the banking backend. The caller's bearer token,
// when present in the request context, is forwarded on every call.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// NewClient creates a backend client for the configured base URL.
func NewClient(cfg config.BackendConfig, log zerolog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if token, ok := ports.AccessTokenFrom(r.Context()); ok {
			r.SetAuthToken(token)
		}
		return nil
	})

	return &Client{
		http: rc,
		log:  log,
	}
}

// request starts a call bound to ctx.
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// execute sends the request and maps transport and status failures.
// path is the route template, so ids never end up in logs.
func (c *Client) execute(r *resty.Request, method, path string) error {
	resp, err := r.Execute(method, path)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("Bank API call failed")
		return fmt.Errorf("bank api %s %s: %w", method, path, err)
	}

	event := c.log.Debug()
	if resp.IsError() {
		event = c.log.Warn()
	}
	event.Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("latency", resp.Time()).
		Msg("Bank API call")

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("bank api %s %s: %w", method, path, ports.ErrBackendNotFound)
	case resp.IsError():
		return &ports.BackendError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Body:       truncate(resp.String(), 512),
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
