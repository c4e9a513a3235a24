// Package api wraps the commerce backend's REST contract in typed
// clients, one per resource. Every call is request/response with no
// automatic retry; failures are wrapped and surfaced to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrBackend marks a reachable backend answering with a non-success
// envelope or HTTP status. Wrapped errors carry the detail.
var ErrBackend = errors.New("backend request failed")

const defaultTimeout = 10 * time.Second

// tokenHeader carries the session token, matching the backend contract.
const tokenHeader = "token"

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the shared HTTP layer under the per-resource clients.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: NewBreakerTransport(otelhttp.NewTransport(http.DefaultTransport)),
		},
	}
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// do issues one request and decodes the success envelope's data into out.
// A nil out discards the data. token may be empty for public endpoints.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: http %d: %w", method, path, resp.StatusCode, ErrBackend)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if env.Status != "success" {
		return fmt.Errorf("%s %s: status %q: %w", method, path, env.Status, ErrBackend)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode data: %w", method, path, err)
	}
	return nil
}
