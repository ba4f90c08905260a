// Package api implements the HTTP client for the remote food-ordering
// service. Every request attaches the current bearer credential from
// the configured token source, so authorization follows the session
// without any process-global header state.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.AuthAPI = (*Client)(nil)
	_ domain.DishAPI = (*Client)(nil)
)

// Option configures the Client.
type Option func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTokenSource sets the credential source consulted per request.
func WithTokenSource(ts domain.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// Client talks to the food-ordering API.
type Client struct {
	baseURL string
	tokens  domain.TokenSource
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates an API client for the given base URL
// (e.g. "http://localhost:3333").
func NewClient(baseURL string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetTokenSource installs the credential source after construction.
// The session store depends on the client, so the client cannot take
// the store in its constructor; main wires the cycle up through here.
func (c *Client) SetTokenSource(ts domain.TokenSource) {
	c.tokens = ts
}

// ImageURL resolves a dish or avatar image name to its public URL.
func (c *Client) ImageURL(name string) string {
	if name == "" {
		return ""
	}
	return c.baseURL + "/files/" + name
}

// errorEnvelope is the error payload returned by the API.
type errorEnvelope struct {
	Message string `json:"message"`
}

// newRequest builds a request against the API base URL and attaches
// the bearer credential when one is available.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

// do issues the request and decodes the response into out (skipped when
// out is nil). A non-2xx response carrying a structured message becomes
// a *domain.RemoteError; anything else (connection failure, malformed
// body) surfaces as a plain wrapped error.
func (c *Client) do(req *http.Request, out any) error {
	c.log.Debug("api: %s %s", req.Method, req.URL.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Message != "" {
			c.log.Debug("api: rejected %d: %s", resp.StatusCode, envelope.Message)
			return &domain.RemoteError{Status: resp.StatusCode, Message: envelope.Message}
		}
		return fmt.Errorf("api: %s %s: unexpected response %s", req.Method, req.URL.Path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: unmarshal response: %w", err)
	}
	return nil
}

// sendJSON marshals body and issues a JSON request.
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("api: marshal payload: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, strings.NewReader(string(jsonData)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}
