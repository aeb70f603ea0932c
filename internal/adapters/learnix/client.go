package learnix

// Package learnix is the typed client for the Learnix backend REST API. The
// backend wraps every response in a {message, data} envelope and signals
// authentication problems with 401/403 status codes; this package maps both
// onto Go values and sentinel errors.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// ErrUnauthorized is returned when the backend rejects the credential (401).
var ErrUnauthorized = errors.New("backend rejected credential")

// ErrForbidden is returned when the credential lacks the required role (403).
var ErrForbidden = errors.New("backend denied access")

// APIError is a non-2xx backend answer outside the auth rejections.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Config holds client construction parameters.
type Config struct {
	// BaseURL is the backend root, e.g. "https://learnix.example.com".
	BaseURL string
	// Timeout bounds each request; defaultTimeout when zero.
	Timeout time.Duration
	// Transport overrides the HTTP transport; a BearerTransport over the
	// default transport when nil. Every request must pass through the
	// credential attachment layer, so overrides should wrap BearerTransport.
	Transport http.RoundTripper
}

// Client issues requests against the Learnix backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client. All requests flow through the bearer
// credential transport.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.New("learnix: base URL is required")
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &BearerTransport{}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: base,
		http:    &http.Client{Transport: transport, Timeout: timeout},
	}, nil
}

// get performs a GET and unmarshals the envelope data into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post performs a POST with a JSON body and unmarshals the envelope data into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// put performs a PUT with a JSON body.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// delete performs a DELETE.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	env, decodeErr := decodeEnvelope(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %s: %w", method, path, env.Message, ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %s: %w", method, path, env.Message, ErrForbidden)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("%s %s: decode envelope: %w", method, path, decodeErr)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode data: %w", method, path, err)
	}
	return nil
}

// decodeEnvelope tolerates empty and non-JSON bodies so that status-code
// handling above still works for misbehaving proxies.
func decodeEnvelope(r io.Reader) (envelope, error) {
	raw, err := io.ReadAll(io.LimitReader(r, 4<<20))
	if err != nil {
		return envelope{}, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return envelope{}, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, err
	}
	return env, nil
}
