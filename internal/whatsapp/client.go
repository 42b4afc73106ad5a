// Package whatsapp is a small client for the HyperSender WhatsApp HTTP API
// and the message type notifications use to describe what to send.
package whatsapp

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

// DefaultBaseURL is the public HyperSender WhatsApp API root.
const DefaultBaseURL = "https://app.hypersender.com/api/whatsapp/v1"

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxBodyBytes = 1 << 20
)

// Sender delivers a request. Implementations return either a *Response or
// an already decoded map[string]any.
type Sender interface {
	Send(ctx context.Context, req Request) (any, error)
}

// HTTPClient abstracts http.Client for tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithTimeout bounds each request when the caller's context has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.maxBodyBytes = n
		}
	}
}

var _ Sender = (*Client)(nil)

// Client talks to one HyperSender instance. It is safe for concurrent use:
// nothing on it changes after construction.
type Client struct {
	baseURL      string
	instance     string
	token        string
	timeout      time.Duration
	maxBodyBytes int64
	httpClient   HTTPClient
}

// NewClient creates a client for the given instance. token is the default
// API token used when a request does not carry its own.
func NewClient(baseURL, instance, token string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:      baseURL,
		instance:     strings.Trim(strings.TrimSpace(instance), "/"),
		token:        strings.TrimSpace(token),
		timeout:      defaultTimeout,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// withTimeout wraps the context with a timeout if it doesn't already have one.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func (c *Client) endpoint(action string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.instance, action)
}

// Send posts a text message. Any failure to obtain a 2xx answer is returned
// as a *TransportError.
func (c *Client) Send(ctx context.Context, r Request) (any, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	payload := make(map[string]any, len(r.Payload)+1)
	for k, v := range r.Payload {
		payload[k] = v
	}
	if r.ChatID != "" {
		payload[PayloadChatID] = r.ChatID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("send-text"), bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.tokenFor(r); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, &TransportError{Err: fmt.Errorf("request timeout or canceled: %w", err)}
		}
		return nil, &TransportError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	// One byte past the cap tells a full body from a cut one.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	truncated := int64(len(raw)) > c.maxBodyBytes
	if truncated {
		raw = raw[:c.maxBodyBytes]
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       raw,
		Truncated:  truncated,
	}, nil
}

// tokenFor prefers the request's own token over the client default.
func (c *Client) tokenFor(r Request) string {
	if r.Token != "" {
		return r.Token
	}
	return c.token
}

// Health checks that the API answers for this instance. Only transport
// errors and 5xx answers count as unhealthy.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("status"), http.NoBody)
	if err != nil {
		return fmt.Errorf("health: failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("health: request timeout or canceled: %w", err)
		}
		return fmt.Errorf("health: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("health: server error status: %d", resp.StatusCode)
	}
	return nil
}

// FormatChatID turns a phone number into a personal chat ID
// ("905551234567@c.us"). Values that already contain a '@' are kept.
func FormatChatID(number string) string {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" || strings.Contains(trimmed, "@") {
		return trimmed
	}
	var b strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + "@c.us"
}
