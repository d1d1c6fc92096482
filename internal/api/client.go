package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cryptoblog/blogctl/internal/logging"
	"github.com/cryptoblog/blogctl/internal/session"
)

// Client dispatches requests against the blog API. Every call injects the
// bearer credential from the session store when one is present and
// unexpired, and classifies the response uniformly: success, server-reported
// failure, unauthorized (which tears the session down), or network failure.
type Client struct {
	baseURL string
	http    *http.Client
	session session.Store
	log     *logging.Logger

	// onUnauthorized runs after a 401 has cleared the session. The CLI
	// uses it to point the user back at the login command.
	onUnauthorized func()
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests use this
// together with httptest servers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the structured logger for request tracing.
func WithLogger(log *logging.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithUnauthorizedHook registers a callback invoked once per 401 response,
// after the session has been cleared.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a Client pointing at the given base URL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		session: store,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the backing store so commands can gate on auth state.
func (c *Client) Session() session.Store { return c.session }

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) put(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, payload, out)
}

func (c *Client) patch(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, payload, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

// do performs a single request. State machine: Idle -> Sent -> one of
// Success, ServerError, Unauthorized, NetworkError. Unauthorized is the
// only outcome with a side effect beyond the returned error: it clears
// the session and fires the onUnauthorized hook, exactly once.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if auth := c.session.AuthorizationHeader(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return &Error{Message: "network error: check your connection and try again", Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request completed",
		"method", method, "path", path, "status", resp.StatusCode,
		"duration", time.Since(start), "request_id", requestID)

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.ClearSession()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &Error{Status: http.StatusUnauthorized, Message: "session expired, please log in again"}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
