// Package api is the console's only door to the remote matrimonial API. It
// attaches the admin's bearer token, sends JSON, and folds every failure
// into a single *Error carrying a human-readable message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Messages used when the server did not supply one.
const (
	MsgNetwork    = "Network error. Please check your connection."
	MsgGeneric    = "Something went wrong"
	MsgUnexpected = "Unexpected response from server"
)

// Status band boundaries; the lower bound is inclusive, the upper exclusive.
const (
	successLow  = 200
	successHigh = 350
	clientLow   = 400
	clientHigh  = 550
)

// Error is the normalized rejection of a remote call. StatusCode is zero
// when no response was received at all.
type Error struct {
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// IsNetwork reports whether err is a transport failure with no response.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == 0
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Client calls the remote API. A Client is safe for concurrent use; use
// WithToken to derive one that authenticates as a given admin.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	timeout time.Duration
	log     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every call, including reading the body. It applies
// to a copy of whichever *http.Client the other options settle on.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for per-call debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns an unauthenticated client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// WithToken returns a copy of c that sends "Authorization: Bearer <token>".
// An empty token yields an unauthenticated copy.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token returns the bearer token this client sends, if any.
func (c *Client) Token() string { return c.token }

// Do performs one call and returns the raw response body on success. The
// id is substituted into the endpoint template; body, when non-nil, is
// sent as JSON. Failures are never retried.
func (c *Client) Do(ctx context.Context, ep Endpoint, id string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", ep.Name, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, c.baseURL+ep.Expand(id), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", ep.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	requestDuration.WithLabelValues(ep.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(ep.Name, outcomeNetwork).Inc()
		c.log.Debug("api call failed", zap.String("endpoint", ep.Name), zap.Error(err))
		return nil, &Error{Message: MsgNetwork, cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(ep.Name, outcomeNetwork).Inc()
		return nil, &Error{Message: MsgNetwork, cause: err}
	}

	c.log.Debug("api call",
		zap.String("endpoint", ep.Name),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode >= successLow && resp.StatusCode < successHigh {
		requestsTotal.WithLabelValues(ep.Name, outcomeOK).Inc()
		return json.RawMessage(payload), nil
	}
	requestsTotal.WithLabelValues(ep.Name, outcomeRemote).Inc()
	return nil, remoteError(resp.StatusCode, payload)
}

// remoteError prefers the server's "message" field; the fallback depends
// on whether the status sits in the client/server error band.
func remoteError(status int, payload []byte) *Error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(payload, &body)
	if body.Message != "" {
		return &Error{StatusCode: status, Message: body.Message}
	}
	if status >= clientLow && status < clientHigh {
		return &Error{StatusCode: status, Message: MsgGeneric}
	}
	return &Error{StatusCode: status, Message: MsgUnexpected}
}
