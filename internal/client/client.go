// Package client is the facade over the vitals telemetry REST backend. Every
// operation returns the same envelope-decoded shapes whether served live or,
// when fallback is enabled and the backend misbehaves, substituted from the
// mock generator. Callers cannot tell the source apart from the result.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"vitalwatch/internal/mockdata"
)

// Notifier receives the user-visible message for an unrecoverable API error.
// Fallback substitution does not notify; only surfaced errors do.
type Notifier interface {
	Notify(ctx context.Context, subject, body string)
}

// Config is the explicit facade configuration. It replaces the ambient
// globals of earlier iterations so tests can construct clients directly.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:5000/api.
	BaseURL string
	// MockFallback substitutes generated data for failed calls when set.
	// Fixed for the lifetime of the client, not user-toggleable.
	MockFallback bool
	// Timeout bounds each request through the underlying transport.
	Timeout time.Duration
}

// Client issues requests against the telemetry backend. Stateless between
// calls: no cache, no coalescing, no retries. At most once per call.
type Client struct {
	baseURL  string
	fallback bool
	http     *http.Client
	gen      *mockdata.Generator
	logger   *logrus.Logger
	notifier Notifier
}

// New constructs a Client. gen must be non-nil when cfg.MockFallback is set;
// notifier may be nil.
func New(cfg Config, logger *logrus.Logger, gen *mockdata.Generator, notifier Notifier) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		fallback: cfg.MockFallback,
		http:     &http.Client{Timeout: timeout},
		gen:      gen,
		logger:   logger,
		notifier: notifier,
	}
}

// Generator exposes the mock source, shared with the simulator seeding path.
func (c *Client) Generator() *mockdata.Generator { return c.gen }

// successer is satisfied by every envelope type via the embedded
// models.Envelope.
type successer interface {
	OK() bool
	ErrMessage() string
}

// call performs one request and decodes the response envelope into out.
// It returns a classified *APIError on transport failure, non-2xx status,
// decode failure, or a success=false envelope.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, payload any, out successer) *APIError {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &APIError{Kind: KindDecode, Op: op, Message: "encode request", Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return &APIError{Kind: KindTransport, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Kind: KindTransport, Op: op, Message: "backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindTransport, Op: op, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Pull the backend's error message out of the body when it has one.
		var env struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &env)
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("API error: %d", resp.StatusCode)
		}
		return &APIError{Kind: KindHTTPStatus, Op: op, Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Kind: KindDecode, Op: op, Message: "decode response", Err: err}
	}
	if !out.OK() {
		msg := out.ErrMessage()
		if msg == "" {
			msg = "unknown error occurred"
		}
		return &APIError{Kind: KindEnvelope, Op: op, Message: msg}
	}
	return nil
}

// useMock logs the substitution. Fallback is silent toward the user by
// design: no notification, no error.
func (c *Client) useMock(op string, apiErr *APIError) {
	c.logger.Warnf("%s failed (%s), using mock data instead: %v", op, apiErr.Kind, apiErr)
}

// surface reports an unrecoverable error to the user and hands it back to
// the caller.
func (c *Client) surface(ctx context.Context, apiErr *APIError) error {
	c.logger.Errorf("API error: %v", apiErr)
	if c.notifier != nil {
		c.notifier.Notify(ctx, "API request failed", apiErr.Error())
	}
	return apiErr
}
