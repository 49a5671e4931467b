package webhook

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

	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single POST when no custom client is supplied.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// HTTPClient is the subset of *http.Client the webhook client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is a decoded success body.
type Response struct {
	StatusCode int
	Body       map[string]any
	Raw        json.RawMessage
}

// Message returns the body's message field, if any.
func (r Response) Message() string {
	if r.Body == nil {
		return ""
	}
	if msg, ok := r.Body["message"].(string); ok {
		return msg
	}
	return ""
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger attaches a logger. Clients log nothing by default.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHeader adds a static request header.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if strings.TrimSpace(key) == "" {
			return
		}
		c.headers.Set(key, value)
	}
}

// WithUnknownMessage overrides the fallback used when a failed response has
// no message.
func WithUnknownMessage(message string) Option {
	return func(c *Client) {
		if message != "" {
			c.unknown = message
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(agent string) Option {
	return WithHeader("User-Agent", agent)
}

// Client posts JSON documents to one endpoint.
type Client struct {
	endpoint string
	http     HTTPClient
	logger   logrus.FieldLogger
	headers  http.Header
	unknown  string
}

// New builds a client for endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("webhook: endpoint is required")
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		logger:   discardLogger(),
		headers:  http.Header{},
		unknown:  UnknownMessage,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Post serialises payload and sends it once. Any failure is a
// *TransportError; encoding problems are returned as plain errors.
func (c *Client) Post(ctx context.Context, payload any) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("webhook: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("webhook: build request: %w", err)
	}
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger := c.logger.WithField("endpoint", c.endpoint)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithError(err).Warn("webhook request failed")
		return Response{}, &TransportError{Endpoint: c.endpoint, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, &TransportError{Endpoint: c.endpoint, StatusCode: resp.StatusCode, Message: c.unknown, Err: err}
	}

	logger = logger.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(started),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := c.errorMessage(raw)
		logger.WithField("message", message).Warn("webhook rejected payload")
		return Response{}, &TransportError{Endpoint: c.endpoint, StatusCode: resp.StatusCode, Message: message}
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		logger.WithError(err).Warn("webhook returned a non-JSON body")
		return Response{}, &TransportError{
			Endpoint: c.endpoint,
			Message:  c.unknown,
			Err:      fmt.Errorf("decode response: %w", err),
		}
	}

	out := Response{StatusCode: resp.StatusCode, Raw: json.RawMessage(raw)}
	if obj, ok := decoded.(map[string]any); ok {
		out.Body = obj
	}
	logger.Debug("webhook accepted payload")
	return out, nil
}

func (c *Client) errorMessage(raw []byte) string {
	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return c.unknown
	}
	switch msg := body.Message.(type) {
	case string:
		if msg = plainText(msg); strings.TrimSpace(msg) != "" {
			return msg
		}
	case nil:
	default:
		return fmt.Sprint(msg)
	}
	return c.unknown
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
