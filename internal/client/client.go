// Package client talks to the backend API rooted at the active endpoint.
// Session tokens are read from and written to the storage collaborator under
// the registered storage keys.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/bigboy/appconfig/internal/endpoint"
	"github.com/bigboy/appconfig/internal/storage"
	"github.com/bigboy/appconfig/internal/storagekeys"
)

const maxErrorBody = 4 << 10

var (
	// ErrUnauthorized is returned when the backend rejects the session token.
	ErrUnauthorized = errors.New("backend rejected credentials")
)

// StatusError is returned for non-2xx responses other than 401.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

// Client performs authenticated requests against the backend.
type Client struct {
	http     *retryablehttp.Client
	endpoint endpoint.Endpoint
	store    storage.Storage
	keys     storagekeys.Set
	logger   *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the retrying HTTP client, primarily for tests.
func WithHTTPClient(hc *retryablehttp.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRetryMax sets how many times a failed request is retried.
func WithRetryMax(n int) Option {
	return func(c *Client) {
		c.http.RetryMax = n
	}
}

// New creates a client for ep that keeps its session in store.
func New(ep endpoint.Endpoint, store storage.Storage, keys storagekeys.Set, logger *zap.Logger, opts ...Option) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = 3
	hc.RetryWaitMin = 200 * time.Millisecond
	hc.RetryWaitMax = 2 * time.Second
	hc.HTTPClient.Timeout = 15 * time.Second
	hc.Logger = leveledLogger{logger.Sugar()}
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		http:     hc,
		endpoint: ep,
		store:    store,
		keys:     keys,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPClient exposes the underlying standard client, e.g. for mocking transports.
func (c *Client) HTTPClient() *http.Client {
	return c.http.HTTPClient
}

// GetJSON fetches path below the API prefix and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	target, err := c.endpoint.URL(path)
	if err != nil {
		return fmt.Errorf("build URL: %w", err)
	}
	return c.do(ctx, http.MethodGet, target, out)
}

// HealthStatus is the body of the backend health check.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// Health calls the unversioned backend health check.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	target, err := c.endpoint.RootURL("health")
	if err != nil {
		return HealthStatus{}, fmt.Errorf("build URL: %w", err)
	}
	var hs HealthStatus
	if err := c.do(ctx, http.MethodGet, target, &hs); err != nil {
		return HealthStatus{}, err
	}
	return hs, nil
}

func (c *Client) do(ctx context.Context, method, target string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	token, err := c.bearerToken(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.logger.Warn("backend rejected session", zap.String("url", target))
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// bearerToken prefers the customer access token and falls back to the guest token.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	for _, k := range []storagekeys.Key{c.keys.AccessToken, c.keys.GuestToken} {
		token, err := c.store.Get(ctx, k)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", k, err)
		}
		if token != "" {
			return token, nil
		}
	}
	return "", nil
}

type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...any) { l.s.Errorw(msg, keysAndValues...) }
func (l leveledLogger) Info(msg string, keysAndValues ...any)  { l.s.Infow(msg, keysAndValues...) }
func (l leveledLogger) Debug(msg string, keysAndValues ...any) { l.s.Debugw(msg, keysAndValues...) }
func (l leveledLogger) Warn(msg string, keysAndValues ...any)  { l.s.Warnw(msg, keysAndValues...) }
