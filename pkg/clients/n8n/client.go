// Package n8n fetches the pre-assembled dashboard payload from an n8n
// workflow webhook. The webhook returns arbitrarily-shaped JSON (the
// workflow owns the transformation), so the client hands back raw
// bytes and leaves interpretation to the source layer.
package n8n

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"github.com/transformlabs/pulse/pkg/clients"
	"github.com/transformlabs/pulse/pkg/logging"
)

type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("n8n webhook returned status: %d", e.StatusCode)
}

type Client struct {
	webhookURL   string
	client       *http.Client
	httpExecutor failsafe.Executor[*http.Response]
	shouldRetry  func(resp *http.Response, err error) bool
}

type Option func(*Client)

func NewClient(webhookURL string, opts ...Option) *Client {
	defaultConfig := clients.DefaultHTTPExecutorConfig()
	c := &Client{
		webhookURL:   webhookURL,
		client:       &http.Client{Timeout: 30 * time.Second, Transport: clients.DefaultTransport()},
		httpExecutor: clients.NewHTTPExecutor(defaultConfig),
		shouldRetry:  defaultConfig.ShouldRetry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

func WithHTTPExecutorConfig(cfg clients.HTTPExecutorConfig) Option {
	return func(c *Client) {
		c.httpExecutor = clients.NewHTTPExecutor(cfg)
		c.shouldRetry = cfg.ShouldRetry
	}
}

// WithCircuitBreaker wires a named circuit breaker into the executor,
// reporting state transitions to Prometheus.
func WithCircuitBreaker(name string, logger logging.Logger) Option {
	return func(c *Client) {
		cfg := clients.DefaultHTTPExecutorConfig()
		cbCfg := clients.DefaultCircuitBreakerConfig()
		cbCfg.Name = name
		cbCfg.Logger = logger
		cbCfg.OnStateChange = clients.CircuitBreakerMetricsCallback(name)
		cfg.CircuitBreaker = clients.NewCircuitBreaker(cbCfg)
		c.httpExecutor = clients.NewHTTPExecutor(cfg)
		c.shouldRetry = cfg.ShouldRetry
	}
}

// GetDashboardData fetches the raw dashboard payload. The body is
// returned as-is; callers decode it against the known payload shapes.
func (c *Client) GetDashboardData(ctx context.Context) ([]byte, error) {
	resp, err := clients.ExecuteHTTP(ctx, c.httpExecutor, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.webhookURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if c.shouldRetry != nil && c.shouldRetry(resp, err) {
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
		}
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook response: %w", err)
	}
	return body, nil
}
