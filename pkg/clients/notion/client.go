// Package notion is a minimal client for the Notion database query
// API, covering only what the source layer needs: querying a database
// and returning its raw page objects. Pages are deliberately left as
// untyped maps; the field resolver owns property extraction.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"github.com/transformlabs/pulse/pkg/clients"
	"github.com/transformlabs/pulse/pkg/logging"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion returned status: %d", e.StatusCode)
}

type Client struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	httpExecutor failsafe.Executor[*http.Response]
	shouldRetry  func(resp *http.Response, err error) bool
}

type Option func(*Client)

func NewClient(apiKey string, opts ...Option) *Client {
	defaultConfig := clients.DefaultHTTPExecutorConfig()
	c := &Client{
		baseURL:      defaultBaseURL,
		apiKey:       apiKey,
		client:       &http.Client{Timeout: 30 * time.Second, Transport: clients.DefaultTransport()},
		httpExecutor: clients.NewHTTPExecutor(defaultConfig),
		shouldRetry:  defaultConfig.ShouldRetry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
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

// Sort describes a property sort for a database query.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type queryRequest struct {
	Sorts    []Sort `json:"sorts,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

// QueryResponse holds the raw page objects returned by a database
// query.
type QueryResponse struct {
	Results []map[string]interface{} `json:"results"`
	HasMore bool                     `json:"has_more"`
}

// QueryDatabase queries a database and returns its raw pages.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, sorts []Sort, pageSize int) (*QueryResponse, error) {
	reqBody, err := json.Marshal(queryRequest{Sorts: sorts, PageSize: pageSize})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, databaseID)

	resp, err := clients.ExecuteHTTP(ctx, c.httpExecutor, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Notion-Version", apiVersion)
		req.Header.Set("Content-Type", "application/json")

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

	var result QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}
	return &result, nil
}
