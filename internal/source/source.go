// Package source fetches raw dashboard payloads from the configured
// upstreams. Strategies are tried in a fixed priority order (workflow
// webhook, then the structured-page database, then static data); the
// first strategy returning a non-empty payload wins. Upstream failures
// never propagate: the static strategy cannot fail, so the aggregation
// layer always has an input snapshot.
package source

import (
	"context"
	"time"

	"github.com/transformlabs/pulse/pkg/logging"
)

// Provider is one fetch strategy in the fallback chain.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (*Payload, error)
}

// Chain tries providers in order with a per-attempt timeout.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	logger    logging.Logger
	onFetch   func(provider, outcome string)
}

// DefaultFetchTimeout bounds a single upstream attempt when no timeout
// is configured.
const DefaultFetchTimeout = 10 * time.Second

type ChainOption func(*Chain)

// WithFetchTimeout sets the per-provider fetch timeout.
func WithFetchTimeout(d time.Duration) ChainOption {
	return func(c *Chain) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithFetchObserver registers a callback invoked per attempt with the
// provider name and outcome ("hit", "empty" or "error"); the metrics
// layer hooks in here.
func WithFetchObserver(fn func(provider, outcome string)) ChainOption {
	return func(c *Chain) {
		c.onFetch = fn
	}
}

func NewChain(logger logging.Logger, providers []Provider, opts ...ChainOption) *Chain {
	c := &Chain{
		providers: providers,
		timeout:   DefaultFetchTimeout,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the first non-empty payload the chain produces. A
// strategy that errors or times out is logged and skipped; if every
// strategy comes back empty the result is an empty payload, never nil
// and never an error.
func (c *Chain) Fetch(ctx context.Context) *Payload {
	for _, p := range c.providers {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		payload, err := p.Fetch(attemptCtx)
		cancel()

		if err != nil {
			c.observe(p.Name(), "error")
			c.logger.WithError(err).WithField("provider", p.Name()).Warn("Source fetch failed, trying next strategy")
			continue
		}
		if payload.IsEmpty() {
			c.observe(p.Name(), "empty")
			c.logger.WithField("provider", p.Name()).Debug("Source returned no data, trying next strategy")
			continue
		}

		c.observe(p.Name(), "hit")
		c.logger.WithField("provider", p.Name()).Debug("Source fetch succeeded")
		return payload
	}

	c.logger.Warn("All source strategies empty, aggregating over empty payload")
	return &Payload{}
}

func (c *Chain) observe(provider, outcome string) {
	if c.onFetch != nil {
		c.onFetch(provider, outcome)
	}
}
