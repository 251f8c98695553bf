package source

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transformlabs/pulse/pkg/logging"
)

func testLogger() logging.Logger {
	logger := logging.NewLogger()
	logger.SetOutput(io.Discard)
	return logger
}

// stubProvider returns a fixed payload or error for chain tests.
type stubProvider struct {
	name    string
	payload *Payload
	err     error
	calls   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(_ context.Context) (*Payload, error) {
	s.calls++
	return s.payload, s.err
}

func nonEmptyPayload(id string) *Payload {
	return &Payload{Events: []map[string]interface{}{{"id": id}}}
}

func TestChain_FirstNonEmptyWins(t *testing.T) {
	first := &stubProvider{name: "webhook", payload: nonEmptyPayload("from-webhook")}
	second := &stubProvider{name: "notion", payload: nonEmptyPayload("from-notion")}

	chain := NewChain(testLogger(), []Provider{first, second})
	payload := chain.Fetch(context.Background())

	require.NotNil(t, payload)
	assert.Equal(t, "from-webhook", payload.Events[0]["id"])
	assert.Equal(t, 0, second.calls)
}

func TestChain_SkipsFailingAndEmptyProviders(t *testing.T) {
	failing := &stubProvider{name: "webhook", err: errors.New("connection refused")}
	empty := &stubProvider{name: "notion", payload: &Payload{}}
	terminal := &stubProvider{name: "static", payload: nonEmptyPayload("fallback")}

	chain := NewChain(testLogger(), []Provider{failing, empty, terminal})
	payload := chain.Fetch(context.Background())

	require.NotNil(t, payload)
	assert.Equal(t, "fallback", payload.Events[0]["id"])
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, empty.calls)
}

func TestChain_AllEmptyYieldsEmptyPayloadNotNil(t *testing.T) {
	chain := NewChain(testLogger(), []Provider{
		&stubProvider{name: "a", payload: &Payload{}},
		&stubProvider{name: "b", err: errors.New("down")},
	})

	payload := chain.Fetch(context.Background())
	require.NotNil(t, payload)
	assert.True(t, payload.IsEmpty())
}

func TestChain_ObserverSeesEveryAttempt(t *testing.T) {
	var seen []string
	chain := NewChain(testLogger(), []Provider{
		&stubProvider{name: "webhook", err: errors.New("down")},
		&stubProvider{name: "notion", payload: &Payload{}},
		&stubProvider{name: "static", payload: nonEmptyPayload("x")},
	}, WithFetchObserver(func(provider, outcome string) {
		seen = append(seen, provider+":"+outcome)
	}))

	chain.Fetch(context.Background())
	assert.Equal(t, []string{"webhook:error", "notion:empty", "static:hit"}, seen)
}

func TestChain_TimeoutOptionIgnoresNonPositive(t *testing.T) {
	chain := NewChain(testLogger(), nil, WithFetchTimeout(0))
	assert.Equal(t, DefaultFetchTimeout, chain.timeout)

	chain = NewChain(testLogger(), nil, WithFetchTimeout(3*time.Second))
	assert.Equal(t, 3*time.Second, chain.timeout)
}

func TestStaticProvider_AlwaysYieldsData(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	provider := NewStaticProviderAt(func() time.Time { return now })

	payload, err := provider.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.False(t, payload.IsEmpty())
	assert.NotEmpty(t, payload.Events)
	require.NotNil(t, payload.Content.Summary)
	assert.NotEmpty(t, payload.Content.Summary.RecentActivity)
}
