package source

import (
	"context"
	"fmt"

	"github.com/transformlabs/pulse/pkg/clients/n8n"
)

// WebhookProvider fetches the pre-assembled payload from the n8n
// workflow webhook. It is the highest-priority strategy: when the
// workflow is configured it owns the Notion extraction and shapes the
// payload itself.
type WebhookProvider struct {
	client *n8n.Client
}

func NewWebhookProvider(client *n8n.Client) *WebhookProvider {
	return &WebhookProvider{client: client}
}

func (p *WebhookProvider) Name() string { return "webhook" }

func (p *WebhookProvider) Fetch(ctx context.Context) (*Payload, error) {
	body, err := p.client.GetDashboardData(ctx)
	if err != nil {
		return nil, fmt.Errorf("webhook fetch: %w", err)
	}
	payload, err := DecodePayload(body)
	if err != nil {
		return nil, fmt.Errorf("webhook payload decode: %w", err)
	}
	return payload, nil
}
