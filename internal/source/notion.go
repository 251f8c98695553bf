package source

import (
	"context"
	"fmt"

	"github.com/transformlabs/pulse/pkg/clients/notion"
)

const notionPageSize = 50

// NotionProvider queries the events and content databases directly.
// It hands raw page objects downstream; property extraction is the
// field resolver's job, not the source's.
type NotionProvider struct {
	client      *notion.Client
	eventsDBID  string
	contentDBID string
}

func NewNotionProvider(client *notion.Client, eventsDBID, contentDBID string) *NotionProvider {
	return &NotionProvider{
		client:      client,
		eventsDBID:  eventsDBID,
		contentDBID: contentDBID,
	}
}

func (p *NotionProvider) Name() string { return "notion" }

func (p *NotionProvider) Fetch(ctx context.Context) (*Payload, error) {
	payload := &Payload{}

	if p.eventsDBID != "" {
		resp, err := p.client.QueryDatabase(ctx, p.eventsDBID, []notion.Sort{
			{Property: "Date", Direction: "ascending"},
		}, 0)
		if err != nil {
			return nil, fmt.Errorf("notion events query: %w", err)
		}
		payload.Events = resp.Results
	}

	if p.contentDBID != "" {
		resp, err := p.client.QueryDatabase(ctx, p.contentDBID, []notion.Sort{
			{Property: "Date", Direction: "descending"},
		}, notionPageSize)
		if err != nil {
			return nil, fmt.Errorf("notion content query: %w", err)
		}
		payload.Content = ContentPayload{Items: resp.Results}
	}

	return payload, nil
}
