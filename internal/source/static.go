package source

import (
	"context"
	"time"

	"github.com/transformlabs/pulse/internal/pipeline"
	"github.com/transformlabs/pulse/pkg/models"
)

// StaticProvider is the terminal fallback. It always succeeds with a
// small fixed dataset so the dashboard renders something meaningful
// even when every upstream is down or unconfigured.
type StaticProvider struct {
	now func() time.Time
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{now: time.Now}
}

// NewStaticProviderAt pins the provider's clock; used by tests.
func NewStaticProviderAt(now func() time.Time) *StaticProvider {
	return &StaticProvider{now: now}
}

func (p *StaticProvider) Name() string { return "static" }

func (p *StaticProvider) Fetch(_ context.Context) (*Payload, error) {
	now := p.now()
	iso := func(t time.Time) string { return t.UTC().Format(time.RFC3339) }

	return &Payload{
		Events: []map[string]interface{}{
			{
				"id":        "static-1",
				"name":      "Product Launch Q1",
				"type":      "flagship",
				"status":    "active",
				"startDate": iso(now.Add(-2 * 24 * time.Hour)),
				"endDate":   iso(now.Add(12 * 24 * time.Hour)),
				"goals": map[string]interface{}{
					"linkedin":  float64(10),
					"instagram": float64(5),
					"twitter":   float64(5),
					"tiktok":    float64(0),
					"youtube":   float64(0),
				},
			},
			{
				"id":        "static-2",
				"name":      "Community Meetup",
				"type":      "community",
				"status":    "upcoming",
				"startDate": iso(now.Add(15 * 24 * time.Hour)),
				"endDate":   iso(now.Add(15 * 24 * time.Hour)),
				"goals": map[string]interface{}{
					"linkedin": float64(2),
					"twitter":  float64(1),
				},
			},
		},
		Content: ContentPayload{
			Summary: &pipeline.Summary{
				Draft:     5,
				Approved:  2,
				Published: 12,
				RecentActivity: []models.ContentItem{
					{
						ID:       "static-c1",
						Title:    "5 AI Trends Transforming Marketing",
						Platform: models.PlatformLinkedin,
						Type:     "Article",
						Status:   models.StatusPublished,
						Date:     iso(now),
					},
					{
						ID:       "static-c2",
						Title:    "Behind the Scenes at HQ",
						Platform: models.PlatformInstagram,
						Type:     "Story",
						Status:   models.StatusPublished,
						Date:     iso(now.Add(-24 * time.Hour)),
					},
					{
						ID:       "static-c3",
						Title:    "Q1 Product Launch Announcement",
						Platform: models.PlatformTwitter,
						Type:     "Tweet",
						Status:   models.StatusDraft,
						Date:     iso(now.Add(-48 * time.Hour)),
					},
				},
			},
		},
	}, nil
}
