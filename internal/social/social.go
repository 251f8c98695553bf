// Package social fetches per-platform post metrics for an event. The
// real platform integrations live behind the PostFetcher interface;
// the shipped implementation returns deterministic mock data until the
// platform APIs are wired up.
package social

import (
	"context"
	"fmt"
	"time"

	"github.com/transformlabs/pulse/pkg/logging"
	"github.com/transformlabs/pulse/pkg/models"
)

// PostFetcher retrieves measured posts for a platform within an event
// window.
type PostFetcher interface {
	GetPosts(ctx context.Context, platform models.Platform, query string, start, end time.Time) ([]models.PostMetric, error)
}

// MockFetcher returns canned metrics. It stands in for the platform
// API clients so the daily sync has an end-to-end path to exercise.
type MockFetcher struct {
	logger logging.Logger
	now    func() time.Time
}

func NewMockFetcher(logger logging.Logger) *MockFetcher {
	return &MockFetcher{logger: logger, now: time.Now}
}

func (m *MockFetcher) GetPosts(_ context.Context, platform models.Platform, query string, start, end time.Time) ([]models.PostMetric, error) {
	m.logger.WithFields(logging.Fields{
		"platform": platform,
		"query":    query,
		"start":    start,
		"end":      end,
	}).Debug("Mock-fetching platform posts")

	ts := m.now().UTC().Format(time.RFC3339)
	return []models.PostMetric{
		{
			Platform:    platform,
			PostID:      fmt.Sprintf("mock-%s-1", platform),
			Timestamp:   ts,
			Impressions: 1200,
			Likes:       45,
			Comments:    5,
			Shares:      2,
		},
		{
			Platform:    platform,
			PostID:      fmt.Sprintf("mock-%s-2", platform),
			Timestamp:   ts,
			Impressions: 800,
			Likes:       20,
			Comments:    1,
			Shares:      0,
		},
	}, nil
}
