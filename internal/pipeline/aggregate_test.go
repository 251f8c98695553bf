package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transformlabs/pulse/pkg/models"
)

var aggregateNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestAggregate_CountsPartitionItems(t *testing.T) {
	items := []map[string]interface{}{
		{"title": "a", "status": "published", "platform": "linkedin", "date": "2026-03-10"},
		{"title": "b", "status": "approved", "platform": "twitter"},
		{"title": "c", "status": "draft", "platform": "instagram"},
		{"title": "d", "status": "something odd", "platform": "blog"},
	}

	stats := Aggregate(items, aggregateNow)

	assert.Equal(t, 1, stats.Published)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 2, stats.Draft)
	// Every item lands in exactly one bucket.
	assert.Equal(t, len(items), stats.TotalItems())
}

func TestAggregate_DefaultsForMissingFields(t *testing.T) {
	stats := Aggregate([]map[string]interface{}{{}}, aggregateNow)

	// Missing status classifies as draft, so the feed stays empty.
	assert.Equal(t, 1, stats.Draft)
	assert.Empty(t, stats.RecentActivity)
}

func TestAggregate_FeedIsPublishedOnlyAndSorted(t *testing.T) {
	items := []map[string]interface{}{
		{"title": "old", "status": "published", "platform": "linkedin", "date": "2026-01-05"},
		{"title": "draft", "status": "draft", "platform": "linkedin", "date": "2026-03-14"},
		{"title": "new", "status": "done", "platform": "twitter", "date": "2026-03-10"},
		{"title": "undated", "status": "published", "platform": "blog", "date": "not a date"},
	}

	stats := Aggregate(items, aggregateNow)

	require.Len(t, stats.RecentActivity, 3)
	assert.Equal(t, "new", stats.RecentActivity[0].Title)
	assert.Equal(t, "old", stats.RecentActivity[1].Title)
	// Unparsable dates sort to the end.
	assert.Equal(t, "undated", stats.RecentActivity[2].Title)

	for _, entry := range stats.RecentActivity {
		assert.Equal(t, models.StatusPublished, entry.Status)
	}
}

func TestAggregate_PublishedItemsGetGeneratedIDs(t *testing.T) {
	stats := Aggregate([]map[string]interface{}{
		{"title": "no id", "status": "published", "platform": "linkedin", "date": "2026-03-01"},
	}, aggregateNow)

	require.Len(t, stats.RecentActivity, 1)
	assert.NotEmpty(t, stats.RecentActivity[0].ID)
}

func TestAggregate_DistributionCountsAllStatusesOnSocialPlatformsOnly(t *testing.T) {
	items := []map[string]interface{}{
		{"status": "draft", "platform": "linkedin"},
		{"status": "approved", "platform": "linkedin"},
		{"status": "published", "platform": "twitter", "date": "2026-03-01"},
		{"status": "published", "platform": "email", "date": "2026-03-01"},
		{"status": "draft", "platform": "unrecognized"},
	}

	stats := Aggregate(items, aggregateNow)

	assert.Equal(t, 2, stats.PlatformDistribution[models.PlatformLinkedin])
	assert.Equal(t, 1, stats.PlatformDistribution[models.PlatformTwitter])
	// Email, blog and unknown are not tracked.
	assert.NotContains(t, stats.PlatformDistribution, models.PlatformEmail)
	assert.NotContains(t, stats.PlatformDistribution, models.PlatformUnknown)
	// All five tracked platforms are always present, even at zero.
	assert.Len(t, stats.PlatformDistribution, len(models.SocialPlatforms))
	assert.Equal(t, 0, stats.PlatformDistribution[models.PlatformYoutube])
}

func TestAggregate_ThisMonthCountsPublishedInCurrentMonth(t *testing.T) {
	items := []map[string]interface{}{
		{"status": "published", "platform": "linkedin", "date": "2026-03-02"},
		{"status": "published", "platform": "linkedin", "date": "2026-02-28"},
		{"status": "published", "platform": "linkedin", "date": "2025-03-10"},
		{"status": "draft", "platform": "linkedin", "date": "2026-03-05"},
	}

	stats := Aggregate(items, aggregateNow)
	assert.Equal(t, 1, stats.ThisMonthCount)
}

func TestAggregateSummary_CountsPassThrough(t *testing.T) {
	summary := Summary{
		Draft:     5,
		Approved:  2,
		Published: 12,
		RecentActivity: []models.ContentItem{
			{ID: "1", Title: "a", Platform: "LinkedIn", Status: "Done", Date: "2026-03-10"},
			{ID: "2", Title: "b", Platform: "yt", Status: "published", Date: "2026-03-12"},
		},
	}

	stats := AggregateSummary(summary, aggregateNow)

	assert.Equal(t, 5, stats.Draft)
	assert.Equal(t, 2, stats.Approved)
	assert.Equal(t, 12, stats.Published)

	// Feed items are re-normalized on this path too.
	require.Len(t, stats.RecentActivity, 2)
	assert.Equal(t, "b", stats.RecentActivity[0].Title)
	assert.Equal(t, models.PlatformYoutube, stats.RecentActivity[0].Platform)
	assert.Equal(t, models.PlatformLinkedin, stats.RecentActivity[1].Platform)
	assert.Equal(t, models.StatusPublished, stats.RecentActivity[1].Status)

	assert.Equal(t, 1, stats.PlatformDistribution[models.PlatformLinkedin])
	assert.Equal(t, 1, stats.PlatformDistribution[models.PlatformYoutube])
	assert.Equal(t, 2, stats.ThisMonthCount)
}

func TestParseDate_AcceptedLayouts(t *testing.T) {
	for _, s := range []string{
		"2026-03-15T12:00:00Z",
		"2026-03-15T12:00:00.123Z",
		"2026-03-15T12:00:00",
		"2026-03-15",
	} {
		_, ok := ParseDate(s)
		assert.True(t, ok, "expected %q to parse", s)
	}

	_, ok := ParseDate("15/03/2026")
	assert.False(t, ok)
}
