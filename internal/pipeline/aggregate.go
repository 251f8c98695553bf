package pipeline

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/transformlabs/pulse/pkg/models"
)

// Defaults applied when a raw record is missing a field. Aggregation
// never drops an item for missing or malformed data.
const (
	defaultType  = "Post"
	defaultTitle = "Untitled"
)

// Summary is a pre-aggregated content payload as produced by an
// upstream transformer (or the static fallback): counts are already
// final and only the activity feed carries per-item data.
type Summary struct {
	Draft          int                  `json:"draft"`
	Approved       int                  `json:"approved"`
	Published      int                  `json:"published"`
	RecentActivity []models.ContentItem `json:"recentActivity"`
}

// Aggregate classifies a sequence of raw content records into
// PipelineStats. Each record passes through the field resolver and the
// platform/status normalizers; raw upstream values never survive past
// this point.
//
// The platform distribution counts items of every status across the
// five tracked social platforms (planned + done), while the activity
// feed records published items only (done only). That asymmetry is
// intentional.
func Aggregate(items []map[string]interface{}, now time.Time) models.PipelineStats {
	stats := models.PipelineStats{
		RecentActivity:       []models.ContentItem{},
		PlatformDistribution: emptyDistribution(),
	}

	for _, item := range items {
		status := NormalizeStatus(ResolveString(item, FieldStatus, string(models.StatusDraft)))
		platform := NormalizePlatform(ResolveString(item, FieldPlatform, string(models.PlatformUnknown)))
		title := ResolveString(item, FieldTitle, defaultTitle)
		contentType := ResolveString(item, FieldType, defaultType)
		date := ResolveString(item, FieldDate, now.Format(time.RFC3339))

		switch status {
		case models.StatusPublished:
			stats.Published++
		case models.StatusApproved:
			stats.Approved++
		default:
			stats.Draft++
		}

		if status == models.StatusPublished {
			id := ResolveString(item, FieldID, "")
			if id == "" {
				id = uuid.New().String()
			}
			stats.RecentActivity = append(stats.RecentActivity, models.ContentItem{
				ID:       id,
				Title:    title,
				Platform: platform,
				Type:     contentType,
				Status:   models.StatusPublished,
				Date:     date,
				URL:      ResolveString(item, FieldURL, ""),
			})

			if t, ok := ParseDate(date); ok && t.Month() == now.Month() && t.Year() == now.Year() {
				stats.ThisMonthCount++
			}
		}

		if _, tracked := stats.PlatformDistribution[platform]; tracked {
			stats.PlatformDistribution[platform]++
		}
	}

	sortActivity(stats.RecentActivity)
	return stats
}

// AggregateSummary adapts an already-aggregated payload. Counts pass
// through unchanged; the platform distribution is reconstructed from
// the activity feed alone, since the raw item set is unavailable in
// this branch. Feed items are re-normalized so the canonical-forms
// invariant holds on this path too.
func AggregateSummary(s Summary, now time.Time) models.PipelineStats {
	stats := models.PipelineStats{
		Draft:                s.Draft,
		Approved:             s.Approved,
		Published:            s.Published,
		RecentActivity:       make([]models.ContentItem, 0, len(s.RecentActivity)),
		PlatformDistribution: emptyDistribution(),
	}

	for _, item := range s.RecentActivity {
		item.Platform = NormalizePlatform(string(item.Platform))
		item.Status = NormalizeStatus(string(item.Status))
		stats.RecentActivity = append(stats.RecentActivity, item)

		if _, tracked := stats.PlatformDistribution[item.Platform]; tracked {
			stats.PlatformDistribution[item.Platform]++
		}
		if item.Status == models.StatusPublished {
			if t, ok := ParseDate(item.Date); ok && t.Month() == now.Month() && t.Year() == now.Year() {
				stats.ThisMonthCount++
			}
		}
	}

	sortActivity(stats.RecentActivity)
	return stats
}

func emptyDistribution() map[models.Platform]int {
	dist := make(map[models.Platform]int, len(models.SocialPlatforms))
	for _, p := range models.SocialPlatforms {
		dist[p] = 0
	}
	return dist
}

// sortActivity orders the feed by date descending. Items whose date
// does not parse sort consistently to the end rather than aborting the
// pass; order among equal dates is unspecified but stable.
func sortActivity(items []models.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, iok := ParseDate(items[i].Date)
		tj, jok := ParseDate(items[j].Date)
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return ti.After(tj)
	})
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses the ISO-8601 variants seen across the upstream
// sources: full timestamps with or without zone, and bare dates.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
