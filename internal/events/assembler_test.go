package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transformlabs/pulse/pkg/models"
)

var assemblerNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestNextEventDays(t *testing.T) {
	tests := []struct {
		name string
		evs  []models.MarketingEvent
		want int
	}{
		{"no events", nil, 0},
		{
			"past events only",
			[]models.MarketingEvent{{StartDate: "2026-01-01"}},
			0,
		},
		{
			"unparsable start date",
			[]models.MarketingEvent{{StartDate: "soon"}},
			0,
		},
		{
			"fractional days round up",
			[]models.MarketingEvent{{StartDate: "2026-03-19T14:00:00Z"}},
			5,
		},
		{
			"nearest future event wins",
			[]models.MarketingEvent{
				{StartDate: "2026-05-01"},
				{StartDate: "2026-03-20"},
				{StartDate: "2026-01-01"},
			},
			5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextEventDays(tt.evs, assemblerNow))
		})
	}
}

func TestActiveWindow(t *testing.T) {
	e := models.MarketingEvent{StartDate: "2026-03-10", EndDate: "2026-03-20"}
	w := ActiveWindow(e, assemblerNow)
	assert.InDelta(t, 10, w.TotalDays, 0.01)
	assert.InDelta(t, 5.5, w.ElapsedDays, 0.01)
	assert.InDelta(t, 55, w.ElapsedPercent, 0.1)
}

func TestActiveWindow_SingleDayEvent(t *testing.T) {
	e := models.MarketingEvent{StartDate: "2026-03-15", EndDate: "2026-03-15"}
	w := ActiveWindow(e, assemblerNow)
	assert.Equal(t, float64(1), w.TotalDays)
	assert.InDelta(t, 50, w.ElapsedPercent, 0.1)
}

func TestActiveWindow_ClampsElapsedPercent(t *testing.T) {
	future := models.MarketingEvent{StartDate: "2026-04-01", EndDate: "2026-04-10"}
	assert.Equal(t, float64(0), ActiveWindow(future, assemblerNow).ElapsedPercent)

	past := models.MarketingEvent{StartDate: "2026-01-01", EndDate: "2026-01-10"}
	assert.Equal(t, float64(100), ActiveWindow(past, assemblerNow).ElapsedPercent)
}

func TestActive(t *testing.T) {
	evs := []models.MarketingEvent{
		{ID: "a", Status: models.EventUpcoming},
		{ID: "b", Status: models.EventActive},
		{ID: "c", Status: models.EventCompleted},
		{ID: "d", Status: models.EventActive},
	}

	active := Active(evs)
	require.Len(t, active, 2)
	assert.Equal(t, "b", active[0].ID)
	assert.Equal(t, "d", active[1].ID)
}

func TestSortByStart(t *testing.T) {
	evs := []models.MarketingEvent{
		{ID: "later", StartDate: "2026-06-01"},
		{ID: "undated", StartDate: "tbd"},
		{ID: "sooner", StartDate: "2026-02-01"},
	}

	SortByStart(evs)

	assert.Equal(t, "sooner", evs[0].ID)
	assert.Equal(t, "later", evs[1].ID)
	assert.Equal(t, "undated", evs[2].ID)
}

func TestFromRecord_Defaults(t *testing.T) {
	e := FromRecord(map[string]interface{}{
		"name":      "Launch Week",
		"startDate": "2026-04-01",
	}, assemblerNow)

	assert.Equal(t, "Launch Week", e.Name)
	assert.Equal(t, models.EventStandard, e.Type)
	assert.Equal(t, models.EventUpcoming, e.Status)
	assert.Equal(t, "2026-04-01", e.StartDate)
	assert.Equal(t, "2026-04-01", e.EventDate)
	assert.Equal(t, "2026-04-01", e.EndDate)
	assert.Equal(t, 0, e.Goals.Total())
}

func TestFromRecord_FullRecord(t *testing.T) {
	e := FromRecord(map[string]interface{}{
		"id":        "evt-1",
		"name":      "Summit",
		"type":      "Flagship",
		"status":    "ACTIVE",
		"startDate": "2026-05-01",
		"endDate":   "2026-05-07",
		"goals": map[string]interface{}{
			"linkedin": float64(10),
			"twitter":  float64(20),
		},
	}, assemblerNow)

	assert.Equal(t, "evt-1", e.ID)
	assert.Equal(t, models.EventFlagship, e.Type)
	assert.Equal(t, models.EventActive, e.Status)
	assert.Equal(t, "2026-05-07", e.EndDate)
	assert.Equal(t, 10, e.Goals.Linkedin)
	assert.Equal(t, 20, e.Goals.Twitter)
	assert.Equal(t, 0, e.Goals.Youtube)
}

func TestFromRecord_UnrecognizedEnumsFallBack(t *testing.T) {
	e := FromRecord(map[string]interface{}{
		"name":   "Mystery",
		"type":   "mega",
		"status": "paused",
	}, assemblerNow)

	assert.Equal(t, models.EventStandard, e.Type)
	assert.Equal(t, models.EventUpcoming, e.Status)
}

func TestBuildDashboardStats(t *testing.T) {
	stats := models.PipelineStats{Draft: 2, Approved: 1, Published: 4}
	evs := []models.MarketingEvent{{StartDate: "2026-03-20"}}

	dash := BuildDashboardStats(evs, stats, assemblerNow)

	assert.Equal(t, 7, dash.TotalPosts)
	assert.Equal(t, "green", dash.Health)
	assert.Equal(t, 5, dash.NextEventDays)
	assert.Equal(t, stats, dash.Pipeline)
}
