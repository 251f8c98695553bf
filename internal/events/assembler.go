// Package events derives event-level facts from the marketing event
// collection: which events are running, how far away the next one is,
// and how far through its window an active event has progressed.
package events

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/transformlabs/pulse/internal/pipeline"
	"github.com/transformlabs/pulse/pkg/models"
)

const day = 24 * time.Hour

// healthPlaceholder is the dashboard health signal. The observed
// product behavior always reports green regardless of pacing; deriving
// it from RAG roll-ups is pending product intent, so it stays an
// explicit constant here.
const healthPlaceholder = "green"

// NextEventDays returns the number of days, rounded up, until the
// start of the nearest future event. Returns 0 when no event lies in
// the future or no start date parses.
func NextEventDays(evs []models.MarketingEvent, now time.Time) int {
	var next time.Time
	found := false
	for _, e := range evs {
		start, ok := pipeline.ParseDate(e.StartDate)
		if !ok || !start.After(now) {
			continue
		}
		if !found || start.Before(next) {
			next = start
			found = true
		}
	}
	if !found {
		return 0
	}
	days := int(math.Ceil(next.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// Window describes how far through its run an event is at a given
// moment.
type Window struct {
	TotalDays      float64
	ElapsedDays    float64
	ElapsedPercent float64
}

// ActiveWindow computes the time window for an event. TotalDays is
// never below 1 so single-day events do not divide by zero;
// ElapsedDays may be negative before the event starts; ElapsedPercent
// is clamped to [0, 100]. Unparsable dates behave as the zero time,
// which keeps the computation total rather than failing the event.
func ActiveWindow(e models.MarketingEvent, now time.Time) Window {
	start, _ := pipeline.ParseDate(e.StartDate)
	end, _ := pipeline.ParseDate(e.EndDate)

	totalDays := end.Sub(start).Hours() / 24
	if totalDays < 1 {
		totalDays = 1
	}
	elapsedDays := now.Sub(start).Hours() / 24
	elapsedPercent := elapsedDays / totalDays * 100
	if elapsedPercent < 0 {
		elapsedPercent = 0
	}
	if elapsedPercent > 100 {
		elapsedPercent = 100
	}

	return Window{
		TotalDays:      totalDays,
		ElapsedDays:    elapsedDays,
		ElapsedPercent: elapsedPercent,
	}
}

// Active returns the events currently in the active state, preserving
// input order.
func Active(evs []models.MarketingEvent) []models.MarketingEvent {
	var out []models.MarketingEvent
	for _, e := range evs {
		if e.Status == models.EventActive {
			out = append(out, e)
		}
	}
	return out
}

// SortByStart orders events by start date ascending; events without a
// parsable start date sort last.
func SortByStart(evs []models.MarketingEvent) {
	sort.SliceStable(evs, func(i, j int) bool {
		ti, iok := pipeline.ParseDate(evs[i].StartDate)
		tj, jok := pipeline.ParseDate(evs[j].StartDate)
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return ti.Before(tj)
	})
}

// FromRecord maps a raw upstream event record (flat webhook shape or
// structured page) to a MarketingEvent, applying the same resolver
// table the content pipeline uses. Defaults: type standard, status
// upcoming, event date and end date fall back to the start date.
func FromRecord(record map[string]interface{}, now time.Time) models.MarketingEvent {
	startDate := pipeline.ResolveString(record, pipeline.FieldStartDate, now.Format(time.RFC3339))
	endDate := pipeline.ResolveString(record, pipeline.FieldEndDate, startDate)

	return models.MarketingEvent{
		ID:        pipeline.ResolveString(record, pipeline.FieldID, ""),
		Name:      pipeline.ResolveString(record, pipeline.FieldName, "Untitled Event"),
		Type:      normalizeEventType(pipeline.ResolveString(record, pipeline.FieldType, string(models.EventStandard))),
		Status:    normalizeEventStatus(pipeline.ResolveString(record, pipeline.FieldStatus, string(models.EventUpcoming))),
		StartDate: startDate,
		EventDate: startDate,
		EndDate:   endDate,
		Goals: models.SocialGoals{
			Linkedin:  pipeline.ResolveInt(record, pipeline.FieldGoalLinkedin, 0),
			Instagram: pipeline.ResolveInt(record, pipeline.FieldGoalInstagram, 0),
			Twitter:   pipeline.ResolveInt(record, pipeline.FieldGoalTwitter, 0),
			Tiktok:    pipeline.ResolveInt(record, pipeline.FieldGoalTiktok, 0),
			Youtube:   pipeline.ResolveInt(record, pipeline.FieldGoalYoutube, 0),
		},
	}
}

func normalizeEventType(raw string) models.EventType {
	switch models.EventType(strings.ToLower(strings.TrimSpace(raw))) {
	case models.EventFlagship:
		return models.EventFlagship
	case models.EventCommunity:
		return models.EventCommunity
	case models.EventVirtual:
		return models.EventVirtual
	default:
		return models.EventStandard
	}
}

func normalizeEventStatus(raw string) models.EventStatus {
	switch models.EventStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case models.EventActive:
		return models.EventActive
	case models.EventCompleted:
		return models.EventCompleted
	default:
		return models.EventUpcoming
	}
}

// BuildDashboardStats assembles the top-level dashboard summary from
// the event collection and an aggregated content pipeline.
func BuildDashboardStats(evs []models.MarketingEvent, stats models.PipelineStats, now time.Time) models.DashboardStats {
	return models.DashboardStats{
		TotalPosts:    stats.TotalItems(),
		Health:        healthPlaceholder,
		NextEventDays: NextEventDays(evs, now),
		Pipeline:      stats,
	}
}
