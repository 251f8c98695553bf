package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/transformlabs/pulse/internal/metrics"
	"github.com/transformlabs/pulse/internal/pipeline"
	"github.com/transformlabs/pulse/internal/social"
	"github.com/transformlabs/pulse/internal/store"
	"github.com/transformlabs/pulse/pkg/logging"
	"github.com/transformlabs/pulse/pkg/models"
)

// Syncer refreshes measured post metrics for active events and writes
// the updated collection back to the store.
type Syncer struct {
	store   store.EventStore
	fetcher social.PostFetcher
	logger  logging.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewSyncer creates a new sync job instance
func NewSyncer(st store.EventStore, fetcher social.PostFetcher, logger logging.Logger, m *metrics.Metrics) *Syncer {
	return &Syncer{
		store:   st,
		fetcher: fetcher,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// SyncPosts fetches post metrics for every active event on each
// platform that carries a goal, replacing the event's Posts slice with
// the fresh measurement. Events that are not active keep whatever they
// had; a fetch failure on one platform skips that platform, not the
// whole run.
func (s *Syncer) SyncPosts(ctx context.Context) error {
	evs, err := s.store.Load(ctx)
	if err != nil {
		s.observeRun("error")
		return fmt.Errorf("failed to load events for sync: %w", err)
	}

	now := s.now()
	synced := 0
	for i := range evs {
		if evs[i].Status != models.EventActive {
			continue
		}
		evs[i].Posts = s.measureEvent(ctx, evs[i], now)
		synced++
	}

	if synced == 0 {
		s.logger.Info("No active events to sync")
		s.observeRun("success")
		return nil
	}

	if err := s.store.Save(ctx, evs); err != nil {
		s.observeRun("error")
		return fmt.Errorf("failed to save synced events: %w", err)
	}

	if s.metrics != nil {
		s.metrics.EventsTracked.WithLabelValues("total").Set(float64(len(evs)))
		s.metrics.EventsTracked.WithLabelValues("active").Set(float64(synced))
	}
	s.observeRun("success")

	s.logger.WithFields(logging.Fields{
		"events_total":  len(evs),
		"events_synced": synced,
	}).Info("Post metrics sync complete")
	return nil
}

// measureEvent collects posts across all goal-carrying platforms for
// one event. Returns an empty (non-nil) slice when every platform
// fetch fails or no platform carries a goal, which marks the event as
// measured.
func (s *Syncer) measureEvent(ctx context.Context, e models.MarketingEvent, now time.Time) []models.PostMetric {
	start, _ := pipeline.ParseDate(e.StartDate)
	end, ok := pipeline.ParseDate(e.EndDate)
	if !ok {
		end = now
	}

	posts := []models.PostMetric{}
	for _, p := range models.SocialPlatforms {
		if e.Goals.ForPlatform(p) == 0 {
			continue
		}
		fetched, err := s.fetcher.GetPosts(ctx, p, e.Name, start, end)
		if err != nil {
			s.logger.WithError(err).WithFields(logging.Fields{
				"event_id": e.ID,
				"platform": p,
			}).Error("Failed to fetch posts for platform")
			continue
		}
		posts = append(posts, fetched...)
	}
	return posts
}

func (s *Syncer) observeRun(status string) {
	if s.metrics != nil {
		s.metrics.SyncRuns.WithLabelValues(status).Inc()
	}
}
