package scheduler

import (
	"context"
	"time"

	"github.com/transformlabs/pulse/internal/handlers"
	"github.com/transformlabs/pulse/internal/report"
	"github.com/transformlabs/pulse/pkg/logging"
)

// Scheduler handles the periodic post-metrics sync and the weekly
// report delivery
type Scheduler struct {
	logger         logging.Logger
	syncer         *handlers.Syncer
	reporter       *report.Reporter
	syncInterval   time.Duration
	reportInterval time.Duration
	syncTicker     *time.Ticker
	reportTicker   *time.Ticker
	stopChan       chan bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(syncer *handlers.Syncer, reporter *report.Reporter, syncInterval, reportInterval time.Duration, logger logging.Logger) *Scheduler {
	return &Scheduler{
		logger:         logger,
		syncer:         syncer,
		reporter:       reporter,
		syncInterval:   syncInterval,
		reportInterval: reportInterval,
		stopChan:       make(chan bool),
	}
}

// Start begins the scheduled tasks
func (s *Scheduler) Start() {
	s.logger.WithFields(logging.Fields{
		"sync_interval":   s.syncInterval,
		"report_interval": s.reportInterval,
	}).Info("Starting task scheduler")

	s.syncTicker = time.NewTicker(s.syncInterval)
	s.reportTicker = time.NewTicker(s.reportInterval)
	go s.runTasks()

	// Run an initial sync shortly after startup so a fresh deployment
	// has measured data before the first daily tick
	go func() {
		time.Sleep(10 * time.Second)
		s.logger.Info("Running initial post metrics sync")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.syncer.SyncPosts(ctx); err != nil {
			s.logger.WithError(err).Error("Failed to run initial post metrics sync")
		}
	}()
}

// Stop stops all scheduled tasks
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping task scheduler")

	if s.syncTicker != nil {
		s.syncTicker.Stop()
	}
	if s.reportTicker != nil {
		s.reportTicker.Stop()
	}

	close(s.stopChan)
}

func (s *Scheduler) runTasks() {
	for {
		select {
		case <-s.syncTicker.C:
			s.logger.Info("Running scheduled post metrics sync")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			if err := s.syncer.SyncPosts(ctx); err != nil {
				s.logger.WithError(err).Error("Failed to run post metrics sync")
			}
			cancel()
		case <-s.reportTicker.C:
			s.logger.Info("Running scheduled weekly report")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			if err := s.reporter.Run(ctx); err != nil {
				s.logger.WithError(err).Error("Failed to send weekly report")
			}
			cancel()
		case <-s.stopChan:
			s.logger.Info("Stopping task runner")
			return
		}
	}
}

// TriggerSync manually triggers the post metrics sync
func (s *Scheduler) TriggerSync() error {
	s.logger.Info("Manually triggering post metrics sync")
	return s.syncer.SyncPosts(context.Background())
}

// TriggerReport manually triggers the weekly report
func (s *Scheduler) TriggerReport() error {
	s.logger.Info("Manually triggering weekly report")
	return s.reporter.Run(context.Background())
}
