package main

import (
	"time"

	"github.com/transformlabs/pulse/internal/handlers"
	"github.com/transformlabs/pulse/internal/metrics"
	"github.com/transformlabs/pulse/internal/report"
	"github.com/transformlabs/pulse/internal/scheduler"
	"github.com/transformlabs/pulse/internal/social"
	"github.com/transformlabs/pulse/internal/source"
	"github.com/transformlabs/pulse/internal/store"
	"github.com/transformlabs/pulse/pkg/clients/n8n"
	"github.com/transformlabs/pulse/pkg/clients/notion"
	"github.com/transformlabs/pulse/pkg/clients/slack"
	"github.com/transformlabs/pulse/pkg/config"
	"github.com/transformlabs/pulse/pkg/logging"
	"github.com/transformlabs/pulse/pkg/middleware"
	"github.com/transformlabs/pulse/pkg/monitoring"
	"github.com/transformlabs/pulse/pkg/server"
	"github.com/transformlabs/pulse/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("pulse")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Pulse (Marketing Dashboard API)")

	// Event store: S3 when a bucket is configured, local file otherwise
	var eventStore store.EventStore
	if bucket := config.GetEnv("S3_BUCKET", ""); bucket != "" {
		s3Store, err := store.NewS3Store(store.S3Config{
			Bucket:    bucket,
			Prefix:    config.GetEnv("S3_PREFIX", "pulse"),
			Region:    config.GetEnv("S3_REGION", ""),
			Endpoint:  config.GetEnv("S3_ENDPOINT", ""),
			AccessKey: config.GetEnv("S3_ACCESS_KEY", ""),
			SecretKey: config.GetEnv("S3_SECRET_KEY", ""),
		}, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize S3 event store")
		}
		eventStore = s3Store
	} else {
		dataDir := config.GetEnv("DATA_DIR", "./data")
		eventStore = store.NewFileStore(dataDir)
		logger.WithField("dir", dataDir).Warn("S3_BUCKET not set, using local file store")
	}

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("pulse", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("pulse", version.Version, version.GitCommit)

	healthChecker.AddCheck("store", monitoring.PingHealthCheck("event store", eventStore))

	// Create custom service metrics
	serviceMetrics := &metrics.Metrics{
		SourceFetches:       metricsCollector.NewCounter("source_fetches_total", "Source fetch attempts", []string{"provider", "outcome"}),
		AggregationDuration: metricsCollector.NewHistogram("aggregation_duration_seconds", "Aggregation pass duration", []string{"stage"}, nil),
		StoreOperations:     metricsCollector.NewCounter("store_operations_total", "Event store operations", []string{"operation", "status"}),
		EventsTracked:       metricsCollector.NewGauge("events_tracked", "Events in the persisted collection", []string{"status"}),
		SyncRuns:            metricsCollector.NewCounter("sync_runs_total", "Post metrics sync runs", []string{"status"}),
		ReportsSent:         metricsCollector.NewCounter("reports_total", "Weekly report runs", []string{"outcome"}),
	}

	// Source chain: n8n webhook, then Notion, then static fallback
	var providers []source.Provider
	if n8nURL := config.GetEnv("N8N_WEBHOOK_URL", ""); n8nURL != "" {
		client := n8n.NewClient(n8nURL, n8n.WithCircuitBreaker("n8n", logger))
		providers = append(providers, source.NewWebhookProvider(client))
	}
	notionKey := config.GetEnv("NOTION_API_KEY", "")
	notionEventsDB := config.GetEnv("NOTION_EVENTS_DB_ID", "")
	notionContentDB := config.GetEnv("NOTION_CONTENT_DB_ID", "")
	if notionKey != "" && (notionEventsDB != "" || notionContentDB != "") {
		client := notion.NewClient(notionKey, notion.WithCircuitBreaker("notion", logger))
		providers = append(providers, source.NewNotionProvider(client, notionEventsDB, notionContentDB))
	}
	providers = append(providers, source.NewStaticProvider())

	sourceChain := source.NewChain(logger, providers,
		source.WithFetchTimeout(config.GetEnvDuration("SOURCE_FETCH_TIMEOUT", source.DefaultFetchTimeout)),
		source.WithFetchObserver(func(provider, outcome string) {
			serviceMetrics.SourceFetches.WithLabelValues(provider, outcome).Inc()
		}),
	)

	handlers.Init(eventStore, sourceChain, logger, serviceMetrics)

	// Weekly report delivery; without a webhook the reporter logs and skips
	var sender report.Sender
	if slackURL := config.GetEnv("SLACK_WEBHOOK_URL", ""); slackURL != "" {
		sender = slack.NewClient(slackURL)
	} else {
		logger.Warn("SLACK_WEBHOOK_URL not set, weekly reports will be skipped")
	}
	reporter := report.NewReporter(eventStore, sender, config.GetEnv("DASHBOARD_URL", ""), logger,
		report.WithObserver(func(outcome string) {
			serviceMetrics.ReportsSent.WithLabelValues(outcome).Inc()
		}),
	)

	// Initialize and start scheduler for the daily sync and weekly report
	syncer := handlers.NewSyncer(eventStore, social.NewMockFetcher(logger), logger, serviceMetrics)
	taskScheduler := scheduler.NewScheduler(syncer, reporter,
		config.GetEnvDuration("SYNC_INTERVAL", 24*time.Hour),
		config.GetEnvDuration("REPORT_INTERVAL", 168*time.Hour),
		logger)
	taskScheduler.Start()
	defer taskScheduler.Stop()

	// Setup router with unified monitoring
	router := server.SetupServiceRouter(logger, "pulse", healthChecker, metricsCollector)

	api := router.Group("/api")
	api.GET("/stats", handlers.GetStats)
	api.GET("/events", handlers.GetEvents)
	api.GET("/events/:id", handlers.GetEvent)
	api.POST("/events", handlers.CreateEvent)

	// Manual task triggers, token-protected when SERVICE_TOKEN is set
	triggers := &handlers.TriggerHandlers{
		Sync:   taskScheduler.TriggerSync,
		Report: taskScheduler.TriggerReport,
	}
	admin := api.Group("")
	if token := config.GetEnv("SERVICE_TOKEN", ""); token != "" {
		admin.Use(middleware.ServiceAuthMiddleware(token))
	}
	admin.POST("/sync/run", triggers.RunSync)
	admin.POST("/report/run", triggers.RunReport)

	// Start HTTP server with graceful shutdown
	serverConfig := server.DefaultConfig("pulse", "18080")
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
