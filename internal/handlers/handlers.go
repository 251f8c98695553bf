package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/transformlabs/pulse/internal/events"
	"github.com/transformlabs/pulse/internal/metrics"
	"github.com/transformlabs/pulse/internal/pipeline"
	"github.com/transformlabs/pulse/internal/source"
	"github.com/transformlabs/pulse/internal/store"
	"github.com/transformlabs/pulse/pkg/api/pulse"
	"github.com/transformlabs/pulse/pkg/logging"
	"github.com/transformlabs/pulse/pkg/models"
	"github.com/transformlabs/pulse/pkg/validation"
)

var (
	eventStore     store.EventStore
	sources        *source.Chain
	eventValidator *validation.EventValidator
	logger         logging.Logger
	serviceMetrics *metrics.Metrics
)

// Init initializes the handlers package with the event store, the
// source chain and metrics
func Init(st store.EventStore, chain *source.Chain, log logging.Logger, m *metrics.Metrics) {
	eventStore = st
	sources = chain
	eventValidator = validation.NewEventValidator()
	logger = log
	serviceMetrics = m
}

// GetStats returns the dashboard summary: content pipeline roll-up plus
// event-derived facts, aggregated from the first source strategy that
// yields data.
func GetStats(c *gin.Context) {
	start := time.Now()
	defer func() {
		if serviceMetrics != nil {
			serviceMetrics.AggregationDuration.WithLabelValues("stats").Observe(time.Since(start).Seconds())
		}
	}()

	now := time.Now()
	payload := sources.Fetch(c.Request.Context())

	var stats models.PipelineStats
	if payload.Content.Summary != nil {
		stats = pipeline.AggregateSummary(*payload.Content.Summary, now)
	} else {
		stats = pipeline.Aggregate(payload.Content.Items, now)
	}

	evs, ok := currentEvents(c, payload, now)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pulse.StatsResponse(events.BuildDashboardStats(evs, stats, now)))
}

// GetEvents returns the event collection, sorted by start date. The
// persisted document wins; an empty store falls back to whatever the
// source chain delivered so a fresh deployment is not blank.
func GetEvents(c *gin.Context) {
	now := time.Now()
	payload := sources.Fetch(c.Request.Context())
	evs, ok := currentEvents(c, payload, now)
	if !ok {
		return
	}
	events.SortByStart(evs)
	c.JSON(http.StatusOK, pulse.EventsResponse(evs))
}

// GetEvent returns a single event by ID.
func GetEvent(c *gin.Context) {
	id := c.Param("id")

	evs, err := loadEvents(c)
	if err != nil {
		return
	}
	for _, e := range evs {
		if e.ID == id {
			c.JSON(http.StatusOK, pulse.EventResponse(e))
			return
		}
	}
	c.JSON(http.StatusNotFound, pulse.ErrorResponse{Error: "Event not found"})
}

// CreateEvent validates and appends an event to the persisted
// collection. An omitted ID gets a generated one.
func CreateEvent(c *gin.Context) {
	var req validation.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, pulse.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := eventValidator.ValidateCreateEvent(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			c.JSON(http.StatusBadRequest, pulse.ValidationErrorResponse{
				Error:  "Event validation failed",
				Fields: fields,
			})
			return
		}
		c.JSON(http.StatusBadRequest, pulse.ErrorResponse{Error: err.Error()})
		return
	}

	event := req.ToEvent()
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	evs, err := loadEvents(c)
	if err != nil {
		return
	}
	evs = append(evs, event)

	if err := eventStore.Save(c.Request.Context(), evs); err != nil {
		if serviceMetrics != nil {
			serviceMetrics.StoreOperations.WithLabelValues("save", "error").Inc()
		}
		logger.WithError(err).Error("Failed to save events document")
		c.JSON(http.StatusInternalServerError, pulse.ErrorResponse{Error: "Failed to save event"})
		return
	}
	if serviceMetrics != nil {
		serviceMetrics.StoreOperations.WithLabelValues("save", "success").Inc()
		serviceMetrics.EventsTracked.WithLabelValues("total").Set(float64(len(evs)))
	}

	logger.WithFields(logging.Fields{
		"event_id": event.ID,
		"name":     event.Name,
	}).Info("Event created")
	c.JSON(http.StatusCreated, pulse.EventResponse(event))
}

// TriggerHandlers exposes the scheduler's manual triggers on the API.
type TriggerHandlers struct {
	Sync   func() error
	Report func() error
}

// RunSync manually triggers the post-metrics sync.
func (t *TriggerHandlers) RunSync(c *gin.Context) {
	if err := t.Sync(); err != nil {
		logger.WithError(err).Error("Manual sync failed")
		c.JSON(http.StatusInternalServerError, pulse.ErrorResponse{Error: "Sync failed"})
		return
	}
	c.JSON(http.StatusOK, pulse.TriggerResponse{Triggered: true, Task: "sync"})
}

// RunReport manually triggers the weekly report.
func (t *TriggerHandlers) RunReport(c *gin.Context) {
	if err := t.Report(); err != nil {
		logger.WithError(err).Error("Manual report failed")
		c.JSON(http.StatusInternalServerError, pulse.ErrorResponse{Error: "Report failed"})
		return
	}
	c.JSON(http.StatusOK, pulse.TriggerResponse{Triggered: true, Task: "report"})
}

// loadEvents reads the persisted collection, writing the error response
// itself on failure.
func loadEvents(c *gin.Context) ([]models.MarketingEvent, error) {
	evs, err := eventStore.Load(c.Request.Context())
	if err != nil {
		if serviceMetrics != nil {
			serviceMetrics.StoreOperations.WithLabelValues("load", "error").Inc()
		}
		logger.WithError(err).Error("Failed to load events document")
		c.JSON(http.StatusInternalServerError, pulse.ErrorResponse{Error: "Failed to load events"})
		return nil, err
	}
	if serviceMetrics != nil {
		serviceMetrics.StoreOperations.WithLabelValues("load", "success").Inc()
	}
	return evs, nil
}

// currentEvents prefers the persisted collection and falls back to the
// source payload's event records when the store is empty. Returns false
// after an already-reported store failure.
func currentEvents(c *gin.Context, payload *source.Payload, now time.Time) ([]models.MarketingEvent, bool) {
	evs, err := loadEvents(c)
	if err != nil {
		return nil, false
	}
	if len(evs) > 0 {
		return evs, true
	}

	mapped := make([]models.MarketingEvent, 0, len(payload.Events))
	for _, record := range payload.Events {
		mapped = append(mapped, events.FromRecord(record, now))
	}
	return mapped, true
}
