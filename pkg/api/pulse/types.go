package pulse

import (
	"github.com/transformlabs/pulse/pkg/api/common"
	"github.com/transformlabs/pulse/pkg/models"
)

// ErrorResponse represents a standard error response
type ErrorResponse = common.ErrorResponse

// ValidationErrorResponse represents a validation failure with
// field-level details
type ValidationErrorResponse = common.ValidationErrorResponse

// SuccessResponse represents a standard success response
type SuccessResponse = common.SuccessResponse

// StatsResponse represents the response from GetStats
type StatsResponse = models.DashboardStats

// EventsResponse represents the response from GetEvents
type EventsResponse = []models.MarketingEvent

// EventResponse represents the response from GetEvent and CreateEvent
type EventResponse = models.MarketingEvent

// TriggerResponse represents the response from the manual sync and
// report triggers
type TriggerResponse struct {
	Triggered bool   `json:"triggered"`
	Task      string `json:"task"`
}
