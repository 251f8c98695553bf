// Package validation checks inbound marketing event payloads before
// they reach the event store. Structural rules live in validate tags;
// cross-field rules (date ordering) are applied after.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/transformlabs/pulse/internal/pipeline"
	"github.com/transformlabs/pulse/pkg/models"
)

// CreateEventRequest is the payload accepted by the event creation
// endpoint. ID is optional; one is assigned when absent. Dates are
// ISO-8601 strings, matching the persisted document format.
type CreateEventRequest struct {
	ID        string             `json:"id" validate:"omitempty"`
	Name      string             `json:"name" validate:"required,min=1,max=200"`
	Type      string             `json:"type" validate:"omitempty,oneof=flagship standard community virtual"`
	Status    string             `json:"status" validate:"omitempty,oneof=upcoming active completed"`
	StartDate string             `json:"startDate" validate:"required"`
	EventDate string             `json:"eventDate" validate:"omitempty"`
	EndDate   string             `json:"endDate" validate:"omitempty"`
	Goals     models.SocialGoals `json:"goals"`
}

// EventValidator performs structural and semantic validation of event
// creation requests.
type EventValidator struct {
	validator *validator.Validate
}

// NewEventValidator constructs an EventValidator with standard struct
// validation.
func NewEventValidator() *EventValidator {
	return &EventValidator{
		validator: validator.New(),
	}
}

// ValidateCreateEvent checks the request structurally, then verifies
// dates parse and are ordered and goals are non-negative.
func (v *EventValidator) ValidateCreateEvent(req *CreateEventRequest) error {
	if err := v.validator.Struct(req); err != nil {
		return fmt.Errorf("event validation failed: %w", err)
	}

	start, ok := pipeline.ParseDate(req.StartDate)
	if !ok {
		return fmt.Errorf("startDate is not a recognized date: %q", req.StartDate)
	}
	if req.EventDate != "" {
		if _, ok := pipeline.ParseDate(req.EventDate); !ok {
			return fmt.Errorf("eventDate is not a recognized date: %q", req.EventDate)
		}
	}
	if req.EndDate != "" {
		end, ok := pipeline.ParseDate(req.EndDate)
		if !ok {
			return fmt.Errorf("endDate is not a recognized date: %q", req.EndDate)
		}
		if end.Before(start) {
			return fmt.Errorf("endDate %q precedes startDate %q", req.EndDate, req.StartDate)
		}
	}

	if err := validateGoals(req.Goals); err != nil {
		return err
	}

	return nil
}

func validateGoals(g models.SocialGoals) error {
	for _, p := range models.SocialPlatforms {
		if g.ForPlatform(p) < 0 {
			return fmt.Errorf("goal for %s must be non-negative", p)
		}
	}
	return nil
}

// ToEvent converts a validated request into a MarketingEvent, applying
// the same defaults used for upstream records: type standard, status
// upcoming, event and end dates falling back to the start date.
func (req *CreateEventRequest) ToEvent() models.MarketingEvent {
	e := models.MarketingEvent{
		ID:        req.ID,
		Name:      req.Name,
		Type:      models.EventType(req.Type),
		Status:    models.EventStatus(req.Status),
		StartDate: req.StartDate,
		EventDate: req.EventDate,
		EndDate:   req.EndDate,
		Goals:     req.Goals,
	}
	if e.Type == "" {
		e.Type = models.EventStandard
	}
	if e.Status == "" {
		e.Status = models.EventUpcoming
	}
	if e.EventDate == "" {
		e.EventDate = e.StartDate
	}
	if e.EndDate == "" {
		e.EndDate = e.StartDate
	}
	return e
}
