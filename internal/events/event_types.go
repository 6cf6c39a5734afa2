package events

import (
	"time"

	"github.com/gholaman/municipal-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventNewsPublished        EventType = "news_published"
)

// ActorType distinguishes anonymous citizens from staff.
type ActorType string

const (
	ActorCitizen ActorType = "CITIZEN"
	ActorStaff   ActorType = "STAFF"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type    ActorType `json:"type"`
	StaffID *string   `json:"staff_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	ServiceType domain.ServiceType   `json:"service_type"`
	Status      domain.RequestStatus `json:"status"`
	Title       string               `json:"title"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}

// NewsPublishedPayload payload.
type NewsPublishedPayload struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}
