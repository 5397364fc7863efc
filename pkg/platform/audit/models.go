package audit

import (
	"context"
	"time"
)

// EventCategory separates desk activity from data maintenance so sinks can
// filter one from the other.
type EventCategory string

const (
	// CategoryDesk covers per-attendee transitions made at the desk.
	CategoryDesk EventCategory = "desk"
	// CategoryData covers bulk changes to the registry and its backups.
	CategoryData EventCategory = "data"
)

// Event is emitted after a state change has been persisted. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`
	// Subject is the attendee identifier, or empty for registry-wide events.
	Subject string `json:"subject,omitempty"`
	// Detail is a short human-readable note, e.g. the lunch date or backup path.
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type AuditEvent string

const (
	EventAttendeeRegistered     AuditEvent = "attendee_registered"
	EventAttendeeCheckedIn      AuditEvent = "attendee_checked_in"
	EventAttendeeLunchCollected AuditEvent = "attendee_lunch_collected"
	EventAttendeeKitCollected   AuditEvent = "attendee_kit_collected"
	EventAttendeesImported      AuditEvent = "attendees_imported"
	EventBackupCreated          AuditEvent = "backup_created"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventAttendeeRegistered:     CategoryDesk,
	EventAttendeeCheckedIn:      CategoryDesk,
	EventAttendeeLunchCollected: CategoryDesk,
	EventAttendeeKitCollected:   CategoryDesk,
	EventAttendeesImported:      CategoryData,
	EventBackupCreated:          CategoryData,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryDesk.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryDesk
}

// NewEvent builds an event for action with its category filled in.
func NewEvent(action AuditEvent, subject, detail string) Event {
	return Event{
		Category: action.Category(),
		Action:   string(action),
		Subject:  subject,
		Detail:   detail,
	}
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
}
