package infrastructure

import (
	"fmt"

	"viralcast/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypePostPublished:
		return "posting.published"
	case events.EventTypeRotationExhausted:
		return "posting.rotation_exhausted"
	case events.EventTypeBatchCompleted:
		return "batches.completed"
	case events.EventTypeAccountDegraded:
		return "accounts.degraded"
	default:
		// Fallback for unknown event types
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "posting.published":
		return events.EventTypePostPublished
	case "posting.rotation_exhausted":
		return events.EventTypeRotationExhausted
	case "batches.completed":
		return events.EventTypeBatchCompleted
	case "accounts.degraded":
		return events.EventTypeAccountDegraded
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"posting.published",
		"posting.rotation_exhausted",
		"batches.completed",
		"accounts.degraded",
	}
}
