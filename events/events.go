package events

import "viralcast/models"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypePostPublished     EventType = "post_published"
	EventTypeRotationExhausted EventType = "rotation_exhausted"
	EventTypeBatchCompleted    EventType = "batch_completed"
	EventTypeAccountDegraded   EventType = "account_degraded"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// PostPublishedEvent fires when a rotation run delivers successfully
type PostPublishedEvent struct {
	ContentID        string
	Platform         models.Platform
	AccountID        int64
	PostURL          string
	RotationAttempts int
}

func (e PostPublishedEvent) Type() EventType {
	return EventTypePostPublished
}

// RotationExhaustedEvent fires when a rotation run gives up on a platform
type RotationExhaustedEvent struct {
	ContentID        string
	Platform         models.Platform
	RotationAttempts int
	LastError        string
}

func (e RotationExhaustedEvent) Type() EventType {
	return EventTypeRotationExhausted
}

// BatchCompletedEvent fires once per batch with the per-platform tally
type BatchCompletedEvent struct {
	ContentID string
	Platforms []models.Platform
	Succeeded int
	Failed    int
}

func (e BatchCompletedEvent) Type() EventType {
	return EventTypeBatchCompleted
}

// AccountDegradedEvent fires when an account crosses the consecutive error
// threshold and operators should look at it
type AccountDegradedEvent struct {
	AccountID  int64
	Platform   models.Platform
	ErrorCount int
	LastError  string
}

func (e AccountDegradedEvent) Type() EventType {
	return EventTypeAccountDegraded
}
