package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	"viralcast/events"
	"viralcast/models"
	"viralcast/service"
)

// eventSubscriber is the slice of NATSClient the auditor needs
type eventSubscriber interface {
	Subscribe(subject string, handler func([]byte) error) error
}

// EventAuditor mirrors distribution lifecycle events from NATS into the
// activity log, so operators can query outcomes from every publishing
// service without a NATS client.
type EventAuditor struct {
	subscriber   eventSubscriber
	mapper       *EventSubjectMapper
	activityLogs service.ActivityLogRepository
}

// NewEventAuditor creates a new event auditor
func NewEventAuditor(subscriber eventSubscriber, mapper *EventSubjectMapper, activityLogs service.ActivityLogRepository) *EventAuditor {
	return &EventAuditor{
		subscriber:   subscriber,
		mapper:       mapper,
		activityLogs: activityLogs,
	}
}

// Start subscribes to every lifecycle subject. Handler errors propagate so
// the message is redelivered.
func (a *EventAuditor) Start() error {
	for _, subject := range a.mapper.GetAllSubjects() {
		subject := subject
		err := a.subscriber.Subscribe(subject, func(data []byte) error {
			return a.record(context.Background(), subject, data)
		})
		if err != nil {
			return fmt.Errorf("failed to subscribe auditor to %s: %w", subject, err)
		}
	}
	return nil
}

func (a *EventAuditor) record(ctx context.Context, subject string, data []byte) error {
	var envelope EventEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode event envelope on %s: %w", subject, err)
	}

	eventType := a.mapper.MapSubjectToEventType(subject)

	var payload map[string]any
	if len(envelope.Payload) > 0 {
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", eventType, err)
		}
	}

	entry := &models.ActivityLog{
		Type:    "event",
		Message: fmt.Sprintf("%s event from %s", eventType, envelope.SourceService),
		Status:  statusForEvent(eventType),
		Metadata: map[string]any{
			"event_id":       envelope.EventID,
			"subject":        subject,
			"source_service": envelope.SourceService,
			"payload":        payload,
		},
	}
	if err := a.activityLogs.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record %s event: %w", eventType, err)
	}
	return nil
}

// statusForEvent maps lifecycle event types onto activity log statuses
func statusForEvent(eventType events.EventType) string {
	switch eventType {
	case events.EventTypeRotationExhausted:
		return "failed"
	case events.EventTypeAccountDegraded:
		return "warning"
	default:
		return "success"
	}
}
