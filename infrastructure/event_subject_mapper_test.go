package infrastructure

import (
	"testing"

	"viralcast/events"
	"viralcast/models"

	"github.com/stretchr/testify/assert"
)

func TestMapEventToSubject(t *testing.T) {
	mapper := NewEventSubjectMapper()

	tests := []struct {
		name     string
		event    events.Event
		expected string
	}{
		{
			name:     "post published",
			event:    events.PostPublishedEvent{ContentID: "c1", Platform: models.PlatformTikTok},
			expected: "posting.published",
		},
		{
			name:     "rotation exhausted",
			event:    events.RotationExhaustedEvent{ContentID: "c1", Platform: models.PlatformTikTok},
			expected: "posting.rotation_exhausted",
		},
		{
			name:     "batch completed",
			event:    events.BatchCompletedEvent{ContentID: "c1"},
			expected: "batches.completed",
		},
		{
			name:     "account degraded",
			event:    events.AccountDegradedEvent{AccountID: 1},
			expected: "accounts.degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapper.MapEventToSubject(tt.event))
		})
	}
}

func TestMapSubjectToEventTypeRoundTrip(t *testing.T) {
	mapper := NewEventSubjectMapper()

	for _, subject := range mapper.GetAllSubjects() {
		eventType := mapper.MapSubjectToEventType(subject)
		assert.NotEqual(t, events.EventType(subject), eventType,
			"subject %s should map back to a known event type", subject)
	}
}
