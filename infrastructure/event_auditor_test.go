package infrastructure

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"viralcast/models"
	"viralcast/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeSubscriber captures handlers so tests can deliver messages directly
type fakeSubscriber struct {
	handlers map[string]func([]byte) error
	err      error
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{handlers: make(map[string]func([]byte) error)}
}

func (f *fakeSubscriber) Subscribe(subject string, handler func([]byte) error) error {
	if f.err != nil {
		return f.err
	}
	f.handlers[subject] = handler
	return nil
}

func (f *fakeSubscriber) deliver(t *testing.T, subject string, data []byte) error {
	t.Helper()
	handler, ok := f.handlers[subject]
	require.True(t, ok, "no handler registered for %s", subject)
	return handler(data)
}

func envelopeBytes(t *testing.T, eventType, source string, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	data, err := json.Marshal(&EventEnvelope{
		EventID:       "evt-1",
		EventType:     eventType,
		Timestamp:     time.Now().UTC(),
		SourceService: source,
		Payload:       raw,
	})
	require.NoError(t, err)
	return data
}

func TestEventAuditorSubscribesAllSubjects(t *testing.T) {
	subscriber := newFakeSubscriber()
	mapper := NewEventSubjectMapper()
	activityLogs := new(service.MockActivityLogRepository)

	auditor := NewEventAuditor(subscriber, mapper, activityLogs)
	require.NoError(t, auditor.Start())

	for _, subject := range mapper.GetAllSubjects() {
		assert.Contains(t, subscriber.handlers, subject)
	}
}

func TestEventAuditorRecordsPublishedEvent(t *testing.T) {
	subscriber := newFakeSubscriber()
	mapper := NewEventSubjectMapper()
	activityLogs := new(service.MockActivityLogRepository)
	activityLogs.On("Record", mock.Anything, mock.MatchedBy(func(entry *models.ActivityLog) bool {
		return entry.Type == "event" &&
			entry.Status == "success" &&
			entry.Metadata["event_id"] == "evt-1" &&
			entry.Metadata["source_service"] == "uploader"
	})).Return(nil)

	auditor := NewEventAuditor(subscriber, mapper, activityLogs)
	require.NoError(t, auditor.Start())

	data := envelopeBytes(t, "post_published", "uploader", map[string]any{
		"ContentID": "content-123",
		"Platform":  "tiktok",
	})
	require.NoError(t, subscriber.deliver(t, "posting.published", data))
	activityLogs.AssertExpectations(t)
}

func TestEventAuditorStatusFollowsEventType(t *testing.T) {
	cases := map[string]string{
		"posting.published":          "success",
		"posting.rotation_exhausted": "failed",
		"batches.completed":          "success",
		"accounts.degraded":          "warning",
	}

	for subject, status := range cases {
		t.Run(subject, func(t *testing.T) {
			subscriber := newFakeSubscriber()
			mapper := NewEventSubjectMapper()
			activityLogs := new(service.MockActivityLogRepository)
			activityLogs.On("Record", mock.Anything, mock.MatchedBy(func(entry *models.ActivityLog) bool {
				return entry.Status == status && entry.Metadata["subject"] == subject
			})).Return(nil)

			auditor := NewEventAuditor(subscriber, mapper, activityLogs)
			require.NoError(t, auditor.Start())

			data := envelopeBytes(t, "ignored", "viralcast", map[string]any{})
			require.NoError(t, subscriber.deliver(t, subject, data))
			activityLogs.AssertExpectations(t)
		})
	}
}

func TestEventAuditorMalformedEnvelopeReturnsError(t *testing.T) {
	subscriber := newFakeSubscriber()
	mapper := NewEventSubjectMapper()
	activityLogs := new(service.MockActivityLogRepository)

	auditor := NewEventAuditor(subscriber, mapper, activityLogs)
	require.NoError(t, auditor.Start())

	// The error must propagate so the message is NAKed and redelivered
	err := subscriber.deliver(t, "posting.published", []byte("not json"))
	assert.Error(t, err)
	activityLogs.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestEventAuditorSubscribeFailure(t *testing.T) {
	subscriber := newFakeSubscriber()
	subscriber.err = errors.New("consumer already bound")
	mapper := NewEventSubjectMapper()

	auditor := NewEventAuditor(subscriber, mapper, new(service.MockActivityLogRepository))
	err := auditor.Start()
	assert.ErrorContains(t, err, "consumer already bound")
}
