package infrastructure

import (
	"context"
	"errors"
	"testing"

	"viralcast/events"
	"viralcast/models"

	"github.com/stretchr/testify/assert"
)

func TestPublishInvokesLocalHandlersBeforeTransport(t *testing.T) {
	// An unconnected client makes the transport step fail, which must not
	// prevent local handlers from running first.
	publisher := NewNATSEventPublisher(NewNATSClient("nats://localhost:4222"), NewEventSubjectMapper())

	var seen []events.EventType
	publisher.RegisterLocalHandler(events.EventTypeAccountDegraded, func(_ context.Context, event events.Event) error {
		seen = append(seen, event.Type())
		return errors.New("handler failure")
	})
	publisher.RegisterLocalHandler(events.EventTypeAccountDegraded, func(_ context.Context, event events.Event) error {
		seen = append(seen, event.Type())
		return nil
	})

	err := publisher.Publish(events.AccountDegradedEvent{
		AccountID:  42,
		Platform:   models.PlatformTikTok,
		ErrorCount: 5,
		LastError:  "login challenge",
	})

	// Both handlers ran despite the first one failing
	assert.Equal(t, []events.EventType{
		events.EventTypeAccountDegraded,
		events.EventTypeAccountDegraded,
	}, seen)
	assert.ErrorContains(t, err, "not connected")
}

func TestPublishSkipsHandlersForOtherEventTypes(t *testing.T) {
	publisher := NewNATSEventPublisher(NewNATSClient("nats://localhost:4222"), NewEventSubjectMapper())

	called := false
	publisher.RegisterLocalHandler(events.EventTypeAccountDegraded, func(_ context.Context, _ events.Event) error {
		called = true
		return nil
	})

	_ = publisher.Publish(events.PostPublishedEvent{
		ContentID: "content-123",
		Platform:  models.PlatformTikTok,
		AccountID: 1,
	})

	assert.False(t, called)
}
