package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/devconnect-service/internal/events"
)

func TestDispatcherPublishSubscribe(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventPostLiked, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:      "e1",
		Type:    events.EventPostLiked,
		ActorID: "u2",
	})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "u2", received[0].ActorID)

	// events of other types are not delivered
	err = dispatcher.Publish(context.Background(), events.Event{Type: events.EventPostCreated})
	require.NoError(t, err)
	assert.Len(t, received, 1)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(events.EventCommentAdded, func(context.Context, events.Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(events.EventCommentAdded, func(context.Context, events.Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventCommentAdded})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
