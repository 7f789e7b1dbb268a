package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var received []Event
	dispatcher.Subscribe(EventShiftCancelled, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	dispatcher.Publish(context.Background(), Event{Type: EventShiftCancelled, Payload: "shift-1"})

	assert.Len(t, received, 1)
	assert.Equal(t, "shift-1", received[0].Payload)
}

func TestDispatcher_NoSubscribersIsFine(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())
	dispatcher.Publish(context.Background(), Event{Type: EventShiftCancelled})
}

func TestDispatcher_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	called := false
	dispatcher.Subscribe(EventShiftCancelled, func(ctx context.Context, e Event) error {
		return errors.New("handler broke")
	})
	dispatcher.Subscribe(EventShiftCancelled, func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	dispatcher.Publish(context.Background(), Event{Type: EventShiftCancelled})

	assert.True(t, called)
}

func TestDispatcher_OnlyMatchingTypeDelivered(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	called := false
	dispatcher.Subscribe("other.event", func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	dispatcher.Publish(context.Background(), Event{Type: EventShiftCancelled})

	assert.False(t, called)
}
