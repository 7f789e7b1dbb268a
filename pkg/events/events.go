package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// EventType names a domain event.
type EventType string

// EventShiftCancelled is published when a shift is soft-deleted. It is the
// single event-publication point in the scheduling core; all other mutations
// are synchronous request/response only.
const EventShiftCancelled EventType = "shift.cancelled"

// Event is a published domain event with an arbitrary payload.
type Event struct {
	Type    EventType
	Payload any
}

// Handler handles a published event.
type Handler func(context.Context, Event) error

// Dispatcher allows event publication and subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event)
	Subscribe(eventType EventType, handler Handler)
}

// inMemoryDispatcher delivers events synchronously to in-process listeners.
type inMemoryDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]Handler
	logger    *zap.Logger
}

// NewInMemoryDispatcher creates a synchronous in-process dispatcher.
func NewInMemoryDispatcher(logger *zap.Logger) Dispatcher {
	return &inMemoryDispatcher{
		listeners: make(map[EventType][]Handler),
		logger:    logger,
	}
}

// Publish invokes every handler registered for the event's type. A failing
// handler is logged and does not stop delivery to the others.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) {
	d.mu.RLock()
	handlers := append([]Handler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			d.logger.Warn("Event handler failed",
				zap.String("event_type", string(event.Type)),
				zap.Error(err))
		}
	}
}

// Subscribe registers a handler for the given event type.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}
