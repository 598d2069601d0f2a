package kernel

import (
	"context"
	"log/slog"
)

// EventHandler reacts to a dispatched domain event. Handlers run in-process,
// after the commit that persisted the change the event describes.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
}

// EventHandlerFunc adapts a function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event DomainEvent) error

// Handle calls the wrapped function.
func (f EventHandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return f(ctx, event)
}

// Dispatcher routes domain events to handlers through an explicit
// name-based registry. The event set is closed: events without a registered
// handler are logged and dropped, never discovered by reflection.
type Dispatcher struct {
	handlers map[string][]EventHandler
	logger   *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]EventHandler),
		logger:   logger,
	}
}

// Register binds a handler to an event name. Multiple handlers for the same
// name run in registration order.
func (d *Dispatcher) Register(eventName string, handler EventHandler) {
	d.handlers[eventName] = append(d.handlers[eventName], handler)
}

// Dispatch delivers the event to every registered handler in order. The
// first handler error stops dispatch for this event and is returned to the
// caller.
func (d *Dispatcher) Dispatch(ctx context.Context, event DomainEvent) error {
	handlers, ok := d.handlers[event.EventName()]
	if !ok {
		if d.logger != nil {
			d.logger.Warn("no handler registered for domain event",
				slog.String("event_name", event.EventName()),
				slog.String("event_id", event.EventID().String()),
			)
		}
		return nil
	}

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			return err
		}
	}

	return nil
}
