package kernel

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is an in-process notification of a state change. Events are
// owned by the aggregate that raised them until the unit of work pulls them
// during a save cycle; they are dispatched only after a successful commit.
type DomainEvent interface {
	// EventID identifies this occurrence of the event.
	EventID() uuid.UUID
	// EventName is the registry key the dispatcher routes on.
	EventName() string
	// OccurredOn is the UTC time the event was raised.
	OccurredOn() time.Time
	// CorrelationID ties the event back to the inbound request.
	CorrelationID() uuid.UUID
}

// EventBase carries the fields every domain event shares. Embed it and
// implement EventName on the concrete event.
type EventBase struct {
	ID          uuid.UUID
	Timestamp   time.Time
	Correlation uuid.UUID
}

// NewEventBase stamps a fresh event id and UTC timestamp.
func NewEventBase(correlationID uuid.UUID) EventBase {
	return EventBase{
		ID:          uuid.Must(uuid.NewV7()),
		Timestamp:   time.Now().UTC(),
		Correlation: correlationID,
	}
}

func (b EventBase) EventID() uuid.UUID       { return b.ID }
func (b EventBase) OccurredOn() time.Time    { return b.Timestamp }
func (b EventBase) CorrelationID() uuid.UUID { return b.Correlation }
