package kernel

import "github.com/google/uuid"

// AggregateRoot is an entity that owns a consistency boundary and records
// the domain events raised while mutating it. The pending list belongs to
// the aggregate until PullEvents transfers ownership to the dispatch
// pipeline, exactly once per save.
type AggregateRoot struct {
	Entity
	pendingEvents []DomainEvent
}

// NewAggregateRoot creates an aggregate root with the given identity.
func NewAggregateRoot(id uuid.UUID) AggregateRoot {
	return AggregateRoot{Entity: NewEntity(id)}
}

// RestoreAggregateRoot rebuilds an aggregate root from persisted state with
// an empty pending-event list.
func RestoreAggregateRoot(entity Entity) AggregateRoot {
	return AggregateRoot{Entity: entity}
}

// Raise appends an event to the pending list in insertion order.
func (a *AggregateRoot) Raise(event DomainEvent) {
	a.pendingEvents = append(a.pendingEvents, event)
}

// PullEvents returns the pending events and clears the list. The caller
// takes ownership; a second pull before new events are raised returns nil.
func (a *AggregateRoot) PullEvents() []DomainEvent {
	events := a.pendingEvents
	a.pendingEvents = nil
	return events
}

// PendingEventCount reports how many events are waiting for dispatch.
func (a *AggregateRoot) PendingEventCount() int {
	return len(a.pendingEvents)
}

// Aggregate is what the unit of work tracks: identity, audit stamping,
// soft deletion and pending events.
type Aggregate interface {
	ID() uuid.UUID
	PullEvents() []DomainEvent
	Auditable
	SoftDeletable
}
