// Package kernel holds the building blocks shared by every aggregate:
// entity identity, audit fields, soft deletion, pending domain events and
// the in-process event dispatcher.
package kernel

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base of every persisted domain object. Identity is assigned
// once at construction; audit fields and the deletion flag are only written
// by the unit of work during a save cycle.
type Entity struct {
	id        uuid.UUID
	createdOn time.Time
	createdBy string
	updatedOn time.Time
	updatedBy string
	isDeleted bool
}

// NewEntity creates an entity with the given identity.
func NewEntity(id uuid.UUID) Entity {
	return Entity{id: id}
}

// RestoreEntity rebuilds an entity from persisted state. Used by
// repositories when scanning rows; never by domain code.
func RestoreEntity(id uuid.UUID, createdOn time.Time, createdBy string, updatedOn time.Time, updatedBy string, isDeleted bool) Entity {
	return Entity{
		id:        id,
		createdOn: createdOn,
		createdBy: createdBy,
		updatedOn: updatedOn,
		updatedBy: updatedBy,
		isDeleted: isDeleted,
	}
}

// ID returns the immutable identity of the entity.
func (e *Entity) ID() uuid.UUID { return e.id }

func (e *Entity) CreatedOn() time.Time { return e.createdOn }
func (e *Entity) CreatedBy() string    { return e.createdBy }
func (e *Entity) UpdatedOn() time.Time { return e.updatedOn }
func (e *Entity) UpdatedBy() string    { return e.updatedBy }
func (e *Entity) IsDeleted() bool      { return e.isDeleted }

// StampCreated records who created the entity and when.
func (e *Entity) StampCreated(on time.Time, by string) {
	e.createdOn = on
	e.createdBy = by
}

// StampUpdated records who last touched the entity and when.
func (e *Entity) StampUpdated(on time.Time, by string) {
	e.updatedOn = on
	e.updatedBy = by
}

// SetDeleted flips the soft-deletion flag. Rows are never removed
// physically; queries filter on this flag.
func (e *Entity) SetDeleted(deleted bool) {
	e.isDeleted = deleted
}

// Auditable is the capability the unit of work looks for when stamping
// audit fields before a save.
type Auditable interface {
	StampCreated(on time.Time, by string)
	StampUpdated(on time.Time, by string)
	CreatedOn() time.Time
}

// SoftDeletable is the capability the unit of work uses to translate
// physical deletes into IsDeleted updates.
type SoftDeletable interface {
	SetDeleted(deleted bool)
	IsDeleted() bool
}
