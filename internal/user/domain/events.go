package domain

import (
	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/kernel"
)

// UserRegisteredEventName is the dispatcher registry key for UserRegistered.
const UserRegisteredEventName = "user.registered"

// UserRegistered is raised when a new user aggregate is created. It is
// dispatched after the registration commit and bridged to the
// UserRegisteredIntegrationEvent on the broker.
type UserRegistered struct {
	kernel.EventBase

	UserID   uuid.UUID
	UserName string
	FullName string
	Email    string
}

// EventName implements kernel.DomainEvent.
func (UserRegistered) EventName() string {
	return UserRegisteredEventName
}
