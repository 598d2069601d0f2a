package domain

import (
	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/kernel"
)

// User is the aggregate root of the identity context. UserName and Email
// are unique across all users; uniqueness is pre-checked by the register
// use case and enforced by the store's unique indexes at commit time.
// Users are never removed physically: deletion sets IsDeleted and every
// query filters on it.
type User struct {
	kernel.AggregateRoot

	userName      UserName
	email         Email
	fullName      string
	passwordHash  string
	correlationID uuid.UUID
}

// NewUser creates a user with a fresh identity and raises the
// UserRegistered domain event carrying the request correlation id.
func NewUser(userName UserName, email Email, fullName, passwordHash string, correlationID uuid.UUID) *User {
	user := &User{
		AggregateRoot: kernel.NewAggregateRoot(uuid.Must(uuid.NewV7())),
		userName:      userName,
		email:         email,
		fullName:      fullName,
		passwordHash:  passwordHash,
		correlationID: correlationID,
	}

	user.Raise(UserRegistered{
		EventBase: kernel.NewEventBase(correlationID),
		UserID:    user.ID(),
		UserName:  userName.Value(),
		FullName:  fullName,
		Email:     email.Value(),
	})

	return user
}

// RestoreUser rebuilds a user from persisted state without raising events.
func RestoreUser(entity kernel.Entity, userName UserName, email Email, fullName, passwordHash string, correlationID uuid.UUID) *User {
	return &User{
		AggregateRoot: kernel.RestoreAggregateRoot(entity),
		userName:      userName,
		email:         email,
		fullName:      fullName,
		passwordHash:  passwordHash,
		correlationID: correlationID,
	}
}

func (u *User) UserName() UserName       { return u.userName }
func (u *User) Email() Email             { return u.email }
func (u *User) FullName() string         { return u.fullName }
func (u *User) PasswordHash() string     { return u.passwordHash }
func (u *User) CorrelationID() uuid.UUID { return u.correlationID }
