// Package usecase implements the user commands and queries: registration,
// login, lookup and soft deletion, plus the bridge that turns the
// UserRegistered domain event into a published integration event.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/result"
	"github.com/userhub/userhub/internal/user/domain"
)

// UseCase defines the user operations exposed to the transport layer.
// Every operation returns a Result; failures are typed values carried
// unchanged from the layer that produced them.
type UseCase interface {
	Register(ctx context.Context, input RegisterInput) result.Result[UserModel]
	Login(ctx context.Context, input LoginInput) result.Result[string]
	Query(ctx context.Context, input QueryInput) result.Result[[]UserModel]
	Delete(ctx context.Context, id uuid.UUID) result.Result[result.Void]
}

// UserRepository defines the read side used by the handlers. Writes go
// through the unit of work.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	GetByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// TokenProvider mints an access token from a minimal user projection.
type TokenProvider interface {
	Create(user UserModel) (string, error)
}

// EmailService sends the welcome notification after a registration.
type EmailService interface {
	SendWelcome(ctx context.Context, email, fullName string) error
}

// IntegrationEventPublisher publishes integration events to the message
// broker, tagging the outbound message with the correlation id.
type IntegrationEventPublisher interface {
	Publish(ctx context.Context, event any, correlationID uuid.UUID) error
}
