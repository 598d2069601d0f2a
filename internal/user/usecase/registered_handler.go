package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/kernel"
	"github.com/userhub/userhub/internal/user/domain"
)

// UserRegisteredIntegrationEvent is the contract published to the message
// broker when a user registers. It deliberately carries only the user id;
// consumers fetch whatever else they need through the query API.
type UserRegisteredIntegrationEvent struct {
	UserID        uuid.UUID `json:"user_id"`
	CorrelationID uuid.UUID `json:"correlation_id"`
}

// UserRegisteredHandler reacts to the UserRegistered domain event after a
// successful commit: it sends the welcome email and publishes the
// integration event. The email is best effort and never fails the
// handler; a publish failure does.
type UserRegisteredHandler struct {
	email     EmailService
	publisher IntegrationEventPublisher
	logger    *slog.Logger
}

// NewUserRegisteredHandler creates a new UserRegisteredHandler.
func NewUserRegisteredHandler(
	email EmailService,
	publisher IntegrationEventPublisher,
	logger *slog.Logger,
) *UserRegisteredHandler {
	return &UserRegisteredHandler{
		email:     email,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle implements kernel.EventHandler for the UserRegistered event.
func (h *UserRegisteredHandler) Handle(ctx context.Context, event kernel.DomainEvent) error {
	registered, ok := event.(domain.UserRegistered)
	if !ok {
		h.logger.Warn("unexpected event type",
			slog.String("event_name", event.EventName()),
		)
		return nil
	}

	h.logger.Info("user registered event received",
		slog.String("user_id", registered.UserID.String()),
		slog.String("correlation_id", registered.CorrelationID().String()),
	)

	if err := h.email.SendWelcome(ctx, registered.Email, registered.FullName); err != nil {
		h.logger.Error("welcome email failed",
			slog.String("user_id", registered.UserID.String()),
			slog.String("error", err.Error()),
		)
	}

	integrationEvent := UserRegisteredIntegrationEvent{
		UserID:        registered.UserID,
		CorrelationID: registered.CorrelationID(),
	}
	return h.publisher.Publish(ctx, integrationEvent, registered.CorrelationID())
}
