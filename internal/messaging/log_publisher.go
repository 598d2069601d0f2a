package messaging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogPublisher logs integration events instead of publishing them. Used in
// development and when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event and reports success.
func (p *LogPublisher) Publish(ctx context.Context, event any, correlationID uuid.UUID) error {
	p.logger.Info("integration event suppressed, no broker configured",
		slog.Any("event", event),
		slog.String("correlation_id", correlationID.String()),
	)
	return nil
}
