// Package requestctx carries per-request state (correlation id, acting user)
// through context.Context values. State is scoped to one inbound call and
// threaded explicitly through the call chain; nothing here is process-wide.
package requestctx

import (
	"context"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/result"
)

type correlationIDKey struct{}

type actingUserKey struct{}

// ErrNoActingUser is returned when audit stamping runs without an
// authenticated or freshly registered user in scope.
var ErrNoActingUser = result.Unauthorized("RequestContext.NoActingUser", "no acting user in request scope")

// WithCorrelationID returns a context carrying the correlation id of the
// inbound request.
func WithCorrelationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation id for this request, generating one
// when the context carries none so downstream events always correlate.
func CorrelationID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(correlationIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Must(uuid.NewV7())
}

// WithActingUser returns a context carrying the username that audit fields
// are stamped with.
func WithActingUser(ctx context.Context, userName string) context.Context {
	return context.WithValue(ctx, actingUserKey{}, userName)
}

// ActingUser returns the acting username, or ErrNoActingUser when the
// request is unauthenticated and no user was set during the operation.
func ActingUser(ctx context.Context) (string, error) {
	if name, ok := ctx.Value(actingUserKey{}).(string); ok && name != "" {
		return name, nil
	}
	return "", ErrNoActingUser
}
