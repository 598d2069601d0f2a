package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/metrics"
	"github.com/userhub/userhub/internal/result"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
// Result failures count as errors even though they are returned as values.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) Register(ctx context.Context, input RegisterInput) result.Result[UserModel] {
	start := time.Now()
	r := u.next.Register(ctx, input)
	u.record(ctx, "register", start, r.IsSuccess())
	return r
}

func (u *userUseCaseWithMetrics) Login(ctx context.Context, input LoginInput) result.Result[string] {
	start := time.Now()
	r := u.next.Login(ctx, input)
	u.record(ctx, "login", start, r.IsSuccess())
	return r
}

func (u *userUseCaseWithMetrics) Query(ctx context.Context, input QueryInput) result.Result[[]UserModel] {
	start := time.Now()
	r := u.next.Query(ctx, input)
	u.record(ctx, "query", start, r.IsSuccess())
	return r
}

func (u *userUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) result.Result[result.Void] {
	start := time.Now()
	r := u.next.Delete(ctx, id)
	u.record(ctx, "delete", start, r.IsSuccess())
	return r
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}
