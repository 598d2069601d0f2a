package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/result"
)

// Delete soft deletes the user with the given id. The row stays in the
// database flagged as deleted and disappears from every read path.
func (uc *UserUseCase) Delete(ctx context.Context, id uuid.UUID) result.Result[result.Void] {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return result.Failure[result.Void](result.FromGoError(err))
	}

	uow := uc.uowFactory.New()
	uow.RegisterRemoved(user)
	if err := uow.Save(ctx); err != nil {
		return result.Failure[result.Void](result.FromGoError(err))
	}

	uc.logger.Info("user deleted", slog.String("user_id", id.String()))
	return result.OK()
}
