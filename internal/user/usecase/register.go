package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/userhub/userhub/internal/requestctx"
	"github.com/userhub/userhub/internal/result"
	"github.com/userhub/userhub/internal/user/domain"
)

// Register creates a new user. The pipeline runs validation, a best-effort
// uniqueness pre-check, aggregate construction, then the unit-of-work save
// which persists the user and dispatches the UserRegistered event. The
// store's unique indexes remain the authoritative uniqueness check: a
// violation at commit time surfaces as the same conflict error as the
// pre-check.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) result.Result[UserModel] {
	// Email is validated before UserName; the first failure wins.
	emailResult := domain.NewEmail(input.Email)
	if emailResult.IsFailure() {
		return result.Failure[UserModel](emailResult.Err())
	}
	userNameResult := domain.NewUserName(input.UserName)
	if userNameResult.IsFailure() {
		return result.Failure[UserModel](userNameResult.Err())
	}

	email := emailResult.Value()
	userName := userNameResult.Value()

	existing, err := uc.repo.GetByEmailOrUserName(ctx, email.Value(), userName.Value())
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return result.Failure[UserModel](result.FromGoError(err))
	}
	if existing != nil {
		return result.Failure[UserModel](domain.ErrUserNameOrEmailAlreadyInUse)
	}

	passwordHash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return result.Failure[UserModel](result.FromGoError(err))
	}

	user := domain.NewUser(userName, email, input.FullName, passwordHash, requestctx.CorrelationID(ctx))

	// Audit fields of this save reflect the freshly registered user, not an
	// anonymous actor.
	ctx = requestctx.WithActingUser(ctx, user.UserName().Value())

	uow := uc.uowFactory.New()
	uow.RegisterNew(user)
	if err := uow.Save(ctx); err != nil {
		return result.Failure[UserModel](result.FromGoError(err))
	}

	uc.logger.Info("user registered",
		slog.String("user_id", user.ID().String()),
		slog.String("user_name", user.UserName().Value()),
		slog.String("correlation_id", user.CorrelationID().String()),
	)

	return result.Success(NewUserModel(user))
}
