package usecase

import (
	"context"
	"errors"

	"github.com/userhub/userhub/internal/result"
	"github.com/userhub/userhub/internal/user/domain"
)

// Query looks users up by id, user name or email, in that order of
// precedence. Filters that match nothing yield an empty slice, not an
// error. Without any filter every active user is returned.
func (uc *UserUseCase) Query(ctx context.Context, input QueryInput) result.Result[[]UserModel] {
	switch {
	case input.ID != nil:
		user, err := uc.repo.GetByID(ctx, *input.ID)
		return singleUserResult(user, err)
	case input.UserName != "":
		userNameResult := domain.NewUserName(input.UserName)
		if userNameResult.IsFailure() {
			return result.Failure[[]UserModel](userNameResult.Err())
		}
		user, err := uc.repo.GetByUserName(ctx, userNameResult.Value().Value())
		return singleUserResult(user, err)
	case input.Email != "":
		emailResult := domain.NewEmail(input.Email)
		if emailResult.IsFailure() {
			return result.Failure[[]UserModel](emailResult.Err())
		}
		user, err := uc.repo.GetByEmail(ctx, emailResult.Value().Value())
		return singleUserResult(user, err)
	}

	users, err := uc.repo.List(ctx)
	if err != nil {
		return result.Failure[[]UserModel](result.FromGoError(err))
	}
	models := make([]UserModel, 0, len(users))
	for _, user := range users {
		models = append(models, NewUserModel(user))
	}
	return result.Success(models)
}

func singleUserResult(user *domain.User, err error) result.Result[[]UserModel] {
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return result.Success([]UserModel{})
		}
		return result.Failure[[]UserModel](result.FromGoError(err))
	}
	return result.Success([]UserModel{NewUserModel(user)})
}
