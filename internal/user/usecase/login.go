package usecase

import (
	"context"
	"errors"

	"github.com/userhub/userhub/internal/result"
	"github.com/userhub/userhub/internal/user/domain"
)

// Login authenticates a credential pair and returns an opaque access token
// string. A wrong password fails with the same UserNotFound error as a
// nonexistent email, so the response never reveals which half of the pair
// was wrong.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) result.Result[string] {
	emailResult := domain.NewEmail(input.Email)
	if emailResult.IsFailure() {
		return result.Failure[string](emailResult.Err())
	}

	user, err := uc.repo.GetByEmail(ctx, emailResult.Value().Value())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return result.Failure[string](domain.ErrUserNotFound)
		}
		return result.Failure[string](result.FromGoError(err))
	}

	verified, err := uc.hasher.Verify(input.Password, user.PasswordHash())
	if err != nil {
		return result.Failure[string](result.FromGoError(err))
	}
	if !verified {
		return result.Failure[string](domain.ErrUserNotFound)
	}

	token, err := uc.tokens.Create(UserModel{
		ID:       user.ID(),
		UserName: user.UserName().Value(),
		Email:    user.Email().Value(),
	})
	if err != nil {
		return result.Failure[string](result.FromGoError(err))
	}

	return result.Success(token)
}
