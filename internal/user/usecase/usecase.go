package usecase

import (
	"log/slog"

	"github.com/userhub/userhub/internal/unitofwork"
)

// UserUseCase orchestrates the user commands and queries through the
// repository, the unit of work and the collaborator ports.
type UserUseCase struct {
	repo       UserRepository
	uowFactory unitofwork.Factory
	hasher     PasswordHasher
	tokens     TokenProvider
	logger     *slog.Logger
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	repo UserRepository,
	uowFactory unitofwork.Factory,
	hasher PasswordHasher,
	tokens TokenProvider,
	logger *slog.Logger,
) *UserUseCase {
	return &UserUseCase{
		repo:       repo,
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger,
	}
}
