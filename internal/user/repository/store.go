package repository

import (
	"context"
	"fmt"

	"github.com/userhub/userhub/internal/kernel"
	"github.com/userhub/userhub/internal/user/domain"
)

// UserStore adapts the user repository to the unit-of-work store port.
// Only user aggregates pass through this context, so any other aggregate
// type is a programming error.
type UserStore struct {
	repo *PostgreSQLUserRepository
}

// NewUserStore creates a new UserStore.
func NewUserStore(repo *PostgreSQLUserRepository) *UserStore {
	return &UserStore{repo: repo}
}

func (s *UserStore) Insert(ctx context.Context, aggregate kernel.Aggregate) error {
	user, err := asUser(aggregate)
	if err != nil {
		return err
	}
	return s.repo.Insert(ctx, user)
}

func (s *UserStore) Update(ctx context.Context, aggregate kernel.Aggregate) error {
	user, err := asUser(aggregate)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, user)
}

func asUser(aggregate kernel.Aggregate) (*domain.User, error) {
	user, ok := aggregate.(*domain.User)
	if !ok {
		return nil, fmt.Errorf("unsupported aggregate type %T", aggregate)
	}
	return user, nil
}
