package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/user/domain"
)

// UserModel is the external projection of a user. Value objects are
// flattened to plain strings; internal domain types never cross the use
// case boundary.
type UserModel struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedBy string    `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedBy string    `json:"updated_by"`
	UpdatedOn time.Time `json:"updated_on"`
	IsDeleted bool      `json:"is_deleted"`
}

// NewUserModel projects a user aggregate into its external shape.
func NewUserModel(user *domain.User) UserModel {
	return UserModel{
		ID:        user.ID(),
		UserName:  user.UserName().Value(),
		Email:     user.Email().Value(),
		FullName:  user.FullName(),
		CreatedBy: user.CreatedBy(),
		CreatedOn: user.CreatedOn(),
		UpdatedBy: user.UpdatedBy(),
		UpdatedOn: user.UpdatedOn(),
		IsDeleted: user.IsDeleted(),
	}
}

// RegisterInput contains the input data for user registration.
type RegisterInput struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// LoginInput contains the credential pair for authentication.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// QueryInput filters a user lookup by at most one of ID, UserName or
// Email, with precedence in that order. A zero QueryInput lists all
// non-deleted users.
type QueryInput struct {
	ID       *uuid.UUID
	UserName string
	Email    string
}
