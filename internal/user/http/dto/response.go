package dto

import (
	"time"

	"github.com/userhub/userhub/internal/user/usecase"
)

// UserResponse represents a user in API responses. The password hash never
// leaves the use case layer.
type UserResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// MapUserToResponse converts a use case model to its API shape.
func MapUserToResponse(model usecase.UserModel) UserResponse {
	return UserResponse{
		ID:        model.ID.String(),
		UserName:  model.UserName,
		Email:     model.Email,
		FullName:  model.FullName,
		CreatedOn: model.CreatedOn,
		UpdatedOn: model.UpdatedOn,
	}
}

// ListUsersResponse represents a list of users in API responses.
type ListUsersResponse struct {
	Data []UserResponse `json:"data"`
}

// MapUsersToListResponse converts use case models to a list response.
func MapUsersToListResponse(models []usecase.UserModel) ListUsersResponse {
	data := make([]UserResponse, 0, len(models))
	for _, model := range models {
		data = append(data, MapUserToResponse(model))
	}
	return ListUsersResponse{Data: data}
}

// LoginResponse carries the minted access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
