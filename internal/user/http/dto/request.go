// Package dto provides data transfer objects for the user HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"
)

// RegisterRequest contains the parameters for user registration. Length
// and format rules live in the domain; the request only checks presence.
type RegisterRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// Validate checks if the register request is valid.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserName, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.FullName, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginRequest contains the credential pair for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}
