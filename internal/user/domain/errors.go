package domain

import "github.com/userhub/userhub/internal/result"

// Catalog of typed user errors. Every value is comparable so callers can
// match with errors.Is or plain equality; codes are stable identifiers
// exposed to API clients.
var (
	ErrUserNameEmpty    = result.Validation("UserName.Empty", "user name is empty")
	ErrUserNameTooShort = result.Validation("UserName.TooShort", "user name is too short")
	ErrUserNameTooLong  = result.Validation("UserName.TooLong", "user name is too long")

	ErrEmailEmpty         = result.Validation("Email.Empty", "email is empty")
	ErrEmailInvalidFormat = result.Validation("Email.InvalidFormat", "email format is invalid")
	ErrEmailTooLong       = result.Validation("Email.TooLong", "email is too long")

	ErrUserNameOrEmailAlreadyInUse = result.Conflict("User.UserNameOrEmailAlreadyInUse", "the user name or email is already in use")
	ErrUserNotFound                = result.NotFound("User.UserNotFound", "the user with the specified credentials was not found")
)
