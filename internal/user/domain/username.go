// Package domain holds the user aggregate, its value objects, domain
// events and the typed error catalog of the identity context.
package domain

import (
	"strings"

	"github.com/userhub/userhub/internal/result"
)

// UserName length bounds, checked against the exact input.
const (
	UserNameMinLength = 3
	UserNameMaxLength = 30
)

// UserName is an immutable user name value object compared by value.
// Instances only exist for valid input.
type UserName struct {
	value string
}

// NewUserName validates the raw input and wraps it. The input is never
// trimmed: surrounding whitespace counts toward the length checks.
func NewUserName(raw string) result.Result[UserName] {
	if strings.TrimSpace(raw) == "" {
		return result.Failure[UserName](ErrUserNameEmpty)
	}
	if len(raw) < UserNameMinLength {
		return result.Failure[UserName](ErrUserNameTooShort)
	}
	if len(raw) > UserNameMaxLength {
		return result.Failure[UserName](ErrUserNameTooLong)
	}
	return result.Success(UserName{value: raw})
}

// Value returns the wrapped user name.
func (n UserName) Value() string {
	return n.value
}
