package domain

import (
	"strings"

	"github.com/userhub/userhub/internal/result"
)

// EmailMaxLength is the longest accepted email address.
const EmailMaxLength = 50

// Email is an immutable email address value object compared by value.
// Instances only exist for valid input.
type Email struct {
	value string
}

// NewEmail validates the raw input and wraps it. The format check is
// structural, exactly one "@" separating two non-empty-capable halves, not
// full RFC validation.
func NewEmail(raw string) result.Result[Email] {
	if strings.TrimSpace(raw) == "" {
		return result.Failure[Email](ErrEmailEmpty)
	}
	if len(strings.Split(raw, "@")) != 2 {
		return result.Failure[Email](ErrEmailInvalidFormat)
	}
	if len(raw) > EmailMaxLength {
		return result.Failure[Email](ErrEmailTooLong)
	}
	return result.Success(Email{value: raw})
}

// Value returns the wrapped email address.
func (e Email) Value() string {
	return e.value
}
