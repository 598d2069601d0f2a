// Package result provides the functional success/failure types that every
// use case operation returns through. Domain and application failures are
// values, never panics; panics are reserved for contract violations such as
// reading the value of a failed result.
package result

import "errors"

// ErrorType classifies an Error so transport layers can map it to a status
// code without inspecting error codes.
type ErrorType int

const (
	TypeNone ErrorType = iota
	TypeFailure
	TypeUnexpected
	TypeValidation
	TypeConflict
	TypeNotFound
	TypeUnauthorized
	TypeForbidden
	TypeGone
	TypeNoContent
	TypeBadRequest
	TypeProblem
)

// String returns the human-readable name of the error type.
func (t ErrorType) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeFailure:
		return "failure"
	case TypeUnexpected:
		return "unexpected"
	case TypeValidation:
		return "validation"
	case TypeConflict:
		return "conflict"
	case TypeNotFound:
		return "not_found"
	case TypeUnauthorized:
		return "unauthorized"
	case TypeForbidden:
		return "forbidden"
	case TypeGone:
		return "gone"
	case TypeNoContent:
		return "no_content"
	case TypeBadRequest:
		return "bad_request"
	case TypeProblem:
		return "problem"
	default:
		return "unknown"
	}
}

// Error is a typed domain error compared by value. The zero value is None,
// the unique representation of "no error".
type Error struct {
	Code    string
	Message string
	Type    ErrorType
}

// None is the absence of an error. A success result carries exactly None.
var None = Error{}

// Predefined errors used by the result constructors.
var (
	// ErrNullValue tags a result created from a nil value.
	ErrNullValue = NewFailure("Error.NullValue", "the specified result value is nil")

	// ErrConditionNotMet tags a result created from a false condition.
	ErrConditionNotMet = NewFailure("Error.ConditionNotMet", "the specified condition was not met")
)

// Error implements the error interface so typed errors can travel through
// layers that speak plain errors (repositories, collaborator ports) without
// losing code, message or type.
func (e Error) Error() string {
	if e == None {
		return ""
	}
	return e.Code + ": " + e.Message
}

// IsNone reports whether e represents the absence of an error.
func (e Error) IsNone() bool {
	return e == None
}

// NewFailure builds a plain Error. The generic Failure wraps such errors in
// a failed result, so the two names stay distinct.
func NewFailure(code, message string) Error {
	return Error{Code: code, Message: message, Type: TypeFailure}
}

func Unexpected(code, message string) Error {
	return Error{Code: code, Message: message, Type: TypeUnexpected}
}

func Validation(code, message string) Error {
	return Error{Code: code, Message: message, Type: TypeValidation}
}

func Conflict(code, message string) Error {
	return Error{Code: code, Message: message, Type: TypeConflict}
}

func NotFound(code, message string) Error {
	return Error{Code: code, Message: message, Type: TypeNotFound}
}

func Unauthorized(code, message string) Error {
	return Error{Code: code, Message: message, Type: TypeUnauthorized}
}

func Forbidden(code, message string) Error {
	return Error{Code: code, Message: message, Type: TypeForbidden}
}

func Gone(code, message string) Error {
	return Error{Code: code, Message: message, Type: TypeGone}
}

func NoContent(code, message string) Error {
	return Error{Code: code, Message: message, Type: TypeNoContent}
}

func BadRequest(code, message string) Error {
	return Error{Code: code, Message: message, Type: TypeBadRequest}
}

// FromGoError converts a plain error into a typed Error. A typed Error
// anywhere in the chain is returned verbatim so failures survive repository
// and collaborator boundaries unchanged; anything else is an infrastructure
// fault and is tagged Unexpected.
func FromGoError(err error) Error {
	if err == nil {
		return None
	}
	var typed Error
	if errors.As(err, &typed) {
		return typed
	}
	return Unexpected("Error.Unexpected", err.Error())
}
