package result

// Void is the payload of results that carry no value.
type Void = struct{}

// Result holds either a value or an Error, never both. Construct through
// Success, Failure and the Create helpers; the zero value is a success
// carrying the zero value of T.
type Result[T any] struct {
	value T
	err   Error
}

// Success wraps a value in a successful result.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps an Error in a failed result. Passing None is a programming
// error and panics: a failure must carry a real error.
func Failure[T any](err Error) Result[T] {
	if err == None {
		panic("result: failure requires a non-none error")
	}
	return Result[T]{err: err}
}

// OK returns a successful void result.
func OK() Result[Void] {
	return Success(Void{})
}

// Fail returns a failed void result.
func Fail(err Error) Result[Void] {
	return Failure[Void](err)
}

// Create returns OK when the condition holds, otherwise a failure tagged
// ErrConditionNotMet.
func Create(condition bool) Result[Void] {
	if condition {
		return OK()
	}
	return Fail(ErrConditionNotMet)
}

// FromPtr returns a success carrying *value when value is non-nil, otherwise
// a failure tagged ErrNullValue.
func FromPtr[T any](value *T) Result[T] {
	if value == nil {
		return Failure[T](ErrNullValue)
	}
	return Success(*value)
}

// IsSuccess reports whether the result carries a value.
func (r Result[T]) IsSuccess() bool {
	return r.err == None
}

// IsFailure reports whether the result carries an error.
func (r Result[T]) IsFailure() bool {
	return r.err != None
}

// Err returns the carried error, or None on success.
func (r Result[T]) Err() Error {
	return r.err
}

// Value returns the carried value. Calling Value on a failed result is a
// programming error and panics.
func (r Result[T]) Value() T {
	if r.IsFailure() {
		panic("result: value of a failed result cannot be accessed")
	}
	return r.value
}
