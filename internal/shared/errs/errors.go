package errs

import "fmt"

// ValidationError covers malformed input: end before start, intervals
// outside the venue window, bookings in the past. Callers can fix the
// request and retry as-is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation creates a new ValidationError
func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError means the slot is already taken by a booking or an active
// hold. Distinct from ValidationError so callers can offer another time.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// Conflict creates a new ConflictError
func Conflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// StateError means the requested transition is illegal for the entity's
// current state (confirming a cancelled booking, cancelling inside the
// cancellation window).
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }

// State creates a new StateError
func State(format string, args ...interface{}) *StateError {
	return &StateError{Msg: fmt.Sprintf(format, args...)}
}

// ExpiredError means a hold or cart expired before payment completed.
// Detection already performed the cleanup; the caller only gets told.
type ExpiredError struct {
	Msg string
}

func (e *ExpiredError) Error() string { return e.Msg }

// Expired creates a new ExpiredError
func Expired(format string, args ...interface{}) *ExpiredError {
	return &ExpiredError{Msg: fmt.Sprintf(format, args...)}
}

// ProviderError wraps a payment gateway failure.
type ProviderError struct {
	Msg string
	Err error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Provider creates a new ProviderError wrapping err
func Provider(err error, format string, args ...interface{}) *ProviderError {
	return &ProviderError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// NotFoundError means the entity does not exist or is not visible to the
// requesting user.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NotFound creates a new NotFoundError
func NotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}
