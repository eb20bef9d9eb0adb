package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ErrStaleSelection: the chosen slot was already blocked in the availability
// read taken just before commit. The store was never asked.
var ErrStaleSelection = errors.New("slot no longer available")

// ErrSlotConflict: the store rejected the insert on the booking uniqueness
// constraint. This is the expected concurrent-booking outcome, not a failure.
var ErrSlotConflict = errors.New("slot already booked")

// ValidationError is a local input rejection; it never reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InfraError carries an unclassified store or network failure. The cause is
// for the log only; user-facing layers surface Message and nothing else.
type InfraError struct {
	Message string
	Cause   error
}

func (e *InfraError) Error() string {
	return e.Message
}

func (e *InfraError) Unwrap() error {
	return e.Cause
}

func NewInfraError(message string, cause error) *InfraError {
	return &InfraError{Message: message, Cause: cause}
}

func IsInfraError(err error) bool {
	var ie *InfraError
	return errors.As(err, &ie)
}
