package custom_error

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("binding session not found")
	ErrConfirmInFlight = errors.New("confirmation already in progress")
	ErrInvalidState    = errors.New("operation not allowed in current binding state")
	ErrNothingToBind   = errors.New("all assets have been bound, no remaining quantity")
)

// ValidationError reports operator input that cannot be submitted. No request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DecodeError marks a tag code that cannot be verified.
type DecodeError struct {
	Code string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode tag code %q: %v", e.Code, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// BackendError wraps any failed call to the REST backend, transport or application level.
type BackendError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("backend %s failed with status %d: %s", e.Op, e.Status, msg)
	}
	return fmt.Sprintf("backend %s failed: %s", e.Op, msg)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
