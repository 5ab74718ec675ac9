package core

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateFiber is matched by *DuplicateFiberError.
	ErrDuplicateFiber = errors.New("fiber has already been defined")
	// ErrInvalidContextType is matched by *InvalidContextTypeError.
	ErrInvalidContextType = errors.New("context data must be a map with string keys")
	// ErrImpulseCancelled is matched by *CancelledError.
	ErrImpulseCancelled = errors.New("impulse has been cancelled")
	// ErrFiberNotFound is matched by *FiberNotFoundError.
	ErrFiberNotFound = errors.New("fiber not found")
	// ErrImpulseNotFound is matched by *ImpulseNotFoundError.
	ErrImpulseNotFound = errors.New("impulse not found")
	// ErrActionPanic is matched by *PanicError.
	ErrActionPanic = errors.New("action panicked")
)

// DuplicateFiberError is returned when a fiber name is registered twice.
type DuplicateFiberError struct {
	Name string
}

func (e *DuplicateFiberError) Error() string {
	return fmt.Sprintf("%s fibre has already been defined", e.Name)
}

// Is reports whether target is ErrDuplicateFiber.
func (e *DuplicateFiberError) Is(target error) bool { return target == ErrDuplicateFiber }

// InvalidContextTypeError is returned when base context data is not a map
// keyed by strings.
type InvalidContextTypeError struct {
	Type string
}

func (e *InvalidContextTypeError) Error() string {
	return fmt.Sprintf("context data must be a map with string keys, got %s", e.Type)
}

// Is reports whether target is ErrInvalidContextType.
func (e *InvalidContextTypeError) Is(target error) bool { return target == ErrInvalidContextType }

// CancelledError is the failure of an impulse whose cancellation slot was
// set. Data holds the normalized value carried when the impulse stopped.
// Cause is set when the stop was triggered by the caller's context.
type CancelledError struct {
	Message string
	Data    any
	Cause   error
}

// NewCancelledError builds the failure for a cancelled impulse of fiber.
func NewCancelledError(fiber string, data any, cause error) *CancelledError {
	return &CancelledError{
		Message: fmt.Sprintf("%s impulse has been cancelled", fiber),
		Data:    Normalize(data),
		Cause:   cause,
	}
}

func (e *CancelledError) Error() string { return e.Message }

// Is reports whether target is ErrImpulseCancelled.
func (e *CancelledError) Is(target error) bool { return target == ErrImpulseCancelled }

// Unwrap returns the context error that triggered the cancellation, if any.
func (e *CancelledError) Unwrap() error { return e.Cause }

// FiberNotFoundError is returned when invoking an unregistered fiber.
type FiberNotFoundError struct {
	Name string
}

func (e *FiberNotFoundError) Error() string { return fmt.Sprintf("fiber %s not found", e.Name) }

// Is reports whether target is ErrFiberNotFound.
func (e *FiberNotFoundError) Is(target error) bool { return target == ErrFiberNotFound }

// ImpulseNotFoundError is returned when cancelling an unknown or settled impulse.
type ImpulseNotFoundError struct {
	ID string
}

func (e *ImpulseNotFoundError) Error() string { return fmt.Sprintf("impulse %s not found", e.ID) }

// Is reports whether target is ErrImpulseNotFound.
func (e *ImpulseNotFoundError) Is(target error) bool { return target == ErrImpulseNotFound }

// PanicError wraps a value recovered from a panicking action.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("action panicked: %v", e.Value) }

// Is reports whether target is ErrActionPanic.
func (e *PanicError) Is(target error) bool { return target == ErrActionPanic }

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
