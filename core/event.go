package core

import (
	"errors"

	"github.com/google/uuid"
)

// Lifecycle events fired by the engine.
const (
	// EventBeforeImpulse fires before the first stage. Args: the input slice.
	EventBeforeImpulse = "beforeImpulse"
	// EventAfterImpulse fires after a successful impulse. Args: the final value.
	EventAfterImpulse = "afterImpulse"
	// EventError fires after a failed impulse. Args: the failure.
	EventError = "error"
	// EventSlowAsyncActionStart fires when a stage exceeds the slow threshold. Args: true.
	EventSlowAsyncActionStart = "slowAsyncActionStart"
	// EventSlowAsyncActionEnd fires when a slow stage settles. Args: false.
	EventSlowAsyncActionEnd = "slowAsyncActionEnd"
)

// Handler observes an event. ic is the InvocationContext of the impulse
// that fired it and args are the event specific positional arguments.
// Returned errors are logged by the bus and never alter the impulse.
type Handler func(ic *InvocationContext, args ...any) error

// Status is the terminal outcome of an impulse.
type Status string

const (
	// StatusSucceeded marks a resolved impulse.
	StatusSucceeded Status = "succeeded"
	// StatusFailed marks an impulse rejected by an action.
	StatusFailed Status = "failed"
	// StatusCancelled marks an impulse stopped through its cancellation slot.
	StatusCancelled Status = "cancelled"
)

// StatusOf classifies a terminal error.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSucceeded
	case errors.Is(err, ErrImpulseCancelled):
		return StatusCancelled
	default:
		return StatusFailed
	}
}

// NewID generates a new unique identifier for impulses and subscriptions.
func NewID() string { return uuid.NewString() }
