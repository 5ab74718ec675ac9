package core

import (
	"context"
	"errors"
	"testing"
)

func TestErrors_SentinelMatching(t *testing.T) {
	if !errors.Is(&DuplicateFiberError{Name: "clicked"}, ErrDuplicateFiber) {
		t.Error("DuplicateFiberError should match ErrDuplicateFiber")
	}
	if !errors.Is(&InvalidContextTypeError{Type: "int"}, ErrInvalidContextType) {
		t.Error("InvalidContextTypeError should match ErrInvalidContextType")
	}
	if !errors.Is(&FiberNotFoundError{Name: "x"}, ErrFiberNotFound) {
		t.Error("FiberNotFoundError should match ErrFiberNotFound")
	}
	if !errors.Is(&ImpulseNotFoundError{ID: "x"}, ErrImpulseNotFound) {
		t.Error("ImpulseNotFoundError should match ErrImpulseNotFound")
	}
	if !errors.Is(&PanicError{Value: "boom"}, ErrActionPanic) {
		t.Error("PanicError should match ErrActionPanic")
	}
}

func TestDuplicateFiberError_Message(t *testing.T) {
	err := &DuplicateFiberError{Name: "clicked"}
	if err.Error() != "clicked fibre has already been defined" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCancelledError(t *testing.T) {
	err := NewCancelledError("clicked", []any{"last"}, nil)
	if err.Message != "clicked impulse has been cancelled" {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if err.Data != "last" {
		t.Fatalf("data should be normalized, got %#v", err.Data)
	}
	if !errors.Is(err, ErrImpulseCancelled) {
		t.Fatal("CancelledError should match ErrImpulseCancelled")
	}
	if StatusOf(err) != StatusCancelled {
		t.Fatalf("StatusOf = %s", StatusOf(err))
	}

	withCause := NewCancelledError("clicked", nil, context.Canceled)
	if !errors.Is(withCause, context.Canceled) {
		t.Fatal("cause should be unwrapped")
	}
}

func TestPanicError_UnwrapsErrorValues(t *testing.T) {
	inner := errors.New("inner")
	if !errors.Is(&PanicError{Value: inner}, inner) {
		t.Fatal("error panic values should unwrap")
	}
	if (&PanicError{Value: 42}).Unwrap() != nil {
		t.Fatal("non-error panic values unwrap to nil")
	}
}

func TestStatusOf(t *testing.T) {
	if StatusOf(nil) != StatusSucceeded {
		t.Error("nil error is success")
	}
	if StatusOf(errors.New("x")) != StatusFailed {
		t.Error("plain error is failure")
	}
}

func TestStages(t *testing.T) {
	s := Group(Identity, Identity)
	if s.Width() != 2 || len(s.Actions()) != 2 {
		t.Fatalf("group width = %d", s.Width())
	}
	if Step(Identity).Width() != 1 {
		t.Fatal("step width must be 1")
	}
	stages := Steps(Identity, Identity, Identity)
	if len(stages) != 3 {
		t.Fatalf("Steps produced %d stages", len(stages))
	}
	out, err := Identity(nil, "x")
	if err != nil || out != "x" {
		t.Fatalf("Identity returned %v, %v", out, err)
	}
}
