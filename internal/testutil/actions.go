package testutil

import (
	"sync"
	"time"

	"github.com/hupe1980/ganglion/core"
)

// Delay returns an action that sleeps for d and then returns v. A nil v
// returns the action's input instead.
func Delay(d time.Duration, v any) core.Action {
	return func(ic *core.InvocationContext, data any) (any, error) {
		select {
		case <-time.After(d):
		case <-ic.Done():
		}
		if v == nil {
			return data, nil
		}
		return v, nil
	}
}

// Return returns an action that ignores its input and returns v.
func Return(v any) core.Action {
	return func(*core.InvocationContext, any) (any, error) { return v, nil }
}

// Fail returns an action that fails with err after d.
func Fail(d time.Duration, err error) core.Action {
	return func(*core.InvocationContext, any) (any, error) {
		time.Sleep(d)
		return nil, err
	}
}

// CallLog is a thread-safe ordered record of action invocations.
type CallLog struct {
	mu    sync.Mutex
	calls []int
}

// Record returns an action that appends n to the log and returns nil.
func (l *CallLog) Record(n int) core.Action {
	return func(*core.InvocationContext, any) (any, error) {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.calls = append(l.calls, n)
		return nil, nil
	}
}

// Calls returns a copy of the recorded values.
func (l *CallLog) Calls() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.calls...)
}

// Event is one delivery observed by an EventRecorder.
type Event struct {
	Name      string
	ImpulseID string
	Args      []any
}

// EventRecorder collects event deliveries in order.
type EventRecorder struct {
	mu     sync.Mutex
	events []Event
}

// Handler returns a handler recording deliveries of name.
func (r *EventRecorder) Handler(name string) core.Handler {
	return func(ic *core.InvocationContext, args ...any) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		id := ""
		if ic != nil {
			id = ic.ID
		}
		r.events = append(r.events, Event{Name: name, ImpulseID: id, Args: append([]any(nil), args...)})
		return nil
	}
}

// Events returns a copy of the recorded deliveries.
func (r *EventRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Names returns the recorded event names in delivery order.
func (r *EventRecorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.Name)
	}
	return names
}
