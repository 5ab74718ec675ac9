package engine

import (
	"fmt"
	"sync"

	"github.com/hupe1980/ganglion/core"
	"github.com/hupe1980/ganglion/logging"
)

// Subscription is the handle returned by EventBus.On. It identifies one
// registration of a handler; registering the same function twice yields two
// independent subscriptions.
type Subscription struct {
	ID    string
	Event string

	handler core.Handler
	bus     *EventBus
}

// Unsubscribe removes the subscription from its bus. It is idempotent.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.Off(s.Event, s)
}

// EventBus is a synchronous publish/subscribe registry scoped to one engine.
//
// Handlers are invoked in registration order on the goroutine calling
// Trigger. The handler list is snapshotted before fan-out, so handlers may
// subscribe or unsubscribe while an event is being delivered; changes apply
// to the next Trigger.
//
// Failure isolation:
// A handler that returns an error or panics is logged and skipped; the
// remaining handlers still run and the triggering impulse is unaffected.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]*Subscription
	logger   logging.Logger
}

// NewEventBus creates an empty bus reporting handler failures to logger.
func NewEventBus(logger logging.Logger) *EventBus {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &EventBus{
		handlers: make(map[string][]*Subscription),
		logger:   logger,
	}
}

// On registers handler for event and returns its subscription.
func (b *EventBus) On(event string, handler core.Handler) *Subscription {
	sub := &Subscription{ID: core.NewID(), Event: event, handler: handler, bus: b}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], sub)

	return sub
}

// Off removes the first registration of sub for event. Unknown events and
// subscriptions are ignored.
func (b *EventBus) Off(event string, sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.handlers[event]
	if !ok {
		return
	}
	for i, s := range subs {
		if s == sub {
			b.handlers[event] = append(subs[:i:i], subs[i+1:]...)
			if len(b.handlers[event]) == 0 {
				delete(b.handlers, event)
			}
			return
		}
	}
}

// Len returns the number of handlers registered for event.
func (b *EventBus) Len(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[event])
}

// Trigger invokes every handler registered for event with ic and args.
// It returns the number of handlers that failed.
func (b *EventBus) Trigger(event string, ic *core.InvocationContext, args ...any) int {
	b.mu.RLock()
	subs := append([]*Subscription(nil), b.handlers[event]...)
	b.mu.RUnlock()

	failed := 0
	for _, sub := range subs {
		if err := b.call(sub, ic, args); err != nil {
			failed++
			b.logger.Warn("event handler failed event=%s subscription=%s error=%v", event, sub.ID, err)
		}
	}

	return failed
}

func (b *EventBus) call(sub *Subscription, ic *core.InvocationContext, args []any) (err error) {
	if sub.handler == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return sub.handler(ic, args...)
}
