package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ganglion/core"
)

func TestEventBus_TriggerInRegistrationOrder(t *testing.T) {
	bus := NewEventBus(nil)

	var order []string
	bus.On("clicked", func(_ *core.InvocationContext, args ...any) error {
		order = append(order, "first")
		return nil
	})
	bus.On("clicked", func(_ *core.InvocationContext, args ...any) error {
		order = append(order, "second")
		require.Equal(t, []any{1, "two"}, args)
		return nil
	})

	failed := bus.Trigger("clicked", nil, 1, "two")

	assert.Equal(t, 0, failed)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEventBus_UnknownEventIsNoop(t *testing.T) {
	bus := NewEventBus(nil)
	assert.Equal(t, 0, bus.Trigger("nothing", nil))
	assert.Equal(t, 0, bus.Len("nothing"))
}

func TestEventBus_OffRemovesOnlyThatSubscription(t *testing.T) {
	bus := NewEventBus(nil)

	calls := 0
	h := func(*core.InvocationContext, ...any) error {
		calls++
		return nil
	}

	first := bus.On("e", h)
	bus.On("e", h)
	require.Equal(t, 2, bus.Len("e"))

	bus.Off("e", first)
	assert.Equal(t, 1, bus.Len("e"))

	bus.Trigger("e", nil)
	assert.Equal(t, 1, calls)
}

func TestEventBus_OffUnknownIsIgnored(t *testing.T) {
	bus := NewEventBus(nil)
	sub := bus.On("a", func(*core.InvocationContext, ...any) error { return nil })

	bus.Off("b", sub)
	bus.Off("a", nil)
	bus.Off("a", &Subscription{})

	assert.Equal(t, 1, bus.Len("a"))
}

func TestSubscription_UnsubscribeIsIdempotent(t *testing.T) {
	bus := NewEventBus(nil)
	sub := bus.On("a", func(*core.InvocationContext, ...any) error { return nil })

	sub.Unsubscribe()
	sub.Unsubscribe()

	assert.Equal(t, 0, bus.Len("a"))

	var nilSub *Subscription
	assert.NotPanics(t, nilSub.Unsubscribe)
}

func TestEventBus_HandlerFailuresAreIsolated(t *testing.T) {
	bus := NewEventBus(nil)

	reached := false
	bus.On("e", func(*core.InvocationContext, ...any) error { return errors.New("boom") })
	bus.On("e", func(*core.InvocationContext, ...any) error { panic("kaboom") })
	bus.On("e", nil)
	bus.On("e", func(*core.InvocationContext, ...any) error {
		reached = true
		return nil
	})

	failed := bus.Trigger("e", nil)

	assert.Equal(t, 2, failed)
	assert.True(t, reached)
}

func TestEventBus_SubscriptionChangesApplyToNextTrigger(t *testing.T) {
	bus := NewEventBus(nil)

	lateCalls := 0
	var self *Subscription
	self = bus.On("e", func(*core.InvocationContext, ...any) error {
		self.Unsubscribe()
		bus.On("e", func(*core.InvocationContext, ...any) error {
			lateCalls++
			return nil
		})
		return nil
	})

	bus.Trigger("e", nil)
	assert.Equal(t, 0, lateCalls)

	bus.Trigger("e", nil)
	assert.Equal(t, 1, lateCalls)
}
