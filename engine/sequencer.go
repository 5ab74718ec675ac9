package engine

import (
	"sync"
	"time"

	"github.com/hupe1980/ganglion/core"
	"github.com/hupe1980/ganglion/logging"
)

// TriggerFunc fans an event out to observers.
type TriggerFunc func(event string, ic *core.InvocationContext, args ...any) int

// Completion is the per-impulse settlement handle handed to the sequencer.
// Resolve and Reject share a sync.Once: whichever is called first wins and
// every later call is ignored, so an impulse settles exactly once.
type Completion struct {
	once    sync.Once
	resolve func(any)
	reject  func(error)
	trigger TriggerFunc
}

// NewCompletion builds a completion handle. trigger may be nil.
func NewCompletion(resolve func(any), reject func(error), trigger TriggerFunc) *Completion {
	return &Completion{resolve: resolve, reject: reject, trigger: trigger}
}

// Resolve settles the impulse successfully with v.
func (c *Completion) Resolve(v any) {
	c.once.Do(func() { c.resolve(v) })
}

// Reject settles the impulse with err.
func (c *Completion) Reject(err error) {
	c.once.Do(func() { c.reject(err) })
}

// Trigger forwards an event to the observers of the impulse.
func (c *Completion) Trigger(event string, ic *core.InvocationContext, args ...any) {
	if c.trigger != nil {
		c.trigger(event, ic, args...)
	}
}

// Sequencer drives one impulse through the stages of its fiber.
//
// For every stage it first checks the cancellation slot, then runs all
// actions of the stage concurrently under the TimerGuard and waits for them.
// The first failing action rejects the impulse; siblings already running
// are left to finish on their own. Results of a group become the carried
// value, a single action's result is normalized before being carried.
type Sequencer struct {
	Guard TimerGuard
}

// Run executes stages with ic and the initial value data, settling c.
// It blocks until the impulse settles.
func (s *Sequencer) Run(stages []core.Stage, ic *core.InvocationContext, data any, c *Completion) {
	logger := ic.Logger()

	for i := 0; ; i++ {
		if cancelled, cause := s.cancelled(ic); cancelled {
			c.Reject(core.NewCancelledError(ic.FiberName(), data, cause))
			return
		}

		if i >= len(stages) {
			c.Resolve(core.Normalize(data))
			return
		}

		stage := stages[i]
		input := core.Normalize(data)
		start := time.Now()

		out, err := s.Guard.Run(
			func() {
				logging.LogSlowStage(logger, i, s.Guard.Threshold)
				c.Trigger(core.EventSlowAsyncActionStart, ic, true)
			},
			func() {
				c.Trigger(core.EventSlowAsyncActionEnd, ic, false)
			},
			func() (any, error) {
				return runStage(stage, ic, input)
			},
		)

		logging.LogStage(logger, i, stage.Width(), time.Since(start), err)

		if err != nil {
			c.Reject(err)
			return
		}

		data = out
	}
}

// cancelled reports whether the impulse must stop. A done caller context
// sets the cancellation slot and is returned as the cause.
func (s *Sequencer) cancelled(ic *core.InvocationContext) (bool, error) {
	if ic.IsCancelled() {
		return true, nil
	}
	if err := ic.Err(); err != nil {
		ic.CancelImpulse()
		return true, err
	}
	return false, nil
}

type outcome struct {
	index int
	value any
	err   error
}

func runStage(stage core.Stage, ic *core.InvocationContext, input any) (any, error) {
	actions := stage.Actions()

	switch len(actions) {
	case 0:
		return []any{}, nil
	case 1:
		v, err := callAction(actions[0], ic, input)
		if err != nil {
			return nil, err
		}
		return []any{core.Normalize(v)}, nil
	}

	ch := make(chan outcome, len(actions))
	for i, a := range actions {
		go func(i int, a core.Action) {
			v, err := callAction(a, ic, input)
			ch <- outcome{index: i, value: v, err: err}
		}(i, a)
	}

	results := make([]any, len(actions))
	for range actions {
		o := <-ch
		if o.err != nil {
			return nil, o.err
		}
		results[o.index] = o.value
	}

	return results, nil
}

func callAction(a core.Action, ic *core.InvocationContext, input any) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, &core.PanicError{Value: r}
		}
	}()
	return a(ic, input)
}
