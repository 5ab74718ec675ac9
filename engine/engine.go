package engine

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/ganglion/core"
	"github.com/hupe1980/ganglion/history"
	"github.com/hupe1980/ganglion/logging"
)

// ImpulseFunc starts an impulse of one registered fiber.
type ImpulseFunc func(ctx context.Context, args ...any) *Impulse

// Engine owns the fiber registry, the base context and the event bus, and
// drives impulses through the Sequencer.
//
// Concurrency Model:
//   - Registry, base context and active impulse table are mutex protected
//   - Every impulse runs on its own goroutine with its own InvocationContext
//   - Actions of a Group run on separate goroutines
//   - Event handlers run synchronously on the goroutine firing the event
//
// All public methods are safe for concurrent use.
type Engine struct {
	config    Config
	logger    logging.Logger
	bus       *EventBus
	history   core.HistoryStore
	sequencer *Sequencer

	mu     sync.RWMutex
	fibers map[string][]core.Stage

	contextMu   sync.RWMutex
	baseContext map[string]any

	activeMu sync.RWMutex
	active   map[string]*core.InvocationContext
}

// New creates an Engine with sensible defaults and optional configuration.
//
// Examples:
//
//	// Minimal setup with all defaults
//	e := New()
//
//	// Custom slow threshold and base context
//	e := New(func(o *Options) {
//	    o.Config.CallSlowAsyncActionAfter = 50 * time.Millisecond
//	    o.Config.Context = map[string]any{"user": "jane"}
//	})
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.History == nil {
		opts.History = history.NewInMemoryStore(opts.Config.HistoryCapacity)
	}

	e := &Engine{
		config:      opts.Config,
		logger:      opts.Logger,
		bus:         NewEventBus(opts.Logger),
		history:     opts.History,
		sequencer:   &Sequencer{Guard: TimerGuard{Threshold: opts.Config.CallSlowAsyncActionAfter, Logger: opts.Logger}},
		fibers:      make(map[string][]core.Stage),
		baseContext: maps.Clone(opts.Config.Context),
		active:      make(map[string]*core.InvocationContext),
	}
	if e.baseContext == nil {
		e.baseContext = map[string]any{}
	}

	hooks := []struct {
		event   string
		handler core.Handler
	}{
		{core.EventBeforeImpulse, opts.OnBeforeImpulse},
		{core.EventAfterImpulse, opts.OnAfterImpulse},
		{core.EventError, opts.OnError},
		{core.EventSlowAsyncActionStart, opts.OnSlowAsyncActionStart},
		{core.EventSlowAsyncActionEnd, opts.OnSlowAsyncActionEnd},
	}
	for _, h := range hooks {
		if h.handler != nil {
			e.bus.On(h.event, h.handler)
		}
	}

	return e
}

// Fiber registers stages under name. Registering an existing name fails with
// *core.DuplicateFiberError and leaves the existing fiber untouched.
func (e *Engine) Fiber(name string, stages ...core.Stage) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.fibers[name]; exists {
		return &core.DuplicateFiberError{Name: name}
	}

	e.fibers[name] = append([]core.Stage(nil), stages...)
	e.logger.Debug("engine registered fiber name=%s stages=%d", name, len(stages))

	return nil
}

// Fibre is an alias of Fiber.
func (e *Engine) Fibre(name string, stages ...core.Stage) error { return e.Fiber(name, stages...) }

// Fibers returns the registered fiber names in sorted order.
func (e *Engine) Fibers() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.fibers))
	for name := range e.fibers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Impulse looks up the invocation function of a registered fiber.
func (e *Engine) Impulse(name string) (ImpulseFunc, bool) {
	stages, ok := e.stages(name)
	if !ok {
		return nil, false
	}

	return func(ctx context.Context, args ...any) *Impulse {
		return e.start(ctx, name, stages, args)
	}, true
}

// Invoke starts an impulse of fiber name with args as its input and returns
// the deferred result. An unknown name fails immediately with
// *core.FiberNotFoundError.
//
// Example:
//
//	imp, err := e.Invoke(ctx, "clicked", event)
//	if err != nil {
//	    return err
//	}
//	value, err := imp.Wait(ctx)
func (e *Engine) Invoke(ctx context.Context, name string, args ...any) (*Impulse, error) {
	stages, ok := e.stages(name)
	if !ok {
		return nil, &core.FiberNotFoundError{Name: name}
	}

	return e.start(ctx, name, stages, args), nil
}

// InvokeSync runs an impulse to completion and returns its outcome.
func (e *Engine) InvokeSync(ctx context.Context, name string, args ...any) (any, error) {
	imp, err := e.Invoke(ctx, name, args...)
	if err != nil {
		return nil, err
	}

	return imp.Wait(ctx)
}

// On subscribes handler to event.
func (e *Engine) On(event string, handler core.Handler) *Subscription {
	return e.bus.On(event, handler)
}

// Off removes a subscription previously returned by On.
func (e *Engine) Off(event string, sub *Subscription) {
	e.bus.Off(event, sub)
}

// AddToContext merges the pairs of partial into the base context used by
// future impulses. partial must be a map keyed by strings; anything else
// fails with *core.InvalidContextTypeError.
func (e *Engine) AddToContext(partial any) error {
	values, err := toContextMap(partial)
	if err != nil {
		return err
	}

	e.contextMu.Lock()
	defer e.contextMu.Unlock()
	maps.Copy(e.baseContext, values)

	return nil
}

// Context returns a copy of the base context.
func (e *Engine) Context() map[string]any {
	e.contextMu.RLock()
	defer e.contextMu.RUnlock()
	return maps.Clone(e.baseContext)
}

// Cancel sets the cancellation slot of an in-flight impulse. The impulse
// stops before its next stage; an action already running is not interrupted.
func (e *Engine) Cancel(impulseID string) error {
	e.activeMu.RLock()
	ic, ok := e.active[impulseID]
	e.activeMu.RUnlock()

	if !ok {
		return &core.ImpulseNotFoundError{ID: impulseID}
	}

	ic.CancelImpulse()

	return nil
}

// Active returns the identifiers of impulses that have not settled yet.
func (e *Engine) Active() []string {
	e.activeMu.RLock()
	defer e.activeMu.RUnlock()

	ids := make([]string, 0, len(e.active))
	for id := range e.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// History returns the store recording settled impulses.
func (e *Engine) History() core.HistoryStore { return e.history }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.config }

func (e *Engine) stages(name string) ([]core.Stage, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	stages, ok := e.fibers[name]
	return stages, ok
}

func (e *Engine) start(ctx context.Context, name string, stages []core.Stage, args []any) *Impulse {
	if ctx == nil {
		ctx = context.Background()
	}

	id := core.NewID()
	logger := logging.ForImpulse(e.logger, name, id)
	ic := core.NewInvocationContext(ctx, id, name, e.Context(), logger)
	imp := newImpulse(id, name)
	input := append([]any{}, args...)

	e.activeMu.Lock()
	e.active[id] = ic
	e.activeMu.Unlock()

	e.bus.Trigger(core.EventBeforeImpulse, ic, input)
	logger.Debug("engine started impulse fiber=%s impulse_id=%s", name, id)

	startedAt := time.Now()
	completion := NewCompletion(
		func(v any) { e.settle(imp, ic, len(stages), startedAt, v, nil) },
		func(err error) { e.settle(imp, ic, len(stages), startedAt, nil, err) },
		e.bus.Trigger,
	)

	go e.sequencer.Run(stages, ic, input, completion)

	return imp
}

func (e *Engine) settle(imp *Impulse, ic *core.InvocationContext, stages int, startedAt time.Time, v any, err error) {
	e.activeMu.Lock()
	delete(e.active, ic.ID)
	e.activeMu.Unlock()

	if err == nil {
		e.bus.Trigger(core.EventAfterImpulse, ic, v)
	} else {
		e.bus.Trigger(core.EventError, ic, err)
	}

	dur := time.Since(startedAt)
	rec := core.ImpulseRecord{
		ImpulseID: ic.ID,
		Fiber:     ic.FiberName(),
		Status:    core.StatusOf(err),
		StartedAt: startedAt.UTC(),
		Duration:  dur,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	if herr := e.history.Append(rec); herr != nil {
		ic.Logger().Warn("engine failed to record impulse impulse_id=%s error=%v", ic.ID, herr)
	}

	logging.LogImpulse(ic.Logger(), ic.FiberName(), stages, dur, err == nil, err)

	imp.settle(v, err)
}

func toContextMap(partial any) (map[string]any, error) {
	switch m := partial.(type) {
	case map[string]any:
		return m, nil
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	case nil:
		return nil, &core.InvalidContextTypeError{Type: "nil"}
	}

	rv := reflect.ValueOf(partial)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, &core.InvalidContextTypeError{Type: fmt.Sprintf("%T", partial)}
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}

	return out, nil
}
