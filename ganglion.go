// Package ganglion provides a high-level façade over the engine for wiring
// named pipelines of actions ("fibers") to the events of an application.
// Most applications interact with this package by:
//  1. Creating a Ganglion via New() (optionally overriding the defaults)
//  2. Registering fibers built from Step and Group stages
//  3. Firing impulses asynchronously (Invoke) or synchronously (InvokeSync)
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable history store
// and a structured logger.
package ganglion

import (
	"context"

	"github.com/hupe1980/ganglion/config"
	"github.com/hupe1980/ganglion/core"
	"github.com/hupe1980/ganglion/engine"
	"github.com/hupe1980/ganglion/logging"
)

type (
	// Action is one unit of logic in a fiber.
	Action = core.Action
	// Stage is a single step or a concurrent group of actions.
	Stage = core.Stage
	// InvocationContext is the per-impulse key/value context.
	InvocationContext = core.InvocationContext
	// Handler observes lifecycle events.
	Handler = core.Handler
	// Impulse is the deferred result of one invocation.
	Impulse = engine.Impulse
	// Subscription identifies one registered handler.
	Subscription = engine.Subscription
)

// Stage constructors re-exported from core.
var (
	Step     = core.Step
	Group    = core.Group
	Steps    = core.Steps
	Identity = core.Identity
)

// Lifecycle event names.
const (
	EventBeforeImpulse        = core.EventBeforeImpulse
	EventAfterImpulse         = core.EventAfterImpulse
	EventError                = core.EventError
	EventSlowAsyncActionStart = core.EventSlowAsyncActionStart
	EventSlowAsyncActionEnd   = core.EventSlowAsyncActionEnd
)

// Options configures the Ganglion instance.
type Options struct {
	// Engine configuration (slow threshold, base context, history capacity)
	EngineConfig engine.Config

	// History records settled impulses (defaults to an in-memory store)
	History core.HistoryStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Lifecycle hooks, equivalent to calling On after construction.
	OnBeforeImpulse        Handler
	OnAfterImpulse         Handler
	OnError                Handler
	OnSlowAsyncActionStart Handler
	OnSlowAsyncActionEnd   Handler
}

// Ganglion is the high-level façade aggregating the underlying engine.
type Ganglion struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new Ganglion instance with optional overrides.
func New(optFns ...func(o *Options)) *Ganglion {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.History = opts.History
		o.Logger = opts.Logger
		o.OnBeforeImpulse = opts.OnBeforeImpulse
		o.OnAfterImpulse = opts.OnAfterImpulse
		o.OnError = opts.OnError
		o.OnSlowAsyncActionStart = opts.OnSlowAsyncActionStart
		o.OnSlowAsyncActionEnd = opts.OnSlowAsyncActionEnd
	})

	return &Ganglion{opts: opts, engine: e}
}

// NewFromFile creates a Ganglion configured by the YAML file at path. The
// file's logging section builds the logger unless an option overrides it.
func NewFromFile(path string, optFns ...func(o *Options)) (*Ganglion, error) {
	f, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return New(append([]func(o *Options){func(o *Options) {
		eo := engine.Options{Config: o.EngineConfig}
		f.Apply(&eo)
		o.EngineConfig = eo.Config
		o.Logger = f.Logger(nil)
	}}, optFns...)...), nil
}

// Fiber registers a named pipeline.
func (g *Ganglion) Fiber(name string, stages ...Stage) error { return g.engine.Fiber(name, stages...) }

// Fibre is an alias of Fiber.
func (g *Ganglion) Fibre(name string, stages ...Stage) error { return g.engine.Fibre(name, stages...) }

// Fibers lists the registered fiber names.
func (g *Ganglion) Fibers() []string { return g.engine.Fibers() }

// Impulse returns the invocation function of a registered fiber.
func (g *Ganglion) Impulse(name string) (engine.ImpulseFunc, bool) { return g.engine.Impulse(name) }

// Invoke starts an impulse and returns its deferred result.
func (g *Ganglion) Invoke(ctx context.Context, name string, args ...any) (*Impulse, error) {
	return g.engine.Invoke(ctx, name, args...)
}

// InvokeSync runs an impulse to completion.
func (g *Ganglion) InvokeSync(ctx context.Context, name string, args ...any) (any, error) {
	return g.engine.InvokeSync(ctx, name, args...)
}

// On subscribes handler to a lifecycle event.
func (g *Ganglion) On(event string, handler Handler) *Subscription {
	return g.engine.On(event, handler)
}

// Off removes a subscription.
func (g *Ganglion) Off(event string, sub *Subscription) { g.engine.Off(event, sub) }

// AddToContext merges a string-keyed map into the base context.
func (g *Ganglion) AddToContext(partial any) error { return g.engine.AddToContext(partial) }

// Cancel stops an in-flight impulse before its next stage.
func (g *Ganglion) Cancel(impulseID string) error { return g.engine.Cancel(impulseID) }

// Active lists impulses that have not settled yet.
func (g *Ganglion) Active() []string { return g.engine.Active() }

// History returns the store of settled impulses.
func (g *Ganglion) History() core.HistoryStore { return g.engine.History() }

// Engine exposes the underlying engine.
func (g *Ganglion) Engine() *engine.Engine { return g.engine }
