// Package engine implements the orchestration layer of ganglion.
//
// An Engine owns a registry of fibers (named, ordered lists of stages) and
// runs impulses (single invocations of a fiber). Each impulse gets a fresh
// core.InvocationContext seeded from the engine's base context and is driven
// by the Sequencer on its own goroutine.
//
// # Components
//
//	┌──────────────────────────────────────────────┐
//	│ Engine: registry, base context, Invoke       │
//	├──────────────────────────────────────────────┤
//	│ Sequencer: stage loop, cancellation check    │
//	├───────────────────────┬──────────────────────┤
//	│ TimerGuard: slow      │ EventBus: lifecycle  │
//	│ stage notification    │ event fan-out        │
//	└───────────────────────┴──────────────────────┘
//
// # Execution
//
// For every stage the Sequencer:
//  1. stops with *core.CancelledError when the cancellation slot is set (or
//     the caller's context is done)
//  2. resolves with the normalized carried value when no stages remain
//  3. runs all actions of the stage concurrently, each receiving the
//     normalized carried value, wrapped in the TimerGuard
//  4. rejects with the first action error, otherwise carries the results on
//
// # Events
//
// The engine fires beforeImpulse, afterImpulse, error, slowAsyncActionStart
// and slowAsyncActionEnd on its EventBus. Handlers run synchronously; their
// failures are logged and never change the outcome of an impulse.
//
// # Example
//
//	e := engine.New()
//	_ = e.Fiber("clicked",
//	    core.Step(validate),
//	    core.Group(loadUser, loadCart),
//	    core.Step(render),
//	)
//	value, err := e.InvokeSync(ctx, "clicked", clickEvent)
package engine
