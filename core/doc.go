// Package core provides the foundational domain types used by ganglion. It
// defines the core abstractions for:
//
//   - Actions (units of caller supplied logic) and Stages (single steps or
//     concurrent groups of actions)
//   - InvocationContext (the per-impulse mutable key/value scope shared by
//     every stage, including the cooperative cancellation slot)
//   - Normalize (the value canonicalization applied between stages)
//   - Lifecycle event names and the Handler signature used by the event bus
//   - The error taxonomy returned by registration and invocation
//
// Orchestration (sequencing, timing, event fan-out) lives in package engine;
// this package keeps only the shared vocabulary.
package core
