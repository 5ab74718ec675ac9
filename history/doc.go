// Package history provides HistoryStore implementations recording the
// outcome of settled impulses (fiber, status, start time, duration, error).
//
// The engine appends one core.ImpulseRecord per impulse. InMemoryStore is
// the default: a bounded, concurrency-safe ring suitable for tests and
// introspection. Durable backends can implement core.HistoryStore.
package history
