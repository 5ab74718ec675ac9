package core

import (
	"context"
	"maps"
	"sync"

	"github.com/hupe1980/ganglion/logging"
)

// Well-known keys present in every InvocationContext.
const (
	// KeyFiberName holds the name of the fiber being executed.
	KeyFiberName = "fiberName"
	// KeyFibreName is an alias of KeyFiberName.
	KeyFibreName = "fibreName"
	// KeyCancelImpulse is the cancellation slot. Setting it to true stops the
	// impulse at the next stage boundary.
	KeyCancelImpulse = "cancelImpulse"
)

// InvocationContext carries the mutable, per-impulse state shared by every
// stage of one impulse. It aggregates:
//   - The ambient cancellation Context supplied by the caller
//   - Identifiers (ID, fiber name)
//   - A key/value map seeded from a shallow copy of the base context
//   - The cooperative cancellation slot
//
// Mutations are visible to later stages of the same impulse but never to
// other impulses, each of which receives its own copy. All methods are safe
// for concurrent use by the actions of a Group; overlapping writes are
// last-write-wins.
type InvocationContext struct {
	Context context.Context
	ID      string

	fiber  string
	mu     sync.RWMutex
	values map[string]any
	logger logging.Logger
}

// NewInvocationContext builds a context for one impulse of fiber. The base
// map is shallow-copied, then the fiber name keys and the cancellation slot
// are layered on top.
func NewInvocationContext(
	ctx context.Context,
	id, fiber string,
	base map[string]any,
	logger logging.Logger,
) *InvocationContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	values := make(map[string]any, len(base)+3)
	maps.Copy(values, base)
	values[KeyFiberName] = fiber
	values[KeyFibreName] = fiber
	values[KeyCancelImpulse] = false

	return &InvocationContext{
		Context: ctx,
		ID:      id,
		fiber:   fiber,
		values:  values,
		logger:  logger,
	}
}

// Logger returns the logger scoped to this impulse. It is never nil.
func (ic *InvocationContext) Logger() logging.Logger { return ic.logger }

// FiberName returns the name of the fiber this impulse belongs to.
func (ic *InvocationContext) FiberName() string { return ic.fiber }

// Done returns a channel closed when the underlying context is cancelled.
func (ic *InvocationContext) Done() <-chan struct{} { return ic.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (ic *InvocationContext) Err() error { return ic.Context.Err() }

// Get returns the value stored under k. The boolean reports whether a value was found.
func (ic *InvocationContext) Get(k string) (any, bool) {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	v, ok := ic.values[k]
	return v, ok
}

// GetString returns the value under k when it is a string.
func (ic *InvocationContext) GetString(k string) (string, bool) {
	v, ok := ic.Get(k)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set stores v under k.
func (ic *InvocationContext) Set(k string, v any) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.values[k] = v
}

// Update applies fn to the current value under k while holding the write
// lock, storing the result. It lets concurrent actions perform
// read-modify-write cycles (for example appending to a shared log) safely.
func (ic *InvocationContext) Update(k string, fn func(current any, ok bool) any) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	cur, ok := ic.values[k]
	ic.values[k] = fn(cur, ok)
}

// Merge copies every pair of d into the context.
func (ic *InvocationContext) Merge(d map[string]any) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	maps.Copy(ic.values, d)
}

// Delete removes k from the context.
func (ic *InvocationContext) Delete(k string) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	delete(ic.values, k)
}

// Snapshot returns a shallow copy of all key/value pairs.
func (ic *InvocationContext) Snapshot() map[string]any {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return maps.Clone(ic.values)
}

// CancelImpulse sets the cancellation slot. The impulse stops before its next stage.
func (ic *InvocationContext) CancelImpulse() { ic.Set(KeyCancelImpulse, true) }

// IsCancelled reports whether the cancellation slot holds true.
func (ic *InvocationContext) IsCancelled() bool {
	v, _ := ic.Get(KeyCancelImpulse)
	b, ok := v.(bool)
	return ok && b
}
