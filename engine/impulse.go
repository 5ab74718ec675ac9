package engine

import "context"

// Impulse is the deferred result of one fiber invocation. It settles exactly
// once, either with a value or with an error.
type Impulse struct {
	id    string
	fiber string
	done  chan struct{}
	value any
	err   error
}

func newImpulse(id, fiber string) *Impulse {
	return &Impulse{id: id, fiber: fiber, done: make(chan struct{})}
}

// ID returns the unique identifier of the impulse.
func (i *Impulse) ID() string { return i.id }

// Fiber returns the name of the invoked fiber.
func (i *Impulse) Fiber() string { return i.fiber }

// Done returns a channel closed once the impulse has settled.
func (i *Impulse) Done() <-chan struct{} { return i.done }

// Wait blocks until the impulse settles or ctx is done. Giving up on ctx does
// not cancel the impulse; use Engine.Cancel for that.
func (i *Impulse) Wait(ctx context.Context) (any, error) {
	select {
	case <-i.done:
		return i.value, i.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result blocks until the impulse settles and returns its outcome.
func (i *Impulse) Result() (any, error) {
	<-i.done
	return i.value, i.err
}

func (i *Impulse) settle(v any, err error) {
	i.value, i.err = v, err
	close(i.done)
}
