package engine

import (
	"sync"
	"time"

	"github.com/hupe1980/ganglion/logging"
)

// TimerGuard wraps a unit of work with an advisory deadline.
//
// If the work has not settled after Threshold, onSlowStart is called once.
// When the work then settles, onSlowEnd is called once before the outcome is
// returned. Work that settles in time triggers neither callback. A
// non-positive Threshold disables the guard.
//
// onSlowEnd never runs before onSlowStart has returned. Panics raised by the
// callbacks are recovered and logged; they never replace the work's outcome.
type TimerGuard struct {
	Threshold time.Duration
	Logger    logging.Logger
}

// Run executes work under the guard and returns its outcome unchanged.
func (g TimerGuard) Run(onSlowStart, onSlowEnd func(), work func() (any, error)) (any, error) {
	if g.Threshold <= 0 {
		return work()
	}

	var (
		mu      sync.Mutex
		settled bool
		slow    bool
	)

	timer := time.AfterFunc(g.Threshold, func() {
		mu.Lock()
		defer mu.Unlock()
		if settled {
			return
		}
		slow = true
		g.notify("slow start", onSlowStart)
	})

	defer func() {
		timer.Stop()

		mu.Lock()
		settled = true
		fireEnd := slow
		mu.Unlock()

		if fireEnd {
			g.notify("slow end", onSlowEnd)
		}
	}()

	return work()
}

func (g TimerGuard) notify(phase string, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && g.Logger != nil {
			g.Logger.Warn("timer guard callback panicked phase=%s panic=%v", phase, r)
		}
	}()
	fn()
}
