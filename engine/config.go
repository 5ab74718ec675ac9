package engine

import (
	"time"

	"github.com/hupe1980/ganglion/core"
	"github.com/hupe1980/ganglion/logging"
)

// Config defines tuning parameters for the Engine's behavior.
//
// Example:
//
//	cfg := Config{
//	    CallSlowAsyncActionAfter: 200 * time.Millisecond,
//	    Context: map[string]any{"tenant": "acme"},
//	}
type Config struct {
	// CallSlowAsyncActionAfter is the slow-stage threshold. A stage still
	// running after this long fires slowAsyncActionStart, and
	// slowAsyncActionEnd once it settles. Non-positive disables the guard.
	CallSlowAsyncActionAfter time.Duration

	// Context is the base context shallow-copied into every impulse.
	Context map[string]any

	// HistoryCapacity bounds the default in-memory history store.
	HistoryCapacity int
}

// DefaultConfig provides the default configuration values:
//   - CallSlowAsyncActionAfter: 500ms
//   - Context: empty
//   - HistoryCapacity: 1000
var DefaultConfig = Config{
	CallSlowAsyncActionAfter: 500 * time.Millisecond,
	HistoryCapacity:          1000,
}

// Options configures an Engine instance using the functional options pattern.
//
// The On* hooks are sugar for subscribing to the matching lifecycle event at
// construction time; they behave exactly like handlers added with On.
//
// Example:
//
//	e := New(func(o *Options) {
//	    o.Config.CallSlowAsyncActionAfter = 100 * time.Millisecond
//	    o.Logger = logging.NewSlogLogger(logging.LogLevelInfo, "text", false)
//	    o.OnSlowAsyncActionStart = func(ic *core.InvocationContext, _ ...any) error {
//	        showSpinner()
//	        return nil
//	    }
//	})
type Options struct {
	// Config contains operational parameters. Defaults to DefaultConfig.
	Config Config

	// Logger provides structured logging. Defaults to a NoOp logger.
	Logger logging.Logger

	// History records settled impulses. Defaults to an in-memory store
	// bounded by Config.HistoryCapacity.
	History core.HistoryStore

	OnBeforeImpulse        core.Handler
	OnAfterImpulse         core.Handler
	OnError                core.Handler
	OnSlowAsyncActionStart core.Handler
	OnSlowAsyncActionEnd   core.Handler
}
