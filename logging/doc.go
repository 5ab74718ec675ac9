// Package logging provides a minimal logging interface and adapters for ganglion.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the engine uses for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - StructuredLogger with fiber / impulse scoped attributes
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	g := ganglion.New(func(o *ganglion.Options) { o.Logger = logger })
//
// The interface is kept minimal so any structured logger can be plugged in.
package logging
