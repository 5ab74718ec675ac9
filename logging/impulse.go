package logging

import "time"

// ImpulseLogger is implemented by loggers that emit structured records for
// impulses and their stages. StructuredLogger implements it; plain Logger
// implementations receive printf-style fallbacks instead.
type ImpulseLogger interface {
	LogImpulse(fiber string, stages int, dur time.Duration, success bool, err error)
	LogStage(index, width int, dur time.Duration, err error)
	LogSlowStage(index int, threshold time.Duration)
}

var _ ImpulseLogger = (*StructuredLogger)(nil)

// ForImpulse scopes l to one impulse when it supports attributes.
func ForImpulse(l Logger, fiber, impulseID string) Logger {
	if l == nil {
		return NoOpLogger{}
	}
	if sl, ok := l.(*StructuredLogger); ok {
		return sl.WithImpulse(fiber, impulseID)
	}
	return l
}

// LogImpulse records the outcome of a settled impulse on l.
func LogImpulse(l Logger, fiber string, stages int, dur time.Duration, success bool, err error) {
	if il, ok := l.(ImpulseLogger); ok {
		il.LogImpulse(fiber, stages, dur, success, err)
		return
	}
	if success {
		l.Info("impulse completed fiber=%s stages=%d duration=%s", fiber, stages, dur)
		return
	}
	l.Error("impulse failed fiber=%s stages=%d duration=%s error=%v", fiber, stages, dur, err)
}

// LogStage records a settled stage on l.
func LogStage(l Logger, index, width int, dur time.Duration, err error) {
	if il, ok := l.(ImpulseLogger); ok {
		il.LogStage(index, width, dur, err)
		return
	}
	l.Debug("stage settled stage=%d width=%d duration=%s error=%v", index, width, dur, err)
}

// LogSlowStage records a stage that exceeded the slow threshold on l.
func LogSlowStage(l Logger, index int, threshold time.Duration) {
	if il, ok := l.(ImpulseLogger); ok {
		il.LogSlowStage(index, threshold)
		return
	}
	l.Warn("stage exceeded slow threshold stage=%d threshold=%s", index, threshold)
}
