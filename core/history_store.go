package core

import "time"

// ImpulseRecord summarizes one settled impulse.
type ImpulseRecord struct {
	ImpulseID string        `json:"impulse_id" yaml:"impulse_id"`
	Fiber     string        `json:"fiber" yaml:"fiber"`
	Status    Status        `json:"status" yaml:"status"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// HistoryStore persists ImpulseRecords. Implementations must be safe for
// concurrent use; the engine appends from the goroutine settling an impulse.
type HistoryStore interface {
	// Append stores a record.
	Append(r ImpulseRecord) error
	// Get returns the record of one impulse.
	Get(impulseID string) (ImpulseRecord, error)
	// List returns records in settlement order, restricted to fiber unless
	// fiber is empty.
	List(fiber string) ([]ImpulseRecord, error)
}
