package history

import "fmt"

var (
	// ErrNotFound is returned when no record exists for an impulse id.
	ErrNotFound = fmt.Errorf("impulse record not found")
)
