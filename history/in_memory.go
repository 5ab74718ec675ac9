package history

import (
	"sync"

	"github.com/hupe1980/ganglion/core"
)

// DefaultCapacity bounds an InMemoryStore created with a non-positive capacity.
const DefaultCapacity = 1000

// InMemoryStore is a volatile HistoryStore keeping the most recent records
// in a process local slice. Once capacity is reached the oldest record is
// evicted. It is safe for concurrent access and best suited for tests,
// debugging and introspection of a running engine.
type InMemoryStore struct {
	mu       sync.RWMutex
	capacity int
	records  []core.ImpulseRecord
}

// NewInMemoryStore constructs an empty store holding at most capacity records.
func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemoryStore{capacity: capacity, records: make([]core.ImpulseRecord, 0, min(capacity, 64))}
}

// Append stores r, evicting the oldest record when full.
func (s *InMemoryStore) Append(r core.ImpulseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) >= s.capacity {
		copy(s.records, s.records[1:])
		s.records = s.records[:len(s.records)-1]
	}
	s.records = append(s.records, r)
	return nil
}

// Get returns the record of impulseID or ErrNotFound.
func (s *InMemoryStore) Get(impulseID string) (core.ImpulseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].ImpulseID == impulseID {
			return s.records[i], nil
		}
	}
	return core.ImpulseRecord{}, ErrNotFound
}

// List returns a copy of the stored records for fiber (all fibers when empty).
func (s *InMemoryStore) List(fiber string) ([]core.ImpulseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.ImpulseRecord, 0, len(s.records))
	for _, r := range s.records {
		if fiber == "" || r.Fiber == fiber {
			out = append(out, r)
		}
	}
	return out, nil
}

// Len returns the number of stored records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
