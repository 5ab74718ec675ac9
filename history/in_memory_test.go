package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/ganglion/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ core.HistoryStore = (*InMemoryStore)(nil)

func record(id, fiber string, status core.Status) core.ImpulseRecord {
	return core.ImpulseRecord{ImpulseID: id, Fiber: fiber, Status: status, StartedAt: time.Now().UTC(), Duration: time.Millisecond}
}

func TestInMemoryStore_AppendGetList(t *testing.T) {
	s := NewInMemoryStore(10)
	require.NoError(t, s.Append(record("a", "clicked", core.StatusSucceeded)))
	require.NoError(t, s.Append(record("b", "hovered", core.StatusFailed)))
	require.NoError(t, s.Append(record("c", "clicked", core.StatusCancelled)))

	r, err := s.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "hovered", r.Fiber)
	assert.Equal(t, core.StatusFailed, r.Status)

	all, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	clicked, err := s.List("clicked")
	require.NoError(t, err)
	require.Len(t, clicked, 2)
	assert.Equal(t, "a", clicked[0].ImpulseID)
	assert.Equal(t, "c", clicked[1].ImpulseID)
}

func TestInMemoryStore_GetMissing(t *testing.T) {
	s := NewInMemoryStore(1)
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_EvictsOldest(t *testing.T) {
	s := NewInMemoryStore(2)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Append(record(id, "f", core.StatusSucceeded)))
	}

	assert.Equal(t, 2, s.Len())
	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)

	all, _ := s.List("")
	assert.Equal(t, "b", all[0].ImpulseID)
	assert.Equal(t, "c", all[1].ImpulseID)
}

func TestInMemoryStore_DefaultCapacity(t *testing.T) {
	s := NewInMemoryStore(0)
	assert.Equal(t, DefaultCapacity, s.capacity)
}

func TestInMemoryStore_ConcurrentAppend(t *testing.T) {
	s := NewInMemoryStore(100)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Append(record(fmt.Sprintf("id-%d", i), "f", core.StatusSucceeded))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
