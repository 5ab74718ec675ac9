package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ganglion/logging"
)

type guardCalls struct {
	mu     sync.Mutex
	events []string
}

func (g *guardCalls) add(name string) func() {
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.events = append(g.events, name)
	}
}

func (g *guardCalls) list() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.events...)
}

func TestTimerGuard_FastWorkFiresNothing(t *testing.T) {
	calls := &guardCalls{}
	g := TimerGuard{Threshold: 100 * time.Millisecond}

	v, err := g.Run(calls.add("start"), calls.add("end"), func() (any, error) {
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", v)

	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, calls.list())
}

func TestTimerGuard_SlowWorkFiresStartThenEnd(t *testing.T) {
	calls := &guardCalls{}
	g := TimerGuard{Threshold: 10 * time.Millisecond}

	v, err := g.Run(calls.add("start"), calls.add("end"), func() (any, error) {
		time.Sleep(40 * time.Millisecond)
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, []string{"start", "end"}, calls.list())
}

func TestTimerGuard_PassesErrorThrough(t *testing.T) {
	calls := &guardCalls{}
	g := TimerGuard{Threshold: 5 * time.Millisecond}
	boom := errors.New("boom")

	_, err := g.Run(calls.add("start"), calls.add("end"), func() (any, error) {
		time.Sleep(30 * time.Millisecond)
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start", "end"}, calls.list())
}

func TestTimerGuard_DisabledByNonPositiveThreshold(t *testing.T) {
	calls := &guardCalls{}
	g := TimerGuard{Threshold: 0}

	_, err := g.Run(calls.add("start"), calls.add("end"), func() (any, error) {
		time.Sleep(10 * time.Millisecond)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Empty(t, calls.list())
}

func TestTimerGuard_CallbackPanicsAreRecovered(t *testing.T) {
	g := TimerGuard{Threshold: 5 * time.Millisecond, Logger: logging.NoOpLogger{}}

	v, err := g.Run(
		func() { panic("start") },
		func() { panic("end") },
		func() (any, error) {
			time.Sleep(30 * time.Millisecond)
			return "ok", nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}
