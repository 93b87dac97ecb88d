package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeaTimersFire(t *testing.T) {
	timers := newTeaTimers()
	calls := 0
	timers.AfterFunc(time.Second, func() { calls++ })

	require.NotNil(t, timers.drain())
	assert.Nil(t, timers.drain(), "queue is emptied by drain")

	timers.fire(1)
	assert.Equal(t, 1, calls)

	timers.fire(1)
	assert.Equal(t, 1, calls, "a timer fires at most once")
}

func TestTeaTimersStop(t *testing.T) {
	timers := newTeaTimers()
	calls := 0
	tm := timers.AfterFunc(time.Second, func() { calls++ })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())

	timers.fire(1)
	assert.Zero(t, calls)
}

func TestTeaTimersIndependentIDs(t *testing.T) {
	timers := newTeaTimers()
	var fired []string
	a := timers.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	timers.AfterFunc(time.Second, func() { fired = append(fired, "b") })
	a.Stop()

	timers.fire(1)
	timers.fire(2)
	assert.Equal(t, []string{"b"}, fired)
}
