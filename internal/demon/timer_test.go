package demon_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakeyudi/storydemon/internal/demon"
)

func TestLockedTimersSpawnOnWallClock(t *testing.T) {
	var mu sync.Mutex
	g := &fakeGame{}
	cfg := demon.DefaultConfig()
	cfg.MinDelay, cfg.MaxDelay = 5*time.Millisecond, 10*time.Millisecond
	cfg.MinDelayFloor, cfg.MaxDelayFloor = time.Millisecond, 2*time.Millisecond

	s := demon.NewScheduler(g, demon.LockedTimers{Mu: &mu}, cfg)
	mu.Lock()
	s.SetViewport(800, 600)
	s.Start()
	mu.Unlock()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return g.demon != nil
	}, time.Second, time.Millisecond)

	mu.Lock()
	assert.True(t, s.Squash(-1))
	s.Stop()
	mu.Unlock()
	assert.Equal(t, 1, g.demons)
}

func TestLockedTimersStop(t *testing.T) {
	var mu sync.Mutex
	fired := make(chan struct{}, 1)
	tm := demon.LockedTimers{Mu: &mu}.AfterFunc(time.Hour, func() { fired <- struct{}{} })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	default:
	}
}
