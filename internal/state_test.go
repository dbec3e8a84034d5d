package internal

import (
	"fmt"
	"sync"
	"testing"

	"github.com/shoenig/test/must"
)

func TestNewWatchState(t *testing.T) {
	state := NewWatchState()

	must.NotNil(t, state)
	must.False(t, state.Stats.StartTime.IsZero())
	must.False(t, state.IsKnown("anything.mp3"))
}

func TestWatchState_MarkSeen(t *testing.T) {
	state := NewWatchState()

	state.MarkSeen("a.mp3", StatusProcessed)
	state.MarkSeen("b.mp3", StatusProcessed)
	state.MarkSeen("c.mp3", StatusSkipped)
	state.MarkSeen("d.mp3", StatusErrored)

	must.True(t, state.IsKnown("a.mp3"))
	must.True(t, state.IsKnown("d.mp3"))
	must.False(t, state.IsKnown("e.mp3"))

	stats := state.GetStats()
	must.Eq(t, 2, stats.TotalProcessed)
	must.Eq(t, 1, stats.TotalSkipped)
	must.Eq(t, 1, stats.TotalErrored)
}

func TestWatchState_Forget(t *testing.T) {
	state := NewWatchState()

	state.MarkSeen("a.mp3", StatusProcessed)
	must.True(t, state.IsKnown("a.mp3"))

	state.Forget("a.mp3")
	must.False(t, state.IsKnown("a.mp3"))

	// counters are history, not membership — they stay
	must.Eq(t, 1, state.GetStats().TotalProcessed)
}

func TestWatchState_ConcurrentAccess(t *testing.T) {
	state := NewWatchState()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				path := fmt.Sprintf("file-%d-%d.mp3", n, j)
				state.MarkSeen(path, StatusProcessed)
				state.IsKnown(path)
				state.GetStats()
			}
		}(i)
	}
	wg.Wait()

	must.Eq(t, 800, state.GetStats().TotalProcessed)
}
