package runtime

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSpawnRunsTask(t *testing.T) {
	rt := New()
	done := make(chan struct{})
	rt.Spawn(func(tc *TaskContext) {
		close(done)
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("spawned task never ran")
	}
	rt.Stop()
}

func TestStopWaitsForAllSpawnedTasks(t *testing.T) {
	rt := New()
	var finished int32
	release := make(chan struct{})

	for i := 0; i < 5; i++ {
		rt.Spawn(func(tc *TaskContext) {
			<-tc.Done()
			<-release
			atomic.AddInt32(&finished, 1)
		})
	}

	stopDone := make(chan struct{})
	go func() {
		rt.Stop()
		close(stopDone)
	}()

	// Stop should still be blocked: tasks are waiting on release.
	select {
	case <-stopDone:
		t.Fatal("Stop returned before spawned tasks released")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopDone:
	case <-time.After(time.Second):
		t.Fatal("Stop never returned after tasks released")
	}
	require.Equal(t, int32(5), atomic.LoadInt32(&finished))
}

func TestSpawnAfterStopIsNoOp(t *testing.T) {
	rt := New()
	rt.Stop()

	ran := false
	rt.Spawn(func(tc *TaskContext) { ran = true })
	time.Sleep(20 * time.Millisecond)
	require.False(t, ran)
}

func TestStopIsIdempotent(t *testing.T) {
	rt := New()
	rt.Stop()
	require.NotPanics(t, func() { rt.Stop() })
}

func TestTaskContextStoppedReflectsState(t *testing.T) {
	rt := New()
	var tc *TaskContext
	captured := make(chan struct{})
	rt.Spawn(func(c *TaskContext) {
		tc = c
		close(captured)
		<-c.Done()
	})
	<-captured
	require.False(t, tc.Stopped())
	rt.Stop()
	require.True(t, tc.Stopped())
}
