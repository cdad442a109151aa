package loop

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoop_RunsInOrder(t *testing.T) {
	l := New(zaptest.NewLogger(t))
	defer l.Close()

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.True(t, l.Call(func() {}))

	want := make([]int, 100)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)
}

func TestLoop_HandlersNeverOverlap(t *testing.T) {
	l := New(zaptest.NewLogger(t))
	defer l.Close()

	var running, overlaps int32
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l.Post(func() {
					if atomic.AddInt32(&running, 1) > 1 {
						atomic.AddInt32(&overlaps, 1)
					}
					time.Sleep(10 * time.Microsecond)
					atomic.AddInt32(&running, -1)
				})
			}
		}()
	}
	wg.Wait()
	require.True(t, l.Call(func() {}))
	assert.Zero(t, atomic.LoadInt32(&overlaps))
}

func TestLoop_PostFromHandler(t *testing.T) {
	l := New(zaptest.NewLogger(t))
	defer l.Close()

	done := make(chan struct{})
	l.Post(func() {
		l.Post(func() { close(done) })
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested post never ran")
	}
}

func TestLoop_NothingRunsAfterClose(t *testing.T) {
	l := New(zaptest.NewLogger(t))

	block := make(chan struct{})
	started := make(chan struct{})
	l.Post(func() {
		close(started)
		<-block
	})
	<-started

	var ran atomic.Bool
	require.True(t, l.Post(func() { ran.Store(true) }))

	closed := make(chan struct{})
	go func() {
		l.Close()
		close(closed)
	}()

	// Close waits for the running handler.
	select {
	case <-closed:
		t.Fatal("Close returned while a handler was running")
	case <-time.After(20 * time.Millisecond):
	}
	close(block)
	<-closed

	assert.False(t, ran.Load(), "queued handler ran after close")
	assert.False(t, l.Post(func() { ran.Store(true) }))
	assert.False(t, l.Call(func() {}))
	l.Close()
}

func TestLoop_RecoversPanics(t *testing.T) {
	l := New(zaptest.NewLogger(t))
	defer l.Close()

	l.Post(func() { panic("boom") })
	ran := false
	require.True(t, l.Call(func() { ran = true }))
	assert.True(t, ran)
}
