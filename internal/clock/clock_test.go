package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_FiresInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var fired []string
	m.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "c") })
	m.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	m.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "b") })

	m.Advance(250 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 250*time.Millisecond, m.Now())
	assert.Equal(t, 1, m.Pending())

	m.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
}

func TestManual_Stop(t *testing.T) {
	m := NewManual()
	calls := 0
	timer := m.AfterFunc(time.Second, func() { calls++ })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	m.Advance(2 * time.Second)
	assert.Zero(t, calls)
}

func TestManual_RearmInsideCallback(t *testing.T) {
	m := NewManual()
	var at []time.Duration
	var tick func()
	tick = func() {
		at = append(at, m.Now())
		m.AfterFunc(time.Second, tick)
	}
	m.AfterFunc(time.Second, tick)

	m.Advance(3500 * time.Millisecond)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, at)
}

func TestReal_AfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}
}
