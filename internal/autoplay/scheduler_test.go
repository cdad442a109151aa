package autoplay

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/Zachkp/showcase/internal/clock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScheduler_FiresEveryInterval(t *testing.T) {
	c := clock.NewManual()
	s := New(c)
	ticks := 0
	h := s.Start(DefaultInterval, func() { ticks++ })
	assert.NotZero(t, h)

	c.Advance(7999 * time.Millisecond)
	assert.Equal(t, 0, ticks)
	c.Advance(time.Millisecond)
	assert.Equal(t, 1, ticks)
	c.Advance(16 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestScheduler_Cancel(t *testing.T) {
	c := clock.NewManual()
	s := New(c)
	ticks := 0
	h := s.Start(time.Second, func() { ticks++ })

	c.Advance(time.Second)
	s.Cancel(h)
	s.Cancel(h)
	s.Cancel(0)
	c.Advance(10 * time.Second)

	assert.Equal(t, 1, ticks)
	assert.Zero(t, s.Active())
	assert.Zero(t, c.Pending())
}

func TestScheduler_RestartResetsCountdown(t *testing.T) {
	c := clock.NewManual()
	s := New(c)
	var at []time.Duration
	onTick := func() { at = append(at, c.Now()) }

	h := s.Start(8*time.Second, onTick)
	c.Advance(5 * time.Second)
	s.Cancel(h)
	s.Start(8*time.Second, onTick)
	c.Advance(10 * time.Second)

	assert.Equal(t, []time.Duration{13 * time.Second}, at)
}

func TestScheduler_RejectsInvalid(t *testing.T) {
	s := New(clock.NewManual())
	assert.Zero(t, s.Start(0, func() {}))
	assert.Zero(t, s.Start(-time.Second, func() {}))
	assert.Zero(t, s.Start(time.Second, nil))
	assert.Zero(t, s.Active())
}

func TestScheduler_Close(t *testing.T) {
	c := clock.NewManual()
	s := New(c)
	ticks := 0
	s.Start(time.Second, func() { ticks++ })
	s.Start(2*time.Second, func() { ticks++ })

	s.Close()
	c.Advance(time.Minute)
	assert.Zero(t, ticks)
	assert.Zero(t, s.Start(time.Second, func() { ticks++ }))
}

func TestScheduler_RealClock(t *testing.T) {
	s := New(nil)
	defer s.Close()

	var ticks atomic.Int32
	s.Start(5*time.Millisecond, func() { ticks.Add(1) })
	assert.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
}
