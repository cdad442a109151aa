package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/showcase/internal/autoplay"
	"github.com/Zachkp/showcase/internal/clock"
)

// queue stands in for the session loop: posted handlers run when drained.
type queue struct {
	fns []func()
}

func (q *queue) post(fn func()) bool {
	q.fns = append(q.fns, fn)
	return true
}

func (q *queue) drain() {
	for len(q.fns) > 0 {
		fn := q.fns[0]
		q.fns = q.fns[1:]
		fn()
	}
}

type harness struct {
	clock   *clock.Manual
	sched   *autoplay.Scheduler
	queue   *queue
	renders []RenderDescriptor
	engine  *Engine
}

func newHarness(t *testing.T, titles ...string) *harness {
	t.Helper()
	h := &harness{clock: clock.NewManual(), queue: &queue{}}
	h.sched = autoplay.New(h.clock)
	h.engine = NewEngine(items(titles...), Options{
		Rules:     DefaultRules(),
		Interval:  autoplay.DefaultInterval,
		Scheduler: h.sched,
		Post:      h.queue.post,
		Renderer:  RendererFunc(func(d RenderDescriptor) { h.renders = append(h.renders, d) }),
	})
	return h
}

func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
	h.queue.drain()
}

func TestEngine_StartRendersAndArms(t *testing.T) {
	h := newHarness(t, "A", "B", "C")
	h.engine.Start()
	h.engine.Start()

	require.Len(t, h.renders, 1)
	assert.Equal(t, 0, h.renders[0].CurrentIndex)
	assert.Equal(t, Still, h.renders[0].Direction)
	assert.Equal(t, 1, h.sched.Active())
}

func TestEngine_AutoplayAdvancesAfterOneInterval(t *testing.T) {
	h := newHarness(t, "A", "B", "C")
	h.engine.Start()

	h.advance(7999 * time.Millisecond)
	assert.Equal(t, 0, h.engine.State().CurrentIndex)

	h.advance(time.Millisecond)
	st := h.engine.State()
	assert.Equal(t, 1, st.CurrentIndex)
	assert.Equal(t, Forward, st.Direction)
	assert.True(t, st.Transitioning)
}

func TestEngine_ManualNavigationResetsCountdown(t *testing.T) {
	h := newHarness(t, "A", "B", "C")
	h.engine.Start()

	h.advance(5 * time.Second)
	require.True(t, h.engine.Next())
	require.True(t, h.engine.TransitionComplete())
	assert.Equal(t, 1, h.engine.State().CurrentIndex)

	// The original schedule would have ticked at 8s.
	h.advance(7999 * time.Millisecond)
	assert.Equal(t, 1, h.engine.State().CurrentIndex)

	h.advance(time.Millisecond)
	assert.Equal(t, 2, h.engine.State().CurrentIndex)
	assert.Equal(t, 1, h.sched.Active())
}

func TestEngine_TickDuringTransitionIsDropped(t *testing.T) {
	h := newHarness(t, "A", "B", "C")
	h.engine.Start()

	require.True(t, h.engine.Next())
	h.advance(8 * time.Second)

	st := h.engine.State()
	assert.Equal(t, 1, st.CurrentIndex)
	assert.True(t, st.Transitioning)

	require.True(t, h.engine.TransitionComplete())
	h.advance(8 * time.Second)
	assert.Equal(t, 2, h.engine.State().CurrentIndex)
}

func TestEngine_StaleTickIsIgnored(t *testing.T) {
	h := newHarness(t, "A", "B", "C")
	h.engine.Start()

	// The tick fires and is queued, but a manual navigation is handled
	// first and re-arms. The queued tick must not advance again.
	h.clock.Advance(8 * time.Second)
	require.Len(t, h.queue.fns, 1)
	require.True(t, h.engine.Previous())
	require.True(t, h.engine.TransitionComplete())
	h.queue.drain()

	assert.Equal(t, 2, h.engine.State().CurrentIndex)
	assert.False(t, h.engine.State().Transitioning)
}

func TestEngine_DroppedEventsDoNotRender(t *testing.T) {
	h := newHarness(t, "A", "B")
	h.engine.Start()
	require.True(t, h.engine.Next())
	n := len(h.renders)

	assert.False(t, h.engine.Next())
	assert.False(t, h.engine.Previous())
	assert.False(t, h.engine.JumpTo(0))
	assert.False(t, h.engine.Swipe(-200))
	assert.Len(t, h.renders, n)

	require.True(t, h.engine.TransitionComplete())
	assert.False(t, h.engine.TransitionComplete())
	assert.Len(t, h.renders, n+1)
	assert.False(t, h.renders[n].Transitioning)
}

func TestEngine_EmptyCarousel(t *testing.T) {
	h := newHarness(t)
	h.engine.Start()

	assert.Zero(t, h.sched.Active(), "an empty carousel never schedules autoplay")
	assert.False(t, h.engine.Next())
	assert.False(t, h.engine.Previous())
	assert.False(t, h.engine.JumpTo(0))
	assert.False(t, h.engine.Swipe(-300))
	assert.False(t, h.engine.TransitionComplete())
	h.advance(time.Minute)

	assert.Equal(t, State{}, h.engine.State())
	require.Len(t, h.renders, 1)
	assert.Empty(t, h.renders[0].Items)
}

func TestEngine_CloseMidTransition(t *testing.T) {
	h := newHarness(t, "A", "B", "C")
	h.engine.Start()
	require.True(t, h.engine.Next())

	h.engine.Close()
	h.engine.Close()
	assert.Zero(t, h.sched.Active())
	assert.Zero(t, h.clock.Pending())

	assert.False(t, h.engine.TransitionComplete())
	h.advance(time.Minute)
	assert.Equal(t, 1, h.engine.State().CurrentIndex)
}

func TestEngine_CloseWithQueuedTick(t *testing.T) {
	h := newHarness(t, "A", "B")
	h.engine.Start()
	h.clock.Advance(8 * time.Second)
	require.Len(t, h.queue.fns, 1)

	h.engine.Close()
	h.queue.drain()
	assert.Equal(t, 0, h.engine.State().CurrentIndex)
}

func TestEngine_WithoutScheduler(t *testing.T) {
	var renders int
	e := NewEngine(items("A", "B"), Options{Renderer: RendererFunc(func(RenderDescriptor) { renders++ })})
	e.Start()
	assert.True(t, e.Swipe(-DefaultSwipeThreshold))
	assert.Equal(t, 1, e.State().CurrentIndex)
	assert.Equal(t, 2, renders)
}
