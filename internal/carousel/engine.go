package carousel

import (
	"time"

	"github.com/Zachkp/showcase/internal/autoplay"
)

// Renderer draws descriptors. It must call back with TransitionComplete
// exactly once per transition.
type Renderer interface {
	Render(d RenderDescriptor)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(d RenderDescriptor)

// Render implements Renderer.
func (f RendererFunc) Render(d RenderDescriptor) { f(d) }

// Options configures an Engine.
type Options struct {
	Rules Rules
	// Interval is the autoplay period. Zero disables autoplay.
	Interval time.Duration
	// Scheduler drives autoplay. Nil disables autoplay.
	Scheduler *autoplay.Scheduler
	// Post delivers autoplay ticks onto the goroutine that owns the engine.
	Post     func(fn func()) bool
	Renderer Renderer
}

// Engine owns one carousel's state. All methods must be called from the
// owning event loop; autoplay ticks are delivered there through Options.Post.
type Engine struct {
	opts  Options
	state State

	handle  autoplay.Handle
	gen     uint64
	started bool
	closed  bool
}

// NewEngine builds an engine over items. Nothing is rendered or scheduled
// until Start.
func NewEngine(items []Item, opts Options) *Engine {
	if opts.Rules.SwipeThreshold <= 0 {
		opts.Rules.SwipeThreshold = DefaultSwipeThreshold
	}
	return &Engine{opts: opts, state: NewState(items)}
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Start renders the initial item and arms autoplay.
func (e *Engine) Start() {
	if e.started || e.closed {
		return
	}
	e.started = true
	e.render()
	e.rearm()
}

// Dispatch feeds one event through the state machine. It reports whether
// the event was accepted; dropped events change nothing and are not queued.
func (e *Engine) Dispatch(ev Event) bool {
	if e.closed {
		return false
	}
	prev := e.state
	next, ok := Reduce(prev, ev, e.opts.Rules)
	if !ok {
		return false
	}
	e.state = next
	e.render()
	if NeedsRearm(prev, next) {
		e.rearm()
	}
	return true
}

func (e *Engine) Next() bool               { return e.Dispatch(Next()) }
func (e *Engine) Previous() bool           { return e.Dispatch(Previous()) }
func (e *Engine) JumpTo(i int) bool        { return e.Dispatch(JumpTo(i)) }
func (e *Engine) Swipe(dx float64) bool    { return e.Dispatch(Swipe(dx)) }
func (e *Engine) TransitionComplete() bool { return e.Dispatch(TransitionComplete()) }

// Close releases the autoplay schedule. It is safe mid-transition and safe
// to call more than once.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.cancel()
}

func (e *Engine) render() {
	if e.opts.Renderer != nil {
		e.opts.Renderer.Render(Describe(e.state))
	}
}

func (e *Engine) cancel() {
	if e.opts.Scheduler != nil && e.handle != 0 {
		e.opts.Scheduler.Cancel(e.handle)
	}
	e.handle = 0
	// Ticks already queued from the old schedule see a stale generation.
	e.gen++
}

// rearm restarts the autoplay countdown from a full interval.
func (e *Engine) rearm() {
	e.cancel()
	if e.closed || !e.started || !e.state.Enabled() {
		return
	}
	if e.opts.Scheduler == nil || e.opts.Post == nil || e.opts.Interval <= 0 {
		return
	}
	gen := e.gen
	post := e.opts.Post
	e.handle = e.opts.Scheduler.Start(e.opts.Interval, func() {
		post(func() {
			if e.closed || gen != e.gen {
				return
			}
			e.Dispatch(AutoplayTick())
		})
	})
}
