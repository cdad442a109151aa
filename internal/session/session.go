// Package session binds the interaction core for one visitor: navigation,
// the project carousel with its autoplay, and the tab panels, all running on
// one event loop.
//
// Every public method posts onto the loop and returns immediately; the
// result reaches the host through the Outbox, which is only ever called from
// the loop goroutine. After Close returns nothing is delivered.
package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/showcase/internal/autoplay"
	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/clock"
	"github.com/Zachkp/showcase/internal/geometry"
	"github.com/Zachkp/showcase/internal/loop"
	"github.com/Zachkp/showcase/internal/navigation"
	"github.com/Zachkp/showcase/internal/tabs"
)

// Outbox receives the session's output.
type Outbox interface {
	Navigation(state navigation.State)
	ScrollTo(cmd navigation.ScrollCommand)
	Render(d carousel.RenderDescriptor)
	Tabs(state tabs.State)
}

// Config holds the interaction tunables.
type Config struct {
	AutoplayInterval  time.Duration
	SwipeThreshold    float64
	ScrolledThreshold float64
	TabGuard          time.Duration
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		AutoplayInterval:  autoplay.DefaultInterval,
		SwipeThreshold:    carousel.DefaultSwipeThreshold,
		ScrolledThreshold: navigation.DefaultScrolledThreshold,
		TabGuard:          tabs.DefaultGuard,
	}
}

// Content is what a session needs to know about the page.
type Content struct {
	Sections []string
	Items    []carousel.Item
	// TabGroups maps a group name to its keys in order.
	TabGroups map[string][]string
}

// Session is one visitor's interaction state.
type Session struct {
	id     string
	logger *zap.Logger
	out    Outbox

	loop     *loop.Loop
	sched    *autoplay.Scheduler
	nav      *navigation.Navigator
	carousel *carousel.Engine
	tabs     map[string]*tabs.Selector

	closeOnce sync.Once
}

// New builds a session. Nothing is emitted until Start.
func New(id string, cfg Config, c Content, clk clock.Clock, out Outbox, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.Real()
	}
	logger = logger.With(zap.String("session", id))

	s := &Session{
		id:     id,
		logger: logger,
		out:    out,
		loop:   loop.New(logger.Named("loop")),
		sched:  autoplay.New(clk),
		tabs:   make(map[string]*tabs.Selector, len(c.TabGroups)),
	}

	spy := navigation.NewSpy(navigation.Register(c.Sections...), cfg.ScrolledThreshold)
	s.nav = navigation.NewNavigator(spy, navigation.ScrollerFunc(out.ScrollTo))

	s.carousel = carousel.NewEngine(c.Items, carousel.Options{
		Rules:     carousel.Rules{SwipeThreshold: cfg.SwipeThreshold},
		Interval:  cfg.AutoplayInterval,
		Scheduler: s.sched,
		Post:      s.loop.Post,
		Renderer:  carousel.RendererFunc(out.Render),
	})

	for group, keys := range c.TabGroups {
		s.tabs[group] = tabs.NewSelector(group, keys, cfg.TabGuard, clk, s.loop.Post, out.Tabs)
	}
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Start emits the initial navigation, carousel and tab states and arms
// autoplay.
func (s *Session) Start() {
	s.loop.Post(func() {
		s.out.Navigation(s.nav.State())
		s.carousel.Start()
		for _, sel := range s.tabs {
			s.out.Tabs(sel.State())
		}
	})
}

// Scroll evaluates a scroll notification. geo holds the geometry of every
// resolved section; sections missing from it are unresolved.
func (s *Session) Scroll(scrollY, viewportHeight float64, geo geometry.Provider) {
	s.loop.Post(func() {
		if state, changed := s.nav.Observe(scrollY, viewportHeight, geo); changed {
			s.out.Navigation(state)
		}
	})
}

// NavigateTo smooth-scrolls to a section and closes the menu.
func (s *Session) NavigateTo(id string) {
	s.loop.Post(func() {
		before := s.nav.State()
		if !s.nav.NavigateTo(id) {
			s.logger.Debug("navigation target unresolved", zap.String("section", id))
			return
		}
		if after := s.nav.State(); after != before {
			s.out.Navigation(after)
		}
	})
}

// ToggleMenu opens or closes the mobile menu.
func (s *Session) ToggleMenu() {
	s.loop.Post(func() {
		s.out.Navigation(s.nav.ToggleMenu())
	})
}

func (s *Session) Next()               { s.dispatch(carousel.Next()) }
func (s *Session) Previous()           { s.dispatch(carousel.Previous()) }
func (s *Session) JumpTo(i int)        { s.dispatch(carousel.JumpTo(i)) }
func (s *Session) Swipe(dx float64)    { s.dispatch(carousel.Swipe(dx)) }
func (s *Session) TransitionComplete() { s.dispatch(carousel.TransitionComplete()) }

func (s *Session) dispatch(ev carousel.Event) {
	s.loop.Post(func() {
		if !s.carousel.Dispatch(ev) {
			s.logger.Debug("carousel event dropped",
				zap.Stringer("event", ev),
				zap.Stringer("phase", s.carousel.State().Phase()),
				zap.Int("items", s.carousel.State().Len()))
		}
	})
}

// Select activates key in a tab group.
func (s *Session) Select(group, key string) {
	s.loop.Post(func() {
		sel, ok := s.tabs[group]
		if !ok {
			s.logger.Debug("unknown tab group", zap.String("group", group))
			return
		}
		if !sel.Select(key) {
			s.logger.Debug("tab selection dropped", zap.String("group", group), zap.String("key", key))
		}
	})
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	Navigation navigation.State
	Carousel   carousel.State
	Tabs       map[string]tabs.State
}

// Snapshot reads the state on the loop, after every input posted before it.
// ok is false once the session is closed.
func (s *Session) Snapshot() (snap Snapshot, ok bool) {
	ok = s.loop.Call(func() {
		snap.Navigation = s.nav.State()
		snap.Carousel = s.carousel.State()
		snap.Tabs = make(map[string]tabs.State, len(s.tabs))
		for group, sel := range s.tabs {
			snap.Tabs[group] = sel.State()
		}
	})
	return snap, ok
}

// Close tears the session down: the loop stops first so no handler runs
// afterwards, then autoplay and tab timers are released. Safe to call more
// than once and from several goroutines, including mid-transition; every
// caller returns after teardown has finished.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.loop.Close()
		s.carousel.Close()
		for _, sel := range s.tabs {
			sel.Close()
		}
		s.sched.Close()
	})
}
