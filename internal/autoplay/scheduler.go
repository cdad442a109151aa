// Package autoplay provides the cancellable periodic timer that advances a
// carousel on its own.
package autoplay

import (
	"sync"
	"time"

	"github.com/Zachkp/showcase/internal/clock"
)

// DefaultInterval is how long an item stays up before autoplay advances.
const DefaultInterval = 8 * time.Second

// Handle identifies one started schedule. The zero Handle is never issued.
type Handle uint64

// Scheduler fires callbacks periodically until they are cancelled.
// It is safe for concurrent use.
type Scheduler struct {
	clock clock.Clock

	mu      sync.Mutex
	last    Handle
	entries map[Handle]*entry
	closed  bool
}

type entry struct {
	interval time.Duration
	onTick   func()
	timer    clock.Timer
}

// New returns a Scheduler using c for time. A nil c uses the wall clock.
func New(c clock.Clock) *Scheduler {
	if c == nil {
		c = clock.Real()
	}
	return &Scheduler{clock: c, entries: make(map[Handle]*entry)}
}

// Start fires onTick every interval until the returned handle is cancelled.
// It returns the zero Handle, starting nothing, if interval is not positive
// or the scheduler is closed.
func (s *Scheduler) Start(interval time.Duration, onTick func()) Handle {
	if interval <= 0 || onTick == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	s.last++
	h := s.last
	e := &entry{interval: interval, onTick: onTick}
	s.entries[h] = e
	s.arm(h, e)
	return h
}

// arm must be called with s.mu held.
func (s *Scheduler) arm(h Handle, e *entry) {
	e.timer = s.clock.AfterFunc(e.interval, func() { s.fire(h) })
}

func (s *Scheduler) fire(h Handle) {
	s.mu.Lock()
	e, ok := s.entries[h]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.arm(h, e)
	s.mu.Unlock()

	e.onTick()
}

// Cancel stops the schedule. Cancelling the zero, an unknown or an already
// cancelled handle does nothing.
func (s *Scheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[h]; ok {
		e.timer.Stop()
		delete(s.entries, h)
	}
}

// Active reports how many schedules are running.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close cancels every schedule; later Starts are refused.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for h, e := range s.entries {
		e.timer.Stop()
		delete(s.entries, h)
	}
}
