// Package tabs implements the panel pickers of the skills and experience
// sections: one active key per group and a short timed guard that swallows
// selections while the swap animation plays.
package tabs

import (
	"time"

	"github.com/Zachkp/showcase/internal/clock"
)

// DefaultGuard is how long a selection blocks the next one.
const DefaultGuard = 500 * time.Millisecond

// State is what the host renders for one group.
type State struct {
	Group     string `json:"group"`
	Active    string `json:"active"`
	Animating bool   `json:"animating"`
}

// Selector holds the active key of one group. Like the carousel engine it
// is confined to the owning event loop; the guard release is delivered
// there through post.
type Selector struct {
	group  string
	keys   []string
	active string

	guard   time.Duration
	clock   clock.Clock
	post    func(fn func()) bool
	onState func(State)

	animating bool
	timer     clock.Timer
	gen       uint64
	closed    bool
}

// NewSelector builds a selector over keys with the first key active.
// onState, if set, receives every state change.
func NewSelector(group string, keys []string, guard time.Duration, c clock.Clock, post func(fn func()) bool, onState func(State)) *Selector {
	if guard <= 0 {
		guard = DefaultGuard
	}
	if c == nil {
		c = clock.Real()
	}
	s := &Selector{
		group:   group,
		keys:    append([]string(nil), keys...),
		guard:   guard,
		clock:   c,
		post:    post,
		onState: onState,
	}
	if len(s.keys) > 0 {
		s.active = s.keys[0]
	}
	return s
}

// State returns the group's current state.
func (s *Selector) State() State {
	return State{Group: s.group, Active: s.active, Animating: s.animating}
}

// Select activates key. It is ignored when key is unknown or already
// active, or while the guard from the previous selection is held.
func (s *Selector) Select(key string) bool {
	if s.closed || s.animating || key == s.active || !s.has(key) {
		return false
	}
	s.active = key
	s.animating = true
	s.gen++
	gen := s.gen
	post := s.post
	s.timer = s.clock.AfterFunc(s.guard, func() {
		if post != nil {
			post(func() { s.release(gen) })
		}
	})
	s.emit()
	return true
}

func (s *Selector) release(gen uint64) {
	if s.closed || gen != s.gen {
		return
	}
	s.animating = false
	s.timer = nil
	s.emit()
}

// Close stops a pending guard release.
func (s *Selector) Close() {
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Selector) has(key string) bool {
	for _, k := range s.keys {
		if k == key {
			return true
		}
	}
	return false
}

func (s *Selector) emit() {
	if s.onState != nil {
		s.onState(s.State())
	}
}
