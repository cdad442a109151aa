package carousel

// DefaultSwipeThreshold is the horizontal travel, in pixels, a swipe needs
// before it counts. Travel strictly inside (-threshold, threshold) is ignored.
const DefaultSwipeThreshold = 100

// Rules are the tunables of the state machine.
type Rules struct {
	SwipeThreshold float64
}

// DefaultRules returns the stock tunables.
func DefaultRules() Rules {
	return Rules{SwipeThreshold: DefaultSwipeThreshold}
}

// Reduce applies e to s. accepted is false when the event was dropped: the
// carousel is empty, a transition is in flight, the jump target is invalid
// or current, a swipe fell in the dead zone, or a completion arrived while
// idle. A dropped event returns s unchanged.
func Reduce(s State, e Event, r Rules) (next State, accepted bool) {
	if !s.Enabled() {
		return s, false
	}
	if e.Kind == KindTransitionComplete {
		if !s.Transitioning {
			return s, false
		}
		s.Transitioning = false
		return s, true
	}
	if s.Transitioning {
		return s, false
	}

	n := s.Len()
	switch e.Kind {
	case KindNext, KindAutoplayTick:
		return advance(s, (s.CurrentIndex+1)%n, Forward), true
	case KindPrevious:
		return advance(s, (s.CurrentIndex-1+n)%n, Backward), true
	case KindJumpTo:
		if e.Index < 0 || e.Index >= n || e.Index == s.CurrentIndex {
			return s, false
		}
		// Raw index comparison, not cyclic distance: 0 -> n-1 enters forward,
		// n-1 -> 0 enters backward.
		dir := Backward
		if e.Index > s.CurrentIndex {
			dir = Forward
		}
		return advance(s, e.Index, dir), true
	case KindSwipe:
		switch {
		case e.DX <= -r.SwipeThreshold:
			return Reduce(s, Next(), r)
		case e.DX >= r.SwipeThreshold:
			return Reduce(s, Previous(), r)
		}
		return s, false
	}
	return s, false
}

func advance(s State, index int, dir Direction) State {
	s.CurrentIndex = index
	s.Direction = dir
	s.Transitioning = true
	return s
}

// NeedsRearm reports whether the autoplay countdown must restart after a
// move from prev to next: any change to the current index or the transition
// guard resets it to a full interval.
func NeedsRearm(prev, next State) bool {
	return prev.CurrentIndex != next.CurrentIndex || prev.Transitioning != next.Transitioning
}
