// Package carousel implements the rotating project showcase.
//
// The state machine is a pure reducer: Reduce(state, event) returns the next
// state and whether the event was accepted. Engine wraps it with the
// autoplay re-arm rule and delivers render descriptors; it is confined to
// the owning session's event loop.
package carousel

// Direction is the side the next item enters from.
type Direction int

const (
	Backward Direction = -1
	Still    Direction = 0
	Forward  Direction = 1
)

// Item is one showcased project. The engine never looks inside it.
type Item struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Link        string   `json:"link,omitempty"`
	RepoLink    string   `json:"repoLink,omitempty"`
}

// Phase is the coarse state of the machine.
type Phase int

const (
	Idle Phase = iota
	Transitioning
)

func (p Phase) String() string {
	if p == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// State is the full carousel state. Items is shared between states and must
// not be modified.
type State struct {
	Items         []Item
	CurrentIndex  int
	Direction     Direction
	Transitioning bool
}

// NewState starts at the first item with no transition in flight.
func NewState(items []Item) State {
	return State{Items: items}
}

// Len is the number of items.
func (s State) Len() int { return len(s.Items) }

// Enabled reports whether the carousel has anything to show. A disabled
// carousel ignores every event.
func (s State) Enabled() bool { return len(s.Items) > 0 }

// Phase reports Idle or Transitioning.
func (s State) Phase() Phase {
	if s.Transitioning {
		return Transitioning
	}
	return Idle
}

// Current returns the item on display.
func (s State) Current() (Item, bool) {
	if !s.Enabled() {
		return Item{}, false
	}
	return s.Items[s.CurrentIndex], true
}

// RenderDescriptor is what a renderer needs to draw the carousel. The
// renderer animates the current item in from Direction and reports
// TransitionComplete exactly once when a transition finishes.
type RenderDescriptor struct {
	Items         []Item    `json:"items"`
	CurrentIndex  int       `json:"currentIndex"`
	Direction     Direction `json:"direction"`
	Transitioning bool      `json:"transitioning"`
}

// Describe builds the descriptor for s.
func Describe(s State) RenderDescriptor {
	items := s.Items
	if items == nil {
		items = []Item{}
	}
	return RenderDescriptor{
		Items:         items,
		CurrentIndex:  s.CurrentIndex,
		Direction:     s.Direction,
		Transitioning: s.Transitioning,
	}
}
