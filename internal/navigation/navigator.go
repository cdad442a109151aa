package navigation

import (
	"math"

	"github.com/Zachkp/showcase/internal/geometry"
)

// ScrollBehavior mirrors the host's scroll animation modes.
type ScrollBehavior string

const (
	ScrollSmooth  ScrollBehavior = "smooth"
	ScrollInstant ScrollBehavior = "instant"
)

// ScrollCommand asks the host to move the viewport so Top (a document
// offset) is at the top edge.
type ScrollCommand struct {
	SectionID string         `json:"section"`
	Top       float64        `json:"top"`
	Behavior  ScrollBehavior `json:"behavior"`
}

// Scroller executes scroll commands on the host.
type Scroller interface {
	ScrollTo(cmd ScrollCommand)
}

// ScrollerFunc adapts a function to Scroller.
type ScrollerFunc func(cmd ScrollCommand)

// ScrollTo implements Scroller.
func (f ScrollerFunc) ScrollTo(cmd ScrollCommand) { f(cmd) }

// offsetTolerance is how close, in pixels, the viewport must be to a target
// to count as already there.
const offsetTolerance = 0.5

// Navigator owns a NavigationState. It is not safe for concurrent use; the
// session calls it from its event loop only.
type Navigator struct {
	spy      *Spy
	scroller Scroller

	state    State
	scrollY  float64
	viewport float64
	geo      geometry.Provider

	// issued is the target of the last command sent with no scroll
	// notification observed since.
	issued *float64
}

// NewNavigator returns a Navigator in the initial state.
func NewNavigator(spy *Spy, scroller Scroller) *Navigator {
	return &Navigator{
		spy:      spy,
		scroller: scroller,
		state:    InitialState(spy.sections),
		geo:      geometry.Unresolved,
	}
}

// State returns the current NavigationState.
func (n *Navigator) State() State { return n.state }

// Observe records a scroll notification and re-evaluates the active
// section. changed reports whether the state differs from before.
func (n *Navigator) Observe(scrollY, viewportHeight float64, geo geometry.Provider) (state State, changed bool) {
	if geo == nil {
		geo = geometry.Unresolved
	}
	n.scrollY = scrollY
	n.viewport = viewportHeight
	n.geo = geo
	n.issued = nil

	prev := n.state
	n.state = n.spy.Update(prev, scrollY, viewportHeight, geo)
	return n.state, n.state != prev
}

// NavigateTo smooth-scrolls to the section and closes the menu. It returns
// false, changing nothing, when the section is unknown or its geometry is
// unresolved. When the viewport is already at the section, or the same
// command is still in flight, no new scroll command is issued.
//
// The active section is not changed here; the next Observe does that.
func (n *Navigator) NavigateTo(id string) bool {
	if !n.spy.Has(id) {
		return false
	}
	r, ok := n.geo.Measure(id)
	if !ok {
		return false
	}
	n.state.MenuOpen = false

	target := n.scrollY + r.Top
	if math.Abs(target-n.scrollY) < offsetTolerance {
		return true
	}
	if n.issued != nil && math.Abs(*n.issued-target) < offsetTolerance {
		return true
	}
	n.issued = &target
	if n.scroller != nil {
		n.scroller.ScrollTo(ScrollCommand{SectionID: id, Top: target, Behavior: ScrollSmooth})
	}
	return true
}

// ToggleMenu flips the mobile menu.
func (n *Navigator) ToggleMenu() State {
	n.state.MenuOpen = !n.state.MenuOpen
	return n.state
}
