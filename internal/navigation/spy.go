package navigation

import "github.com/Zachkp/showcase/internal/geometry"

// DefaultScrolledThreshold is the scroll offset past which the page counts
// as scrolled.
const DefaultScrolledThreshold = 50

// Spy converts a scroll position and section geometries into one active
// section. It holds no mutable state and is safe to share.
type Spy struct {
	sections          []Section
	scrolledThreshold float64
}

// NewSpy returns a Spy over sections, which must be in document order.
func NewSpy(sections []Section, scrolledThreshold float64) *Spy {
	return &Spy{
		sections:          append([]Section(nil), sections...),
		scrolledThreshold: scrolledThreshold,
	}
}

// Sections returns the registered sections in document order.
func (s *Spy) Sections() []Section {
	return append([]Section(nil), s.sections...)
}

// Has reports whether id is a registered section.
func (s *Spy) Has(id string) bool {
	for _, sec := range s.sections {
		if sec.ID == id {
			return true
		}
	}
	return false
}

// Update evaluates one scroll notification against prev.
//
// The active section is the last registered section whose top is at or
// above the viewport midpoint. Sections are walked from the bottom so a
// lower qualifying section wins. When none qualifies, or none is resolved,
// the previous active section is kept. MenuOpen is carried over unchanged.
func (s *Spy) Update(prev State, scrollY, viewportHeight float64, geo geometry.Provider) State {
	next := prev
	next.Scrolled = scrollY > s.scrolledThreshold

	if geo == nil {
		return next
	}
	midpoint := viewportHeight / 2
	for i := len(s.sections) - 1; i >= 0; i-- {
		r, ok := geo.Measure(s.sections[i].ID)
		if !ok {
			continue
		}
		if r.Top <= midpoint {
			next.ActiveSectionID = s.sections[i].ID
			break
		}
	}
	return next
}
