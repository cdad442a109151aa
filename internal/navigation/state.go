// Package navigation tracks which page section is in view and moves the
// viewport between sections.
//
// Spy maps a scroll position and the current section geometries to one
// active section. Navigator owns the NavigationState, feeds scroll
// notifications through the Spy, and issues smooth-scroll commands. The
// highlight after a navigation is eventually consistent: it only changes
// once a later scroll notification is evaluated.
package navigation

// Section is a registered page section. Order is its position in the
// document, assigned at registration.
type Section struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// State is what the host uses to render the navigation bar.
type State struct {
	ActiveSectionID string `json:"activeSection"`
	MenuOpen        bool   `json:"menuOpen"`
	Scrolled        bool   `json:"scrolled"`
}

// Register builds the ordered section list from ids in document order.
// Empty and duplicate ids are skipped.
func Register(ids ...string) []Section {
	seen := make(map[string]bool, len(ids))
	sections := make([]Section, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		sections = append(sections, Section{ID: id, Order: len(sections)})
	}
	return sections
}

// InitialState is the state before the first measurement: the first
// registered section is active.
func InitialState(sections []Section) State {
	if len(sections) == 0 {
		return State{}
	}
	return State{ActiveSectionID: sections[0].ID}
}
