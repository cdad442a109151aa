package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/showcase/internal/geometry"
)

type recordingScroller struct {
	cmds []ScrollCommand
}

func (r *recordingScroller) ScrollTo(cmd ScrollCommand) { r.cmds = append(r.cmds, cmd) }

func newTestNavigator() (*Navigator, *recordingScroller) {
	rec := &recordingScroller{}
	spy := NewSpy(Register("hero", "about", "projects"), DefaultScrolledThreshold)
	return NewNavigator(spy, rec), rec
}

func TestNavigator_InitialState(t *testing.T) {
	nav, _ := newTestNavigator()
	assert.Equal(t, State{ActiveSectionID: "hero"}, nav.State())
}

func TestNavigator_NavigateToIssuesSmoothScrollAndClosesMenu(t *testing.T) {
	nav, rec := newTestNavigator()
	nav.Observe(100, 800, geometry.Snapshot{
		"hero":     {Top: -100},
		"about":    {Top: 700},
		"projects": {Top: 1500},
	})
	nav.ToggleMenu()
	require.True(t, nav.State().MenuOpen)

	ok := nav.NavigateTo("projects")
	require.True(t, ok)
	require.Len(t, rec.cmds, 1)
	assert.Equal(t, ScrollCommand{SectionID: "projects", Top: 1600, Behavior: ScrollSmooth}, rec.cmds[0])
	assert.False(t, nav.State().MenuOpen)

	// The highlight only follows once the scroll is observed.
	assert.Equal(t, "hero", nav.State().ActiveSectionID)
	state, changed := nav.Observe(1600, 800, geometry.Snapshot{
		"hero":     {Top: -1600},
		"about":    {Top: -800},
		"projects": {Top: 0},
	})
	assert.True(t, changed)
	assert.Equal(t, "projects", state.ActiveSectionID)
}

func TestNavigator_UnresolvedTargetIsIgnored(t *testing.T) {
	nav, rec := newTestNavigator()
	nav.ToggleMenu()

	// No geometry observed yet.
	assert.False(t, nav.NavigateTo("about"))

	nav.Observe(0, 800, geometry.Snapshot{"hero": {Top: 0}})
	assert.False(t, nav.NavigateTo("about"))
	assert.False(t, nav.NavigateTo("nowhere"))

	assert.Empty(t, rec.cmds)
	assert.True(t, nav.State().MenuOpen, "an ignored navigation leaves the menu alone")
}

func TestNavigator_Idempotent(t *testing.T) {
	nav, rec := newTestNavigator()
	geo := geometry.Snapshot{"hero": {Top: -500}, "about": {Top: 0}, "projects": {Top: 900}}
	nav.Observe(500, 800, geo)

	// Already at about.
	assert.True(t, nav.NavigateTo("about"))
	assert.True(t, nav.NavigateTo("about"))
	assert.Empty(t, rec.cmds)

	// Twice in a row before any scroll notification: one command.
	assert.True(t, nav.NavigateTo("projects"))
	assert.True(t, nav.NavigateTo("projects"))
	assert.Len(t, rec.cmds, 1)

	// After the viewport moved, a new navigation issues again.
	nav.Observe(700, 800, geometry.Snapshot{"hero": {Top: -700}, "about": {Top: -200}, "projects": {Top: 700}})
	assert.True(t, nav.NavigateTo("projects"))
	require.Len(t, rec.cmds, 2)
	assert.Equal(t, 1400.0, rec.cmds[1].Top)
}

func TestNavigator_NilScroller(t *testing.T) {
	spy := NewSpy(Register("hero"), DefaultScrolledThreshold)
	nav := NewNavigator(spy, nil)
	nav.Observe(0, 800, geometry.Snapshot{"hero": {Top: 300}})
	assert.True(t, nav.NavigateTo("hero"))
}

func TestNavigator_ObserveReportsChange(t *testing.T) {
	nav, _ := newTestNavigator()
	geo := geometry.Snapshot{"hero": {Top: 0}}

	_, changed := nav.Observe(0, 800, geo)
	assert.False(t, changed)

	_, changed = nav.Observe(60, 800, geo)
	assert.True(t, changed)

	_, changed = nav.Observe(70, 800, geo)
	assert.False(t, changed)
}

func TestNavigator_ToggleMenu(t *testing.T) {
	nav, _ := newTestNavigator()
	assert.True(t, nav.ToggleMenu().MenuOpen)
	assert.False(t, nav.ToggleMenu().MenuOpen)
}
