package carousel

import "fmt"

// Kind names a carousel event.
type Kind int

const (
	KindNext Kind = iota + 1
	KindPrevious
	KindJumpTo
	KindSwipe
	KindAutoplayTick
	KindTransitionComplete
)

var kindNames = map[Kind]string{
	KindNext:               "next",
	KindPrevious:           "previous",
	KindJumpTo:             "jump_to",
	KindSwipe:              "swipe",
	KindAutoplayTick:       "autoplay_tick",
	KindTransitionComplete: "transition_complete",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is an immutable input to the state machine. Index is used by
// JumpTo, DX by Swipe.
type Event struct {
	Kind  Kind
	Index int
	DX    float64
}

func Next() Event               { return Event{Kind: KindNext} }
func Previous() Event           { return Event{Kind: KindPrevious} }
func JumpTo(i int) Event        { return Event{Kind: KindJumpTo, Index: i} }
func Swipe(dx float64) Event    { return Event{Kind: KindSwipe, DX: dx} }
func AutoplayTick() Event       { return Event{Kind: KindAutoplayTick} }
func TransitionComplete() Event { return Event{Kind: KindTransitionComplete} }

func (e Event) String() string {
	switch e.Kind {
	case KindJumpTo:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Index)
	case KindSwipe:
		return fmt.Sprintf("%s(%g)", e.Kind, e.DX)
	default:
		return e.Kind.String()
	}
}
