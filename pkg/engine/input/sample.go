package input

// Button is a bit in a Sample's button masks.
type Button uint16

const (
	ButtonPrimary Button = 1 << iota // click, select, cut
	ButtonRotate                     // turn the cylinder / apply tension
	ButtonLeft                       // dial left
	ButtonRight                      // dial right
	ButtonOrbit                      // rotate the view around the lock
	ButtonAbort                      // leave the lock
)

// Sample is one frame of normalized input handed to a lock's Tick.
//
// Pointer coordinates are in lock space: 0..1 on both axes with the origin
// at the top left. Picks lists elements (dial buttons, slots) clicked this
// frame in order; Focus is the element under the pointer when HasFocus is
// set.
type Sample struct {
	PointerX, PointerY float64
	DeltaX, DeltaY     float64
	Horizontal         float64

	Held     Button
	Pressed  Button
	Released Button

	Picks    []int
	Focus    int
	HasFocus bool
}

// IsHeld reports whether b is down this frame.
func (s Sample) IsHeld(b Button) bool {
	return s.Held&b != 0
}

// JustPressed reports whether b went down this frame.
func (s Sample) JustPressed(b Button) bool {
	return s.Pressed&b != 0
}

// JustReleased reports whether b went up this frame.
func (s Sample) JustReleased(b Button) bool {
	return s.Released&b != 0
}

// Focused returns the element under the pointer.
func (s Sample) Focused() (int, bool) {
	return s.Focus, s.HasFocus
}

// Turn returns the dial direction from the horizontal axis and the
// left/right buttons: -1 left, 1 right, 0 none.
func (s Sample) Turn() int {
	switch {
	case s.Horizontal < 0 || s.IsHeld(ButtonLeft):
		return -1
	case s.Horizontal > 0 || s.IsHeld(ButtonRight):
		return 1
	default:
		return 0
	}
}
