package input

// Frame is one frame of device state from a front-end that reports key
// releases, such as a window. Keys are given as binding codes.
type Frame struct {
	Held    []string
	Pressed []string

	// Pointer in lock space; Wheel is the scroll this frame.
	PointerX, PointerY float64
	Wheel              float64

	// Mouse buttons held, already mapped to sample buttons.
	Mouse Button
	// Clicked is set when the primary mouse button went down this frame.
	Clicked bool

	// Element under the pointer.
	Focus    int
	HasFocus bool
}

// FrameSampler turns Frames into Samples. Unlike Sampler it needs no hold
// window: a key is held exactly while the device says it is.
type FrameSampler struct {
	prevHeld       Button
	lastX, lastY   float64
	pointerStarted bool
}

// Sample builds the frame's input and returns the meta actions (quit, lock
// switching) pressed this frame.
func (f *FrameSampler) Sample(fr Frame) (Sample, []Action) {
	out := Sample{
		PointerX: clamp01(fr.PointerX),
		PointerY: clamp01(fr.PointerY),
		Focus:    fr.Focus,
		HasFocus: fr.HasFocus,
	}
	if f.pointerStarted {
		out.DeltaX, out.DeltaY = out.PointerX-f.lastX, out.PointerY-f.lastY
	}
	f.lastX, f.lastY, f.pointerStarted = out.PointerX, out.PointerY, true

	held := fr.Mouse
	for _, code := range fr.Held {
		in := MapToIntent(RawInput{Code: code})
		held |= actionButtons[in.Action]
		if in.Action == ActionPick {
			out.Focus, out.HasFocus = in.Index, true
		}
	}

	var meta []Action
	for _, code := range fr.Pressed {
		in := MapToIntent(RawInput{Code: code})
		switch in.Action {
		case ActionPick:
			out.Picks = append(out.Picks, in.Index)
		case ActionQuit, ActionNextLock, ActionPrevLock, ActionActivate:
			meta = append(meta, in.Action)
		}
	}
	if fr.Clicked && fr.HasFocus {
		out.Picks = append(out.Picks, fr.Focus)
	}

	out.Held = held
	out.Pressed = held &^ f.prevHeld
	out.Released = f.prevHeld &^ held
	f.prevHeld = held

	switch {
	case held&ButtonLeft != 0 && held&ButtonRight == 0:
		out.Horizontal = -1
	case held&ButtonRight != 0 && held&ButtonLeft == 0:
		out.Horizontal = 1
	case fr.Wheel > 0:
		out.Horizontal = -1
	case fr.Wheel < 0:
		out.Horizontal = 1
	}
	return out, meta
}

// Reset forgets held buttons and the last pointer position.
func (f *FrameSampler) Reset() {
	f.prevHeld = 0
	f.pointerStarted = false
}
