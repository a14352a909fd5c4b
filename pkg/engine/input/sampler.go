package input

import (
	"time"
)

// DefaultHoldWindow is how long a terminal key counts as held after its last
// (auto-repeated) press. Terminals report no key-up events.
const DefaultHoldWindow = 550 * time.Millisecond

// Sampler folds a stream of intents into per-frame Samples. It is used by
// front-ends that only see key presses, such as the terminal.
type Sampler struct {
	HoldWindow  time.Duration
	PointerStep float64

	pointerX, pointerY float64
	moveX, moveY       float64
	lastSeen           map[Action]time.Time
	lastPick           int
	lastPickAt         time.Time
	picks              []int
	prevHeld           Button
	meta               []Action
}

// actionButtons maps the held actions to sample buttons. Holding a pick key
// holds primary on that element.
var actionButtons = map[Action]Button{
	ActionRotate:    ButtonRotate,
	ActionDialLeft:  ButtonLeft,
	ActionDialRight: ButtonRight,
	ActionPrimary:   ButtonPrimary,
	ActionPick:      ButtonPrimary,
	ActionOrbit:     ButtonOrbit,
	ActionAbort:     ButtonAbort,
}

// NewSampler creates a sampler with the pointer centred
func NewSampler() *Sampler {
	return &Sampler{
		HoldWindow:  DefaultHoldWindow,
		PointerStep: 0.025,
		pointerX:    0.5,
		pointerY:    0.5,
		lastSeen:    make(map[Action]time.Time),
		lastPick:    -1,
	}
}

// Feed records one intent received at the given time.
func (s *Sampler) Feed(in Intent, at time.Time) {
	switch in.Action {
	case ActionNone:
		return
	case ActionPointerLeft:
		s.moveX -= s.PointerStep
	case ActionPointerRight:
		s.moveX += s.PointerStep
	case ActionPointerUp:
		s.moveY -= s.PointerStep
	case ActionPointerDown:
		s.moveY += s.PointerStep
	case ActionPick:
		s.picks = append(s.picks, in.Index)
		s.lastPick = in.Index
		s.lastPickAt = at
	case ActionQuit, ActionNextLock, ActionPrevLock, ActionActivate:
		s.meta = append(s.meta, in.Action)
	}
	s.lastSeen[in.Action] = at
}

// Sample builds the frame's input and resets per-frame accumulators.
func (s *Sampler) Sample(at time.Time) Sample {
	held := Button(0)
	for act, btn := range actionButtons {
		if s.recent(act, at) {
			held |= btn
		}
	}

	s.pointerX = clamp01(s.pointerX + s.moveX)
	s.pointerY = clamp01(s.pointerY + s.moveY)

	out := Sample{
		PointerX: s.pointerX,
		PointerY: s.pointerY,
		DeltaX:   s.moveX,
		DeltaY:   s.moveY,
		Held:     held,
		Pressed:  held &^ s.prevHeld,
		Released: s.prevHeld &^ held,
		Picks:    s.picks,
	}
	switch {
	case held&ButtonLeft != 0 && held&ButtonRight == 0:
		out.Horizontal = -1
	case held&ButtonRight != 0 && held&ButtonLeft == 0:
		out.Horizontal = 1
	}
	if s.lastPick >= 0 && at.Sub(s.lastPickAt) <= s.HoldWindow {
		out.Focus, out.HasFocus = s.lastPick, true
	}

	s.prevHeld = held
	s.moveX, s.moveY = 0, 0
	s.picks = nil
	return out
}

// Meta drains the non-lock intents (quit, lock switching) fed since the
// last call.
func (s *Sampler) Meta() []Action {
	m := s.meta
	s.meta = nil
	return m
}

// Reset forgets held keys, e.g. when switching locks.
func (s *Sampler) Reset() {
	clear(s.lastSeen)
	s.prevHeld = 0
	s.picks = nil
	s.lastPick = -1
	s.pointerX, s.pointerY = 0.5, 0.5
}

func (s *Sampler) recent(a Action, at time.Time) bool {
	t, ok := s.lastSeen[a]
	return ok && at.Sub(t) <= s.HoldWindow
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
