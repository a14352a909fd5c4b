package locks

import (
	"slices"
	"testing"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
)

// twoTurnSafe needs 36 degrees right then 36 left at 36 degrees a second.
func twoTurnSafe() SafeDialConfig {
	return SafeDialConfig{
		DialTurns:       2,
		MinRotation:     36,
		MaxRotation:     36,
		DialRotateSpeed: 10,
		DialReset:       18,
		HotspotSize:     0.15,
	}
}

var (
	dialRight = input.Sample{Held: input.ButtonRight}
	dialLeft  = input.Sample{Held: input.ButtonLeft}
)

func TestSafeDial_AlternatingTurnsOpen(t *testing.T) {
	r := &recorder{}
	s := NewSafeDial(twoTurnSafe())
	mustActivate(t, s, newEnv(r, &scriptedRNG{}))

	if got, want := s.Targets(), []int{36, -36}; !slices.Equal(got, want) {
		t.Fatalf("Targets() = %v, want %v", got, want)
	}
	if s.Direction() != 1 {
		t.Fatalf("Direction() = %d, want 1", s.Direction())
	}

	s.Tick(0.5, dialRight)
	if got := s.Turned(); !near(got, 18) {
		t.Errorf("Turned() = %v, want 18", got)
	}
	s.Tick(0.5, dialRight)
	if s.Index() != 1 || s.Direction() != -1 {
		t.Fatalf("Index, Direction = %d, %d, want 1, -1", s.Index(), s.Direction())
	}
	if r.count(lock.EventClick) != 1 {
		t.Errorf("click events = %d, want 1", r.count(lock.EventClick))
	}

	if out := tickN(s, 2, 0.5, dialLeft); out != lock.Won {
		t.Errorf("outcome = %v, want won", out)
	}
	if r.wins != 1 {
		t.Errorf("wins = %d, want 1", r.wins)
	}
}

func TestSafeDial_BackingOffRestarts(t *testing.T) {
	r := &recorder{}
	s := NewSafeDial(twoTurnSafe())
	mustActivate(t, s, newEnv(r, &scriptedRNG{}))

	tickN(s, 2, 0.5, dialRight)
	s.Tick(0.5, dialRight)

	if s.Index() != 0 {
		t.Errorf("Index() = %d, want 0 after backing off", s.Index())
	}
	if r.count(lock.EventReset) != 1 {
		t.Errorf("reset events = %d, want 1", r.count(lock.EventReset))
	}
	if s.Session().Outcome() != lock.InProgress {
		t.Errorf("outcome = %v, a reset must not end the lock", s.Session().Outcome())
	}
}

func TestSafeDial_IdleHoldsPosition(t *testing.T) {
	s := NewSafeDial(twoTurnSafe())
	mustActivate(t, s, newEnv(&recorder{}, &scriptedRNG{}))

	s.Tick(0.25, dialRight)
	s.Tick(5, input.Sample{})
	if got := s.Turned(); !near(got, 9) {
		t.Errorf("Turned() = %v after idling, want 9", got)
	}
}

func TestSafeDial_StethoscopeVolume(t *testing.T) {
	s := NewSafeDial(twoTurnSafe())
	// two draws for the turns, then the hotspot at (0.5, 0.5)
	mustActivate(t, s, newEnv(&recorder{}, &scriptedRNG{floats: []float64{0, 0, 0.5, 0.5}}))

	s.Tick(0.1, input.Sample{PointerX: 0.5, PointerY: 0.5})
	if got := s.Volume(); !near(got, 1) {
		t.Errorf("Volume() on the hotspot = %v, want 1", got)
	}
	s.Tick(0.1, input.Sample{PointerX: 0.5, PointerY: 0.575})
	if got := s.Volume(); !near(got, 0.5) {
		t.Errorf("Volume() half way out = %v, want 0.5", got)
	}
	s.Tick(0.1, input.Sample{PointerX: 0.9, PointerY: 0.9})
	if got := s.Volume(); got != 0 {
		t.Errorf("Volume() away from the hotspot = %v, want 0", got)
	}
}

func TestSafeDial_ConfigErrors(t *testing.T) {
	cases := map[string]func(*SafeDialConfig){
		"no turns":   func(c *SafeDialConfig) { c.DialTurns = 0 },
		"min zero":   func(c *SafeDialConfig) { c.MinRotation = 0 },
		"max < min":  func(c *SafeDialConfig) { c.MaxRotation = 10 },
		"no speed":   func(c *SafeDialConfig) { c.DialRotateSpeed = 0 },
		"no reset":   func(c *SafeDialConfig) { c.DialReset = 0 },
		"no hotspot": func(c *SafeDialConfig) { c.HotspotSize = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := twoTurnSafe()
			mutate(&cfg)
			if _, err := NewSafeDial(cfg).Activate(lock.Env{}); !lock.IsConfigError(err) {
				t.Errorf("Activate() error = %v, want a config error", err)
			}
		})
	}
}

func TestSafeDial_ResetCountSurvivesTurns(t *testing.T) {
	s := NewSafeDial(twoTurnSafe())
	mustActivate(t, s, newEnv(&recorder{}, &scriptedRNG{}))

	tickN(s, 2, 0.5, dialRight)
	s.Tick(0.5, dialRight)
	tickN(s, 2, 0.5, dialRight)
	if s.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", s.Index())
	}
	if got := s.Resets(); got != 1 {
		t.Errorf("Resets() = %d on the second turn, want 1", got)
	}
	if got := s.Turned(); got != 0 {
		t.Errorf("Turned() = %v at the start of a turn, want 0", got)
	}
}

func TestSafeDial_DeactivateRewinds(t *testing.T) {
	s := NewSafeDial(twoTurnSafe())
	mustActivate(t, s, newEnv(&recorder{}, &scriptedRNG{}))

	tickN(s, 2, 0.5, dialRight)
	s.Tick(0.25, dialLeft)
	s.Deactivate()

	if s.Index() != 0 || s.Direction() != 1 {
		t.Errorf("Index, Direction = %d, %d after Deactivate, want 0, 1", s.Index(), s.Direction())
	}
	if got := s.Turned(); got != 0 {
		t.Errorf("Turned() = %v after Deactivate, want 0", got)
	}
}
