package locks

import (
	"math"
	"testing"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
)

// recorder is both the bridge and the presenter of a lock under test.
type recorder struct {
	events       []lock.Event
	wins, losses int
}

func (r *recorder) OnVisualEvent(ev lock.Event) { r.events = append(r.events, ev) }
func (r *recorder) OnWin()                      { r.wins++ }
func (r *recorder) OnLose()                     { r.losses++ }

func (r *recorder) count(kind lock.EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last(kind lock.EventKind) (lock.Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return lock.Event{}, false
}

// scriptedRNG replays fixed draws, cycling when it runs out. With no ints
// IntN returns 0; with no floats Float64 returns 0.
type scriptedRNG struct {
	ints   []int
	floats []float64
	i, f   int
}

func (s *scriptedRNG) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.i%len(s.ints)]
	s.i++
	return v % n
}

func (s *scriptedRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.f%len(s.floats)]
	s.f++
	return v
}

type fakeTools map[string]int

func (f fakeTools) Count(tool string) int { return f[tool] }

func (f fakeTools) Consume(tool string) (int, bool) {
	if f[tool] <= 0 {
		return 0, false
	}
	f[tool]--
	return f[tool], true
}

func newEnv(r *recorder, rng lock.RNG) lock.Env {
	return lock.Env{RNG: rng, Bridge: r, Presenter: r}
}

func mustActivate(t *testing.T, g lock.Game, env lock.Env) lock.Handle {
	t.Helper()
	h, err := g.Activate(env)
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if !h.Valid() {
		t.Fatalf("Activate() handle %v is not valid", h)
	}
	return h
}

func tickN(g lock.Game, n int, dt float64, in input.Sample) lock.Outcome {
	var out lock.Outcome
	for i := 0; i < n; i++ {
		out = g.Tick(dt, in)
	}
	return out
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestKinds_AllGamesReportTheirKind(t *testing.T) {
	games := []lock.Game{
		NewDialPad(DefaultDialPadConfig()),
		NewCylinder(DefaultCylinderConfig()),
		NewLockpick(DefaultLockpickConfig()),
		NewSafeDial(DefaultSafeDialConfig()),
		NewComboDial(DefaultComboDialConfig()),
		NewWirePanel(DefaultWirePanelConfig()),
		NewBomb(DefaultBombConfig()),
	}
	kinds := Kinds()
	if len(games) != len(kinds) {
		t.Fatalf("len(Kinds()) = %d, want %d", len(kinds), len(games))
	}
	for i, g := range games {
		if g.Kind() != kinds[i] {
			t.Errorf("games[%d].Kind() = %q, want %q", i, g.Kind(), kinds[i])
		}
	}
}

func TestDefaults_ActivateWithSeededRNG(t *testing.T) {
	games := []lock.Game{
		NewDialPad(DefaultDialPadConfig()),
		NewCylinder(DefaultCylinderConfig()),
		NewLockpick(DefaultLockpickConfig()),
		NewSafeDial(DefaultSafeDialConfig()),
		NewComboDial(DefaultComboDialConfig()),
		NewWirePanel(DefaultWirePanelConfig()),
		NewBomb(DefaultBombConfig()),
	}
	for _, g := range games {
		r := &recorder{}
		mustActivate(t, g, newEnv(r, lock.NewSeededRNG(7)))
		if out := g.Tick(1.0/60, input.Sample{PointerX: 0.5, PointerY: 0.5}); out.Terminal() {
			t.Errorf("%s resolved to %v on its first frame", g.Kind(), out)
		}
		g.Deactivate()
		if g.Session().Phase() != lock.PhaseIdle {
			t.Errorf("%s phase = %v after Deactivate, want idle", g.Kind(), g.Session().Phase())
		}
		if r.count(lock.EventDeactivate) != 1 {
			t.Errorf("%s emitted %d deactivate events, want 1", g.Kind(), r.count(lock.EventDeactivate))
		}
	}
}

func TestTick_IdleLockDoesNothing(t *testing.T) {
	b := NewBomb(DefaultBombConfig())
	if out := b.Tick(5, input.Sample{}); out != lock.InProgress {
		t.Errorf("Tick on idle bomb = %v, want in progress", out)
	}
	if b.TimeLeft() != 0 {
		t.Errorf("idle bomb clock moved to %v", b.TimeLeft())
	}
}
