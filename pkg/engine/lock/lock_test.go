package lock

import (
	"errors"
	"testing"
)

type countingBridge struct {
	wins, losses int
}

func (b *countingBridge) OnWin()  { b.wins++ }
func (b *countingBridge) OnLose() { b.losses++ }

func TestStepQueue_RunsInOrderAfterDelays(t *testing.T) {
	q := NewStepQueue()
	var got []int
	q.Schedule(1, func() { got = append(got, 1) })
	q.Schedule(0.5, func() { got = append(got, 2) })
	q.Schedule(0, func() { got = append(got, 3) })

	q.Advance(0.75)
	if len(got) != 0 {
		t.Fatalf("after 0.75s ran %v, want nothing", got)
	}
	q.Advance(0.25)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("after 1.0s ran %v, want [1]", got)
	}
	q.Advance(0.5)
	if len(got) != 3 {
		t.Fatalf("after 1.5s ran %v, want [1 2 3]", got)
	}
	if !q.Empty() {
		t.Errorf("Pending() = %d, want 0", q.Pending())
	}
}

func TestStepQueue_LargeTickRunsSeveralSteps(t *testing.T) {
	q := NewStepQueue()
	n := 0
	for i := 0; i < 4; i++ {
		q.Schedule(0.25, func() { n++ })
	}
	q.Advance(0.8)
	if n != 3 {
		t.Errorf("ran %d steps after 0.8s, want 3", n)
	}
}

func TestStepQueue_ClearDropsPending(t *testing.T) {
	q := NewStepQueue()
	ran := false
	q.Schedule(0.1, func() { ran = true })
	q.Clear()
	q.Advance(1)
	if ran {
		t.Error("cleared step ran")
	}
}

func TestStepQueue_ActionCanClearQueue(t *testing.T) {
	q := NewStepQueue()
	second := false
	q.Schedule(0, func() { q.Clear() })
	q.Schedule(0, func() { second = true })
	q.Advance(0.1)
	if second {
		t.Error("step after Clear still ran")
	}
}

func TestSession_OutcomeFiresOnce(t *testing.T) {
	b := &countingBridge{}
	var events []EventKind
	s := NewSession("test")
	s.Begin(Env{Bridge: b, Presenter: PresenterFunc(func(ev Event) { events = append(events, ev.Kind) })})

	if !s.Win() {
		t.Fatal("Win() on active session = false, want true")
	}
	if s.Win() || s.Lose() {
		t.Error("second resolution accepted")
	}
	if b.wins != 1 || b.losses != 0 {
		t.Errorf("bridge wins=%d losses=%d, want 1/0", b.wins, b.losses)
	}
	if s.Outcome() != Won {
		t.Errorf("Outcome() = %v, want won", s.Outcome())
	}
	if len(events) != 1 || events[0] != EventWin {
		t.Errorf("events = %v, want [win]", events)
	}
}

func TestSession_EndReturnsToIdle(t *testing.T) {
	s := NewSession("test")
	h := s.Begin(Env{})
	if !h.Valid() {
		t.Fatal("Begin returned invalid handle")
	}
	ran := false
	s.Steps().Schedule(0, func() { ran = true })
	s.Lose()
	s.End()
	s.Steps().Advance(1)
	if ran {
		t.Error("step survived End")
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", s.Phase())
	}
	if s.Win() {
		t.Error("Win() on idle session = true, want false")
	}
	h2 := s.Begin(Env{})
	if h2.ID == h.ID {
		t.Error("second activation reused the handle")
	}
}

func TestSeededRNG_Replays(t *testing.T) {
	a, b := NewSeededRNG(7), NewSeededRNG(7)
	for i := 0; i < 10; i++ {
		if x, y := a.IntN(100), b.IntN(100); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestConfigError_Matching(t *testing.T) {
	err := error(Invalid("dialpad", "buttons", "must be at least 1, got %d", 0))
	if !IsConfigError(err) {
		t.Error("IsConfigError = false, want true")
	}
	if want := "invalid dialpad config: buttons must be at least 1, got 0"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(ErrNotActive, ErrInvalidOperation) {
		t.Error("ErrNotActive does not wrap ErrInvalidOperation")
	}
}
