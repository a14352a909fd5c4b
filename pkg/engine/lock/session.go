package lock

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lockworks/pkg/engine/input"
)

// Handle identifies one activation of a lock.
type Handle struct {
	ID   uuid.UUID
	Kind string
}

// Valid reports whether the handle refers to a started session.
func (h Handle) Valid() bool {
	return h.ID != uuid.Nil
}

func (h Handle) String() string {
	if !h.Valid() {
		return h.Kind + "/-"
	}
	return h.Kind + "/" + h.ID.String()
}

// Tools is the consumable inventory a lock may draw from (lockpicks).
type Tools interface {
	Count(tool string) int
	Consume(tool string) (remaining int, ok bool)
}

// Env is everything a lock receives from its host on activation.
type Env struct {
	RNG       RNG
	Bridge    Bridge
	Presenter Presenter
	Tools     Tools
	Logger    *zap.Logger
}

func (e Env) withDefaults() Env {
	if e.RNG == nil {
		e.RNG = DefaultRNG()
	}
	if e.Bridge == nil {
		e.Bridge = nopBridge{}
	}
	if e.Presenter == nil {
		e.Presenter = nopPresenter{}
	}
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	return e
}

// Game is a lock minigame driven by the host once per frame.
type Game interface {
	Kind() string
	Activate(env Env) (Handle, error)
	Tick(dt float64, in input.Sample) Outcome
	Deactivate()
	Session() *Session
}

// Session is the lifecycle shared by every lock: Idle, Active, then Won or
// Lost exactly once, back to Idle on End.
type Session struct {
	kind   string
	handle Handle
	phase  Phase
	env    Env
	steps  *StepQueue
}

// NewSession creates an idle session for a lock kind
func NewSession(kind string) *Session {
	return &Session{
		kind:  kind,
		env:   Env{}.withDefaults(),
		steps: NewStepQueue(),
	}
}

// Begin starts a new activation. Any pending steps from a previous one are
// dropped.
func (s *Session) Begin(env Env) Handle {
	s.env = env.withDefaults()
	s.steps.Clear()
	s.phase = PhaseActive
	s.handle = Handle{ID: uuid.New(), Kind: s.kind}
	s.env.Logger.Debug("lock session started",
		zap.String("kind", s.kind),
		zap.Stringer("handle", s.handle))
	return s.handle
}

// End returns the session to Idle and clears pending steps.
func (s *Session) End() {
	if s.phase == PhaseIdle {
		return
	}
	s.steps.Clear()
	s.phase = PhaseIdle
	s.Emit(EventDeactivate, -1, 0)
	s.env.Logger.Debug("lock session ended", zap.Stringer("handle", s.handle))
}

// Win resolves an active session as won. It reports false, and does
// nothing, if the session already resolved or is not active.
func (s *Session) Win() bool {
	if s.phase != PhaseActive {
		return false
	}
	s.phase = PhaseWon
	s.env.Logger.Info("lock opened", zap.Stringer("handle", s.handle))
	s.Emit(EventWin, -1, 0)
	s.env.Bridge.OnWin()
	return true
}

// Lose resolves an active session as lost.
func (s *Session) Lose() bool {
	if s.phase != PhaseActive {
		return false
	}
	s.phase = PhaseLost
	s.env.Logger.Info("lock failed", zap.Stringer("handle", s.handle))
	s.Emit(EventFail, -1, 0)
	s.env.Bridge.OnLose()
	return true
}

// Emit sends a presentation cue.
func (s *Session) Emit(kind EventKind, target int, value float64) {
	s.env.Presenter.OnVisualEvent(Event{Kind: kind, Target: target, Value: value})
}

func (s *Session) Kind() string { return s.kind }
func (s *Session) Handle() Handle { return s.handle }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Active() bool { return s.phase == PhaseActive }
func (s *Session) Outcome() Outcome { return s.phase.Outcome() }
func (s *Session) Steps() *StepQueue {
	return s.steps
}

// RNG returns the random source supplied on activation.
func (s *Session) RNG() RNG { return s.env.RNG }

// Tools returns the inventory supplied on activation, or nil.
func (s *Session) Tools() Tools { return s.env.Tools }

// Logger returns the activation's logger.
func (s *Session) Logger() *zap.Logger { return s.env.Logger }
