// Package activator connects a lock minigame to the scene: it shows the
// lock when the player interacts, receives the outcome through lock.Bridge,
// and runs the scene's win or lose handlers before hiding the lock again.
package activator

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
)

var (
	// ErrMissingTool is returned by Interact when the inventory has none of
	// the lock's required tool.
	ErrMissingTool = errors.New("required tool missing")

	// ErrBusy is returned by Interact while the lock is already showing.
	ErrBusy = errors.New("lock already showing")
)

// DefaultDeactivateDelay is how long a resolved lock stays on screen.
const DefaultDeactivateDelay = 1.0

// Handler is a scene action run when the lock opens or fails.
type Handler func(a *Activator)

// Activator wraps one lock. It implements lock.Bridge.
type Activator struct {
	name         string
	game         lock.Game
	locked       bool
	alwaysShow   bool
	requiredTool string
	delay        float64

	rng       lock.RNG
	presenter lock.Presenter
	tools     lock.Tools
	logger    *zap.Logger

	onWin  []Handler
	onLose []Handler

	steps   *lock.StepQueue
	visible bool
	closing bool
	handle  lock.Handle
}

// Option configures an Activator.
type Option func(*Activator)

// WithLogger sets the logger handed to the lock.
func WithLogger(l *zap.Logger) Option {
	return func(a *Activator) { a.logger = l }
}

// WithRNG sets the random source handed to the lock on every activation.
func WithRNG(rng lock.RNG) Option {
	return func(a *Activator) { a.rng = rng }
}

// WithPresenter sets where the lock's visual events go.
func WithPresenter(p lock.Presenter) Option {
	return func(a *Activator) { a.presenter = p }
}

// WithTools sets the inventory checked for the required tool and handed
// to the lock.
func WithTools(t lock.Tools) Option {
	return func(a *Activator) { a.tools = t }
}

// WithRequiredTool overrides the tool the lock needs to be attempted.
func WithRequiredTool(tool string) Option {
	return func(a *Activator) { a.requiredTool = tool }
}

// WithDeactivateDelay sets how long a resolved lock stays on screen.
func WithDeactivateDelay(seconds float64) Option {
	return func(a *Activator) {
		if seconds >= 0 {
			a.delay = seconds
		}
	}
}

// Unlocked starts the activator already open.
func Unlocked() Option {
	return func(a *Activator) { a.locked = false }
}

// AlwaysShow keeps the lock visible when it is not being played.
func AlwaysShow() Option {
	return func(a *Activator) { a.alwaysShow = true }
}

// OnWin adds a handler run when the lock opens, or when an unlocked
// activator is used.
func OnWin(h Handler) Option {
	return func(a *Activator) { a.onWin = append(a.onWin, h) }
}

// OnLose adds a handler run when the lock fails.
func OnLose(h Handler) Option {
	return func(a *Activator) { a.onLose = append(a.onLose, h) }
}

// New creates a locked activator for game. A lock that consumes a tool
// (it has a Tool() string method) requires that tool unless
// WithRequiredTool says otherwise.
func New(name string, game lock.Game, opts ...Option) *Activator {
	a := &Activator{
		name:   name,
		game:   game,
		locked: true,
		delay:  DefaultDeactivateDelay,
		logger: zap.NewNop(),
		steps:  lock.NewStepQueue(),
	}
	if tu, ok := game.(interface{ Tool() string }); ok {
		a.requiredTool = tu.Tool()
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(zap.String("activator", name), zap.String("kind", game.Kind()))
	return a
}

// Interact is the player using the activator. A locked activator shows and
// starts its lock; an unlocked one runs the win handlers straight away.
func (a *Activator) Interact() error {
	if !a.locked {
		a.logger.Debug("already unlocked")
		a.run(a.onWin)
		return nil
	}
	if a.visible && a.game.Session().Phase() != lock.PhaseIdle {
		return fmt.Errorf("interact with %s: %w", a.name, ErrBusy)
	}
	if a.requiredTool != "" && a.tools != nil && a.tools.Count(a.requiredTool) <= 0 {
		a.logger.Info("missing tool", zap.String("tool", a.requiredTool))
		return fmt.Errorf("interact with %s: %w: %s", a.name, ErrMissingTool, a.requiredTool)
	}

	h, err := a.game.Activate(lock.Env{
		RNG:       a.rng,
		Bridge:    a,
		Presenter: a.presenter,
		Tools:     a.tools,
		Logger:    a.logger,
	})
	if err != nil {
		a.logger.Warn("lock failed to start", zap.Error(err))
		return fmt.Errorf("activate %s: %w", a.name, err)
	}
	a.handle = h
	a.visible = true
	a.closing = false
	a.steps.Clear()
	a.logger.Info("lock shown", zap.Stringer("handle", h))
	return nil
}

// OnWin is called by the lock when it opens.
func (a *Activator) OnWin() {
	a.locked = false
	a.closing = true
	a.logger.Info("unlocked", zap.Stringer("handle", a.handle))
	a.steps.Schedule(a.delay, func() {
		a.run(a.onWin)
		a.hide()
	})
}

// OnLose is called by the lock when it fails.
func (a *Activator) OnLose() {
	a.closing = true
	a.logger.Info("lock attempt failed", zap.Stringer("handle", a.handle))
	a.steps.Schedule(a.delay, func() {
		a.run(a.onLose)
		a.hide()
	})
}

// Tick drives the shown lock for one frame. Abort leaves the lock without
// an outcome.
func (a *Activator) Tick(dt float64, in input.Sample) lock.Outcome {
	a.steps.Advance(dt)
	if !a.visible {
		return lock.InProgress
	}
	s := a.game.Session()
	if s.Active() && !a.closing && in.JustPressed(input.ButtonAbort) {
		a.Deactivate()
		return lock.InProgress
	}
	if !s.Active() {
		return s.Outcome()
	}
	return a.game.Tick(dt, in)
}

// Deactivate stops the lock and hides it. Handlers for an outcome already
// reported still run.
func (a *Activator) Deactivate() {
	if !a.visible {
		return
	}
	if a.closing {
		for !a.steps.Empty() {
			a.steps.Advance(a.delay)
		}
		return
	}
	a.logger.Info("lock abandoned", zap.Stringer("handle", a.handle))
	a.hide()
}

func (a *Activator) hide() {
	a.game.Deactivate()
	a.visible = a.alwaysShow
	a.closing = false
}

func (a *Activator) run(handlers []Handler) {
	for _, h := range handlers {
		h(a)
	}
}

// Playing reports whether the lock is on screen and still being played.
func (a *Activator) Playing() bool {
	return a.visible && a.game.Session().Active()
}

func (a *Activator) Name() string { return a.name }
func (a *Activator) Game() lock.Game { return a.game }
func (a *Activator) Locked() bool { return a.locked }
func (a *Activator) Visible() bool { return a.visible }
func (a *Activator) Closing() bool { return a.closing }
func (a *Activator) RequiredTool() string { return a.requiredTool }
func (a *Activator) DeactivateDelay() float64 { return a.delay }
func (a *Activator) Handle() lock.Handle { return a.handle }
