package renderer

import (
	"go.uber.org/zap"

	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/state"
)

// FlashTime is how long a press, click or beep stays lit.
const FlashTime = 0.25

// EventPresenter turns lock cues into something a front-end can draw: the
// rare ones (breaks, resets, outcomes) go to the message log, the frequent
// ones light up their target for FlashTime seconds.
type EventPresenter struct {
	game   *state.Game
	logger *zap.Logger

	flash     lock.Event
	flashLeft float64
	turning   bool
}

// NewEventPresenter creates a presenter writing to g's message log.
func NewEventPresenter(g *state.Game, logger *zap.Logger) *EventPresenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventPresenter{game: g, logger: logger, flash: lock.Event{Target: -1}}
}

// Bind sets the game the presenter writes to. The presenter has to exist
// before the game's locks are built, so it is bound afterwards.
func (p *EventPresenter) Bind(g *state.Game) {
	p.game = g
}

// OnVisualEvent implements lock.Presenter.
func (p *EventPresenter) OnVisualEvent(ev lock.Event) {
	if ev.Kind != lock.EventTurn {
		p.logger.Debug("lock event",
			zap.Stringer("kind", ev.Kind),
			zap.Int("target", ev.Target),
			zap.Float64("value", ev.Value))
	}

	switch ev.Kind {
	case lock.EventPress, lock.EventClick, lock.EventBeep:
		p.flash, p.flashLeft = ev, FlashTime
	case lock.EventTurn:
		p.turning = true
	case lock.EventBreak:
		p.message("HAZARD{GT{MSG_PICK_BROKE}}")
	case lock.EventReset:
		p.message("SUBTLE{GT{MSG_RESET}}")
	case lock.EventWin:
		p.message("OK{GT{MSG_WIN}}")
	case lock.EventFail:
		p.message("DENIED{GT{MSG_FAIL}}")
	case lock.EventDeactivate:
		p.flash, p.flashLeft = lock.Event{Target: -1}, 0
	}
}

func (p *EventPresenter) message(msg string) {
	if p.game != nil {
		p.game.AddMessage(msg)
	}
}

// Advance ages the current flash by dt seconds and clears the turning flag.
func (p *EventPresenter) Advance(dt float64) {
	p.turning = false
	if p.flashLeft <= 0 {
		return
	}
	p.flashLeft -= dt
	if p.flashLeft <= 0 {
		p.flash = lock.Event{Target: -1}
	}
}

// Flash returns the cue still lit, if any.
func (p *EventPresenter) Flash() (lock.Event, bool) {
	return p.flash, p.flashLeft > 0
}

// Turning reports whether a turn cue arrived since the last Advance.
func (p *EventPresenter) Turning() bool {
	return p.turning
}
