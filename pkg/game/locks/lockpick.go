package locks

import (
	"math"

	"go.uber.org/zap"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/engine/tolerance"
)

// pickClearance keeps the pick off the ends of its travel.
const pickClearance = 0.1

// LockpickConfig configures a Lockpick. Angles are in degrees either side
// of centre.
type LockpickConfig struct {
	Health           float64 `yaml:"health"`
	BreakSpeed       float64 `yaml:"breakSpeed"`
	RotateRange      float64 `yaml:"rotateRange"`
	Sweetspot        float64 `yaml:"sweetspot"`
	RandomSweetspot  bool    `yaml:"randomSweetspot"`
	SweetspotRange   float64 `yaml:"sweetspotRange"`
	SweetspotFalloff float64 `yaml:"sweetspotFalloff"`
	UnlockSpeed      float64 `yaml:"unlockSpeed"`
	UnlockLength     float64 `yaml:"unlockLength"`
	DelayAfterBreak  float64 `yaml:"delayAfterBreak"`
	Jitter           float64 `yaml:"jitter"`
	Tool             string  `yaml:"tool"`
}

// DefaultLockpickConfig returns the bobby pin lock defaults.
func DefaultLockpickConfig() LockpickConfig {
	return LockpickConfig{
		Health:           100,
		BreakSpeed:       1,
		RotateRange:      90,
		RandomSweetspot:  true,
		SweetspotRange:   20,
		SweetspotFalloff: 10,
		UnlockSpeed:      1,
		UnlockLength:     1,
		DelayAfterBreak:  1,
		Jitter:           1,
		Tool:             "lockpicks",
	}
}

// Validate checks the config, returning a *lock.ConfigError.
func (c LockpickConfig) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"health", c.Health},
		{"rotateRange", c.RotateRange},
		{"unlockSpeed", c.UnlockSpeed},
		{"unlockLength", c.UnlockLength},
	}
	for _, f := range positive {
		if !(f.v > 0) {
			return lock.Invalid(KindLockpick, f.name, "must be positive, got %v", f.v)
		}
	}
	if c.BreakSpeed < 0 {
		return lock.Invalid(KindLockpick, "breakSpeed", "must not be negative, got %v", c.BreakSpeed)
	}
	if c.DelayAfterBreak < 0 {
		return lock.Invalid(KindLockpick, "delayAfterBreak", "must not be negative, got %v", c.DelayAfterBreak)
	}
	if err := (tolerance.Window{Range: c.SweetspotRange, Falloff: c.SweetspotFalloff}).Validate(KindLockpick); err != nil {
		return err
	}
	if c.RandomSweetspot && c.RotateRange <= c.SweetspotRange+c.SweetspotFalloff {
		return lock.Invalid(KindLockpick, "rotateRange",
			"%v leaves no room for a random sweetspot of range %v and falloff %v",
			c.RotateRange, c.SweetspotRange, c.SweetspotFalloff)
	}
	if !c.RandomSweetspot && math.Abs(c.Sweetspot) > c.RotateRange {
		return lock.Invalid(KindLockpick, "sweetspot", "%v is outside the rotate range %v", c.Sweetspot, c.RotateRange)
	}
	return nil
}

func (c LockpickConfig) tracker(sweetspot float64) tolerance.Config {
	return tolerance.Config{
		Window: tolerance.Window{
			Target:  sweetspot,
			Range:   c.SweetspotRange,
			Falloff: c.SweetspotFalloff,
		},
		Policy:         tolerance.PolicyHealth,
		DriveRate:      c.UnlockSpeed,
		Max:            c.UnlockLength,
		ResetThreshold: c.Health,
		FailureRate:    c.BreakSpeed,
		RegressRate:    c.UnlockSpeed,
	}
}

// Lockpick is a tension lock with a breakable pick. The pick is aimed with
// the pointer while the cylinder is at rest; turning the cylinder off the
// sweetspot wears the pick until it snaps. A snapped pick is replaced from
// the inventory after a delay, and running out fails the lock.
type Lockpick struct {
	base
	cfg       LockpickConfig
	tracker   tolerance.Tracker
	sweetspot float64
	angle     float64
	reading   tolerance.Reading
	broken    bool
	turning   bool
	stuck     bool
}

// NewLockpick creates an idle lockpick lock.
func NewLockpick(cfg LockpickConfig) *Lockpick {
	return &Lockpick{base: newBase(KindLockpick), cfg: cfg}
}

// Tool is the inventory item a break consumes.
func (l *Lockpick) Tool() string {
	return l.cfg.Tool
}

// Activate inserts a fresh pick and, if configured, hides a new sweetspot.
func (l *Lockpick) Activate(env lock.Env) (lock.Handle, error) {
	if err := l.cfg.Validate(); err != nil {
		return lock.Handle{}, err
	}

	h := l.session.Begin(env)
	l.sweetspot = l.cfg.Sweetspot
	if l.cfg.RandomSweetspot {
		spread := l.cfg.RotateRange - l.cfg.SweetspotRange - l.cfg.SweetspotFalloff
		l.sweetspot = lock.RangeFloat(l.session.RNG(), -1, 1) * spread
	}
	if err := l.tracker.Configure(l.cfg.tracker(l.sweetspot)); err != nil {
		l.session.End()
		return lock.Handle{}, err
	}
	l.angle = 0
	l.broken, l.turning, l.stuck = false, false, false
	return h, nil
}

// Tick aims the pick and turns the cylinder while a turn key is held.
func (l *Lockpick) Tick(dt float64, in input.Sample) lock.Outcome {
	if !l.running() {
		return l.session.Outcome()
	}
	l.session.Steps().Advance(dt)
	if l.broken || !l.session.Active() {
		return l.session.Outcome()
	}

	turning := in.Turn() != 0 || in.IsHeld(input.ButtonRotate)
	if !turning {
		limit := l.cfg.RotateRange - pickClearance
		l.angle = clamp(l.cfg.RotateRange*(2*in.PointerX-1), -limit, limit)
	}
	l.reading = l.tracker.Sample(l.angle, turning)
	before := l.tracker.State().Failure
	state := l.tracker.Advance(dt)

	stuck := turning && (state.Failure > before || state.Reset)
	if turning && !stuck && !l.turning {
		l.session.Emit(lock.EventTurn, -1, l.tracker.Fraction())
	}
	if stuck && !l.stuck {
		l.session.Emit(lock.EventClick, -1, l.cfg.Jitter)
	}
	l.turning, l.stuck = turning && !stuck, stuck

	switch {
	case state.Reset:
		l.snap()
	case state.Completed:
		l.session.Win()
	}
	return l.session.Outcome()
}

func (l *Lockpick) snap() {
	l.broken = true
	l.turning, l.stuck = false, false
	l.session.Emit(lock.EventBreak, -1, l.angle)
	l.session.Logger().Debug("lockpick broke",
		zap.Stringer("handle", l.session.Handle()),
		zap.Float64("angle", l.angle))
	l.session.Steps().Schedule(l.cfg.DelayAfterBreak, l.replacePick)
}

func (l *Lockpick) replacePick() {
	if tools := l.session.Tools(); tools != nil {
		remaining, ok := tools.Consume(l.cfg.Tool)
		if !ok || remaining <= 0 {
			l.session.Logger().Info("out of picks", zap.String("tool", l.cfg.Tool))
			l.session.Lose()
			return
		}
	}
	l.broken = false
	l.session.Emit(lock.EventReset, -1, 0)
}

// Deactivate stops the lock.
func (l *Lockpick) Deactivate() {
	l.broken, l.turning, l.stuck = false, false, false
	l.session.End()
}

// PickHealth is the remaining health of the current pick as a fraction.
func (l *Lockpick) PickHealth() float64 {
	if l.broken {
		return 0
	}
	return 1 - l.tracker.State().Failure/l.cfg.Health
}

// Unlock is the cylinder's progress as a fraction.
func (l *Lockpick) Unlock() float64 {
	return l.tracker.Fraction()
}

func (l *Lockpick) PickAngle() float64 { return l.angle }
func (l *Lockpick) Broken() bool { return l.broken }
func (l *Lockpick) Stuck() bool { return l.stuck }
func (l *Lockpick) Sweetspot() float64 { return l.sweetspot }
func (l *Lockpick) Config() LockpickConfig { return l.cfg }
