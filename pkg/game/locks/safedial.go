package locks

import (
	"math"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/engine/tolerance"
)

// degreesPerUnit converts dial speed (units per second) to degrees.
const degreesPerUnit = 3.6

// SafeDialConfig configures a SafeDial.
type SafeDialConfig struct {
	DialTurns       int     `yaml:"dialTurns"`
	MinRotation     float64 `yaml:"minRotation"`
	MaxRotation     float64 `yaml:"maxRotation"`
	DialRotateSpeed float64 `yaml:"dialRotateSpeed"`
	DialReset       float64 `yaml:"dialReset"`
	HotspotSize     float64 `yaml:"hotspotSize"`
}

// DefaultSafeDialConfig returns the four turn safe defaults.
func DefaultSafeDialConfig() SafeDialConfig {
	return SafeDialConfig{
		DialTurns:       4,
		MinRotation:     30,
		MaxRotation:     180,
		DialRotateSpeed: 10,
		DialReset:       20,
		HotspotSize:     0.15,
	}
}

// Validate checks the config, returning a *lock.ConfigError.
func (c SafeDialConfig) Validate() error {
	if c.DialTurns < 1 {
		return lock.Invalid(KindSafeDial, "dialTurns", "must be at least 1, got %d", c.DialTurns)
	}
	if c.MinRotation < 1 || c.MaxRotation < c.MinRotation {
		return lock.Invalid(KindSafeDial, "minMaxRotation", "need 1 <= min <= max, got %v..%v", c.MinRotation, c.MaxRotation)
	}
	if c.DialRotateSpeed <= 0 {
		return lock.Invalid(KindSafeDial, "dialRotateSpeed", "must be positive, got %v", c.DialRotateSpeed)
	}
	if c.DialReset <= 0 {
		return lock.Invalid(KindSafeDial, "dialReset", "must be positive, got %v", c.DialReset)
	}
	if c.HotspotSize <= 0 {
		return lock.Invalid(KindSafeDial, "hotspotSize", "must be positive, got %v", c.HotspotSize)
	}
	return nil
}

// SafeDial is a turn-count safe: the dial must be turned a hidden number of
// degrees one way, then the other, for each of its turns. Backing off a turn
// by DialReset degrees starts the combination over. A stethoscope reports
// how close the pointer is to a hidden hotspot.
type SafeDial struct {
	base
	cfg       SafeDialConfig
	targets   []int
	index     int
	tracker   tolerance.Tracker
	hotspot   tolerance.PlanarWindow
	volume    float64
	dialAngle float64
	turning   bool
}

// NewSafeDial creates an idle safe dial.
func NewSafeDial(cfg SafeDialConfig) *SafeDial {
	return &SafeDial{base: newBase(KindSafeDial), cfg: cfg}
}

// Activate draws a new combination and hotspot.
func (s *SafeDial) Activate(env lock.Env) (lock.Handle, error) {
	if err := s.cfg.Validate(); err != nil {
		return lock.Handle{}, err
	}

	h := s.session.Begin(env)
	rng := s.session.RNG()
	s.targets = make([]int, s.cfg.DialTurns)
	sign := 1
	for i := range s.targets {
		s.targets[i] = int(math.Round(lock.RangeFloat(rng, s.cfg.MinRotation, s.cfg.MaxRotation))) * sign
		sign = -sign
	}
	s.hotspot = tolerance.PlanarWindow{
		Center:  tolerance.Point{X: rng.Float64(), Y: rng.Float64()},
		Falloff: s.cfg.HotspotSize,
	}
	s.dialAngle, s.volume = 0, 0
	s.turning = false
	s.index = 0
	rate := s.cfg.DialRotateSpeed * degreesPerUnit
	err := s.tracker.Configure(tolerance.Config{
		Window:         tolerance.Window{Target: float64(s.Direction()), Range: 0.5},
		Policy:         tolerance.PolicyNet,
		DriveRate:      rate,
		Max:            math.Abs(float64(s.targets[0])),
		ResetThreshold: s.cfg.DialReset,
		FailureRate:    rate,
	})
	if err != nil {
		s.session.End()
		return lock.Handle{}, err
	}
	return h, nil
}

// turnTo points the tracker at turn i, keeping its reset count.
func (s *SafeDial) turnTo(i int) {
	s.index = i
	s.tracker.Retarget(float64(s.Direction()))
	s.tracker.SetMax(math.Abs(float64(s.targets[i])))
	s.tracker.Restart()
}

// Tick turns the dial with the left/right input and moves the stethoscope
// to the pointer.
func (s *SafeDial) Tick(dt float64, in input.Sample) lock.Outcome {
	if !s.running() {
		return s.session.Outcome()
	}

	s.volume = s.hotspot.Credit(tolerance.Point{X: in.PointerX, Y: in.PointerY})

	turn := in.Turn()
	if turn != 0 && !s.turning {
		s.session.Emit(lock.EventTurn, -1, s.volume)
	}
	s.turning = turn != 0
	s.dialAngle += s.cfg.DialRotateSpeed * float64(turn) * degreesPerUnit * dt

	s.tracker.Sample(float64(turn), turn != 0)
	state := s.tracker.Advance(dt)

	switch {
	case state.Reset:
		s.session.Emit(lock.EventReset, -1, 0)
		s.turnTo(0)
	case state.Completed:
		s.session.Emit(lock.EventClick, s.index, s.volume)
		if s.index+1 >= len(s.targets) {
			s.session.Win()
			break
		}
		s.turnTo(s.index + 1)
	}
	return s.session.Outcome()
}

// Deactivate stops the safe and rewinds the combination.
func (s *SafeDial) Deactivate() {
	if len(s.targets) > 0 {
		s.turnTo(0)
	}
	s.turning = false
	s.session.End()
}

// Direction is the way the current turn must go: 1 clockwise, -1 back.
func (s *SafeDial) Direction() int {
	if len(s.targets) == 0 || s.targets[s.index] >= 0 {
		return 1
	}
	return -1
}

// Turned returns how far the current turn has gone in its own direction;
// negative when the dial is backing off.
func (s *SafeDial) Turned() float64 {
	return s.tracker.State().Progress
}

// Targets returns a copy of the combination, in signed degrees.
func (s *SafeDial) Targets() []int {
	return append([]int(nil), s.targets...)
}

// Resets counts how often the combination started over this activation.
func (s *SafeDial) Resets() int {
	return s.tracker.State().Resets
}

func (s *SafeDial) Index() int { return s.index }
func (s *SafeDial) Volume() float64 { return s.volume }
func (s *SafeDial) DialAngle() float64 { return s.dialAngle }
func (s *SafeDial) Config() SafeDialConfig { return s.cfg }
