package tolerance

import (
	"math"

	"lockworks/pkg/engine/lock"
)

// Policy selects how the falloff band and the failure path behave.
type Policy int

const (
	// PolicyHealth: the falloff band only drives while progress is below the
	// credit there; outside, the tool wears at FailureRate until it breaks.
	// Idle progress drains at RegressRate.
	PolicyHealth Policy = iota
	// PolicySpring: the falloff band drives at a credit-scaled rate; outside
	// and idle, progress decays toward zero by RegressRate per second.
	PolicySpring
	// PolicyNet: progress is a signed net position. Outside the window it
	// moves backwards at FailureRate; the distance below zero is the
	// failure. Idle holds.
	PolicyNet
)

// Config is the full parameter set of a tracker.
type Config struct {
	Window
	Policy         Policy
	DriveRate      float64
	Max            float64
	ResetThreshold float64
	FailureRate    float64
	RegressRate    float64
}

// Validate checks the config, returning a *lock.ConfigError.
func (c Config) Validate(lockName string) error {
	if err := c.Window.Validate(lockName); err != nil {
		return err
	}
	if !(c.Max > 0) {
		return lock.Invalid(lockName, "max", "must be positive, got %v", c.Max)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"driveRate", c.DriveRate},
		{"resetThreshold", c.ResetThreshold},
		{"failureRate", c.FailureRate},
		{"regressRate", c.RegressRate},
	} {
		if f.v < 0 || math.IsNaN(f.v) {
			return lock.Invalid(lockName, f.name, "must not be negative, got %v", f.v)
		}
	}
	return nil
}

// Reading is the score of the latest sample.
type Reading struct {
	InWindow bool
	Zone     Zone
	Credit   float64
	Distance float64
}

// DriveState is the tracker's progress after an Advance. Reset is set only
// for the step in which the failure threshold was reached.
type DriveState struct {
	Progress  float64
	Failure   float64
	Resets    int
	Completed bool
	Reset     bool
}

// Tracker accumulates drive progress from sampled positions.
type Tracker struct {
	cfg       Config
	position  float64
	active    bool
	progress  float64
	failure   float64
	resets    int
	completed bool
}

// Configure replaces the parameters and restarts progress.
func (t *Tracker) Configure(cfg Config) error {
	if err := cfg.Validate("tolerance"); err != nil {
		return err
	}
	t.cfg = cfg
	t.position = cfg.Target
	t.active = false
	t.Restart()
	t.resets = 0
	return nil
}

// Config returns the active parameters.
func (t *Tracker) Config() Config {
	return t.cfg
}

// Retarget moves the window without touching progress.
func (t *Tracker) Retarget(target float64) {
	t.cfg.Target = target
}

// SetMax changes the completion point without touching progress.
func (t *Tracker) SetMax(max float64) {
	if max > 0 {
		t.cfg.Max = max
	}
}

// Sample records the position and whether drive is applied. It does not
// change progress; repeated samples with the same arguments are equivalent
// to one.
func (t *Tracker) Sample(position float64, driveActive bool) Reading {
	t.position = position
	t.active = driveActive
	return t.Read()
}

// Read scores the last sampled position.
func (t *Tracker) Read() Reading {
	d := t.cfg.Distance(t.position)
	z := t.cfg.zoneAt(d)
	return Reading{
		InWindow: z == ZoneInside,
		Zone:     z,
		Credit:   t.cfg.creditAt(d),
		Distance: d,
	}
}

// Advance applies dt seconds of drive from the last sample.
func (t *Tracker) Advance(dt float64) DriveState {
	if t.completed || dt <= 0 {
		return t.State()
	}

	if !t.active {
		t.idle(dt)
		return t.State()
	}

	r := t.Read()
	switch r.Zone {
	case ZoneInside:
		t.progress += t.cfg.DriveRate * dt
		if t.cfg.Policy == PolicyNet {
			t.failure = math.Max(0, -t.progress)
		}
	case ZoneFalloff:
		switch t.cfg.Policy {
		case PolicyHealth:
			if t.progress/t.cfg.Max < r.Credit {
				t.progress += t.cfg.DriveRate * dt
			} else {
				t.fail(dt)
			}
		case PolicySpring:
			t.progress += t.cfg.DriveRate * r.Credit * dt
		default:
			t.fail(dt)
		}
	default:
		t.fail(dt)
	}

	reset := false
	if t.cfg.ResetThreshold > 0 && t.failure >= t.cfg.ResetThreshold {
		t.Restart()
		t.resets++
		reset = true
	}

	if t.progress >= t.cfg.Max {
		t.progress = t.cfg.Max
		t.completed = true
	}

	s := t.State()
	s.Reset = reset
	return s
}

func (t *Tracker) idle(dt float64) {
	switch t.cfg.Policy {
	case PolicyHealth:
		t.progress = math.Max(0, t.progress-t.cfg.RegressRate*dt)
	case PolicySpring:
		t.progress *= math.Max(0, 1-t.cfg.RegressRate*dt)
	}
}

func (t *Tracker) fail(dt float64) {
	switch t.cfg.Policy {
	case PolicyHealth:
		t.failure += t.cfg.FailureRate * dt
	case PolicySpring:
		t.progress *= math.Max(0, 1-t.cfg.RegressRate*dt)
		t.failure += t.cfg.FailureRate * dt
	case PolicyNet:
		t.progress -= t.cfg.FailureRate * dt
		t.failure = math.Max(0, -t.progress)
	}
}

// Restart zeroes progress and failure, keeping the reset count.
func (t *Tracker) Restart() {
	t.progress = 0
	t.failure = 0
	t.completed = false
}

// State returns the current drive state.
func (t *Tracker) State() DriveState {
	return DriveState{
		Progress:  t.progress,
		Failure:   t.failure,
		Resets:    t.resets,
		Completed: t.completed,
	}
}

// Fraction returns progress as a share of Max, 0..1 (negative for a net
// tracker that has backed off).
func (t *Tracker) Fraction() float64 {
	if t.cfg.Max <= 0 {
		return 0
	}
	return t.progress / t.cfg.Max
}
