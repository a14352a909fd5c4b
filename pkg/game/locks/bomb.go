package locks

import (
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
)

// WireRole is what cutting a bomb wire does.
type WireRole int

const (
	WireDud WireRole = iota
	WireWin
	WireFail
	WireTimer
)

func (r WireRole) String() string {
	switch r {
	case WireWin:
		return "win"
	case WireFail:
		return "fail"
	case WireTimer:
		return "timer"
	default:
		return "dud"
	}
}

// Beeper thresholds, in seconds left.
const (
	beeperStart  = 10
	beeperFaster = 5
	beeperSolid  = 2
)

// ClockFailed replaces the clock once the bomb has gone off.
const ClockFailed = "BYE BYE"

// BombConfig configures a Bomb.
type BombConfig struct {
	Wires            int     `yaml:"wires"`
	WinWires         int     `yaml:"winWires"`
	FailWires        int     `yaml:"failWires"`
	TimerWires       int     `yaml:"timerWires"`
	CutsToWin        int     `yaml:"cutsToWin"`
	CutsToFail       int     `yaml:"cutsToFail"`
	TimeLeft         float64 `yaml:"timeLeft"`
	TimerSpeedChange float64 `yaml:"timerSpeedChange"`
	WireCutTime      float64 `yaml:"wireCutTime"`
	RotateSpeed      float64 `yaml:"rotateSpeed"`
	RotateFailSpeed  float64 `yaml:"rotateFailSpeed"`
	RotateFailTime   float64 `yaml:"rotateFailTime"`
}

// DefaultBombConfig returns a five wire bomb with one wire of each role.
func DefaultBombConfig() BombConfig {
	return BombConfig{
		Wires:            5,
		WinWires:         1,
		FailWires:        1,
		TimerWires:       1,
		CutsToWin:        1,
		CutsToFail:       1,
		TimeLeft:         99,
		TimerSpeedChange: 1.1,
		WireCutTime:      1,
		RotateSpeed:      300,
		RotateFailSpeed:  3,
		RotateFailTime:   1,
	}
}

// Validate checks the config, returning a *lock.ConfigError.
func (c BombConfig) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"winWires", c.WinWires},
		{"failWires", c.FailWires},
		{"timerWires", c.TimerWires},
	} {
		if f.v < 0 {
			return lock.Invalid(KindBomb, f.name, "must not be negative, got %d", f.v)
		}
	}
	if n := c.WinWires + c.FailWires + c.TimerWires; n > c.Wires {
		return lock.Invalid(KindBomb, "wires", "%d wires cannot carry %d win, fail and timer wires", c.Wires, n)
	}
	if c.CutsToWin < 1 || c.CutsToWin > c.WinWires {
		return lock.Invalid(KindBomb, "cutsToWin", "must be in [1,%d], got %d", c.WinWires, c.CutsToWin)
	}
	if c.CutsToFail < 1 {
		return lock.Invalid(KindBomb, "cutsToFail", "must be at least 1, got %d", c.CutsToFail)
	}
	if !(c.TimeLeft > 0) {
		return lock.Invalid(KindBomb, "timeLeft", "must be positive, got %v", c.TimeLeft)
	}
	if !(c.TimerSpeedChange > 0) {
		return lock.Invalid(KindBomb, "timerSpeedChange", "must be positive, got %v", c.TimerSpeedChange)
	}
	if c.WireCutTime < 0 || c.RotateSpeed < 0 || c.RotateFailSpeed < 0 || c.RotateFailTime < 0 {
		return lock.Invalid(KindBomb, "timing", "wireCutTime and rotate values must not be negative")
	}
	return nil
}

// Wire is one bomb wire. Color indexes the shuffled three-colour palette;
// duds have Color -1.
type Wire struct {
	Role  WireRole
	Color int
}

// Bomb is the wire-cutting lock. A countdown runs while the player picks a
// wire and holds the cutter on it. Win wires disarm it, fail wires set it
// off and timer wires speed the clock up. Orbiting the bomb too roughly
// also sets it off.
type Bomb struct {
	base
	cfg            BombConfig
	wires          []Wire
	cut            mapset.Set[int]
	timeLeft       float64
	timerSpeed     float64
	beeperCount    float64
	cutsToWin      int
	cutsToFail     int
	rotateFailTime float64
	cutting        bool
	target         int
	cutProgress    float64
	yaw, pitch     float64
	exploded       bool
}

// NewBomb creates an idle bomb.
func NewBomb(cfg BombConfig) *Bomb {
	return &Bomb{base: newBase(KindBomb), cfg: cfg}
}

// Activate wires the bomb and starts the clock.
func (b *Bomb) Activate(env lock.Env) (lock.Handle, error) {
	if err := b.cfg.Validate(); err != nil {
		return lock.Handle{}, err
	}

	h := b.session.Begin(env)
	rng := b.session.RNG()

	palette := []int{0, 1, 2}
	lock.Shuffle(rng, palette)

	b.wires = make([]Wire, 0, b.cfg.Wires)
	for role, n := range []int{b.cfg.WinWires, b.cfg.FailWires, b.cfg.TimerWires} {
		for i := 0; i < n; i++ {
			b.wires = append(b.wires, Wire{Role: WireWin + WireRole(role), Color: palette[role]})
		}
	}
	for len(b.wires) < b.cfg.Wires {
		b.wires = append(b.wires, Wire{Role: WireDud, Color: -1})
	}
	lock.Shuffle(rng, b.wires)

	b.cut = mapset.New[int]()
	b.timeLeft = b.cfg.TimeLeft
	b.timerSpeed = 1
	b.beeperCount = 1
	b.cutsToWin, b.cutsToFail = b.cfg.CutsToWin, b.cfg.CutsToFail
	b.rotateFailTime = b.cfg.RotateFailTime
	b.cutting, b.cutProgress = false, 0
	b.yaw, b.pitch = 0, 0
	b.exploded = false
	return h, nil
}

// Tick runs the clock, the beeper, orbiting and the cutter.
func (b *Bomb) Tick(dt float64, in input.Sample) lock.Outcome {
	if !b.running() {
		return b.session.Outcome()
	}

	b.timeLeft -= dt * b.timerSpeed
	b.beep(dt)
	if b.timeLeft <= 0 {
		b.timeLeft = 0
		b.explode("timer ran out")
		return b.session.Outcome()
	}

	if in.IsHeld(input.ButtonOrbit) {
		b.orbit(dt, in.DeltaX, in.DeltaY)
		if !b.session.Active() {
			return b.session.Outcome()
		}
	}

	b.cutter(dt, in)
	return b.session.Outcome()
}

func (b *Bomb) beep(dt float64) {
	if b.timeLeft > beeperStart {
		return
	}
	b.beeperCount += dt * b.cfg.TimerSpeedChange
	switch {
	case b.beeperCount >= 1:
		b.session.Emit(lock.EventBeep, -1, 0.2)
	case b.timeLeft <= beeperFaster && b.beeperCount >= 0.5:
		b.session.Emit(lock.EventBeep, -1, 0.2)
	case b.timeLeft <= beeperSolid && b.beeperCount >= 0:
		b.session.Emit(lock.EventBeep, -1, 0.5)
	default:
		return
	}
	b.beeperCount = 0
}

func (b *Bomb) orbit(dt, dx, dy float64) {
	turnX := dx * b.cfg.RotateSpeed
	turnY := dy * b.cfg.RotateSpeed
	b.yaw = math.Mod(b.yaw+turnX, 360)
	b.pitch = clamp(b.pitch-turnY, -90, 90)
	if math.Abs(turnX) <= b.cfg.RotateFailSpeed && math.Abs(turnY) <= b.cfg.RotateFailSpeed {
		return
	}
	b.rotateFailTime -= dt
	b.session.Emit(lock.EventBeep, -1, 0.1)
	if b.rotateFailTime <= 0 {
		b.explode("handled too roughly")
	}
}

func (b *Bomb) cutter(dt float64, in input.Sample) {
	if !b.cutting {
		focus, ok := in.Focused()
		if !ok || !in.JustPressed(input.ButtonPrimary) || !b.cuttable(focus) {
			return
		}
		b.cutting, b.target, b.cutProgress = true, focus, 0
		b.session.Emit(lock.EventPress, focus, b.cfg.WireCutTime)
	}
	if !in.IsHeld(input.ButtonPrimary) {
		b.cutting, b.cutProgress = false, 0
		return
	}
	b.cutProgress += dt
	if b.cutProgress >= b.cfg.WireCutTime {
		b.cutting, b.cutProgress = false, 0
		if err := b.Cut(b.target); err != nil {
			b.session.Logger().Debug("cut ignored", zap.Int("wire", b.target), zap.Error(err))
		}
	}
}

func (b *Bomb) cuttable(i int) bool {
	return i >= 0 && i < len(b.wires) && !b.cut.Has(i)
}

// Cut severs wire i immediately.
func (b *Bomb) Cut(i int) error {
	if !b.session.Active() {
		return fmt.Errorf("cut wire %d: %w", i, lock.ErrNotActive)
	}
	if !b.cuttable(i) {
		return lock.Invalidf("wire %d cannot be cut", i)
	}
	b.cut.Put(i)
	b.session.Emit(lock.EventClick, i, 0)

	switch b.wires[i].Role {
	case WireWin:
		b.cutsToWin--
		if b.cutsToWin <= 0 {
			b.timerSpeed = 0
			b.session.Win()
		}
	case WireFail:
		b.cutsToFail--
		if b.cutsToFail <= 0 {
			b.explode("fail wire cut")
		}
	case WireTimer:
		b.timerSpeed *= b.cfg.TimerSpeedChange
	}
	return nil
}

func (b *Bomb) explode(reason string) {
	b.exploded = true
	b.timerSpeed = 0
	b.session.Logger().Debug("bomb went off", zap.String("reason", reason))
	b.session.Lose()
}

// Deactivate stops the bomb.
func (b *Bomb) Deactivate() {
	b.cutting = false
	b.session.End()
}

// Clock renders the countdown as MM:SS:t.
func (b *Bomb) Clock() string {
	if b.exploded {
		return ClockFailed
	}
	t := math.Max(b.timeLeft, 0)
	minutes := math.Floor(t / 60)
	seconds := math.Floor(t - minutes*60)
	tenths := math.Floor(10 * math.Mod(t, 1))
	return fmt.Sprintf("%02d:%02d:%d", int(minutes), int(seconds), int(tenths))
}

// Wires returns the wires in panel order.
func (b *Bomb) Wires() []Wire {
	return append([]Wire(nil), b.wires...)
}

// IsCut reports whether wire i has been cut.
func (b *Bomb) IsCut(i int) bool {
	return b.cut.Has(i)
}

// Cutting returns the wire under the cutter and how far the cut has gone.
func (b *Bomb) Cutting() (wire int, progress float64, ok bool) {
	if !b.cutting {
		return -1, 0, false
	}
	if b.cfg.WireCutTime <= 0 {
		return b.target, 1, true
	}
	return b.target, b.cutProgress / b.cfg.WireCutTime, true
}

func (b *Bomb) TimeLeft() float64 { return b.timeLeft }
func (b *Bomb) TimerSpeed() float64 { return b.timerSpeed }
func (b *Bomb) Orbit() (yaw, pitch float64) { return b.yaw, b.pitch }
func (b *Bomb) Exploded() bool { return b.exploded }
func (b *Bomb) Config() BombConfig { return b.cfg }
