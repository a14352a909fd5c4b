package locks

import (
	"fmt"
	"math"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/engine/tolerance"
)

// A dial step never skips a number: each tick is split into steps of at
// most half a notch.
const maxDialStep = degreesPerUnit / 2

// ComboDialConfig configures a ComboDial. Direction is the way the first
// number is dialled: 1 turning left, -1 turning right.
type ComboDialConfig struct {
	Sequence       []int   `yaml:"sequence,omitempty"`
	Length         int     `yaml:"length"`
	Direction      int     `yaml:"direction"`
	DialSpeed      float64 `yaml:"dialSpeed"`
	DialReset      float64 `yaml:"dialReset"`
	HotspotRange   float64 `yaml:"hotspotRange"`
	HotspotFalloff float64 `yaml:"hotspotFalloff"`
	FocusSpeed     float64 `yaml:"focusSpeed"`
}

// DefaultComboDialConfig returns the combination safe defaults. The
// combination is drawn at random.
func DefaultComboDialConfig() ComboDialConfig {
	return ComboDialConfig{
		Length:         3,
		Direction:      1,
		DialSpeed:      100,
		DialReset:      20,
		HotspotRange:   0.05,
		HotspotFalloff: 0.1,
		FocusSpeed:     5,
	}
}

// Validate checks the config, returning a *lock.ConfigError.
func (c ComboDialConfig) Validate() error {
	if len(c.Sequence) == 0 && c.Length < 1 {
		return lock.Invalid(KindComboDial, "length", "must be at least 1 without a sequence, got %d", c.Length)
	}
	for i, n := range c.Sequence {
		if n < 0 || n > 100 {
			return lock.Invalid(KindComboDial, fmt.Sprintf("sequence[%d]", i), "number %d outside [0,100]", n)
		}
	}
	if c.Direction != 1 && c.Direction != -1 {
		return lock.Invalid(KindComboDial, "direction", "must be 1 or -1, got %d", c.Direction)
	}
	if c.DialSpeed <= 0 {
		return lock.Invalid(KindComboDial, "dialSpeed", "must be positive, got %v", c.DialSpeed)
	}
	if c.DialReset <= 0 {
		return lock.Invalid(KindComboDial, "dialReset", "must be positive, got %v", c.DialReset)
	}
	if c.FocusSpeed < 0 {
		return lock.Invalid(KindComboDial, "focusSpeed", "must not be negative, got %v", c.FocusSpeed)
	}
	return tolerance.Window{Range: c.HotspotRange, Falloff: c.HotspotFalloff}.Validate(KindComboDial)
}

// ComboDial is a numbered combination safe. Each number is dialled by
// turning in the expected direction until the dial shows it; turning the
// wrong way fills a reset counter that rewinds the whole combination. The
// click is loudest with the stethoscope held still on a hidden hotspot.
type ComboDial struct {
	base
	cfg        ComboDialConfig
	sequence   []int
	index      int
	direction  int
	dial       float64
	resetCount float64
	hotspot    tolerance.PlanarWindow
	focus      float64
	volume     float64
	turning    bool
}

// NewComboDial creates an idle combination safe.
func NewComboDial(cfg ComboDialConfig) *ComboDial {
	return &ComboDial{base: newBase(KindComboDial), cfg: cfg}
}

// Activate sets the dial to zero and hides the hotspot.
func (d *ComboDial) Activate(env lock.Env) (lock.Handle, error) {
	if err := d.cfg.Validate(); err != nil {
		return lock.Handle{}, err
	}

	h := d.session.Begin(env)
	rng := d.session.RNG()
	if len(d.cfg.Sequence) > 0 {
		d.sequence = append([]int(nil), d.cfg.Sequence...)
	} else {
		d.sequence = make([]int, d.cfg.Length)
		for i := range d.sequence {
			d.sequence[i] = rng.IntN(100)
		}
	}
	d.direction = d.cfg.Direction
	d.hotspot = tolerance.PlanarWindow{
		Center:  tolerance.Point{X: rng.Float64(), Y: rng.Float64()},
		Range:   d.cfg.HotspotRange,
		Falloff: d.cfg.HotspotFalloff,
	}
	d.index, d.dial, d.resetCount = 0, 0, 0
	d.focus, d.volume = 0, 0
	d.turning = false
	return h, nil
}

// Tick moves the stethoscope and turns the dial.
func (d *ComboDial) Tick(dt float64, in input.Sample) lock.Outcome {
	if !d.running() {
		return d.session.Outcome()
	}

	if in.DeltaX != 0 || in.DeltaY != 0 {
		d.focus = lerp(d.focus, 0, dt*d.cfg.FocusSpeed)
	} else {
		d.focus = lerp(d.focus, 1, dt*d.cfg.FocusSpeed)
	}
	d.volume = d.hotspot.Credit(tolerance.Point{X: in.PointerX, Y: in.PointerY}) * d.focus

	turn := in.Turn()
	if turn != 0 && !d.turning {
		d.session.Emit(lock.EventTurn, -1, d.volume)
	}
	d.turning = turn != 0

	if turn != 0 {
		total := d.cfg.DialSpeed * dt
		n := int(math.Ceil(total / maxDialStep))
		for i := 0; i < n && d.index < len(d.sequence); i++ {
			d.step(turn, total/float64(n))
		}
	}
	d.resetCount = clamp(d.resetCount, 0, d.cfg.DialReset*degreesPerUnit)

	if d.index >= len(d.sequence) {
		d.session.Win()
	}
	return d.session.Outcome()
}

// step turns the dial by deg degrees; turn -1 is left, 1 right.
func (d *ComboDial) step(turn int, deg float64) {
	if turn < 0 {
		d.dial -= deg
		if d.dial < 0 {
			d.dial += 360
		}
	} else {
		d.dial += deg
		if d.dial > 360 {
			d.dial -= 360
		}
	}

	// direction 1 expects a left turn
	if turn == d.direction {
		d.wrongWay(deg)
		return
	}
	if d.Number() == d.sequence[d.index] {
		d.resetCount = 0
		d.index++
		d.direction = -d.direction
		d.session.Emit(lock.EventClick, d.index-1, d.volume)
	}
}

func (d *ComboDial) wrongWay(deg float64) {
	d.resetCount += deg
	if d.resetCount < d.cfg.DialReset*degreesPerUnit {
		return
	}
	for d.index > 0 {
		d.index--
		d.direction = -d.direction
	}
	d.resetCount = 0
	d.session.Emit(lock.EventReset, -1, 0)
}

// Deactivate stops the safe.
func (d *ComboDial) Deactivate() {
	d.turning = false
	d.session.End()
}

// Number is the number under the dial's mark.
func (d *ComboDial) Number() int {
	return 100 - int(math.Round(d.dial/degreesPerUnit))
}

// ResetFill is the reset counter as a fraction of its limit.
func (d *ComboDial) ResetFill() float64 {
	return d.resetCount / (d.cfg.DialReset * degreesPerUnit)
}

// Sequence returns a copy of the combination.
func (d *ComboDial) Sequence() []int {
	return append([]int(nil), d.sequence...)
}

func (d *ComboDial) Dial() float64 { return d.dial }
func (d *ComboDial) Index() int { return d.index }
func (d *ComboDial) Direction() int { return d.direction }
func (d *ComboDial) Volume() float64 { return d.volume }
func (d *ComboDial) Focus() float64 { return d.focus }
func (d *ComboDial) Config() ComboDialConfig { return d.cfg }
