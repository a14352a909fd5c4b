package locks

import (
	"math"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/engine/tolerance"
)

// Cylinder modes.
const (
	CylinderAngular = "angular"
	CylinderPlanar  = "planar"
)

// planar cylinder geometry in lock space
var cylinderCenter = tolerance.Point{X: 0.5, Y: 0.5}

const (
	cylinderSize      = 1.0
	sweetspotMinReach = 0.1
)

// CylinderConfig configures a Cylinder.
//
// In angular mode the pick angle follows the pointer across 0..180 degrees
// and must be within SweetspotRange of a hidden angle. In planar mode the
// pick moves inside the cylinder face and its accuracy, 1 - distance/size,
// must reach SweetspotAccuracy.
type CylinderConfig struct {
	Mode              string  `yaml:"mode"`
	SweetspotRange    float64 `yaml:"sweetspotRange"`
	SweetspotFalloff  float64 `yaml:"sweetspotFalloff"`
	SweetspotAccuracy float64 `yaml:"sweetspotAccuracy"`
	RotateSpeed       float64 `yaml:"rotateSpeed"`
	RotateToWin       float64 `yaml:"rotateToWin"`
	ReturnSpeed       float64 `yaml:"returnSpeed"`
}

// DefaultCylinderConfig returns the angular cylinder defaults.
func DefaultCylinderConfig() CylinderConfig {
	return CylinderConfig{
		Mode:              CylinderAngular,
		SweetspotRange:    20,
		SweetspotAccuracy: 0.9,
		RotateSpeed:       10,
		RotateToWin:       330,
		ReturnSpeed:       10,
	}
}

// Validate checks the config, returning a *lock.ConfigError.
func (c CylinderConfig) Validate() error {
	switch c.Mode {
	case CylinderAngular:
		if c.SweetspotRange <= 0 || c.SweetspotRange > 90 {
			return lock.Invalid(KindCylinder, "sweetspotRange", "must be in (0,90], got %v", c.SweetspotRange)
		}
	case CylinderPlanar:
		if c.SweetspotAccuracy < 0 || c.SweetspotAccuracy > 1 {
			return lock.Invalid(KindCylinder, "sweetspotAccuracy", "must be in [0,1], got %v", c.SweetspotAccuracy)
		}
	default:
		return lock.Invalid(KindCylinder, "mode", "unknown mode %q", c.Mode)
	}
	if c.RotateSpeed <= 0 {
		return lock.Invalid(KindCylinder, "rotateSpeed", "must be positive, got %v", c.RotateSpeed)
	}
	if c.RotateToWin <= 0 {
		return lock.Invalid(KindCylinder, "rotateToWin", "must be positive, got %v", c.RotateToWin)
	}
	return nil
}

func (c CylinderConfig) tracker() tolerance.Config {
	w := tolerance.Window{Range: c.SweetspotRange, Falloff: c.SweetspotFalloff}
	if c.Mode == CylinderPlanar {
		w = tolerance.Window{Range: (1 - c.SweetspotAccuracy) * cylinderSize, Falloff: c.SweetspotFalloff}
	}
	return tolerance.Config{
		Window:      w,
		Policy:      tolerance.PolicySpring,
		DriveRate:   c.RotateSpeed,
		Max:         c.RotateToWin,
		RegressRate: c.ReturnSpeed,
	}
}

// Cylinder is a pick-and-turn lock: find the sweetspot with the pick, then
// hold rotate until the cylinder has turned far enough. Off the sweetspot
// the cylinder springs back.
type Cylinder struct {
	base
	cfg      CylinderConfig
	tracker  tolerance.Tracker
	sweetAng float64
	sweetPt  tolerance.Point
	angle    float64
	pick     tolerance.Point
	reading  tolerance.Reading
	turning  bool
	stuck    bool
}

// NewCylinder creates an idle cylinder.
func NewCylinder(cfg CylinderConfig) *Cylinder {
	return &Cylinder{base: newBase(KindCylinder), cfg: cfg}
}

// Activate hides a new sweetspot.
func (c *Cylinder) Activate(env lock.Env) (lock.Handle, error) {
	if err := c.cfg.Validate(); err != nil {
		return lock.Handle{}, err
	}
	tc := c.cfg.tracker()
	if err := tc.Validate(KindCylinder); err != nil {
		return lock.Handle{}, err
	}

	h := c.session.Begin(env)
	if err := c.tracker.Configure(tc); err != nil {
		c.session.End()
		return lock.Handle{}, err
	}

	rng := c.session.RNG()
	if c.cfg.Mode == CylinderPlanar {
		dir := lock.RangeFloat(rng, 0, 2*math.Pi)
		reach := lock.RangeFloat(rng, sweetspotMinReach, cylinderSize/2)
		c.sweetPt = tolerance.Point{
			X: cylinderCenter.X + math.Cos(dir)*reach,
			Y: cylinderCenter.Y + math.Sin(dir)*reach,
		}
		c.pick = cylinderCenter
	} else {
		c.sweetAng = lock.RangeFloat(rng, 0, 180)
		c.tracker.Retarget(c.sweetAng)
		c.angle = 90
	}
	c.turning, c.stuck = false, false
	return h, nil
}

// Tick moves the pick to the pointer and turns the cylinder while rotate is
// held.
func (c *Cylinder) Tick(dt float64, in input.Sample) lock.Outcome {
	if !c.running() {
		return c.session.Outcome()
	}

	rotating := in.IsHeld(input.ButtonRotate)
	if c.cfg.Mode == CylinderPlanar {
		c.pick = clampToCylinder(tolerance.Point{X: in.PointerX, Y: in.PointerY})
		c.reading = c.tracker.Sample(c.pick.Dist(c.sweetPt), rotating)
	} else {
		c.angle = 180 * clamp(in.PointerX, 0.01, 0.99)
		c.reading = c.tracker.Sample(c.angle, rotating)
	}

	state := c.tracker.Advance(dt)

	turning := rotating && c.reading.InWindow
	stuck := rotating && !c.reading.InWindow
	if turning && !c.turning {
		c.session.Emit(lock.EventTurn, -1, c.tracker.Fraction())
	}
	if stuck && !c.stuck {
		c.session.Emit(lock.EventClick, -1, c.reading.Credit)
	}
	c.turning, c.stuck = turning, stuck

	if state.Completed {
		c.session.Win()
	}
	return c.session.Outcome()
}

func clampToCylinder(p tolerance.Point) tolerance.Point {
	r := cylinderSize / 2
	d := p.Dist(cylinderCenter)
	if d <= r {
		return p
	}
	return tolerance.Point{
		X: cylinderCenter.X + (p.X-cylinderCenter.X)/d*r,
		Y: cylinderCenter.Y + (p.Y-cylinderCenter.Y)/d*r,
	}
}

// Deactivate stops the cylinder.
func (c *Cylinder) Deactivate() {
	c.turning, c.stuck = false, false
	c.session.End()
}

// Accuracy is the planar pick accuracy, 1 - distance/size.
func (c *Cylinder) Accuracy() float64 {
	return 1 - c.pick.Dist(c.sweetPt)/cylinderSize
}

// Rotation returns the cylinder's turn in degrees.
func (c *Cylinder) Rotation() float64 {
	return c.tracker.State().Progress
}

func (c *Cylinder) Mode() string { return c.cfg.Mode }
func (c *Cylinder) PickAngle() float64 { return c.angle }
func (c *Cylinder) PickPoint() tolerance.Point { return c.pick }
func (c *Cylinder) InSweetspot() bool { return c.reading.InWindow }
func (c *Cylinder) Stuck() bool { return c.stuck }
func (c *Cylinder) Config() CylinderConfig { return c.cfg }
