package locks

import (
	"testing"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/engine/tolerance"
)

func TestCylinder_TurnsOpenOnTheSweetspot(t *testing.T) {
	r := &recorder{}
	cfg := DefaultCylinderConfig()
	cfg.RotateSpeed = 100
	cfg.RotateToWin = 50
	c := NewCylinder(cfg)
	mustActivate(t, c, newEnv(r, &scriptedRNG{floats: []float64{0.5}}))

	in := input.Sample{PointerX: 0.5, Held: input.ButtonRotate}
	if out := c.Tick(0.25, in); out != lock.InProgress {
		t.Fatalf("outcome after one tick = %v", out)
	}
	if !c.InSweetspot() {
		t.Fatalf("pick at %v is not on the sweetspot", c.PickAngle())
	}
	if got := c.Rotation(); !near(got, 25) {
		t.Errorf("Rotation() = %v, want 25", got)
	}
	if r.count(lock.EventTurn) != 1 {
		t.Errorf("turn events = %d, want 1", r.count(lock.EventTurn))
	}

	if out := c.Tick(0.25, in); out != lock.Won {
		t.Errorf("outcome = %v, want won", out)
	}
	if r.wins != 1 {
		t.Errorf("wins = %d, want 1", r.wins)
	}
}

func TestCylinder_SpringsBackOffTheSweetspot(t *testing.T) {
	r := &recorder{}
	cfg := DefaultCylinderConfig()
	cfg.RotateSpeed = 100
	cfg.RotateToWin = 50
	cfg.ReturnSpeed = 10
	c := NewCylinder(cfg)
	mustActivate(t, c, newEnv(r, &scriptedRNG{floats: []float64{0.5}}))

	c.Tick(0.25, input.Sample{PointerX: 0.5, Held: input.ButtonRotate})
	c.Tick(0.05, input.Sample{PointerX: 0, Held: input.ButtonRotate})

	if !c.Stuck() {
		t.Error("Stuck() = false off the sweetspot")
	}
	if got := c.Rotation(); !near(got, 12.5) {
		t.Errorf("Rotation() = %v, want 12.5", got)
	}
	if r.count(lock.EventClick) != 1 {
		t.Errorf("click events = %d, want 1", r.count(lock.EventClick))
	}

	c.Tick(0.05, input.Sample{PointerX: 0})
	if got := c.Rotation(); !near(got, 6.25) {
		t.Errorf("idle Rotation() = %v, want 6.25", got)
	}
}

func TestCylinder_PlanarAccuracy(t *testing.T) {
	r := &recorder{}
	cfg := DefaultCylinderConfig()
	cfg.Mode = CylinderPlanar
	cfg.SweetspotAccuracy = 0.95
	cfg.RotateSpeed = 100
	cfg.RotateToWin = 10
	c := NewCylinder(cfg)
	// direction 0, reach 0.1: sweetspot at (0.6, 0.5)
	mustActivate(t, c, newEnv(r, &scriptedRNG{floats: []float64{0, 0}}))

	c.Tick(0.05, input.Sample{PointerX: 0.5, PointerY: 0.5, Held: input.ButtonRotate})
	if c.InSweetspot() {
		t.Errorf("centre is on the sweetspot with accuracy %v", c.Accuracy())
	}
	if out := c.Tick(0.1, input.Sample{PointerX: 0.6, PointerY: 0.5, Held: input.ButtonRotate}); out != lock.Won {
		t.Errorf("outcome = %v, want won", out)
	}
	if got := c.Accuracy(); !near(got, 1) {
		t.Errorf("Accuracy() = %v, want 1", got)
	}
}

func TestCylinder_PlanarPickStaysOnTheFace(t *testing.T) {
	c := NewCylinder(CylinderConfig{Mode: CylinderPlanar, SweetspotAccuracy: 0.9, RotateSpeed: 1, RotateToWin: 1})
	mustActivate(t, c, newEnv(&recorder{}, &scriptedRNG{}))

	c.Tick(0.01, input.Sample{PointerX: 1, PointerY: 1})
	p := c.PickPoint()
	if d := p.Dist(tolerance.Point{X: 0.5, Y: 0.5}); !near(d, 0.5) {
		t.Errorf("pick %v is %v from the centre, want 0.5", p, d)
	}
}

func TestCylinder_ConfigErrors(t *testing.T) {
	cases := map[string]CylinderConfig{
		"mode":      {Mode: "square", RotateSpeed: 1, RotateToWin: 1},
		"range":     {Mode: CylinderAngular, SweetspotRange: 0, RotateSpeed: 1, RotateToWin: 1},
		"accuracy":  {Mode: CylinderPlanar, SweetspotAccuracy: 2, RotateSpeed: 1, RotateToWin: 1},
		"no speed":  {Mode: CylinderAngular, SweetspotRange: 10, RotateToWin: 1},
		"no target": {Mode: CylinderAngular, SweetspotRange: 10, RotateSpeed: 1},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewCylinder(cfg).Activate(lock.Env{}); !lock.IsConfigError(err) {
				t.Errorf("Activate() error = %v, want a config error", err)
			}
		})
	}
}
