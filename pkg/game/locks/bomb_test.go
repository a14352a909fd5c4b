package locks

import (
	"testing"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
)

func armedBomb(t *testing.T, cfg BombConfig) (*Bomb, *recorder) {
	t.Helper()
	r := &recorder{}
	b := NewBomb(cfg)
	mustActivate(t, b, newEnv(r, lock.NewSeededRNG(11)))
	return b, r
}

func wireWith(t *testing.T, b *Bomb, role WireRole) int {
	t.Helper()
	for i, w := range b.Wires() {
		if w.Role == role {
			return i
		}
	}
	t.Fatalf("no %v wire on the bomb", role)
	return -1
}

func cutterOn(wire int, pressed bool) input.Sample {
	in := input.Sample{Focus: wire, HasFocus: true, Held: input.ButtonPrimary}
	if pressed {
		in.Pressed = input.ButtonPrimary
	}
	return in
}

func TestBomb_WiresMatchTheConfig(t *testing.T) {
	b, _ := armedBomb(t, DefaultBombConfig())

	counts := map[WireRole]int{}
	colors := map[WireRole]int{}
	for _, w := range b.Wires() {
		counts[w.Role]++
		colors[w.Role] = w.Color
	}
	if counts[WireWin] != 1 || counts[WireFail] != 1 || counts[WireTimer] != 1 || counts[WireDud] != 2 {
		t.Errorf("wire roles = %v, want one of each and two duds", counts)
	}
	if colors[WireDud] != -1 {
		t.Errorf("dud colour = %d, want -1", colors[WireDud])
	}
	seen := map[int]bool{}
	for _, role := range []WireRole{WireWin, WireFail, WireTimer} {
		c := colors[role]
		if c < 0 || c > 2 || seen[c] {
			t.Errorf("%v wire colour %d is not a distinct palette entry", role, c)
		}
		seen[c] = true
	}
}

func TestBomb_HoldCutterToDisarm(t *testing.T) {
	b, r := armedBomb(t, DefaultBombConfig())
	win := wireWith(t, b, WireWin)

	b.Tick(0.5, cutterOn(win, true))
	if wire, progress, ok := b.Cutting(); !ok || wire != win || !near(progress, 0.5) {
		t.Fatalf("Cutting() = %d, %v, %v, want %d, 0.5, true", wire, progress, ok, win)
	}
	if out := b.Tick(0.5, cutterOn(win, false)); out != lock.Won {
		t.Fatalf("outcome = %v, want won", out)
	}
	if !b.IsCut(win) || r.wins != 1 {
		t.Errorf("IsCut, wins = %v, %d, want true, 1", b.IsCut(win), r.wins)
	}

	left := b.TimeLeft()
	b.Tick(1, input.Sample{})
	if b.TimeLeft() != left {
		t.Error("clock kept running after the bomb was disarmed")
	}
}

func TestBomb_ReleasingCancelsTheCut(t *testing.T) {
	b, _ := armedBomb(t, DefaultBombConfig())
	win := wireWith(t, b, WireWin)

	b.Tick(0.5, cutterOn(win, true))
	b.Tick(0.1, input.Sample{Focus: win, HasFocus: true})
	if _, _, ok := b.Cutting(); ok {
		t.Fatal("cut continued after release")
	}
	b.Tick(1, cutterOn(win, false))
	if b.IsCut(win) {
		t.Error("holding without a fresh press cut the wire")
	}
}

func TestBomb_FailWireExplodes(t *testing.T) {
	b, r := armedBomb(t, DefaultBombConfig())

	if err := b.Cut(wireWith(t, b, WireFail)); err != nil {
		t.Fatalf("Cut() error = %v", err)
	}
	if b.Session().Outcome() != lock.Lost || r.losses != 1 {
		t.Fatalf("outcome, losses = %v, %d, want lost, 1", b.Session().Outcome(), r.losses)
	}
	if got := b.Clock(); got != ClockFailed {
		t.Errorf("Clock() = %q, want %q", got, ClockFailed)
	}
	if err := b.Cut(wireWith(t, b, WireWin)); err == nil {
		t.Error("Cut() after the explosion returned nil")
	}
}

func TestBomb_TimerWireSpeedsUpTheClock(t *testing.T) {
	b, _ := armedBomb(t, DefaultBombConfig())
	timer := wireWith(t, b, WireTimer)

	if err := b.Cut(timer); err != nil {
		t.Fatalf("Cut() error = %v", err)
	}
	if got := b.TimerSpeed(); !near(got, 1.1) {
		t.Errorf("TimerSpeed() = %v, want 1.1", got)
	}
	if err := b.Cut(timer); err == nil {
		t.Error("cutting the same wire twice returned nil")
	}
	if err := b.Cut(wireWith(t, b, WireDud)); err != nil || b.Session().Outcome() != lock.InProgress {
		t.Errorf("cutting a dud: err %v, outcome %v", err, b.Session().Outcome())
	}
}

func TestBomb_RunsOutOfTime(t *testing.T) {
	cfg := DefaultBombConfig()
	cfg.TimeLeft = 1
	b, r := armedBomb(t, cfg)

	if out := b.Tick(1, input.Sample{}); out != lock.Lost {
		t.Errorf("outcome = %v, want lost", out)
	}
	if !b.Exploded() || r.losses != 1 {
		t.Errorf("Exploded, losses = %v, %d, want true, 1", b.Exploded(), r.losses)
	}
}

func TestBomb_BeeperStartsUnderTenSeconds(t *testing.T) {
	cfg := DefaultBombConfig()
	cfg.TimeLeft = 10.5
	cfg.TimerSpeedChange = 1
	b, r := armedBomb(t, cfg)

	b.Tick(0.4, input.Sample{})
	if r.count(lock.EventBeep) != 0 {
		t.Fatal("beeped above ten seconds")
	}
	b.Tick(0.2, input.Sample{})
	if r.count(lock.EventBeep) != 1 {
		t.Fatalf("beep events = %d, want 1 as soon as the clock drops under ten seconds", r.count(lock.EventBeep))
	}
	b.Tick(0.5, input.Sample{})
	if r.count(lock.EventBeep) != 1 {
		t.Fatalf("beep events = %d, want 1 half a second later", r.count(lock.EventBeep))
	}
	b.Tick(0.5, input.Sample{})
	if r.count(lock.EventBeep) != 2 {
		t.Errorf("beep events = %d, want 2 a second after the first", r.count(lock.EventBeep))
	}
}

func TestBomb_RoughHandlingExplodes(t *testing.T) {
	cfg := DefaultBombConfig()
	cfg.RotateFailTime = 0.2
	b, _ := armedBomb(t, cfg)

	gentle := input.Sample{Held: input.ButtonOrbit, DeltaX: 0.005}
	b.Tick(0.15, gentle)
	if yaw, _ := b.Orbit(); !near(yaw, 1.5) {
		t.Errorf("yaw = %v, want 1.5", yaw)
	}

	rough := input.Sample{Held: input.ButtonOrbit, DeltaX: 0.1}
	if out := b.Tick(0.15, rough); out != lock.InProgress {
		t.Fatalf("outcome after one rough frame = %v", out)
	}
	if out := b.Tick(0.15, rough); out != lock.Lost {
		t.Errorf("outcome = %v, want lost", out)
	}
}

func TestBomb_Clock(t *testing.T) {
	cfg := DefaultBombConfig()
	cfg.TimeLeft = 75.5
	b, _ := armedBomb(t, cfg)
	if got := b.Clock(); got != "01:15:5" {
		t.Errorf("Clock() = %q, want 01:15:5", got)
	}
}

func TestBomb_ConfigErrors(t *testing.T) {
	cases := map[string]func(*BombConfig){
		"too many roles": func(c *BombConfig) { c.Wires = 2 },
		"negative":       func(c *BombConfig) { c.TimerWires = -1 },
		"cutsToWin":      func(c *BombConfig) { c.CutsToWin = 2 },
		"cutsToFail":     func(c *BombConfig) { c.CutsToFail = 0 },
		"no time":        func(c *BombConfig) { c.TimeLeft = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultBombConfig()
			mutate(&cfg)
			if _, err := NewBomb(cfg).Activate(lock.Env{}); !lock.IsConfigError(err) {
				t.Errorf("Activate() error = %v, want a config error", err)
			}
		})
	}
}

func TestBomb_IsCutBeforeActivation(t *testing.T) {
	b := NewBomb(DefaultBombConfig())
	if b.IsCut(0) {
		t.Error("IsCut(0) = true on a bomb that was never armed")
	}
}
