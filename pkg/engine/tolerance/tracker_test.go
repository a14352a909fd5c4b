package tolerance

import (
	"math"
	"testing"

	"lockworks/pkg/engine/lock"
)

func newTracker(t *testing.T, cfg Config) *Tracker {
	t.Helper()
	tr := &Tracker{}
	if err := tr.Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return tr
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWindow_Zones(t *testing.T) {
	w := Window{Target: 90, Range: 20, Falloff: 10}
	cases := []struct {
		pos    float64
		zone   Zone
		credit float64
	}{
		{95, ZoneInside, 1},
		{110, ZoneInside, 1},
		{115, ZoneFalloff, 0.5},
		{65, ZoneFalloff, 0.5},
		{140, ZoneOutside, 0},
	}
	for _, tc := range cases {
		if got := w.Zone(tc.pos); got != tc.zone {
			t.Errorf("Zone(%v) = %v, want %v", tc.pos, got, tc.zone)
		}
		if got := w.Credit(tc.pos); !approx(got, tc.credit) {
			t.Errorf("Credit(%v) = %v, want %v", tc.pos, got, tc.credit)
		}
	}
}

func TestTracker_SampleScoresWithoutDriving(t *testing.T) {
	tr := newTracker(t, Config{
		Window:    Window{Target: 90, Range: 20, Falloff: 10},
		DriveRate: 1, Max: 10, FailureRate: 1,
	})

	if r := tr.Sample(95, true); !r.InWindow {
		t.Error("Sample(95).InWindow = false, want true")
	}
	r := tr.Sample(115, true)
	if r.InWindow || r.Zone != ZoneFalloff {
		t.Errorf("Sample(115) = %+v, want falloff", r)
	}
	tr.Sample(140, true)
	tr.Sample(140, true)
	if s := tr.State(); s.Progress != 0 || s.Failure != 0 {
		t.Fatalf("Sample changed state: %+v", s)
	}
	s := tr.Advance(1)
	if !approx(s.Failure, 1) {
		t.Errorf("Failure after 1s outside = %v, want 1", s.Failure)
	}
}

func TestTracker_ProgressMonotonicInside(t *testing.T) {
	for _, p := range []Policy{PolicyHealth, PolicySpring, PolicyNet} {
		tr := newTracker(t, Config{
			Window: Window{Target: 0, Range: 5, Falloff: 5},
			Policy: p, DriveRate: 2, Max: 100, FailureRate: 1, RegressRate: 1,
		})
		prev := 0.0
		for i := 0; i < 20; i++ {
			tr.Sample(float64(i%5), true)
			s := tr.Advance(0.1)
			if s.Progress < prev {
				t.Fatalf("policy %d: progress fell from %v to %v inside the range", p, prev, s.Progress)
			}
			prev = s.Progress
		}
	}
}

func TestTracker_CompletesAtMax(t *testing.T) {
	tr := newTracker(t, Config{Window: Window{Range: 1}, DriveRate: 1, Max: 1})
	tr.Sample(0, true)
	tr.Advance(0.5)
	s := tr.Advance(0.75)
	if !s.Completed || s.Progress != 1 {
		t.Fatalf("state = %+v, want completed at 1", s)
	}
	tr.Sample(50, true)
	if after := tr.Advance(1); after != s {
		t.Errorf("completed tracker changed: %+v -> %+v", s, after)
	}
}

func TestTracker_ResetThresholdRestarts(t *testing.T) {
	tr := newTracker(t, Config{
		Window:    Window{Target: 0, Range: 1},
		DriveRate: 1, Max: 10, FailureRate: 1, ResetThreshold: 2,
	})
	tr.Sample(0, true)
	tr.Advance(3)
	tr.Sample(10, true)
	if s := tr.Advance(1.5); s.Reset || s.Progress != 3 {
		t.Fatalf("after 1.5s outside: %+v, want no reset and progress 3", s)
	}
	s := tr.Advance(0.5)
	if !s.Reset || s.Progress != 0 || s.Failure != 0 || s.Resets != 1 {
		t.Errorf("after threshold: %+v, want reset to start", s)
	}
	if s := tr.Advance(0.1); s.Reset {
		t.Error("Reset reported on the following step")
	}
}

func TestTracker_HealthFalloffCapsProgress(t *testing.T) {
	tr := newTracker(t, Config{
		Window: Window{Target: 0, Range: 10, Falloff: 10},
		Policy: PolicyHealth, DriveRate: 1, Max: 1, FailureRate: 1,
	})
	// credit at 15 is 0.5
	tr.Sample(15, true)
	for i := 0; i < 10; i++ {
		tr.Advance(0.1)
	}
	s := tr.State()
	if s.Completed {
		t.Fatal("completed from the falloff band")
	}
	if s.Progress < 0.5 || s.Progress > 0.6 {
		t.Errorf("Progress = %v, want held near the 0.5 credit", s.Progress)
	}
	if s.Failure <= 0 {
		t.Error("no wear once progress passed the credit")
	}
}

func TestTracker_HealthIdleDrains(t *testing.T) {
	tr := newTracker(t, Config{Window: Window{Range: 1}, DriveRate: 1, Max: 4, RegressRate: 2})
	tr.Sample(0, true)
	tr.Advance(1)
	tr.Sample(0, false)
	if s := tr.Advance(0.25); !approx(s.Progress, 0.5) {
		t.Errorf("Progress after idle = %v, want 0.5", s.Progress)
	}
	if s := tr.Advance(5); s.Progress != 0 {
		t.Errorf("Progress = %v, want clamped to 0", s.Progress)
	}
}

func TestTracker_SpringPartialCreditAndDecay(t *testing.T) {
	tr := newTracker(t, Config{
		Window: Window{Target: 0, Range: 10, Falloff: 10},
		Policy: PolicySpring, DriveRate: 10, Max: 100, RegressRate: 10,
	})
	tr.Sample(15, true)
	if s := tr.Advance(1); !approx(s.Progress, 5) {
		t.Errorf("falloff progress = %v, want 5", s.Progress)
	}
	tr.Sample(50, true)
	if s := tr.Advance(0.05); !approx(s.Progress, 2.5) {
		t.Errorf("decayed progress = %v, want 2.5", s.Progress)
	}
}

func TestTracker_NetBacksOffIntoFailure(t *testing.T) {
	tr := newTracker(t, Config{
		Window: Window{Target: 1, Range: 0.5},
		Policy: PolicyNet, DriveRate: 10, Max: 90, FailureRate: 10, ResetThreshold: 20,
	})
	tr.Sample(1, true)
	tr.Advance(1)
	tr.Sample(-1, true)
	s := tr.Advance(2)
	if !approx(s.Progress, -10) || !approx(s.Failure, 10) {
		t.Fatalf("after backing off: %+v, want progress -10 failure 10", s)
	}
	tr.Sample(1, true)
	if s := tr.Advance(0.5); !approx(s.Failure, 5) {
		t.Errorf("failure after recovering = %v, want 5", s.Failure)
	}
	tr.Sample(-1, true)
	if s := tr.Advance(1.5); !s.Reset {
		t.Errorf("state = %+v, want reset past threshold", s)
	}
}

func TestTracker_IdleNetHolds(t *testing.T) {
	tr := newTracker(t, Config{Window: Window{Target: 1, Range: 0.5}, Policy: PolicyNet, DriveRate: 1, Max: 5, RegressRate: 3})
	tr.Sample(1, true)
	tr.Advance(2)
	tr.Sample(1, false)
	if s := tr.Advance(1); s.Progress != 2 {
		t.Errorf("idle net progress = %v, want 2", s.Progress)
	}
}

func TestConfig_RejectsNegativeWindow(t *testing.T) {
	tr := &Tracker{}
	err := tr.Configure(Config{Window: Window{Range: 1, Falloff: -1}, Max: 1})
	if !lock.IsConfigError(err) {
		t.Errorf("Configure with negative falloff = %v, want ConfigError", err)
	}
	err = tr.Configure(Config{Window: Window{Range: 1}})
	if !lock.IsConfigError(err) {
		t.Errorf("Configure with zero max = %v, want ConfigError", err)
	}
}

func TestPlanarWindow_Credit(t *testing.T) {
	w := PlanarWindow{Center: Point{0.5, 0.5}, Range: 0.05, Falloff: 0.1}
	if c := w.Credit(Point{0.5, 0.53}); c != 1 {
		t.Errorf("Credit inside = %v, want 1", c)
	}
	if c := w.Credit(Point{0.5, 0.6}); !approx(c, 0.5) {
		t.Errorf("Credit in band = %v, want 0.5", c)
	}
	if z := w.Zone(Point{0.9, 0.9}); z != ZoneOutside {
		t.Errorf("Zone far away = %v, want outside", z)
	}
}

func TestTracker_SetMaxKeepsProgress(t *testing.T) {
	tr := newTracker(t, Config{
		Window: Window{Target: 1, Range: 0.5},
		Policy: PolicyNet, DriveRate: 10, Max: 100, FailureRate: 10, ResetThreshold: 50,
	})
	tr.Sample(1, true)
	tr.Advance(2)

	tr.SetMax(0)
	if got := tr.Config().Max; got != 100 {
		t.Errorf("Max after SetMax(0) = %v, want 100", got)
	}
	tr.SetMax(25)
	if s := tr.State(); !approx(s.Progress, 20) || s.Completed {
		t.Fatalf("State after SetMax = %+v, want progress 20, not completed", s)
	}
	if s := tr.Advance(0.5); !s.Completed {
		t.Errorf("State at 25 = %+v, want completed", s)
	}

	tr.Retarget(-1)
	tr.Restart()
	tr.Sample(-1, true)
	if s := tr.Advance(1); !approx(s.Progress, 10) {
		t.Errorf("Progress after retargeting = %v, want 10", s.Progress)
	}
}
