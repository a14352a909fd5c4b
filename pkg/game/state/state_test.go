package state

import (
	"errors"
	"strings"
	"testing"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/activator"
	"lockworks/pkg/game/config"
)

const scene = `
inventory:
  lockpicks: 0
locks:
  - name: pad
    kind: dialpad
    title: Front door
    deactivateDelay: 0
    dialpad:
      buttons: 4
      rounds: 1
      preset: [2]
  - name: open
    kind: safedial
    locked: false
  - name: pick
    kind: lockpick
`

func newGame(t *testing.T) *Game {
	t.Helper()
	f, err := config.Parse([]byte(scene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, err := New(f, activator.WithRNG(lock.NewSeededRNG(1)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestAddMessage_KeepsLastFive(t *testing.T) {
	g := &Game{}
	for _, m := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		g.AddMessage(m)
	}
	if got := strings.Join(g.Messages, ""); got != "cdefg" {
		t.Errorf("Messages = %q, want %q", got, "cdefg")
	}
	g.ClearMessages()
	if len(g.Messages) != 0 {
		t.Errorf("len(Messages) = %d after clear, want 0", len(g.Messages))
	}
}

func TestSelect_Wraps(t *testing.T) {
	g := newGame(t)
	g.Prev()
	if g.Selected != 2 {
		t.Errorf("Selected = %d after Prev from 0, want 2", g.Selected)
	}
	g.Next()
	if g.Selected != 0 {
		t.Errorf("Selected = %d after Next, want 0", g.Selected)
	}
	if got := g.Title(g.Current()); got != "Front door" {
		t.Errorf("Title = %q, want %q", got, "Front door")
	}
}

func TestSelect_PutsAwayThePlayingLock(t *testing.T) {
	g := newGame(t)
	if err := g.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	pad := g.Current()
	g.Next()
	if pad.Visible() {
		t.Error("previous lock still visible after switching")
	}
}

func TestWin_MarksOpened(t *testing.T) {
	g := newGame(t)
	if err := g.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if out := g.Tick(0.1, input.Sample{Picks: []int{2}}); out != lock.Won {
		t.Fatalf("Tick = %v, want Won", out)
	}
	g.Tick(0.1, input.Sample{})

	if !g.IsOpened("pad") {
		t.Error("pad not marked opened")
	}
	if last := g.Messages[len(g.Messages)-1]; !strings.Contains(last, "LOCK{Front door}") {
		t.Errorf("last message = %q, want it to name the lock", last)
	}
}

func TestLose_CountsFailures(t *testing.T) {
	g := newGame(t)
	_ = g.Activate()
	g.Tick(0.1, input.Sample{Picks: []int{0}})
	g.Tick(0.1, input.Sample{})

	if g.Failures["pad"] != 1 {
		t.Errorf("Failures[pad] = %d, want 1", g.Failures["pad"])
	}
	if g.IsOpened("pad") {
		t.Error("failed lock marked opened")
	}
}

func TestActivate_UnlockedOpensAtOnce(t *testing.T) {
	g := newGame(t)
	g.Select(1)
	if err := g.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if !g.IsOpened("open") {
		t.Error("unlocked lock not opened on interact")
	}
	if g.AllOpened() {
		t.Error("AllOpened with two locks still shut")
	}
}

func TestActivate_MissingToolIsReported(t *testing.T) {
	g := newGame(t)
	g.Select(2)
	err := g.Activate()
	if !errors.Is(err, activator.ErrMissingTool) {
		t.Fatalf("Activate = %v, want ErrMissingTool", err)
	}
	if last := g.Messages[len(g.Messages)-1]; !strings.Contains(last, "ITEM{lockpicks}") {
		t.Errorf("last message = %q, want the missing tool named", last)
	}
}

func TestApply_MetaActions(t *testing.T) {
	g := newGame(t)
	g.Apply([]input.Action{input.ActionNextLock, input.ActionNextLock, input.ActionPrevLock})
	if g.Selected != 1 {
		t.Errorf("Selected = %d, want 1", g.Selected)
	}
	g.Apply([]input.Action{input.ActionActivate})
	if !g.IsOpened("open") {
		t.Error("activate action did not interact with the selected lock")
	}
	g.Apply([]input.Action{input.ActionQuit})
	if !g.Quit {
		t.Error("Quit not set")
	}
}
