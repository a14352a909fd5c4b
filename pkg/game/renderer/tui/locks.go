package tui

import (
	"fmt"
	"math"
	"strings"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/activator"
	"lockworks/pkg/game/locks"
	"lockworks/pkg/game/state"
)

// planar face size, in cells
const (
	faceCols = 21
	faceRows = 11
)

// wireColors names the bomb's three-colour palette.
var wireColors = []string{"GT{WIRE_RED}", "GT{WIRE_BLUE}", "GT{WIRE_GREEN}"}

// printLock draws the selected lock, or a prompt when it is put away.
func (t *TUIRenderer) printLock(b *strings.Builder, g *state.Game, a *activator.Activator) {
	t.printString(b, "TITLE{%s} SUBTLE{(%s)}", g.Title(a), a.Game().Kind())
	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", gaugeWidth+2)) + "\n")

	if !a.Visible() {
		switch {
		case !a.Locked():
			t.printString(b, "OK{GT{LOCK_OPEN}}")
		case a.RequiredTool() != "" && g.Inventory.Count(a.RequiredTool()) <= 0:
			t.printString(b, "DENIED{GT{MSG_NEED_TOOL}} ITEM{%s}", a.RequiredTool())
		default:
			t.printString(b, "GT{PRESS} KEY{e} GT{TO_ACTIVATE}")
		}
		return
	}

	switch l := a.Game().(type) {
	case *locks.DialPad:
		t.printDialPad(b, l)
	case *locks.Cylinder:
		t.printCylinder(b, l)
	case *locks.Lockpick:
		t.printLockpick(b, l, g)
	case *locks.SafeDial:
		t.printSafeDial(b, l)
	case *locks.ComboDial:
		t.printComboDial(b, l)
	case *locks.WirePanel:
		t.printWirePanel(b, l)
	case *locks.Bomb:
		t.printBomb(b, l)
	}

	switch a.Game().Session().Outcome() {
	case lock.Won:
		t.printString(b, "OK{GT{MSG_WIN}}")
	case lock.Lost:
		t.printString(b, "DENIED{GT{MSG_FAIL}}")
	}
}

// lit reports whether the presenter is flashing target for one of kinds.
func (t *TUIRenderer) lit(target int, kinds ...lock.EventKind) bool {
	if t.presenter == nil {
		return false
	}
	ev, ok := t.presenter.Flash()
	if !ok || ev.Target != target {
		return false
	}
	for _, k := range kinds {
		if ev.Kind == k {
			return true
		}
	}
	return false
}

func (t *TUIRenderer) printDialPad(b *strings.Builder, d *locks.DialPad) {
	b.WriteString("  " + t.colorTitle.Sprint("[ "+fmt.Sprintf("%-12s", d.Screen())+" ]") + "\n\n")

	const cols = 3
	for i := 0; i < d.Buttons(); i++ {
		face := fmt.Sprintf(" %s ", locks.ButtonLabel(i))
		switch {
		case t.lit(i, lock.EventPress):
			face = t.colorLit.Sprint(face)
		case d.Interactive():
			face = t.colorActionShort.Sprint(face)
		default:
			face = t.colorSubtle.Sprint(face)
		}
		b.WriteString("  " + face)
		if i%cols == cols-1 || i == d.Buttons()-1 {
			b.WriteString("\n")
		}
	}

	index, length, round := d.Progress()
	b.WriteString("\n")
	if d.Interactive() {
		t.printString(b, "SUBTLE{GT{ROUND} %d  %d/%d}  GT{PRESS} KEY{1-0}", round, index, length)
	} else {
		t.printString(b, "SUBTLE{GT{LISTEN}}")
	}
}

func (t *TUIRenderer) printCylinder(b *strings.Builder, c *locks.Cylinder) {
	if c.Mode() == locks.CylinderPlanar {
		t.printFace(b, c.PickPoint().X, c.PickPoint().Y)
	} else {
		t.printString(b, "GT{PICK}    %s %3.0f°", t.marker(c.PickAngle()/180), c.PickAngle())
	}
	turn := c.Rotation() / c.Config().RotateToWin
	style := t.colorSuccess
	if c.Stuck() {
		style = t.colorHazard
	}
	t.printString(b, "GT{TURNED}  %s", t.gauge(turn, style))
	if c.Stuck() {
		t.printString(b, "HAZARD{GT{STUCK}}")
	}
}

// printFace draws the planar cylinder face with the pick at (x, y).
func (t *TUIRenderer) printFace(b *strings.Builder, x, y float64) {
	px := int(math.Round(x * (faceCols - 1)))
	py := int(math.Round(y * (faceRows - 1)))
	for row := 0; row < faceRows; row++ {
		b.WriteString("    ")
		for col := 0; col < faceCols; col++ {
			dx := float64(col)/(faceCols-1) - 0.5
			dy := float64(row)/(faceRows-1) - 0.5
			switch {
			case col == px && row == py:
				b.WriteString(t.colorActionShort.Sprint("◆"))
			case math.Hypot(dx, dy) > 0.5:
				b.WriteString(" ")
			default:
				b.WriteString(t.colorSubtle.Sprint("·"))
			}
		}
		b.WriteString("\n")
	}
}

func (t *TUIRenderer) printLockpick(b *strings.Builder, l *locks.Lockpick, g *state.Game) {
	rng := l.Config().RotateRange
	t.printString(b, "GT{PICK}    %s %+4.0f°", t.marker((l.PickAngle()+rng)/(2*rng)), l.PickAngle())

	health := t.colorSuccess
	if l.PickHealth() < 0.35 {
		health = t.colorHazard
	}
	t.printString(b, "GT{HEALTH}  %s", t.gauge(l.PickHealth(), health))
	t.printString(b, "GT{TURNED}  %s", t.gauge(l.Unlock(), t.colorItem))

	switch {
	case l.Broken():
		t.printString(b, "HAZARD{GT{MSG_PICK_BROKE}}")
	case l.Stuck():
		t.printString(b, "HAZARD{GT{STUCK}}")
	}
	t.printString(b, "SUBTLE{GT{PICKS_LEFT}} ITEM{%d}", g.Inventory.Count(l.Tool()))
}

func (t *TUIRenderer) printSafeDial(b *strings.Builder, s *locks.SafeDial) {
	angle := math.Mod(math.Mod(s.DialAngle(), 360)+360, 360)
	t.printString(b, "GT{DIAL}    %s %3.0f°", t.marker(angle/360), angle)
	t.printString(b, "GT{TURN}    %d/%d %s", s.Index()+1, len(s.Targets()), t.arrow(s.Direction()))
	t.printString(b, "GT{LISTEN}  %s", t.gauge(s.Volume(), t.colorItem))
	if n := s.Resets(); n > 0 {
		t.printString(b, "SUBTLE{GT{RESET} x%d}", n)
	}
}

func (t *TUIRenderer) printComboDial(b *strings.Builder, d *locks.ComboDial) {
	t.printString(b, "GT{DIAL}    TITLE{%3d}  %s", d.Number(), t.arrow(d.Direction()))
	t.printString(b, "GT{NUMBER}  %d/%d", d.Index()+1, len(d.Sequence()))
	t.printString(b, "GT{LISTEN}  %s", t.gauge(d.Volume(), t.colorItem))
	if fill := d.ResetFill(); fill > 0 {
		t.printString(b, "GT{RESET}   %s", t.gauge(fill, t.colorHazard))
	}
}

func (t *TUIRenderer) arrow(dir int) string {
	if dir < 0 {
		return t.colorAction.Sprint("↺")
	}
	return t.colorAction.Sprint("↻")
}

func (t *TUIRenderer) printWirePanel(b *strings.Builder, w *locks.WirePanel) {
	board := w.Board()
	held, holding := w.Held()
	for i, slot := range board.Slots() {
		key := input.PickCode(i)
		line := fmt.Sprintf("  %s GT{SLOT} %d: ", t.colorActionShort.Sprint(key), slot.ID)
		plug, ok := board.PlugAt(slot.ID)
		switch {
		case !ok:
			line += "SUBTLE{GT{EMPTY}}"
		case holding && plug == held:
			line += fmt.Sprintf("LIT{GT{WIRE} %d}", plug)
		case board.Intersecting(plug):
			line += fmt.Sprintf("HAZARD{GT{WIRE} %d} SUBTLE{GT{CROSSED}}", plug)
		default:
			line += fmt.Sprintf("ITEM{GT{WIRE} %d}", plug)
		}
		t.printString(b, line)
	}
	b.WriteString("\n")
	t.printString(b, "GT{MOVES_LEFT} ITEM{%d}  GT{CORRECT} ITEM{%d/%d}", board.MovesLeft(), board.CorrectSlots(), len(board.Plugs()))
	if w.Resolving() {
		t.printString(b, "SUBTLE{GT{CHECKING}}")
	}
}

func (t *TUIRenderer) printBomb(b *strings.Builder, bomb *locks.Bomb) {
	clock := t.colorTitle.Sprint(bomb.Clock())
	if bomb.TimeLeft() < 10 || bomb.Exploded() {
		clock = t.colorDenied.Sprint(bomb.Clock())
	}
	b.WriteString("  " + clock)
	if bomb.TimerSpeed() != 1 {
		b.WriteString(t.colorHazard.Sprint(fmt.Sprintf("  x%.2f", bomb.TimerSpeed())))
	}
	b.WriteString("\n\n")

	cutting, progress, isCutting := bomb.Cutting()
	for i, w := range bomb.Wires() {
		name := "GT{WIRE_GREY}"
		if w.Color >= 0 && w.Color < len(wireColors) {
			name = wireColors[w.Color]
		}
		line := fmt.Sprintf("  %s %s ", t.colorActionShort.Sprint(input.PickCode(i)), t.FormatText(name))
		switch {
		case bomb.IsCut(i):
			line += t.colorSubtle.Sprint("──╱ ╱──")
		case isCutting && cutting == i:
			line += t.gauge(progress, t.colorHazard)
		default:
			line += t.colorItem.Sprint("───────")
		}
		b.WriteString(line + "\n")
	}

	yaw, pitch := bomb.Orbit()
	b.WriteString("\n")
	t.printString(b, "SUBTLE{GT{ORBIT} %+.0f° %+.0f°}", yaw, pitch)
}
