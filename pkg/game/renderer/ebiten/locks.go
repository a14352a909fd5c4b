package ebiten

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/locks"
	"lockworks/pkg/game/state"
)

const deg = math.Pi / 180

// drawLock draws the lock face in the lock area and registers its
// clickable elements.
func (e *EbitenRenderer) drawLock(screen *ebiten.Image, g *state.Game, game lock.Game) {
	switch l := game.(type) {
	case *locks.DialPad:
		e.drawDialPad(screen, l)
	case *locks.Cylinder:
		e.drawCylinder(screen, l)
	case *locks.Lockpick:
		e.drawLockpick(screen, l, g)
	case *locks.SafeDial:
		e.drawSafeDial(screen, l)
	case *locks.ComboDial:
		e.drawComboDial(screen, l)
	case *locks.WirePanel:
		e.drawWirePanel(screen, l)
	case *locks.Bomb:
		e.drawBomb(screen, l)
	}
}

func (e *EbitenRenderer) lit(target int, kind lock.EventKind) bool {
	if e.presenter == nil {
		return false
	}
	ev, ok := e.presenter.Flash()
	return ok && ev.Kind == kind && ev.Target == target
}

func fillRect(screen *ebiten.Image, r rect, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), c, true)
}

func strokeRect(screen *ebiten.Image, r rect, c color.Color) {
	vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 2, c, true)
}

func line(screen *ebiten.Image, x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

// bar draws a horizontal gauge filled to v at lock space height ly.
func (e *EbitenRenderer) bar(screen *ebiten.Image, label string, ly, v float64, c color.Color) {
	a := e.lockArea
	x, y := a.at(0.3, ly)
	e.drawText(screen, label, a.x+a.w*0.05, y-4)
	r := rect{x: x, y: y, w: a.w * 0.6, h: a.h * 0.025}
	fillRect(screen, r, colorMetalDark)
	fillRect(screen, rect{x: r.x, y: r.y, w: r.w * max(0, min(1, v)), h: r.h}, c)
}

func (e *EbitenRenderer) drawDialPad(screen *ebiten.Image, d *locks.DialPad) {
	a := e.lockArea
	sx, sy := a.at(0.2, 0.1)
	screenRect := rect{x: sx, y: sy, w: a.w * 0.6, h: a.h * 0.12}
	fillRect(screen, screenRect, colorMetalDark)
	e.drawCentered(screen, d.Screen(), screenRect.x+screenRect.w/2, screenRect.y+screenRect.h/2, colorSuccess, e.getMonoFontFace())

	const cols = 3
	rows := (d.Buttons() + cols - 1) / cols
	cell := a.w * 0.6 / cols
	for i := 0; i < d.Buttons(); i++ {
		bx, by := a.at(0.2, 0.28)
		r := rect{x: bx + float64(i%cols)*cell + 4, y: by + float64(i/cols)*cell*0.8 + 4, w: cell - 8, h: cell*0.8 - 8}
		if rows > 4 {
			r.h = a.h*0.6/float64(rows) - 8
			r.y = by + float64(i/cols)*(r.h+8) + 4
		}
		face := colorMetal
		switch {
		case e.lit(i, lock.EventPress):
			face = colorLit
		case !d.Interactive():
			face = colorMetalDark
		}
		fillRect(screen, r, face)
		e.drawCentered(screen, locks.ButtonLabel(i), r.x+r.w/2, r.y+r.h/2, colorLockBackground, e.getTitleFontFace())
		e.hits = append(e.hits, hit{index: i, area: r})
	}

	index, length, round := d.Progress()
	_, y := a.at(0, 0.92)
	e.drawText(screen, fmt.Sprintf("SUBTLE{GT{ROUND} %d  %d/%d}", round, index, length), a.x+8, y)
}

func (e *EbitenRenderer) drawCylinder(screen *ebiten.Image, c *locks.Cylinder) {
	a := e.lockArea
	cx, cy := a.at(0.5, 0.5)
	r := a.w * 0.38
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), colorMetal, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 3, colorMetalDark, true)

	// keyway, turned with the cylinder
	turn := c.Rotation() / c.Config().RotateToWin * 90 * deg
	kx, ky := math.Sin(turn)*r*0.6, -math.Cos(turn)*r*0.6
	line(screen, cx-kx, cy-ky, cx+kx, cy+ky, r*0.08, colorMetalDark)

	pickColor := color.Color(colorPick)
	if c.Stuck() {
		pickColor = colorHazard
	}
	if c.Mode() == locks.CylinderPlanar {
		px, py := a.at(c.PickPoint().X, c.PickPoint().Y)
		vector.DrawFilledCircle(screen, float32(px), float32(py), float32(r*0.05), pickColor, true)
	} else {
		angle := c.PickAngle() * deg
		x0, y0 := cx-math.Cos(angle)*r*1.2, cy-math.Sin(angle)*r*1.2
		line(screen, x0, y0, cx, cy, 3, pickColor)
	}
	e.bar(screen, "GT{TURNED}", 0.94, c.Rotation()/c.Config().RotateToWin, colorSuccess)
}

func (e *EbitenRenderer) drawLockpick(screen *ebiten.Image, l *locks.Lockpick, g *state.Game) {
	a := e.lockArea
	cx, cy := a.at(0.5, 0.45)
	r := a.w * 0.3
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), colorMetal, true)

	turn := l.Unlock() * 90 * deg
	kx, ky := math.Sin(turn)*r*0.5, -math.Cos(turn)*r*0.5
	line(screen, cx-kx, cy-ky, cx+kx, cy+ky, r*0.1, colorMetalDark)

	if !l.Broken() {
		angle := l.PickAngle()*deg - math.Pi/2
		pickColor := color.Color(colorPick)
		if l.Stuck() {
			pickColor = colorHazard
		}
		line(screen, cx, cy, cx+math.Cos(angle)*r*1.4, cy+math.Sin(angle)*r*1.4, 3, pickColor)
	}

	e.bar(screen, "GT{HEALTH}", 0.84, l.PickHealth(), colorHazard)
	e.bar(screen, "GT{TURNED}", 0.89, l.Unlock(), colorSuccess)
	_, y := a.at(0, 0.93)
	e.drawText(screen, fmt.Sprintf("SUBTLE{GT{PICKS_LEFT}} ITEM{%d}", g.Inventory.Count(l.Tool())), a.x+8, y)
}

// drawDial draws a numbered dial turned by angle degrees with a fixed mark
// at the top.
func (e *EbitenRenderer) drawDial(screen *ebiten.Image, angle float64, labels int) {
	a := e.lockArea
	cx, cy := a.at(0.5, 0.45)
	r := a.w * 0.33
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), colorMetalDark, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 3, colorMetal, true)

	for i := 0; i < labels; i++ {
		t := (float64(i)*360/float64(labels) + angle) * deg
		sx, sy := math.Sin(t), -math.Cos(t)
		line(screen, cx+sx*r*0.85, cy+sy*r*0.85, cx+sx*r, cy+sy*r, 2, colorMetal)
		e.drawCentered(screen, fmt.Sprint(i*100/labels), cx+sx*r*0.7, cy+sy*r*0.7, colorText, e.getSansFontFace())
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy-r-8), 5, colorLit, true)
}

// stethoscope draws the listening ring, louder when brighter
func (e *EbitenRenderer) stethoscope(screen *ebiten.Image, volume float64) {
	a := e.lockArea
	cx, cy := a.at(0.5, 0.45)
	r := a.w * 0.4
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 4, applyAlpha(colorLit, volume), true)
}

func (e *EbitenRenderer) drawSafeDial(screen *ebiten.Image, s *locks.SafeDial) {
	e.stethoscope(screen, s.Volume())
	e.drawDial(screen, s.DialAngle(), 10)

	arrow := "↻"
	if s.Direction() < 0 {
		arrow = "↺"
	}
	_, y := e.lockArea.at(0, 0.88)
	turn := fmt.Sprintf("GT{TURN} %d/%d ACTION{%s}", s.Index()+1, len(s.Targets()), arrow)
	if n := s.Resets(); n > 0 {
		turn += fmt.Sprintf("  SUBTLE{GT{RESET} x%d}", n)
	}
	e.drawText(screen, turn, e.lockArea.x+8, y)
}

func (e *EbitenRenderer) drawComboDial(screen *ebiten.Image, d *locks.ComboDial) {
	e.stethoscope(screen, d.Volume())
	e.drawDial(screen, -d.Dial(), 10)

	cx, cy := e.lockArea.at(0.5, 0.45)
	e.drawCentered(screen, fmt.Sprintf("%02d", d.Number()%100), cx, cy, colorText, e.getMonoFontFace())

	_, y := e.lockArea.at(0, 0.88)
	e.drawText(screen, fmt.Sprintf("GT{NUMBER} %d/%d", d.Index()+1, len(d.Sequence())), e.lockArea.x+8, y)
	if fill := d.ResetFill(); fill > 0 {
		e.bar(screen, "GT{RESET}", 0.94, fill, colorHazard)
	}
}

func (e *EbitenRenderer) drawWirePanel(screen *ebiten.Image, w *locks.WirePanel) {
	a := e.lockArea
	board := w.Board()
	held, holding := w.Held()
	slotSize := a.w * 0.07

	for i, slot := range board.Slots() {
		x, y := a.at(slot.At.X, slot.At.Y)
		r := rect{x: x - slotSize/2, y: y - slotSize/2, w: slotSize, h: slotSize}
		fillRect(screen, r, colorMetalDark)
		strokeRect(screen, r, colorMetal)
		e.drawCentered(screen, input.PickCode(i), x, y-slotSize, colorSubtle, e.getSansFontFace())
		e.hits = append(e.hits, hit{index: i, area: r})
	}

	for _, plug := range board.Plugs() {
		seg, ok := board.Wire(plug.ID)
		if !ok {
			continue
		}
		c := color.Color(colorItem)
		switch {
		case holding && plug.ID == held:
			c = colorLit
		case board.Intersecting(plug.ID):
			c = colorHazard
		}
		x0, y0 := a.at(seg.A.X, seg.A.Y)
		x1, y1 := a.at(seg.B.X, seg.B.Y)
		line(screen, x0, y0, x1, y1, 4, c)
		vector.DrawFilledCircle(screen, float32(x0), float32(y0), float32(slotSize/3), colorMetal, true)
	}

	_, y := a.at(0, 0.93)
	msg := fmt.Sprintf("GT{MOVES_LEFT} ITEM{%d}  GT{CORRECT} ITEM{%d/%d}", board.MovesLeft(), board.CorrectSlots(), len(board.Plugs()))
	if w.Resolving() {
		msg += "  SUBTLE{GT{CHECKING}}"
	}
	e.drawText(screen, msg, a.x+8, y)
}

func (e *EbitenRenderer) drawBomb(screen *ebiten.Image, b *locks.Bomb) {
	a := e.lockArea
	yaw, pitch := b.Orbit()

	// The case leans with the orbit
	lean := math.Sin(yaw*deg) * a.w * 0.05
	tilt := math.Sin(pitch*deg) * a.h * 0.05
	body := rect{x: a.x + a.w*0.1 + lean, y: a.y + a.h*0.12 + tilt, w: a.w * 0.8, h: a.h * 0.76}
	fillRect(screen, body, colorMetalDark)

	clockColor := color.Color(colorSuccess)
	if b.Exploded() || b.TimeLeft() < 10 {
		clockColor = colorDenied
	}
	e.drawCentered(screen, b.Clock(), body.x+body.w/2, body.y+body.h*0.12, clockColor, e.getMonoFontFace())
	if b.TimerSpeed() != 1 {
		e.drawText(screen, fmt.Sprintf("HAZARD{x%.2f}", b.TimerSpeed()), body.x+body.w-60, body.y+8)
	}

	wires := b.Wires()
	cutting, progress, isCutting := b.Cutting()
	top := body.y + body.h*0.28
	step := body.h * 0.65 / float64(max(len(wires), 1))
	for i, w := range wires {
		c := color.Color(wireDud)
		if w.Color >= 0 && w.Color < len(wireColors) {
			c = wireColors[w.Color]
		}
		y := top + step*(float64(i)+0.5)
		x0, x1 := body.x+body.w*0.1, body.x+body.w*0.9
		row := rect{x: x0, y: y - step/2, w: x1 - x0, h: step}

		switch {
		case b.IsCut(i):
			mid := (x0 + x1) / 2
			line(screen, x0, y, mid-10, y, 5, c)
			line(screen, mid+10, y+6, x1, y+6, 5, c)
		default:
			line(screen, x0, y, x1, y, 5, c)
		}
		if isCutting && cutting == i {
			fillRect(screen, rect{x: x0, y: y + 6, w: (x1 - x0) * progress, h: 3}, colorHazard)
		}
		e.drawText(screen, fmt.Sprintf("SUBTLE{%s}", input.PickCode(i)), x0-20, y-8)
		e.hits = append(e.hits, hit{index: i, area: row})
	}
}
