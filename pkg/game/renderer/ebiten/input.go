package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"lockworks/pkg/engine/input"
)

// keyCodes maps keys to the binding codes the terminal uses, so both
// front-ends share one set of bindings.
var keyCodes = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  "arrow_left",
	ebiten.KeyArrowRight: "arrow_right",
	ebiten.KeyArrowUp:    "arrow_up",
	ebiten.KeyArrowDown:  "arrow_down",
	ebiten.KeyEnter:      "enter",
	ebiten.KeyEscape:     "escape",
	ebiten.KeyTab:        "tab",
	ebiten.KeySpace:      " ",
	ebiten.KeyComma:      ",",
	ebiten.KeyPeriod:     ".",
	ebiten.Key0:          "0",
	ebiten.Key1:          "1",
	ebiten.Key2:          "2",
	ebiten.Key3:          "3",
	ebiten.Key4:          "4",
	ebiten.Key5:          "5",
	ebiten.Key6:          "6",
	ebiten.Key7:          "7",
	ebiten.Key8:          "8",
	ebiten.Key9:          "9",
	ebiten.KeyA:          "a",
	ebiten.KeyB:          "b",
	ebiten.KeyC:          "c",
	ebiten.KeyD:          "d",
	ebiten.KeyE:          "e",
	ebiten.KeyF:          "f",
	ebiten.KeyM:          "m",
	ebiten.KeyN:          "n",
	ebiten.KeyO:          "o",
	ebiten.KeyP:          "p",
	ebiten.KeyQ:          "q",
	ebiten.KeyV:          "v",
	ebiten.KeyW:          "w",
	ebiten.KeyX:          "x",
	ebiten.KeyZ:          "z",
}

// Update handles input and game logic (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.logger.Info("window opened", zap.Int("width", w), zap.Int("height", h))
	}

	g := e.game
	if g == nil {
		return nil
	}
	if e.ctx != nil && e.ctx.Err() != nil {
		return ebiten.Termination
	}

	e.handleZoom()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if i, ok := hitAt(e.listHits, float64(x), float64(y)); ok {
			g.Select(i)
			e.sampler.Reset()
			return nil
		}
	}

	in, meta := e.sampler.Sample(e.readFrame())
	selected := g.Selected
	g.Apply(meta)
	if g.Quit {
		return ebiten.Termination
	}
	if g.Selected != selected {
		e.sampler.Reset()
		return nil
	}

	dt := 1 / float64(ebiten.TPS())
	g.Tick(dt, in)
	if e.presenter != nil {
		e.presenter.Advance(dt)
	}
	return nil
}

// readFrame collects this frame's keyboard and mouse state.
func (e *EbitenRenderer) readFrame() input.Frame {
	var f input.Frame
	for key, code := range keyCodes {
		if ebiten.IsKeyPressed(key) {
			f.Held = append(f.Held, code)
		}
		if inpututil.IsKeyJustPressed(key) {
			f.Pressed = append(f.Pressed, code)
		}
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	f.PointerX, f.PointerY = e.lockArea.local(x, y)
	_, f.Wheel = ebiten.Wheel()

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		f.Mouse |= input.ButtonPrimary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		f.Mouse |= input.ButtonRotate
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		f.Mouse |= input.ButtonOrbit
	}
	f.Clicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	f.Focus, f.HasFocus = hitAt(e.hits, x, y)
	return f
}

// handleZoom handles Ctrl+= and Ctrl+- for text size
func (e *EbitenRenderer) handleZoom() {
	if !ebiten.IsKeyPressed(ebiten.KeyControl) {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		e.scale = min(e.scale+0.125, 2)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		e.scale = max(e.scale-0.125, 0.75)
	}
}

// rect is a screen rectangle.
type rect struct {
	x, y, w, h float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// local converts a screen point to lock space, 0..1 on both axes.
func (r rect) local(x, y float64) (float64, float64) {
	if r.w <= 0 || r.h <= 0 {
		return 0.5, 0.5
	}
	return (x - r.x) / r.w, (y - r.y) / r.h
}

// at converts a lock space point to the screen.
func (r rect) at(lx, ly float64) (float64, float64) {
	return r.x + lx*r.w, r.y + ly*r.h
}

// hit is a clickable element: a dial button, a slot, a wire or a lock in
// the list.
type hit struct {
	index int
	area  rect
}

func hitAt(hits []hit, x, y float64) (int, bool) {
	for _, h := range hits {
		if h.area.contains(x, y) {
			return h.index, true
		}
	}
	return 0, false
}
