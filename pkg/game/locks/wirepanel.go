package locks

import (
	"go.uber.org/zap"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/engine/plugboard"
)

// WireSlot is a socket position on the panel, in lock space.
type WireSlot struct {
	ID int     `yaml:"id"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
}

// WirePlug is a wire anchored at (AnchorX, AnchorY) that starts in Slot and
// belongs in Correct.
type WirePlug struct {
	ID      int     `yaml:"id"`
	AnchorX float64 `yaml:"anchorX"`
	AnchorY float64 `yaml:"anchorY"`
	Slot    int     `yaml:"slot"`
	Correct int     `yaml:"correct"`
}

// WirePanelConfig configures a WirePanel.
type WirePanelConfig struct {
	MovesLeft   int        `yaml:"movesLeft"`
	Scramble    bool       `yaml:"scramble"`
	Slots       []WireSlot `yaml:"slots"`
	Plugs       []WirePlug `yaml:"plugs"`
	UnlockDelay float64    `yaml:"unlockDelay"`
	FailDelay   float64    `yaml:"failDelay"`
}

// DefaultWirePanelConfig returns a five slot, four plug panel dealt at
// random.
func DefaultWirePanelConfig() WirePanelConfig {
	cfg := WirePanelConfig{
		MovesLeft:   10,
		Scramble:    true,
		UnlockDelay: 1.5,
		FailDelay:   1,
	}
	for i := 0; i < 5; i++ {
		x := 0.1 + 0.2*float64(i)
		cfg.Slots = append(cfg.Slots, WireSlot{ID: i, X: x, Y: 0.2})
		if i < 4 {
			cfg.Plugs = append(cfg.Plugs, WirePlug{ID: i + 1, AnchorX: x, AnchorY: 0.85, Slot: i, Correct: i})
		}
	}
	return cfg
}

// Layout converts the config into a plugboard layout.
func (c WirePanelConfig) Layout() plugboard.Layout {
	l := plugboard.Layout{MovesLeft: c.MovesLeft}
	for _, s := range c.Slots {
		l.Slots = append(l.Slots, plugboard.Slot{ID: s.ID, At: plugboard.Point{X: s.X, Y: s.Y}})
	}
	for _, p := range c.Plugs {
		l.Plugs = append(l.Plugs, plugboard.Plug{
			ID:      p.ID,
			Anchor:  plugboard.Point{X: p.AnchorX, Y: p.AnchorY},
			Slot:    p.Slot,
			Correct: p.Correct,
		})
	}
	return l
}

// WirePanel is the plug board lock: pull a plug out of its slot, push it
// into an empty one, and get every plug home without crossing wires before
// the moves run out.
type WirePanel struct {
	base
	cfg       WirePanelConfig
	board     *plugboard.Board
	held      int
	holding   bool
	resolving bool
}

// NewWirePanel creates an idle wire panel.
func NewWirePanel(cfg WirePanelConfig) *WirePanel {
	return &WirePanel{base: newBase(KindWirePanel), cfg: cfg}
}

// Activate builds the board, dealing the plugs if Scramble is set.
func (w *WirePanel) Activate(env lock.Env) (lock.Handle, error) {
	if w.cfg.UnlockDelay < 0 || w.cfg.FailDelay < 0 {
		return lock.Handle{}, lock.Invalid(KindWirePanel, "delay", "must not be negative")
	}
	board, err := plugboard.NewBoard(w.cfg.Layout(), nil)
	if err != nil {
		return lock.Handle{}, err
	}

	h := w.session.Begin(env)
	w.board = board
	if w.cfg.Scramble {
		w.board.Scramble(w.session.RNG())
	}
	w.holding = false
	w.resolving = false
	w.settle()
	return h, nil
}

// Tick applies this frame's slot picks. Picks index the slots in layout
// order.
func (w *WirePanel) Tick(dt float64, in input.Sample) lock.Outcome {
	if !w.running() {
		return w.session.Outcome()
	}
	w.session.Steps().Advance(dt)
	slots := w.board.Slots()
	for _, i := range in.Picks {
		if w.resolving || !w.session.Active() {
			break
		}
		if i < 0 || i >= len(slots) {
			continue
		}
		if err := w.Pick(slots[i].ID); err != nil {
			w.session.Logger().Debug("wire panel pick ignored", zap.Int("slot", slots[i].ID), zap.Error(err))
		}
	}
	return w.session.Outcome()
}

// Pick clicks a slot: the first click pulls the plug out, the second plugs
// it into an empty slot or back where it came from.
func (w *WirePanel) Pick(slot int) error {
	if !w.session.Active() || w.resolving {
		return lock.ErrNotActive
	}
	if !w.board.HasSlot(slot) {
		return lock.Invalidf("unknown slot %d", slot)
	}

	occupant, taken := w.board.PlugAt(slot)
	if !w.holding {
		if taken {
			w.held, w.holding = occupant, true
			w.session.Emit(lock.EventPress, occupant, 0)
		}
		return nil
	}
	if taken && occupant != w.held {
		return nil
	}

	plug := w.held
	res, err := w.board.MovePlug(plug, slot)
	if err != nil {
		return err
	}
	if res != plugboard.MoveOk {
		w.session.Logger().Debug("plug rejected", zap.Int("plug", plug), zap.Stringer("result", res))
		return nil
	}
	w.holding = false
	w.session.Emit(lock.EventClick, plug, float64(w.board.MovesLeft()))
	w.settle()
	return nil
}

// settle schedules the outcome once the board has one.
func (w *WirePanel) settle() {
	switch w.board.CheckSuccess() {
	case lock.Won:
		w.resolving = true
		w.session.Steps().Schedule(w.cfg.UnlockDelay, func() { w.session.Win() })
	case lock.Lost:
		w.resolving = true
		w.session.Steps().Schedule(w.cfg.FailDelay, func() { w.session.Lose() })
	}
}

// Deactivate stops the panel; a held plug is dropped back.
func (w *WirePanel) Deactivate() {
	w.holding = false
	w.resolving = false
	w.session.End()
}

// Held returns the plug currently pulled out.
func (w *WirePanel) Held() (int, bool) {
	return w.held, w.holding
}

func (w *WirePanel) Board() *plugboard.Board { return w.board }
func (w *WirePanel) Resolving() bool { return w.resolving }
func (w *WirePanel) Config() WirePanelConfig { return w.cfg }
