// Package locks holds the playable lock minigames. Each one is a lock.Game
// built on the generic engines in pkg/engine.
package locks

import (
	"lockworks/pkg/engine/lock"
)

// Lock kinds, as named in scene files.
const (
	KindDialPad   = "dialpad"
	KindCylinder  = "cylinder"
	KindLockpick  = "lockpick"
	KindSafeDial  = "safedial"
	KindComboDial = "combodial"
	KindWirePanel = "wirepanel"
	KindBomb      = "bomb"
)

// Kinds lists every lock kind in display order.
func Kinds() []string {
	return []string{
		KindDialPad,
		KindCylinder,
		KindLockpick,
		KindSafeDial,
		KindComboDial,
		KindWirePanel,
		KindBomb,
	}
}

// ToolUser is implemented by locks that draw a consumable from the
// inventory while being played.
type ToolUser interface {
	Tool() string
}

type base struct {
	session *lock.Session
}

func newBase(kind string) base {
	return base{session: lock.NewSession(kind)}
}

func (b *base) Kind() string { return b.session.Kind() }
func (b *base) Session() *lock.Session { return b.session }

// running reports whether Tick should do any work this frame.
func (b *base) running() bool {
	return b.session.Active()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp moves a toward b by t, with t clamped to [0,1].
func lerp(a, b, t float64) float64 {
	return a + (b-a)*clamp(t, 0, 1)
}
