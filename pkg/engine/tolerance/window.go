// Package tolerance scores a continuous position against a target window
// and turns that score into drive progress over time.
package tolerance

import (
	"math"

	"lockworks/pkg/engine/lock"
)

// Zone classifies a position relative to a Window.
type Zone int

const (
	ZoneInside Zone = iota
	ZoneFalloff
	ZoneOutside
)

func (z Zone) String() string {
	switch z {
	case ZoneInside:
		return "inside"
	case ZoneFalloff:
		return "falloff"
	default:
		return "outside"
	}
}

// Window is a target with a full-credit range and a linear falloff band
// around it.
type Window struct {
	Target  float64
	Range   float64
	Falloff float64
}

// Validate rejects negative widths.
func (w Window) Validate(lockName string) error {
	if w.Range < 0 || math.IsNaN(w.Range) {
		return lock.Invalid(lockName, "range", "must not be negative, got %v", w.Range)
	}
	if w.Falloff < 0 || math.IsNaN(w.Falloff) {
		return lock.Invalid(lockName, "falloff", "must not be negative, got %v", w.Falloff)
	}
	return nil
}

// Distance is |position - target|.
func (w Window) Distance(position float64) float64 {
	return math.Abs(position - w.Target)
}

// Contains reports whether position is within the full-credit range.
func (w Window) Contains(position float64) bool {
	return w.Distance(position) <= w.Range
}

// Zone classifies position.
func (w Window) Zone(position float64) Zone {
	return w.zoneAt(w.Distance(position))
}

func (w Window) zoneAt(d float64) Zone {
	switch {
	case d <= w.Range:
		return ZoneInside
	case d <= w.Range+w.Falloff:
		return ZoneFalloff
	default:
		return ZoneOutside
	}
}

// Credit is 1 inside the range, falls linearly to 0 across the falloff band
// and is 0 beyond it.
func (w Window) Credit(position float64) float64 {
	return w.creditAt(w.Distance(position))
}

func (w Window) creditAt(d float64) float64 {
	switch w.zoneAt(d) {
	case ZoneInside:
		return 1
	case ZoneFalloff:
		return 1 - (d-w.Range)/w.Falloff
	default:
		return 0
	}
}

// Point is a position in a planar lock (kingdom cylinder, stethoscope).
type Point struct {
	X, Y float64
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// PlanarWindow is a Window around a point; distance replaces |pos-target|.
type PlanarWindow struct {
	Center  Point
	Range   float64
	Falloff float64
}

func (w PlanarWindow) axis() Window {
	return Window{Range: w.Range, Falloff: w.Falloff}
}

// Zone classifies p.
func (w PlanarWindow) Zone(p Point) Zone {
	return w.axis().zoneAt(w.Center.Dist(p))
}

// Credit is the Window credit at the distance from the centre.
func (w PlanarWindow) Credit(p Point) float64 {
	return w.axis().creditAt(w.Center.Dist(p))
}
