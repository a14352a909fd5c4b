// Package plugboard implements the wire panel puzzle: plugs are moved
// between slots under a move budget until every plug sits in its correct
// slot with no wires crossing.
package plugboard

import (
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"lockworks/pkg/engine/lock"
)

// MoveResult is the answer to a MovePlug request.
type MoveResult int

const (
	MoveOk MoveResult = iota
	MoveInvalidSlot
	MoveNoMovesLeft
)

func (r MoveResult) String() string {
	switch r {
	case MoveOk:
		return "ok"
	case MoveInvalidSlot:
		return "invalid slot"
	case MoveNoMovesLeft:
		return "no moves left"
	default:
		return "unknown"
	}
}

// Slot is a socket a plug can sit in.
type Slot struct {
	ID int
	At Point
}

// Plug is a wire whose far end is fixed at Anchor. Slot is where it starts;
// Correct is where it has to end up.
type Plug struct {
	ID      int
	Anchor  Point
	Slot    int
	Correct int
}

// Layout is the panel's starting arrangement.
type Layout struct {
	Slots     []Slot
	Plugs     []Plug
	MovesLeft int
}

// Validate checks ids and references, returning a *lock.ConfigError.
func (l Layout) Validate() error {
	const name = "wirepanel"
	if l.MovesLeft < 1 {
		return lock.Invalid(name, "movesLeft", "must be at least 1, got %d", l.MovesLeft)
	}
	if len(l.Plugs) == 0 {
		return lock.Invalid(name, "plugs", "at least one plug is required")
	}
	if len(l.Slots) < len(l.Plugs) {
		return lock.Invalid(name, "slots", "%d slots cannot hold %d plugs", len(l.Slots), len(l.Plugs))
	}

	slots := make(map[int]bool, len(l.Slots))
	for _, s := range l.Slots {
		if slots[s.ID] {
			return lock.Invalid(name, "slots", "duplicate slot id %d", s.ID)
		}
		slots[s.ID] = true
	}

	plugIDs := make(map[int]bool)
	start := make(map[int]int)
	goal := make(map[int]int)
	for _, p := range l.Plugs {
		field := fmt.Sprintf("plugs[%d]", p.ID)
		if plugIDs[p.ID] {
			return lock.Invalid(name, "plugs", "duplicate plug id %d", p.ID)
		}
		plugIDs[p.ID] = true
		if !slots[p.Slot] {
			return lock.Invalid(name, field, "starts in unknown slot %d", p.Slot)
		}
		if !slots[p.Correct] {
			return lock.Invalid(name, field, "correct slot %d does not exist", p.Correct)
		}
		if other, ok := start[p.Slot]; ok {
			return lock.Invalid(name, field, "shares slot %d with plug %d", p.Slot, other)
		}
		if other, ok := goal[p.Correct]; ok {
			return lock.Invalid(name, field, "shares correct slot %d with plug %d", p.Correct, other)
		}
		start[p.Slot] = p.ID
		goal[p.Correct] = p.ID
	}
	return nil
}

// Board is the live panel.
type Board struct {
	slots        map[int]Point
	slotOrder    []int
	plugs        []Plug
	occupied     map[int]int
	movesLeft    int
	overlap      Overlap
	intersecting mapset.Set[int]
	correct      int
	outcome      lock.Outcome
}

// NewBoard validates the layout and evaluates the starting position.
// A nil overlap uses SegmentsCross.
func NewBoard(l Layout, overlap Overlap) (*Board, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if overlap == nil {
		overlap = SegmentsCross
	}

	b := &Board{
		slots:     make(map[int]Point, len(l.Slots)),
		plugs:     slices.Clone(l.Plugs),
		occupied:  make(map[int]int, len(l.Plugs)),
		movesLeft: l.MovesLeft,
		overlap:   overlap,
	}
	for _, s := range l.Slots {
		b.slots[s.ID] = s.At
		b.slotOrder = append(b.slotOrder, s.ID)
	}
	for _, p := range b.plugs {
		b.occupied[p.Slot] = p.ID
	}
	b.recompute()
	return b, nil
}

// Scramble deals the plugs onto random distinct slots, retrying a few times
// to avoid a solved start. It costs no moves.
func (b *Board) Scramble(rng lock.RNG) {
	for attempt := 0; attempt < 16; attempt++ {
		order := slices.Clone(b.slotOrder)
		lock.Shuffle(rng, order)
		clear(b.occupied)
		for i := range b.plugs {
			b.plugs[i].Slot = order[i]
			b.occupied[order[i]] = b.plugs[i].ID
		}
		b.recompute()
		if b.correct < len(b.plugs) {
			return
		}
	}
}

// MovePlug moves a plug to a slot. Moving a plug to the slot it is in is
// free. Unknown plugs and moves on a finished board return an error
// wrapping lock.ErrInvalidOperation and change nothing.
func (b *Board) MovePlug(plugID, slotID int) (MoveResult, error) {
	i := b.plugIndex(plugID)
	if i < 0 {
		return MoveInvalidSlot, lock.Invalidf("unknown plug %d", plugID)
	}
	if b.outcome == lock.Won {
		return MoveInvalidSlot, fmt.Errorf("move plug %d: %w", plugID, lock.ErrNotActive)
	}
	if b.movesLeft <= 0 {
		return MoveNoMovesLeft, nil
	}
	if _, ok := b.slots[slotID]; !ok {
		return MoveInvalidSlot, nil
	}
	if b.plugs[i].Slot == slotID {
		return MoveOk, nil
	}
	if _, taken := b.occupied[slotID]; taken {
		return MoveInvalidSlot, nil
	}

	delete(b.occupied, b.plugs[i].Slot)
	b.plugs[i].Slot = slotID
	b.occupied[slotID] = plugID
	b.movesLeft--
	b.recompute()
	b.CheckSuccess()
	return MoveOk, nil
}

// CheckSuccess reports the board outcome: won when every plug is correct
// and uncrossed, lost once the move budget is spent.
func (b *Board) CheckSuccess() lock.Outcome {
	switch {
	case b.outcome.Terminal():
	case b.correct == len(b.plugs):
		b.outcome = lock.Won
	case b.movesLeft <= 0:
		b.outcome = lock.Lost
	}
	return b.outcome
}

func (b *Board) recompute() {
	crossing := mapset.New[int]()
	for i := range b.plugs {
		for j := i + 1; j < len(b.plugs); j++ {
			if b.overlap(b.wire(i), b.wire(j)) {
				crossing.Put(b.plugs[i].ID)
				crossing.Put(b.plugs[j].ID)
			}
		}
	}
	b.intersecting = crossing

	b.correct = 0
	for _, p := range b.plugs {
		if p.Slot == p.Correct && !crossing.Has(p.ID) {
			b.correct++
		}
	}
}

func (b *Board) wire(i int) Segment {
	return Segment{A: b.slots[b.plugs[i].Slot], B: b.plugs[i].Anchor}
}

func (b *Board) plugIndex(id int) int {
	for i, p := range b.plugs {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Wire returns the segment of a plug's wire.
func (b *Board) Wire(plugID int) (Segment, bool) {
	i := b.plugIndex(plugID)
	if i < 0 {
		return Segment{}, false
	}
	return b.wire(i), true
}

// Intersecting reports whether the plug's wire crosses another.
func (b *Board) Intersecting(plugID int) bool {
	return b.intersecting.Has(plugID)
}

// PlugAt returns the plug sitting in a slot.
func (b *Board) PlugAt(slotID int) (int, bool) {
	id, ok := b.occupied[slotID]
	return id, ok
}

// HasSlot reports whether the slot exists.
func (b *Board) HasSlot(slotID int) bool {
	_, ok := b.slots[slotID]
	return ok
}

// Plugs returns a snapshot of the plugs.
func (b *Board) Plugs() []Plug {
	return slices.Clone(b.plugs)
}

// Slots returns the slots in layout order.
func (b *Board) Slots() []Slot {
	out := make([]Slot, 0, len(b.slotOrder))
	for _, id := range b.slotOrder {
		out = append(out, Slot{ID: id, At: b.slots[id]})
	}
	return out
}

func (b *Board) MovesLeft() int { return b.movesLeft }
func (b *Board) CorrectSlots() int { return b.correct }
func (b *Board) Outcome() lock.Outcome { return b.outcome }
func (b *Board) IntersectingCount() int { return b.intersecting.Size() }
