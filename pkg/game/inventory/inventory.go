// Package inventory tracks the player's consumable tools (lockpicks,
// safecracking kits, defusal sets).
package inventory

import (
	"maps"
	"slices"
)

// Inventory is a set of tool counts. It implements lock.Tools.
type Inventory struct {
	counts map[string]int
}

// New creates an inventory holding the given counts.
func New(counts map[string]int) *Inventory {
	inv := &Inventory{
		counts: make(map[string]int, len(counts)),
	}
	for tool, n := range counts {
		inv.Add(tool, n)
	}
	return inv
}

// Add gives n more of a tool. Negative n takes them away, never below zero.
func (inv *Inventory) Add(tool string, n int) {
	inv.counts[tool] = max(0, inv.counts[tool]+n)
}

// Count returns how many of a tool are held
func (inv *Inventory) Count(tool string) int {
	return inv.counts[tool]
}

// Has reports whether at least one of the tool is held.
func (inv *Inventory) Has(tool string) bool {
	return inv.counts[tool] > 0
}

// Consume uses up one of a tool and returns how many remain. It reports
// false, and changes nothing, when none are held.
func (inv *Inventory) Consume(tool string) (int, bool) {
	n := inv.counts[tool]
	if n <= 0 {
		return 0, false
	}
	n--
	inv.counts[tool] = n
	return n, true
}

// Tools lists every tool the inventory has seen, sorted, including ones
// that have run out.
func (inv *Inventory) Tools() []string {
	return slices.Sorted(maps.Keys(inv.counts))
}

// Snapshot returns a copy of the counts.
func (inv *Inventory) Snapshot() map[string]int {
	return maps.Clone(inv.counts)
}
