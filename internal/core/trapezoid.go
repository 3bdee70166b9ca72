package core

import "fmt"

// Trapezoid is a planar region bounded by up to two side segments and up to
// two horizontal lines through nexuses. Every field but Sink is optional
// (the absent Handle zero value); the very first trapezoid, seeded at
// construction, is unbounded on every side.
type Trapezoid struct {
	Left, Right Handle[Segment]
	Up, Down    Handle[Nexus]

	// TrapezoidsAbove/Below can briefly hold up to three entries mid-split;
	// in the stable state (between insertions) there are never more than two.
	TrapezoidsAbove, TrapezoidsBelow TrapezoidNeighborList

	Sink Handle[QueryNode]
}

// TrapezoidNeighborList holds up to three neighbor handles in one direction.
type TrapezoidNeighborList [3]Handle[Trapezoid]

func (tl *TrapezoidNeighborList) String() string {
	return fmt.Sprintf("%v", *tl)
}

// Add appends t if it isn't already present. Panics if there's no free slot,
// which would mean a trapezoid has picked up more neighbors than the
// algorithm ever allows in one direction.
func (tl *TrapezoidNeighborList) Add(t Handle[Trapezoid]) {
	for i, neighbor := range tl {
		if neighbor.Equal(t) {
			return
		}
		if !neighbor.IsValid() {
			tl[i] = t
			return
		}
	}
	panic("core: too many trapezoid neighbors")
}

// Remove clears t from the list if present.
func (tl *TrapezoidNeighborList) Remove(t Handle[Trapezoid]) {
	for i, neighbor := range tl {
		if neighbor.Equal(t) {
			tl[i] = Handle[Trapezoid]{}
			return
		}
	}
}

// ReplaceOrAdd swaps orig for replacement, or appends replacement if orig
// wasn't present.
func (tl *TrapezoidNeighborList) ReplaceOrAdd(orig, replacement Handle[Trapezoid]) {
	for i, neighbor := range tl {
		if neighbor.Equal(orig) {
			tl[i] = replacement
			return
		}
	}
	tl.Add(replacement)
}
