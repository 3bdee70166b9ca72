package core

// DividerDirection records whether a divider's segment goes up or down from
// the nexus it's attached to.
type DividerDirection int

const (
	// Ascending means the segment goes up from here: this nexus is the
	// segment's lower (NiMin) endpoint.
	Ascending DividerDirection = iota
	// Descending means this nexus is the segment's upper (NiMax) endpoint.
	Descending
)

// Divider is a segment attached at a nexus, recorded together with the
// trapezoid immediately to the segment's right.
type Divider struct {
	Segment        Handle[Segment]
	TrapezoidRight Handle[Trapezoid]
	Direction      DividerDirection
}

// NexusType classifies a fully processed nexus (one with exactly two
// dividers) by its divider directions.
type NexusType int

const (
	// NexusV: both dividers ascending (three upper trapezoids merge below).
	NexusV NexusType = iota
	// NexusI: one ascending, one descending (a simple pass-through).
	NexusI
	// NexusA: both dividers descending (one upper trapezoid forks into three below).
	NexusA
)

// Nexus is the per-vertex record materialized the first time either of a
// vertex's two incident edges is inserted. VertexSlot is the vertex's 0-based
// index in the caller's inputs.PolygonList, the same index the driver later
// hands to the output format.
type Nexus struct {
	VertexSlot int
	Coords     Coords

	// TiUpleft/TiDownleft are the trapezoid immediately above-left and
	// below-left of this nexus at the moment it was created by a horizontal
	// split; they are the two halves of the region before any segment
	// divider has been attached here.
	TiUpleft, TiDownleft Handle[Trapezoid]

	dividers    [2]Divider
	numDividers int
}

// NumDividers reports how many dividers (0, 1, or 2) are attached.
func (n *Nexus) NumDividers() int {
	return n.numDividers
}

// DividerAt returns the i'th attached divider (0 or 1). Panics if i is out of
// range for the current divider count.
func (n *Nexus) DividerAt(i int) Divider {
	if i < 0 || i >= n.numDividers {
		panic("core: divider index out of range")
	}
	return n.dividers[i]
}

// Type classifies a fully processed (two-divider) nexus. Panics if fewer than
// two dividers are attached, since the classification is only meaningful
// once trapezoidation has finished with this nexus.
func (n *Nexus) Type() NexusType {
	if n.numDividers != 2 {
		panic("core: nexus type requested before both dividers attached")
	}
	d0, d1 := n.dividers[0].Direction, n.dividers[1].Direction
	switch {
	case d0 == Ascending && d1 == Ascending:
		return NexusV
	case d0 == Descending && d1 == Descending:
		return NexusA
	default:
		return NexusI
	}
}

// AddDivider attaches a new divider to the nexus, placing it by this rule:
//   - same direction as the existing divider: order left-to-right by
//     IsLeftOfLine against the new segment's far endpoint (the endpoint that
//     isn't this nexus).
//   - opposite directions: Ascending always precedes Descending, regardless
//     of insertion order, so a two-divider nexus's slot order alone reveals
//     its V/I/A type.
//   - a third divider is an internal invariant violation: the input must
//     contain a vertex with three or more incident segments, which cannot
//     happen for a simple polygon unless two polygons share a vertex or an
//     edge is duplicated.
func (n *Nexus) AddDivider(segments *Arena[Segment], seg Handle[Segment], trapRight Handle[Trapezoid], dir DividerDirection, farEndpoint Coords) error {
	newDivider := Divider{Segment: seg, TrapezoidRight: trapRight, Direction: dir}

	switch n.numDividers {
	case 0:
		n.dividers[0] = newDivider
		n.numDividers = 1
		return nil
	case 1:
		existing := n.dividers[0]
		if existing.Direction != dir {
			if dir == Ascending {
				n.dividers = [2]Divider{newDivider, existing}
			} else {
				n.dividers = [2]Divider{existing, newDivider}
			}
			n.numDividers = 2
			return nil
		}
		existingSeg := segments.Get(existing.Segment)
		if existingSeg.IsOnLeft(farEndpoint) {
			n.dividers = [2]Divider{newDivider, existing}
		} else {
			n.dividers = [2]Divider{existing, newDivider}
		}
		n.numDividers = 2
		return nil
	default:
		return Internalf("nexus already has two dividers; a third divider implies overlapping polygons or a duplicate vertex")
	}
}
