package core

import "math"

// Epsilon-based float comparison. Without this, nearly-horizontal segments
// shave off absurdly thin slivers under lexicographic tie-breaking.
const Epsilon = 1e-9

func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Coords is a (x, y) pair in the lexicographic y-then-x order used
// everywhere in the core to simulate a coordinate system with no two points
// sharing a y value.
type Coords struct {
	X, Y float64
}

// Below reports whether c sorts before other: lower y, or equal y and lower
// x. This is the total order every sweep and query in this package sorts by.
func (c Coords) Below(other Coords) bool {
	if Equal(c.Y, other.Y) {
		return c.X < other.X
	}
	return c.Y < other.Y
}

func (c Coords) Above(other Coords) bool {
	return other.Below(c)
}

// LessOrEqual is the "c <= cY" comparison a Y-branch query performs.
func (c Coords) LessOrEqual(other Coords) bool {
	return c == other || c.Below(other)
}

// IsLeftOfLine reports whether p sits to the left of the line through min
// (the lexicographically lower point) and max (the
// lexicographically higher point)? Ties at either endpoint resolve so the
// endpoints themselves count as being on the right, which keeps point
// location consistent when a query coordinate coincides with a segment
// endpoint already in the structure.
func IsLeftOfLine(min, max, p Coords) bool {
	if Equal(p.Y, max.Y) {
		return p.X < max.X
	}
	if Equal(p.Y, min.Y) {
		return p.X < min.X
	}
	return (min.X-max.X)*(p.Y-max.Y) < (min.Y-max.Y)*(p.X-max.X)
}
