package core

import "math"

// Segment is an oriented polygon edge running from its lexicographically
// lower endpoint (NiMin) to its upper endpoint (NiMax). CMin/CMax cache the
// endpoint coordinates so geometry predicates never need to re-dereference
// the nexus arena.
type Segment struct {
	NiMin, NiMax Handle[Nexus]
	CMin, CMax   Coords
}

// IsOnLeft reports whether c lies to the left of this segment, using the
// same min/max endpoint convention as IsLeftOfLine.
func (s *Segment) IsOnLeft(c Coords) bool {
	return IsLeftOfLine(s.CMin, s.CMax, c)
}

// IsHorizontal reports whether the segment's two endpoints share a y value
// under lexicographic tie-breaking (i.e. Equal(y, y)).
func (s *Segment) IsHorizontal() bool {
	return Equal(s.CMin.Y, s.CMax.Y)
}

// PointsDown reports whether, read from CMax to CMin, the segment descends —
// true for every segment except a right-to-left horizontal one, which is
// rotated to "point down" by the lexicographic convention. A trapezoid is
// inside the polygon iff its left boundary segment points down.
func (s *Segment) PointsDown() bool {
	if s.IsHorizontal() {
		return s.CMax.X < s.CMin.X
	}
	return true
}

// SolveForX returns the x coordinate at which the segment's line crosses
// height y. The segment must not be horizontal.
func (s *Segment) SolveForX(y float64) float64 {
	if s.IsHorizontal() {
		panic("core: SolveForX on horizontal segment")
	}
	t := (y - s.CMin.Y) / (s.CMax.Y - s.CMin.Y)
	return s.CMin.X + t*(s.CMax.X-s.CMin.X)
}

// XDirection classifies which side of a trapezoid a segment bounds.
type XDirection int

const (
	Left XDirection = iota
	Right
)

// YDirection classifies which boundary (top/bottom) of a trapezoid a value
// applies to.
type YDirection int

const (
	Down YDirection = iota
	Up
)

// Direction pairs an XDirection and YDirection, used to name one of a
// trapezoid's four corners.
type Direction struct {
	X XDirection
	Y YDirection
}

func (d Direction) Opposite() Direction {
	x := Right
	if d.X == Right {
		x = Left
	}
	y := Up
	if d.Y == Up {
		y = Down
	}
	return Direction{X: x, Y: y}
}

// DefaultDirection is used by callers (vertex insertion and re-localization)
// that don't care which way point-location disambiguates ties.
var DefaultDirection = Direction{X: Left, Y: Down}

func xValueAtInfinity(dir XDirection) float64 {
	if dir == Left {
		return math.Inf(-1)
	}
	return math.Inf(1)
}
