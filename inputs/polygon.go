// Package inputs defines the input collaborator: the contract a caller's
// polygon data must satisfy to be triangulated, plus a slice-backed
// reference implementation.
package inputs

import "math"

// epsilon matches the core package's tolerance; kept independent since
// inputs has no dependency on core (geometry here is only what's needed to
// validate and orient caller-supplied polygons, not the trapezoidation math).
const epsilon = 1e-9

func equal(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// Vertex is a single 2D point as supplied by the caller.
type Vertex interface {
	X() float64
	Y() float64
}

// Point is the concrete Vertex implementation used by Polygon.
type Point struct {
	Px, Py float64
}

func (p Point) X() float64 { return p.Px }
func (p Point) Y() float64 { return p.Py }

func (p Point) below(other Point) bool {
	if equal(p.Py, other.Py) {
		return p.Px < other.Px
	}
	return p.Py < other.Py
}

// PolygonElement tags whether a streamed vertex continues the current
// polygon or starts a new one, letting a single flat stream encode multiple
// simple polygons (holes included) without a nested slice-of-slices shape at
// the interface boundary. A leading, trailing, or repeated NewPolygon marker
// is inert: it never produces an empty polygon.
type PolygonElement int

const (
	ContinuePolygon PolygonElement = iota
	NewPolygon
)

// PolygonList is the input collaborator.
type PolygonList interface {
	VertexCount() int
	GetVertex(i int) Vertex
	ElementAt(i int) PolygonElement
}

// Polygon is a single closed ring of vertices, in order.
type Polygon struct {
	Points []Point
}

func circularIndex(i, n int) int {
	return (i%n + n) % n
}

// SignedArea is positive for a counterclockwise ring, negative for clockwise.
func (poly Polygon) SignedArea() float64 {
	area := 0.0
	n := len(poly.Points)
	for i := 0; i < n; i++ {
		next := poly.Points[circularIndex(i+1, n)]
		area += poly.Points[i].Px*next.Py - next.Px*poly.Points[i].Py
	}
	return area / 2
}

// HasSignedArea lets Area/IsCCW/IsCW work on anything with a well-defined
// enclosed signed area, not just Polygon.
type HasSignedArea interface {
	SignedArea() float64
}

func Area(s HasSignedArea) float64 { return math.Abs(s.SignedArea()) }
func IsCCW(s HasSignedArea) bool   { return s.SignedArea() > 0 }
func IsCW(s HasSignedArea) bool    { return s.SignedArea() < 0 }

// CrossingCount counts the polygon's edges crossed by a ray from p, the basis
// of the even-odd point-in-polygon test. Provided
// primarily for testing the triangulation output against the source
// polygon; for repeated queries against the same polygon, triangulating it
// and querying the resulting structure is the efficient path.
//
// This is winding-direction agnostic: it disagrees with the triangulator's
// own inside/outside notion if holes run the same direction as their outer
// boundary.
func (poly Polygon) CrossingCount(p Point) int {
	count := 0
	n := len(poly.Points)
	for i, v := range poly.Points {
		next := poly.Points[circularIndex(i+1, n)]
		if !segmentIsLeftOf(v, next, p) && v.below(p) != next.below(p) {
			count++
		}
	}
	return count
}

func (poly Polygon) ContainsPointByEvenOdd(p Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

func segmentIsLeftOf(start, end, p Point) bool {
	min, max := start, end
	if max.below(min) {
		min, max = max, min
	}
	if equal(p.Py, max.Py) {
		return p.Px < max.Px
	}
	if equal(p.Py, min.Py) {
		return p.Px < min.Px
	}
	return (min.Px-max.Px)*(p.Py-max.Py) < (min.Py-max.Py)*(p.Px-max.Px)
}

func (poly Polygon) Reverse() Polygon {
	out := Polygon{Points: make([]Point, len(poly.Points))}
	n := len(poly.Points)
	for i, v := range poly.Points {
		out.Points[n-1-i] = v
	}
	return out
}

// SimplePolygonList is the reference PolygonList: a flat slice of polygons,
// each already a contiguous ring, adapted to the element-stream interface by
// marking every ring's first vertex NewPolygon.
type SimplePolygonList struct {
	Polygons []Polygon

	offsets []int // cumulative start offset of each polygon, built lazily
}

func (l *SimplePolygonList) ensureOffsets() {
	if l.offsets != nil || len(l.Polygons) == 0 {
		return
	}
	l.offsets = make([]int, len(l.Polygons))
	total := 0
	for i, p := range l.Polygons {
		l.offsets[i] = total
		total += len(p.Points)
	}
}

func (l *SimplePolygonList) VertexCount() int {
	total := 0
	for _, p := range l.Polygons {
		total += len(p.Points)
	}
	return total
}

func (l *SimplePolygonList) locate(i int) (polyIdx, within int) {
	l.ensureOffsets()
	for pi := len(l.offsets) - 1; pi >= 0; pi-- {
		if i >= l.offsets[pi] {
			return pi, i - l.offsets[pi]
		}
	}
	return 0, i
}

func (l *SimplePolygonList) GetVertex(i int) Vertex {
	pi, within := l.locate(i)
	return l.Polygons[pi].Points[within]
}

func (l *SimplePolygonList) ElementAt(i int) PolygonElement {
	_, within := l.locate(i)
	if within == 0 {
		return NewPolygon
	}
	return ContinuePolygon
}

// CrossingCount sums the crossing count of every ring, so a multi-ring list
// (an outer boundary plus holes) reports point containment across all of
// them at once.
func (l *SimplePolygonList) CrossingCount(p Point) int {
	count := 0
	for _, poly := range l.Polygons {
		count += poly.CrossingCount(p)
	}
	return count
}

func (l *SimplePolygonList) ContainsPointByEvenOdd(p Point) bool {
	return l.CrossingCount(p)%2 == 1
}

// ElementsToPolygons groups a PolygonList's flat element stream back into
// per-polygon 0-based vertex-slot slices, the shape core.Engine.Build
// consumes. Consecutive, leading, and trailing NewPolygon markers collapse
// to nothing, so a marker run is always inert rather than producing an
// empty polygon.
func ElementsToPolygons(list PolygonList) [][]int {
	n := list.VertexCount()
	var polys [][]int
	var cur []int
	for i := 0; i < n; i++ {
		if list.ElementAt(i) == NewPolygon && len(cur) > 0 {
			polys = append(polys, cur)
			cur = nil
		}
		cur = append(cur, i)
	}
	if len(cur) > 0 {
		polys = append(polys, cur)
	}
	return polys
}
