package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/outputs/formats"
)

// triangleArea computes the unsigned area of a DeindexedTriangle via the
// shoelace formula, so a triangulation's coverage can be checked against the
// source polygons' own area independent of how it was cut.
func triangleArea(tri formats.DeindexedTriangle) float64 {
	ax, ay := tri.A.X(), tri.A.Y()
	bx, by := tri.B.X(), tri.B.Y()
	cx, cy := tri.C.X(), tri.C.Y()
	signed := (bx-ax)*(cy-ay) - (cx-ax)*(by-ay)
	if signed < 0 {
		signed = -signed
	}
	return signed / 2
}

func totalArea(tris []formats.DeindexedTriangle) float64 {
	var sum float64
	for _, t := range tris {
		sum += triangleArea(t)
	}
	return sum
}

// netArea sums each polygon ring's own signed area; solid rings are CCW
// (positive) and holes CW (negative), so this nets out to the region a
// correct triangulation must cover.
func netArea(list *inputs.SimplePolygonList) float64 {
	var sum float64
	for _, poly := range list.Polygons {
		sum += poly.SignedArea()
	}
	if sum < 0 {
		sum = -sum
	}
	return sum
}

func triangulateFixture(t *testing.T, list *inputs.SimplePolygonList, opts ...Option) []formats.DeindexedTriangle {
	t.Helper()
	tris, err := Triangulate[[]formats.DeindexedTriangle](list, formats.DeindexedFan{}, opts...)
	require.NoError(t, err)
	return tris
}

func TestTriangulateSquare(t *testing.T) {
	list := inputs.Square()
	tris := triangulateFixture(t, list, WithSeed(1))
	assert.Len(t, tris, 2)
	assert.InDelta(t, netArea(list), totalArea(tris), 1e-9)
}

func TestTriangulateFourPointedStar(t *testing.T) {
	list := inputs.FourPointedStar()
	tris := triangulateFixture(t, list, WithSeed(2))
	assert.Len(t, tris, 6)
	assert.InDelta(t, netArea(list), totalArea(tris), 1e-9)
}

func TestTriangulateHalfFrame(t *testing.T) {
	list := inputs.HalfFrame()
	tris := triangulateFixture(t, list, WithSeed(3))
	assert.Len(t, tris, 4)
	assert.InDelta(t, netArea(list), totalArea(tris), 1e-9)
}

func TestTriangulateAnnulus(t *testing.T) {
	list := inputs.Annulus()
	tris := triangulateFixture(t, list, WithSeed(4))
	// 8 vertices total split across one hole: bridging the hole into the
	// outer ring duplicates two vertices, so the triangle count is
	// vertexCount - 2 + 2*holeCount rather than the hole-free vertexCount - 2.
	assert.Len(t, tris, 8)
	assert.InDelta(t, netArea(list), totalArea(tris), 1e-9)
}

func TestTriangulateRegularNGons(t *testing.T) {
	for _, n := range []int{3, 4, 5, 6, 10, 50, 500} {
		list := inputs.RegularNGon(n, 10)
		tris := triangulateFixture(t, list, WithSeed(int64(n)))
		assert.Lenf(t, tris, n-2, "n=%d", n)
		assert.InDeltaf(t, netArea(list), totalArea(tris), 1e-6, "n=%d", n)
	}
}

func TestTriangulateDegenerateTooFewVertices(t *testing.T) {
	_, err := Triangulate[[]formats.DeindexedTriangle](inputs.Degenerate(), formats.DeindexedFan{})
	require.Error(t, err)
	var tooFew *NotEnoughVerticesError
	assert.ErrorAs(t, err, &tooFew)
}

func TestTriangulateNoVertices(t *testing.T) {
	empty := &inputs.SimplePolygonList{}
	_, err := Triangulate[[]formats.DeindexedTriangle](empty, formats.DeindexedFan{})
	require.Error(t, err)
	var noVerts *NoVerticesError
	assert.ErrorAs(t, err, &noVerts)
}

func TestTriangulateSeedIsReproducible(t *testing.T) {
	list := inputs.RegularNGon(11, 5)
	first := triangulateFixture(t, list, WithSeed(42))
	second := triangulateFixture(t, list, WithSeed(42))
	assert.Equal(t, first, second)
}

func TestTriangulateIndexedFanWinding(t *testing.T) {
	list := inputs.Square()
	tris, err := Triangulate[[]formats.Triangle](list, formats.IndexedFan{}, WithSeed(7))
	require.NoError(t, err)
	require.Len(t, tris, 2)
	for _, tri := range tris {
		a, b, c := list.GetVertex(tri.A), list.GetVertex(tri.B), list.GetVertex(tri.C)
		signed := (b.X()-a.X())*(c.Y()-a.Y()) - (c.X()-a.X())*(b.Y()-a.Y())
		assert.Greaterf(t, signed, 0.0, "triangle %+v should be counterclockwise", tri)
	}
}

func TestTriangulateDuplicateCoordinatesRejected(t *testing.T) {
	list := &inputs.SimplePolygonList{Polygons: []inputs.Polygon{{Points: []inputs.Point{
		{Px: 0, Py: 0}, {Px: 1, Py: 0}, {Px: 1, Py: 0}, {Px: 0, Py: 1},
	}}}}
	_, err := Triangulate[[]formats.DeindexedTriangle](list, formats.DeindexedFan{})
	require.Error(t, err)
	var trapErr *TrapezoidationError
	assert.ErrorAs(t, err, &trapErr)
}
