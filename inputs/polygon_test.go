package inputs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplePolygonListElements(t *testing.T) {
	list := Annulus()

	require.Equal(t, 8, list.VertexCount())
	assert.Equal(t, NewPolygon, list.ElementAt(0))
	assert.Equal(t, ContinuePolygon, list.ElementAt(1))
	assert.Equal(t, ContinuePolygon, list.ElementAt(3))
	assert.Equal(t, NewPolygon, list.ElementAt(4))
	assert.Equal(t, ContinuePolygon, list.ElementAt(5))

	polys := ElementsToPolygons(list)
	require.Len(t, polys, 2)
	assert.Equal(t, []int{0, 1, 2, 3}, polys[0])
	assert.Equal(t, []int{4, 5, 6, 7}, polys[1])
}

func TestElementsToPolygonsInertMarkers(t *testing.T) {
	// A PolygonList whose ElementAt marks indices 0 and 1 NewPolygon splits
	// into [0] and [1, 2]; the leading marker at index 0 does not produce an
	// empty polygon in front of them.
	list := &stubList{
		verts: pts([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1}),
		marks: []PolygonElement{NewPolygon, NewPolygon, ContinuePolygon},
	}
	polys := ElementsToPolygons(list)
	require.Len(t, polys, 2)
	assert.Equal(t, []int{0}, polys[0])
	assert.Equal(t, []int{1, 2}, polys[1])
}

type stubList struct {
	verts []Point
	marks []PolygonElement
}

func (s *stubList) VertexCount() int             { return len(s.verts) }
func (s *stubList) GetVertex(i int) Vertex        { return s.verts[i] }
func (s *stubList) ElementAt(i int) PolygonElement { return s.marks[i] }

func TestPolygonWindingHelpers(t *testing.T) {
	square := Square().Polygons[0]
	assert.True(t, IsCCW(square))
	assert.False(t, IsCW(square))
	assert.InDelta(t, 1.0, Area(square), 1e-9)

	reversed := square.Reverse()
	assert.True(t, IsCW(reversed))
}

func TestContainsPointByEvenOdd(t *testing.T) {
	square := Square().Polygons[0]
	assert.True(t, square.ContainsPointByEvenOdd(Point{Px: 0.5, Py: 0.5}))
	assert.False(t, square.ContainsPointByEvenOdd(Point{Px: 2, Py: 2}))
}

func TestRegularNGonVertexCount(t *testing.T) {
	for _, n := range []int{3, 4, 10, 500} {
		list := RegularNGon(n, 100)
		assert.Equal(t, n, list.VertexCount())
		assert.True(t, IsCCW(list.Polygons[0]))
	}
}

func TestDegenerateHasTooFewVertices(t *testing.T) {
	list := Degenerate()
	assert.Equal(t, 2, list.VertexCount())
}
