package triangulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trapeze-go/triangulate/outputs/formats"
)

// Smoke test. The internals are already tested.
func TestTriangulate(t *testing.T) {
	points := []Point{
		{Px: 1, Py: -1},
		{Px: 1, Py: 1},
		{Px: -1, Py: 1},
		{Px: -1, Py: -1},
	}

	triangles, err := Triangulate(points)
	assert.NoError(t, err)
	assert.Len(t, triangles, 2)
}

func TestTriangulateNoVertices(t *testing.T) {
	_, err := Triangulate()
	assert.Error(t, err)
}

func TestTriangulateIntoIndexed(t *testing.T) {
	points := []Point{
		{Px: 1, Py: -1},
		{Px: 1, Py: 1},
		{Px: -1, Py: 1},
		{Px: -1, Py: -1},
	}
	list := &SimplePolygonList{Polygons: []Polygon{{Points: points}}}

	tris, err := TriangulateInto[[]formats.Triangle](list, formats.IndexedFan{})
	assert.NoError(t, err)
	assert.Len(t, tris, 2)
}
