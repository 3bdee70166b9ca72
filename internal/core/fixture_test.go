package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapeze-go/triangulate/inputs"
)

// These mirror driver_test.go's synthetic scenarios but drive the input
// through inputs.LoadFixture instead of a hand-built SimplePolygonList, so
// the embedded SVG fixtures and the svgparser-backed parsing path actually
// run as part of the suite.
func TestTriangulateSquareFixture(t *testing.T) {
	list := inputs.LoadFixture("square")
	tris := triangulateFixture(t, list, WithSeed(1))
	assert.Len(t, tris, 2)
	assert.InDelta(t, netArea(list), totalArea(tris), 1e-9)
}

func TestTriangulateHalfFrameFixture(t *testing.T) {
	list := inputs.LoadFixture("half-frame")
	tris := triangulateFixture(t, list, WithSeed(3))
	assert.Len(t, tris, 4)
	assert.InDelta(t, netArea(list), totalArea(tris), 1e-9)
}

func TestTriangulateStarFixture(t *testing.T) {
	list := inputs.LoadFixture("star")
	tris := triangulateFixture(t, list, WithSeed(2))
	assert.Len(t, tris, 6)
	assert.InDelta(t, netArea(list), totalArea(tris), 1e-9)
}

func TestTriangulateAnnulusFixture(t *testing.T) {
	list := inputs.LoadFixture("annulus")
	tris := triangulateFixture(t, list, WithSeed(4))
	assert.Len(t, tris, 8)
	assert.InDelta(t, netArea(list), totalArea(tris), 1e-9)
}

func TestLoadFixtureNormalizesWinding(t *testing.T) {
	list := inputs.LoadFixture("annulus")
	require.Len(t, list.Polygons, 2)
	assert.True(t, inputs.IsCCW(list.Polygons[0]))
	assert.True(t, inputs.IsCW(list.Polygons[1]))
}
