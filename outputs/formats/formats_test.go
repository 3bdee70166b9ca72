package formats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/outputs"
)

// buildFan drives a FanFormat through one initial triangle and one
// extension, then a second unrelated fan with its own extension, mirroring
// how core.fanBuilderState actually calls a format.
func buildFan[T any](t *testing.T, format outputs.FanFormat[T], list inputs.PolygonList) (T, error) {
	t.Helper()
	builder, err := format.Initialize(list, 0, 1, 2)
	require.NoError(t, err)
	require.NoError(t, builder.ExtendFan(3))
	require.NoError(t, builder.NewFan(4, 5, 6))
	require.NoError(t, builder.ExtendFan(7))
	return builder.Build()
}

func square() *inputs.SimplePolygonList {
	return &inputs.SimplePolygonList{Polygons: []inputs.Polygon{{Points: []inputs.Point{
		{Px: 0, Py: 0}, {Px: 1, Py: 0}, {Px: 1, Py: 1}, {Px: 0, Py: 1},
		{Px: 2, Py: 2}, {Px: 3, Py: 2}, {Px: 3, Py: 3}, {Px: 2, Py: 3},
	}}}}
}

func TestIndexedFan(t *testing.T) {
	list := square()
	assert.Equal(t, outputs.CounterClockwise, IndexedFan{}.Winding())
	tris, err := buildFan[[]Triangle](t, IndexedFan{}, list)
	require.NoError(t, err)
	assert.Equal(t, []Triangle{{0, 1, 2}, {0, 2, 3}, {4, 5, 6}, {4, 6, 7}}, tris)
}

func TestIndexedList(t *testing.T) {
	list := square()
	b := IndexedList{}.NewBuilder(list)
	require.NoError(t, b.AddTriangle(0, 1, 2))
	require.NoError(t, b.AddTriangle(0, 2, 3))
	tris, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []Triangle{{0, 1, 2}, {0, 2, 3}}, tris)
}

func TestDeindexedFan(t *testing.T) {
	list := square()
	tris, err := buildFan[[]DeindexedTriangle](t, DeindexedFan{}, list)
	require.NoError(t, err)
	require.Len(t, tris, 4)
	assert.Equal(t, inputs.Point{Px: 0, Py: 0}, tris[0].A)
	assert.Equal(t, inputs.Point{Px: 1, Py: 0}, tris[0].B)
	assert.Equal(t, inputs.Point{Px: 1, Py: 1}, tris[0].C)
}

func TestDeindexedList(t *testing.T) {
	list := square()
	b := DeindexedList{}.NewBuilder(list)
	require.NoError(t, b.AddTriangle(0, 1, 2))
	tris, err := b.Build()
	require.NoError(t, err)
	require.Len(t, tris, 1)
	assert.Equal(t, inputs.Point{Px: 1, Py: 1}, tris[0].C)
}

func TestDelimitedFan(t *testing.T) {
	list := square()
	format := DelimitedFan{Delimiter: -1}
	indices, err := buildFan[[]int](t, format, list)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, -1, 4, 5, 6, 7}, indices)
}

func TestDelimitedFanIndexMatchesDelimiter(t *testing.T) {
	list := square()
	format := DelimitedFan{Delimiter: 2}
	_, err := format.Initialize(list, 0, 1, 2)
	var delimErr *DelimitedFanError
	require.True(t, errors.As(err, &delimErr))
	assert.Equal(t, 2, delimErr.Delimiter)
}

func TestFanToList(t *testing.T) {
	list := square()
	format := FanToList[[]Triangle]{Inner: IndexedList{}}
	assert.Equal(t, outputs.CounterClockwise, format.Winding())
	tris, err := buildFan[[]Triangle](t, format, list)
	require.NoError(t, err)
	assert.Equal(t, []Triangle{{0, 1, 2}, {0, 2, 3}, {4, 5, 6}, {4, 6, 7}}, tris)
}

func TestReverseWinding(t *testing.T) {
	format := ReverseWinding[[]Triangle]{Inner: IndexedFan{}}
	assert.Equal(t, outputs.Clockwise, format.Winding())

	list := square()
	tris, err := buildFan[[]Triangle](t, format, list)
	require.NoError(t, err)
	// ReverseWinding only flips the declared Winding; it does not reorder the
	// vertices a caller's traversal already emitted.
	assert.Equal(t, []Triangle{{0, 1, 2}, {0, 2, 3}, {4, 5, 6}, {4, 6, 7}}, tris)
}

func TestGenericFansFail(t *testing.T) {
	g := NewGenericFans(0, 1, 2)
	g.Fail(errors.New("boom"))
	assert.EqualError(t, g.failed, "boom")
}

func TestGenericListFail(t *testing.T) {
	var g GenericList
	require.NoError(t, g.AddTriangle(0, 1, 2))
	g.Fail(errors.New("boom"))
	assert.EqualError(t, g.failed, "boom")
	assert.Equal(t, []Triangle{{0, 1, 2}}, g.Triangles)
}
