package formats

import (
	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/outputs"
)

// DeindexedList is the flat-list counterpart of DeindexedFan.
type DeindexedList struct{}

func (DeindexedList) Winding() outputs.Winding { return outputs.CounterClockwise }

func (DeindexedList) NewBuilder(polygonList inputs.PolygonList) outputs.ListBuilder[[]DeindexedTriangle] {
	return &deindexedListBuilder{polygonList: polygonList}
}

type deindexedListBuilder struct {
	polygonList inputs.PolygonList
	triangles   []DeindexedTriangle
	failed      error
}

func (b *deindexedListBuilder) AddTriangle(a, bIdx, c int) error {
	b.triangles = append(b.triangles, DeindexedTriangle{
		A: b.polygonList.GetVertex(a),
		B: b.polygonList.GetVertex(bIdx),
		C: b.polygonList.GetVertex(c),
	})
	return nil
}

func (b *deindexedListBuilder) Fail(err error) {
	b.failed = err
}

func (b *deindexedListBuilder) Build() ([]DeindexedTriangle, error) {
	if b.failed != nil {
		return nil, b.failed
	}
	return b.triangles, nil
}
