package formats

import (
	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/outputs"
)

// DeindexedTriangle reports actual vertex positions instead of PolygonList
// slots, for callers that have no use for the original indexing.
type DeindexedTriangle struct{ A, B, C inputs.Vertex }

// DeindexedFan is IndexedFan's vertex-resolving counterpart: every triangle
// carries the actual inputs.Vertex values, looked up from the PolygonList
// handed to Initialize.
type DeindexedFan struct{}

func (DeindexedFan) Winding() outputs.Winding { return outputs.CounterClockwise }

func (DeindexedFan) Initialize(polygonList inputs.PolygonList, v0, v1, v2 int) (outputs.FanBuilder[[]DeindexedTriangle], error) {
	b := &deindexedFanBuilder{polygonList: polygonList}
	b.add(v0, v1, v2)
	return b, nil
}

type deindexedFanBuilder struct {
	polygonList inputs.PolygonList
	triangles   []DeindexedTriangle
	apex, last  int
	failed      error
}

func (b *deindexedFanBuilder) add(a, bIdx, c int) {
	b.triangles = append(b.triangles, DeindexedTriangle{
		A: b.polygonList.GetVertex(a),
		B: b.polygonList.GetVertex(bIdx),
		C: b.polygonList.GetVertex(c),
	})
	b.apex, b.last = a, c
}

func (b *deindexedFanBuilder) NewFan(a, bIdx, c int) error {
	b.add(a, bIdx, c)
	return nil
}

func (b *deindexedFanBuilder) ExtendFan(v int) error {
	b.add(b.apex, b.last, v)
	return nil
}

func (b *deindexedFanBuilder) Fail(err error) {
	b.failed = err
}

func (b *deindexedFanBuilder) Build() ([]DeindexedTriangle, error) {
	if b.failed != nil {
		return nil, b.failed
	}
	return b.triangles, nil
}
