package formats

import (
	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/outputs"
)

// IndexedFan is the simplest FanFormat: each triangle is reported as three
// vertex-slot indices into the original PolygonList, counterclockwise.
type IndexedFan struct{}

func (IndexedFan) Winding() outputs.Winding { return outputs.CounterClockwise }

func (IndexedFan) Initialize(_ inputs.PolygonList, v0, v1, v2 int) (outputs.FanBuilder[[]Triangle], error) {
	return &indexedFanBuilder{GenericFans: NewGenericFans(v0, v1, v2)}, nil
}

type indexedFanBuilder struct {
	GenericFans
}

func (b *indexedFanBuilder) Build() ([]Triangle, error) {
	if b.failed != nil {
		return nil, b.failed
	}
	return b.Triangles, nil
}
