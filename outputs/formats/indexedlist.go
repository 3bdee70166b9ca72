package formats

import (
	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/outputs"
)

// IndexedList is the flat-triangle-list counterpart of IndexedFan.
type IndexedList struct{}

func (IndexedList) Winding() outputs.Winding { return outputs.CounterClockwise }

func (IndexedList) NewBuilder(_ inputs.PolygonList) outputs.ListBuilder[[]Triangle] {
	return &indexedListBuilder{}
}

type indexedListBuilder struct {
	GenericList
}

func (b *indexedListBuilder) Build() ([]Triangle, error) {
	if b.failed != nil {
		return nil, b.failed
	}
	return b.Triangles, nil
}
