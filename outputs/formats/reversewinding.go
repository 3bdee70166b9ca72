package formats

import (
	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/outputs"
)

// ReverseWinding wraps a FanFormat so it reports and accepts the opposite
// winding of the format it wraps. The underlying format's NewFan/ExtendFan
// calls are passed through unchanged — only the declared Winding differs —
// since flipping a fan's actual vertex order is the traversal's job, not the
// format's.
type ReverseWinding[T any] struct {
	Inner outputs.FanFormat[T]
}

func (r ReverseWinding[T]) Winding() outputs.Winding { return r.Inner.Winding().Opposite() }

func (r ReverseWinding[T]) Initialize(polygonList inputs.PolygonList, v0, v1, v2 int) (outputs.FanBuilder[T], error) {
	return r.Inner.Initialize(polygonList, v0, v1, v2)
}
