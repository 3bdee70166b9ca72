package formats

import (
	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/outputs"
)

// FanToList adapts any outputs.ListFormat into an outputs.FanFormat, by
// re-expanding each fan's new_fan/extend_fan calls back into individual
// AddTriangle calls. This is what lets a caller who only wants a flat
// triangle list reuse a ListFormat in a context (such as the top-level
// triangulate entry point) that speaks fans.
type FanToList[T any] struct {
	Inner outputs.ListFormat[T]
}

func (f FanToList[T]) Winding() outputs.Winding { return f.Inner.Winding() }

func (f FanToList[T]) Initialize(polygonList inputs.PolygonList, v0, v1, v2 int) (outputs.FanBuilder[T], error) {
	lb := f.Inner.NewBuilder(polygonList)
	if err := lb.AddTriangle(v0, v1, v2); err != nil {
		return nil, err
	}
	return &fanToListBuilder[T]{list: lb, apex: v0, last: v2}, nil
}

type fanToListBuilder[T any] struct {
	list       outputs.ListBuilder[T]
	apex, last int
}

func (b *fanToListBuilder[T]) NewFan(a, c, d int) error {
	b.apex, b.last = a, d
	return b.list.AddTriangle(a, c, d)
}

func (b *fanToListBuilder[T]) ExtendFan(v int) error {
	err := b.list.AddTriangle(b.apex, b.last, v)
	b.last = v
	return err
}

func (b *fanToListBuilder[T]) Fail(err error) {
	b.list.Fail(err)
}

func (b *fanToListBuilder[T]) Build() (T, error) {
	return b.list.Build()
}
