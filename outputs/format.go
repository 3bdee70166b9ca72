// Package outputs defines the output collaborator: the contract a caller's
// result type must satisfy to receive a triangulation, plus several
// concrete formats.
package outputs

import "github.com/trapeze-go/triangulate/inputs"

// Winding classifies the vertex order every emitted triangle must follow.
type Winding int

const (
	CounterClockwise Winding = iota
	Clockwise
)

func (w Winding) Opposite() Winding {
	if w == CounterClockwise {
		return Clockwise
	}
	return CounterClockwise
}

// FanBuilder is the output collaborator contract: one instance accumulates
// every fan after the first, eventually producing a result of type T. Fail
// is called at most once, in place of further NewFan/ExtendFan calls, if the
// run aborts after the builder was constructed.
type FanBuilder[T any] interface {
	NewFan(a, b, c int) error
	ExtendFan(v int) error
	Fail(err error)
	Build() (T, error)
}

// FanFormat constructs and initializes a builder from the first fan's three
// vertices: the first fan is what triggers construction, not a separate
// zero-argument factory call. polygonList lets formats that report actual
// coordinates (DeindexedFan) resolve vertex indices up front.
//
// Winding reports the vertex order this format requires every triangle to
// follow. It must be queryable before Initialize is ever called (the caller
// needs it to drive the triangulation in the first place), so it lives on
// the format, not the builder.
type FanFormat[T any] interface {
	Winding() Winding
	Initialize(polygonList inputs.PolygonList, v0, v1, v2 int) (FanBuilder[T], error)
}

// ListBuilder is the flat-triangle-list counterpart to FanBuilder, for
// formats that don't care about fan grouping at all.
type ListBuilder[T any] interface {
	AddTriangle(a, b, c int) error
	Fail(err error)
	Build() (T, error)
}

type ListFormat[T any] interface {
	Winding() Winding
	NewBuilder(polygonList inputs.PolygonList) ListBuilder[T]
}
