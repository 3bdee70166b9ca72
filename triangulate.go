// An asymptotically fast triangulation package for Go.
//
// This package converts a set of simple polygons, which may be non-convex,
// may be disjoint, and may contain holes, into a set of triangles covering
// exactly the same area.
package triangulate

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/internal/core"
	"github.com/trapeze-go/triangulate/outputs"
	"github.com/trapeze-go/triangulate/outputs/formats"
)

type (
	Point             = inputs.Point
	Vertex            = inputs.Vertex
	Polygon           = inputs.Polygon
	PolygonList       = inputs.PolygonList
	SimplePolygonList = inputs.SimplePolygonList
	PolygonElement    = inputs.PolygonElement
)

const (
	ContinuePolygon = inputs.ContinuePolygon
	NewPolygon      = inputs.NewPolygon
)

// Triangle reports a triangulation result by vertex position rather than
// index, the shape the simple Triangulate entry point below hands back.
type Triangle = formats.DeindexedTriangle

// Winding classifies the vertex order a FanFormat requires from every
// triangle it receives.
type Winding = outputs.Winding

const (
	CounterClockwise = outputs.CounterClockwise
	Clockwise        = outputs.Clockwise
)

// The output collaborator contract — outputs.FanBuilder[T]/FanFormat[T] and
// their flat-list counterparts ListBuilder[T]/ListFormat[T] — lives in the
// outputs package rather than being aliased here: generic type aliases
// require Go 1.24, and this module targets 1.21. Implement one of those
// interfaces to receive a triangulation in whatever shape your application
// wants, instead of the []Triangle slice Triangulate returns.

// Option configures a single triangulation run.
type Option = core.Option

// WithSeed fixes the randomized incremental algorithm's random source, so
// the same input, seed, and output format always produce the same result.
// Without it, each call seeds from crypto/rand.
func WithSeed(seed int64) Option { return core.WithSeed(seed) }

// WithLogger routes the triangulator's structured debug trace through
// logger instead of discarding it.
func WithLogger(logger *zerolog.Logger) Option { return core.WithLogger(logger) }

// WithDebugDump forces the SVG trapezoid-graph dump on regardless of the
// SVG_OUTPUT_PATH environment variable.
func WithDebugDump(enabled bool) Option { return core.WithDebugDump(enabled) }

// TriangulateInto runs the triangulator over polygonList, delivering the
// result through format. This is the general entry point: use it directly
// for index-based output, a flat list instead of fans, or a caller-defined
// format; Triangulate below is a convenience wrapper over it for the common
// case of "give me back triangles as point triples".
//
// Any internal invariant panic is recovered here and reported as an error,
// so a bug in the triangulator never crosses this package's boundary as a
// panic.
func TriangulateInto[T any](polygonList PolygonList, format outputs.FanFormat[T], opts ...Option) (result T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			var zero T
			result = zero
			err = fmt.Errorf("triangulate: %v", recovered)
		}
	}()
	return core.Triangulate[T](polygonList, format, opts...)
}

// Triangulate takes a set of point lists and converts them into triangles.
//
// The polygons must be simple and non-intersecting. "Solid" polygons must
// give their points in counterclockwise order, while "holes" must be in
// clockwise order. The order of the polygons passed in is irrelevant.
func Triangulate(polygonPoints ...[]Point) ([]Triangle, error) {
	polygons := make([]Polygon, len(polygonPoints))
	for i, points := range polygonPoints {
		polygons[i] = Polygon{Points: points}
	}
	list := &SimplePolygonList{Polygons: polygons}
	return TriangulateInto[[]Triangle](list, formats.DeindexedFan{})
}
