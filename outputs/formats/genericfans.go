// Package formats holds concrete outputs.FanFormat/ListFormat implementations:
// indexed and deindexed fans and lists, a delimited fan variant, the
// fan-to-list adapter, and the winding-reversing wrapper.
package formats

// Triangle is an index-based triangle (vertex slots into the originating
// PolygonList) — the common unit every fan/list format ultimately produces.
type Triangle struct{ A, B, C int }

// GenericFans is embeddable bookkeeping shared by every index-based
// FanBuilder: the running triangle list plus the apex/last-vertex state
// ExtendFan needs to close each new triangle, grounded on the corresponding
// triangle-accumulation step of an ordinary monotone fan sweep.
type GenericFans struct {
	Triangles  []Triangle
	apex, last int
	failed     error
}

func NewGenericFans(v0, v1, v2 int) GenericFans {
	return GenericFans{
		Triangles: []Triangle{{v0, v1, v2}},
		apex:      v0,
		last:      v2,
	}
}

func (g *GenericFans) NewFan(a, b, c int) error {
	g.Triangles = append(g.Triangles, Triangle{a, b, c})
	g.apex, g.last = a, c
	return nil
}

func (g *GenericFans) ExtendFan(v int) error {
	g.Triangles = append(g.Triangles, Triangle{g.apex, g.last, v})
	g.last = v
	return nil
}

func (g *GenericFans) Fail(err error) {
	g.failed = err
}

// GenericList is GenericFans' flat-list counterpart, used by formats that
// implement outputs.ListBuilder directly.
type GenericList struct {
	Triangles []Triangle
	failed    error
}

func (g *GenericList) AddTriangle(a, b, c int) error {
	g.Triangles = append(g.Triangles, Triangle{a, b, c})
	return nil
}

func (g *GenericList) Fail(err error) {
	g.failed = err
}
