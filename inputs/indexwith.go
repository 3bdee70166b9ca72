package inputs

import "fmt"

// Integer is any type whose underlying representation is a native integer,
// letting IndexWith adapt sources that index their vertices with something
// other than plain int (uint32, a newtype, etc).
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// IndexedSource is a PolygonList whose vertex index type is New instead of
// int. Many real inputs (e.g. a mesh loader indexing into a shared vertex
// buffer with uint32) are naturally shaped this way.
type IndexedSource[New Integer] interface {
	VertexCount() New
	GetVertex(i New) Vertex
	ElementAt(i New) PolygonElement
}

// IndexWith adapts an IndexedSource[New] to the plain int-indexed
// PolygonList the core engine consumes, so a caller's existing New-indexed
// data doesn't need to be copied into an int-indexed Polygon first.
type IndexWith[New Integer] struct {
	Source IndexedSource[New]
}

func (w IndexWith[New]) VertexCount() int {
	return int(w.Source.VertexCount())
}

func (w IndexWith[New]) GetVertex(i int) Vertex {
	return w.Source.GetVertex(toNew[New](i))
}

func (w IndexWith[New]) ElementAt(i int) PolygonElement {
	return w.Source.ElementAt(toNew[New](i))
}

// toNew converts an int index to New, panicking if the value does not
// survive the conversion.
func toNew[New Integer](i int) New {
	n := New(i)
	if int(n) != i {
		panic(fmt.Sprintf("inputs: index %d does not fit the source's index type", i))
	}
	return n
}
