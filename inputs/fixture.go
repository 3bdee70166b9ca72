package inputs

import (
	"embed"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This parses the svg fixtures and extracts polygons. It is not a full (or
// even correct) SVG parser: it finds every <polygon> element and converts
// each into a Polygon (the first CCW, later ones alternating CW/CCW),
// exiting via log.Fatalf on anything else.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

// LoadFixture loads every <polygon> in the named SVG fixture, in document
// order, normalizing each so the first ring is CCW and every later ring
// alternates to CW — the outer-boundary/hole winding convention the
// trapezoidation engine relies on to tell inside from outside.
func LoadFixture(name string) *SimplePolygonList {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("inputs: could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("inputs: failed to parse fixture %q: %v", name, err)
	}

	elements := rootEl.FindAll("polygon")
	if len(elements) == 0 {
		log.Fatalf("inputs: no polygons found in fixture %q", name)
	}

	list := &SimplePolygonList{Polygons: make([]Polygon, len(elements))}
	for i, el := range elements {
		poly := parseSVGPoints(el.Attributes["points"], name)
		wantCW := i%2 == 1
		if IsCW(poly) != wantCW {
			poly = poly.Reverse()
		}
		list.Polygons[i] = poly
	}
	return list
}

func parseSVGPoints(pointString, fixtureName string) Polygon {
	var points []Point
	for _, pair := range strings.Split(pointString, " ") {
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			log.Fatalf("inputs: invalid point %q in fixture %q", pair, fixtureName)
		}
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			log.Fatalf("inputs: invalid x value %q in fixture %q: %v", parts[0], fixtureName, err)
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			log.Fatalf("inputs: invalid y value %q in fixture %q: %v", parts[1], fixtureName, err)
		}
		points = append(points, Point{Px: x, Py: y})
	}
	return Polygon{Points: points}
}

func pts(coords ...[2]float64) []Point {
	out := make([]Point, len(coords))
	for i, c := range coords {
		out[i] = Point{Px: c[0], Py: c[1]}
	}
	return out
}

// Square is scenario 1: the unit square.
func Square() *SimplePolygonList {
	return &SimplePolygonList{Polygons: []Polygon{{Points: pts(
		[2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1}, [2]float64{1, 0},
	)}}}
}

// FourPointedStar is scenario 2.
func FourPointedStar() *SimplePolygonList {
	return &SimplePolygonList{Polygons: []Polygon{{Points: pts(
		[2]float64{1, 0}, [2]float64{2, 2}, [2]float64{0, 1}, [2]float64{-2, 2},
		[2]float64{-1, 0}, [2]float64{-2, -2}, [2]float64{0, -1}, [2]float64{2, -2},
	)}}}
}

// HalfFrame is scenario 3: a concave hexagon.
func HalfFrame() *SimplePolygonList {
	return &SimplePolygonList{Polygons: []Polygon{{Points: pts(
		[2]float64{0, 0}, [2]float64{0.05, 0.05}, [2]float64{0.95, 0.05},
		[2]float64{0.95, 0.95}, [2]float64{1, 1}, [2]float64{1, 0},
	)}}}
}

// Annulus is scenario 4: a unit square with a square hole, hole wound
// opposite the outer boundary.
func Annulus() *SimplePolygonList {
	outer := Polygon{Points: pts([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1}, [2]float64{1, 0})}
	inner := Polygon{Points: pts([2]float64{0.05, 0.05}, [2]float64{0.05, 0.95}, [2]float64{0.95, 0.95}, [2]float64{0.95, 0.05})}
	if IsCCW(inner) == IsCCW(outer) {
		inner = inner.Reverse()
	}
	return &SimplePolygonList{Polygons: []Polygon{outer, inner}}
}

// RegularNGon is scenario 5: a regular N-gon inscribed in the given radius,
// wound CCW.
func RegularNGon(n int, radius float64) *SimplePolygonList {
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = Point{Px: radius * math.Cos(angle), Py: radius * math.Sin(angle)}
	}
	return &SimplePolygonList{Polygons: []Polygon{{Points: points}}}
}

// Degenerate is scenario 6: a 2-vertex "polygon", expected to fail
// NotEnoughVertices validation.
func Degenerate() *SimplePolygonList {
	return &SimplePolygonList{Polygons: []Polygon{{Points: pts([2]float64{0, 0}, [2]float64{1, 1})}}}
}
