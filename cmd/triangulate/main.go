// Command triangulate reads one or more polygons from stdin (or a file) and
// writes the resulting triangles to stdout, optionally dumping the
// trapezoid-graph construction to an SVG along the way.
//
// Input is newline-separated "x y" points, one polygon per blank-line-
// separated block. Solid polygons should wind counterclockwise; a clockwise
// polygon is treated as a hole. None of this is validated beyond what the
// triangulator itself rejects.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/trapeze-go/triangulate"
	"github.com/trapeze-go/triangulate/outputs"
	"github.com/trapeze-go/triangulate/outputs/formats"
)

var (
	inputPath = kingpin.Arg("input", "polygon file (default: stdin)").String()
	delimited = kingpin.Flag("delimited", "emit one flat, fan-delimited index stream instead of a triangle per line").Bool()
	delimiter = kingpin.Flag("delimiter", "delimiter value for --delimited").Default("-1").Int()
	clockwise = kingpin.Flag("clockwise", "emit triangles clockwise instead of counterclockwise").Bool()
	seedFlag  = kingpin.Flag("seed", "fix the randomized algorithm's seed for reproducible output (0 means unset)").Int64()
	debugDump = kingpin.Flag("debug-dump", "force the SVG trapezoid-graph dump on (see SVG_OUTPUT_PATH)").Bool()
	verbose   = kingpin.Flag("verbose", "log the engine's structured debug trace to stderr").Bool()
)

func main() {
	kingpin.Parse()

	in := io.Reader(os.Stdin)
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			kingpin.Fatalf("%v", err)
		}
		defer f.Close()
		in = f
	}

	polygons, err := readPolygons(in)
	if err != nil {
		kingpin.Fatalf("%v", err)
	}

	var opts []triangulate.Option
	if *seedFlag != 0 {
		opts = append(opts, triangulate.WithSeed(*seedFlag))
	}
	if *debugDump {
		opts = append(opts, triangulate.WithDebugDump(true))
	}
	if *verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		opts = append(opts, triangulate.WithLogger(&logger))
	}

	list := &triangulate.SimplePolygonList{Polygons: polygons}

	if *delimited {
		var format outputs.FanFormat[[]int] = formats.DelimitedFan{Delimiter: *delimiter}
		if *clockwise {
			format = formats.ReverseWinding[[]int]{Inner: format}
		}
		indices, err := triangulate.TriangulateInto[[]int](list, format, opts...)
		if err != nil {
			kingpin.Fatalf("%v", err)
		}
		printDelimited(indices)
		return
	}

	var format outputs.FanFormat[[]formats.Triangle] = formats.FanToList[[]formats.Triangle]{Inner: formats.IndexedList{}}
	if *clockwise {
		format = formats.ReverseWinding[[]formats.Triangle]{Inner: format}
	}
	tris, err := triangulate.TriangulateInto[[]formats.Triangle](list, format, opts...)
	if err != nil {
		kingpin.Fatalf("%v", err)
	}
	printTriangles(tris)
}

func printTriangles(tris []formats.Triangle) {
	for _, t := range tris {
		fmt.Printf("%d %d %d\n", t.A, t.B, t.C)
	}
}

func printDelimited(indices []int) {
	parts := make([]string, len(indices))
	for i, v := range indices {
		parts[i] = strconv.Itoa(v)
	}
	fmt.Println(strings.Join(parts, " "))
}

func readPolygons(in io.Reader) ([]triangulate.Polygon, error) {
	var polygons []triangulate.Polygon
	var points []triangulate.Point

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(points) > 0 {
				polygons = append(polygons, triangulate.Polygon{Points: points})
				points = nil
			}
			continue
		}
		p, err := parsePoint(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(points) > 0 {
		polygons = append(polygons, triangulate.Polygon{Points: points})
	}
	return polygons, nil
}

func parsePoint(line string) (triangulate.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return triangulate.Point{}, fmt.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return triangulate.Point{}, err
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return triangulate.Point{}, err
	}
	return triangulate.Point{Px: x, Py: y}, nil
}
