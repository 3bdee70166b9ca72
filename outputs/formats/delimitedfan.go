package formats

import (
	"fmt"

	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/outputs"
)

// DelimitedFanError reports that a vertex slot in the triangulated polygon
// happened to equal the chosen delimiter value, which would make the flat
// output ambiguous.
type DelimitedFanError struct {
	Delimiter int
}

func (e *DelimitedFanError) Error() string {
	return fmt.Sprintf("delimited fan: vertex index %d matches the delimiter value", e.Delimiter)
}

// DelimitedFan flattens every fan into a single []int, inserting Delimiter
// between fans so a caller can recover fan boundaries without a nested
// slice-of-slices. The half-frame concave scenario is exactly what exercises
// this: its monotone decomposition yields two disjoint fans, so the output
// contains precisely one Delimiter value.
type DelimitedFan struct {
	Delimiter int
}

func (DelimitedFan) Winding() outputs.Winding { return outputs.CounterClockwise }

func (d DelimitedFan) Initialize(_ inputs.PolygonList, v0, v1, v2 int) (outputs.FanBuilder[[]int], error) {
	b := &delimitedFanBuilder{delimiter: d.Delimiter}
	if err := b.push(v0); err != nil {
		return nil, err
	}
	if err := b.push(v1); err != nil {
		return nil, err
	}
	if err := b.push(v2); err != nil {
		return nil, err
	}
	return b, nil
}

type delimitedFanBuilder struct {
	delimiter int
	indices   []int
	failed    error
}

func (b *delimitedFanBuilder) push(v int) error {
	if v == b.delimiter {
		return &DelimitedFanError{Delimiter: b.delimiter}
	}
	b.indices = append(b.indices, v)
	return nil
}

func (b *delimitedFanBuilder) NewFan(a, bIdx, c int) error {
	b.indices = append(b.indices, b.delimiter)
	if err := b.push(a); err != nil {
		return err
	}
	if err := b.push(bIdx); err != nil {
		return err
	}
	return b.push(c)
}

func (b *delimitedFanBuilder) ExtendFan(v int) error {
	return b.push(v)
}

func (b *delimitedFanBuilder) Fail(err error) {
	b.failed = err
}

func (b *delimitedFanBuilder) Build() ([]int, error) {
	if b.failed != nil {
		return nil, b.failed
	}
	return b.indices, nil
}
