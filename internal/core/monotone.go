package core

import "github.com/trapeze-go/triangulate/outputs"

// EventSink receives the triangle-fan stream produced by TriangulateInner.
// new_fan(a,b,c) opens a fan; every subsequent ExtendFan(v) adds the triangle
// (a, lastVertex, v) to the same fan, reusing the fixed apex a.
type EventSink interface {
	NewFan(a, b, c int) error
	ExtendFan(v int) error
}

// VertexRecord is a (vertex-slot, coords) pair as accumulated along a
// monotone chain.
type VertexRecord struct {
	Slot   int
	Coords Coords
}

// MonotoneBuilder accumulates one side-chain of a monotone polygon under
// construction, top to bottom.
type MonotoneBuilder struct {
	vertices     []VertexRecord
	diffX, diffY bool
}

func (m *MonotoneBuilder) Add(slot int, c Coords) {
	if n := len(m.vertices); n > 0 {
		last := m.vertices[n-1].Coords
		if !Equal(last.X, c.X) {
			m.diffX = true
		}
		if !Equal(last.Y, c.Y) {
			m.diffY = true
		}
	}
	m.vertices = append(m.vertices, VertexRecord{Slot: slot, Coords: c})
}

func unorderedIsLeft(a, b, p Coords) bool {
	min, max := a, b
	if max.Below(min) {
		min, max = max, min
	}
	return IsLeftOfLine(min, max, p)
}

// isLeftChain reports whether this chain's second vertex lies to the left of
// the line joining its first and last vertices (taken lower to upper), i.e.
// whether the chain bulges to the left of its own top-to-bottom closing edge.
func (m *MonotoneBuilder) isLeftChain() bool {
	n := len(m.vertices)
	last, first, second := m.vertices[n-1].Coords, m.vertices[0].Coords, m.vertices[1].Coords
	return unorderedIsLeft(last, first, second)
}

func triangleWinding(a, b, c Coords) outputs.Winding {
	area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	if area > 0 {
		return outputs.CounterClockwise
	}
	return outputs.Clockwise
}

// BuildFans runs the monotone fan sweep: a classic stack-based
// monotone-polygon triangulation (push a vertex; while the top two stack
// entries plus the new one form a triangle on the chain's correct side, emit
// it and pop) with the emission step grouped into fans and reversed when the
// natural winding doesn't match the caller's declared one.
func (m *MonotoneBuilder) BuildFans(winding outputs.Winding, emit EventSink) error {
	n := len(m.vertices)
	if n < 3 {
		return Internalf("monotone chain has fewer than 3 vertices")
	}
	if !m.diffX || !m.diffY {
		return nil
	}
	left := m.isLeftChain()

	skipped := make([]VertexRecord, 2, n)
	copy(skipped, m.vertices[:2])
	pendingIdx := 2

	for len(skipped)+(n-pendingIdx) >= 3 {
		c := m.vertices[pendingIdx]
		onCorrectSide := len(skipped) >= 2 && unorderedIsLeft(skipped[len(skipped)-2].Coords, skipped[len(skipped)-1].Coords, c.Coords) == left
		if !onCorrectSide {
			skipped = append(skipped, c)
			pendingIdx++
			continue
		}

		fan := []VertexRecord{skipped[len(skipped)-1], skipped[len(skipped)-2]}
		skipped = skipped[:len(skipped)-1]
		for len(skipped) >= 2 {
			x, y := skipped[len(skipped)-2], skipped[len(skipped)-1]
			if unorderedIsLeft(x.Coords, y.Coords, c.Coords) != left {
				break
			}
			fan = append(fan, x)
			skipped = skipped[:len(skipped)-1]
		}

		if err := emitFan(winding, c, fan, emit); err != nil {
			return err
		}
		skipped = append(skipped, c)
		pendingIdx++
	}
	return nil
}

// emitFan issues NewFan/ExtendFan for one backtracking run: triangle k is
// (fan[k], fan[k+1], apex). If the natural winding of the first triangle
// doesn't match winding, the whole run is replayed in reverse order with each
// triangle's first two vertices swapped, which flips every triangle's
// winding uniformly — the deferred-and-reversed emission a monotone fan
// sweep needs because a chain's chirality isn't known until it is closed.
func emitFan(winding outputs.Winding, apex VertexRecord, fan []VertexRecord, emit EventSink) error {
	if len(fan) < 2 {
		return Internalf("monotone fan run produced fewer than 2 rim vertices")
	}
	use := fan
	if triangleWinding(apex.Coords, fan[0].Coords, fan[1].Coords) != winding {
		use = make([]VertexRecord, len(fan))
		for i, v := range fan {
			use[len(fan)-1-i] = v
		}
	}
	if err := emit.NewFan(apex.Slot, use[0].Slot, use[1].Slot); err != nil {
		return &FanBuilderError{Cause: err}
	}
	for _, v := range use[2:] {
		if err := emit.ExtendFan(v.Slot); err != nil {
			return &FanBuilderError{Cause: err}
		}
	}
	return nil
}

// columnState is the monotone-chain bookkeeping carried downward through the
// trapezoid graph by TriangulateInner. Both nil means the column is outside
// every polygon.
type columnState struct {
	left, right *MonotoneBuilder
}

type traverseTask struct {
	trap Handle[Trapezoid]
	cs   columnState
}

type arrivalRecord struct {
	origin Handle[Trapezoid]
	cs     columnState
}

// TriangulateInner walks the frozen trapezoid graph depth-first from the
// top-trapezoid seed, accumulating one monotone chain per side of each
// in-progress monotone piece and emitting completed chains through
// BuildFans.
//
// Forking and merging are driven off trapezoid adjacency directly rather
// than off a separate nexus-type classification: "does this trapezoid's
// Down nexus end the left or right boundary segment" is answered exactly by
// comparing that nexus's handle against the segment's own NiMin, without
// needing Nexus.Type() at all.
//
// One case adjacency can't reach on its own: a NexusA nexus (both incident
// dividers descending from the same point, an interior local maximum) pinches
// its middle trapezoid to zero width at the top, so nonzeroOverlapAbove
// never links it into its parent's TrapezoidsBelow — there is no adjacency
// edge into it. Once the adjacency-driven walk below drains, any interior
// trapezoid left unvisited is exactly one of these pinched-off pieces, and
// gets re-entered directly as a fresh monotone start.
func (e *Engine) TriangulateInner(winding outputs.Winding, emit EventSink) error {
	top, err := e.TopTrapezoid()
	if err != nil {
		return err
	}

	stack := []traverseTask{{trap: top}}
	pending := map[Handle[Trapezoid]][]arrivalRecord{}
	visited := map[Handle[Trapezoid]]bool{}

	schedule := func(origin, nb Handle[Trapezoid], cs columnState) error {
		nbT := e.Trapezoids.Get(nb)
		aboveCount := 0
		for _, a := range nbT.TrapezoidsAbove {
			if a.IsValid() {
				aboveCount++
			}
		}
		if aboveCount <= 1 {
			stack = append(stack, traverseTask{trap: nb, cs: cs})
			return nil
		}
		pending[nb] = append(pending[nb], arrivalRecord{origin: origin, cs: cs})
		if len(pending[nb]) < aboveCount {
			return nil
		}
		arrivals := pending[nb]
		delete(pending, nb)

		var merged columnState
		for _, a := range arrivals {
			originT := e.Trapezoids.Get(a.origin)
			matchedLeft := a.cs.left != nil && originT.Left.Equal(nbT.Left)
			matchedRight := a.cs.right != nil && originT.Right.Equal(nbT.Right)
			if matchedLeft {
				merged.left = a.cs.left
			}
			if matchedRight {
				merged.right = a.cs.right
			}
			if a.cs.left != nil && !matchedLeft {
				if err := a.cs.left.BuildFans(winding, emit); err != nil {
					return err
				}
			}
			if a.cs.right != nil && !matchedRight {
				if err := a.cs.right.BuildFans(winding, emit); err != nil {
					return err
				}
			}
		}
		stack = append(stack, traverseTask{trap: nb, cs: merged})
		return nil
	}

	drain := func() error {
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[cur.trap] {
				return Internalf("monotone traversal visited trapezoid %v twice", cur.trap)
			}
			visited[cur.trap] = true

			t := e.Trapezoids.Get(cur.trap)
			inside := e.TrapezoidIsInside(cur.trap)
			cs := cur.cs

			if inside && cs.left == nil {
				start := e.Nexuses.Get(t.Up)
				cs.left = &MonotoneBuilder{}
				cs.right = &MonotoneBuilder{}
				cs.left.Add(start.VertexSlot, start.Coords)
				cs.right.Add(start.VertexSlot, start.Coords)
			}

			if !t.Down.IsValid() {
				if inside {
					return Internalf("monotone traversal reached the unbounded region while still inside a polygon")
				}
				continue
			}
			down := e.Nexuses.Get(t.Down)

			leftEnds := t.Left.IsValid() && e.Segments.Get(t.Left).NiMin.Equal(t.Down)
			rightEnds := t.Right.IsValid() && e.Segments.Get(t.Right).NiMin.Equal(t.Down)

			if inside {
				switch {
				case leftEnds && rightEnds:
					cs.left.Add(down.VertexSlot, down.Coords)
					cs.right.Add(down.VertexSlot, down.Coords)
					if err := cs.left.BuildFans(winding, emit); err != nil {
						return err
					}
					if err := cs.right.BuildFans(winding, emit); err != nil {
						return err
					}
					cs = columnState{}
				case leftEnds:
					cs.left.Add(down.VertexSlot, down.Coords)
				case rightEnds:
					cs.right.Add(down.VertexSlot, down.Coords)
				default:
					cs.left.Add(down.VertexSlot, down.Coords)
					cs.right.Add(down.VertexSlot, down.Coords)
				}
			}

			var belows []Handle[Trapezoid]
			for _, nb := range t.TrapezoidsBelow {
				if nb.IsValid() {
					belows = append(belows, nb)
				}
			}

			switch len(belows) {
			case 0:
				if inside {
					return Internalf("inside trapezoid has no below-neighbor before reaching its bottom tip")
				}
			case 1:
				if err := schedule(cur.trap, belows[0], cs); err != nil {
					return err
				}
			default: // two or more below-neighbors: fork the column
				for _, nb := range belows {
					branch := columnState{}
					if inside {
						nbT := e.Trapezoids.Get(nb)
						continuesRight := !rightEnds && nbT.Right.Equal(t.Right)
						continuesLeft := !leftEnds && nbT.Left.Equal(t.Left)
						switch {
						case continuesRight:
							branch.right = cs.right
							branch.left = &MonotoneBuilder{}
							branch.left.Add(down.VertexSlot, down.Coords)
						case continuesLeft:
							branch.left = cs.left
							branch.right = &MonotoneBuilder{}
							branch.right.Add(down.VertexSlot, down.Coords)
						default:
							branch.left = &MonotoneBuilder{}
							branch.right = &MonotoneBuilder{}
							branch.left.Add(down.VertexSlot, down.Coords)
							branch.right.Add(down.VertexSlot, down.Coords)
						}
					}
					if err := schedule(cur.trap, nb, branch); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}

	if err := drain(); err != nil {
		return err
	}

	// Every interior trapezoid reachable by adjacency is now visited. Any
	// interior trapezoid still unvisited is the middle piece pinched off at a
	// NexusA local maximum (see the doc comment above): it has no inbound
	// adjacency edge, so it has to be entered directly. isLiveSink guards
	// against the stale trapezoid records a split or merge leaves behind in
	// the arena — only a trapezoid whose Sink still actually points back at
	// it is part of the current query structure.
	isLiveSink := func(h Handle[Trapezoid], t *Trapezoid) bool {
		if !t.Sink.IsValid() {
			return false
		}
		node := e.QueryNodes.Get(t.Sink)
		return node.Kind == KindSink && node.Trapezoid.Equal(h)
	}

	for {
		var seeds []Handle[Trapezoid]
		e.Trapezoids.Each(func(h Handle[Trapezoid], t *Trapezoid) {
			if visited[h] || !e.TrapezoidIsInside(h) || !isLiveSink(h, t) {
				return
			}
			seeds = append(seeds, h)
		})
		if len(seeds) == 0 {
			break
		}
		for _, h := range seeds {
			up := e.Nexuses.Get(e.Trapezoids.Get(h).Up)
			if up.Type() != NexusA {
				return Internalf("unreached interior trapezoid %v's Up nexus is not a local maximum", h)
			}
			stack = append(stack, traverseTask{trap: h})
		}
		if err := drain(); err != nil {
			return err
		}
	}

	if len(pending) > 0 {
		return Internalf("monotone traversal ended with unresolved merge arrivals")
	}
	return nil
}
