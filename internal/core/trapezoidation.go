package core

import (
	"fmt"
	"math"
	"math/rand"
)

// Engine owns the four arenas and the query structure, and implements both
// the randomized incremental trapezoidation (this file) and, once built, is
// handed to the monotone/fan-sweep phase (monotone.go) which reads it
// read-only.
type Engine struct {
	Trapezoids *Arena[Trapezoid]
	Segments   *Arena[Segment]
	Nexuses    *Arena[Nexus]
	QueryNodes *Arena[QueryNode]
	Root       Handle[QueryNode]

	rng    *rand.Rand
	logger Logger
}

// NewEngine seeds the arenas with one unbounded trapezoid and a Sink root
// over it, reserving capacity for the expected final sizes (nexuses/segments
// ~ V, trapezoids ~ 2V+1, query nodes ~ 4V) so steady-state insertion rarely
// triggers a reallocation.
func NewEngine(numVertices int, rng *rand.Rand, logger Logger) *Engine {
	if logger == nil {
		logger = nopLogger{}
	}
	e := &Engine{
		Trapezoids: NewArena[Trapezoid](2*numVertices + 1),
		Segments:   NewArena[Segment](numVertices),
		Nexuses:    NewArena[Nexus](numVertices),
		QueryNodes: NewArena[QueryNode](4 * numVertices),
		rng:        rng,
		logger:     logger,
	}
	t0 := e.Trapezoids.Push(Trapezoid{})
	root := e.QueryNodes.Push(QueryNode{Kind: KindSink, Trapezoid: t0})
	e.Trapezoids.Get(t0).Sink = root
	e.Root = root
	return e
}

// Build runs phase 1 over every polygon, each given as a slice of 0-based
// vertex slots into coords. A polygon element stream's NewPolygon separators
// are the driver's job to split into this [][]int form; consecutive/leading/
// trailing separators collapse to nothing once split this way, so a marker
// run is always inert rather than producing an empty polygon.
func (e *Engine) Build(polygons [][]int, coords []Coords) error {
	return e.build(polygons, coords, Config{})
}

func (e *Engine) build(polygons [][]int, coords []Coords, cfg Config) error {
	for _, poly := range polygons {
		if len(poly) < 3 {
			return &NotEnoughVerticesError{N: len(poly)}
		}
	}
	for _, poly := range polygons {
		if err := e.addPolygon(poly, coords, cfg); err != nil {
			return err
		}
	}
	return nil
}

type pendingLocation struct {
	slot     int
	coords   Coords
	inserted bool
	nexus    Handle[Nexus]
	bestRoot Handle[QueryNode]
}

func (e *Engine) addPolygon(poly []int, coords []Coords, cfg Config) error {
	n := len(poly)
	locations := make([]pendingLocation, n)
	for i, slot := range poly {
		locations[i] = pendingLocation{slot: slot, coords: coords[slot], bestRoot: e.Root}
	}
	for i := 0; i < n; i++ {
		j := Advance(i, n)
		if locations[i].coords == locations[j].coords {
			return Trapezoidationf("vertices %d and %d share exact coordinates (%v)", poly[i], poly[j], locations[i].coords)
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	e.rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	checkpoints := mathNCheckpoints(n)

	for step, edgeIdx := range order {
		i, j := edgeIdx, Advance(edgeIdx, n)

		if !locations[i].inserted && !locations[j].inserted && locations[j].coords.Below(locations[i].coords) {
			i, j = j, i
		}
		if !locations[i].inserted {
			if err := e.materialize(&locations[i]); err != nil {
				return err
			}
			if cfg.DebugDumpLevel >= DumpEveryVertex {
				e.dumpTrapezoidation(cfg, fmt.Sprintf("vertex-%d", locations[i].slot))
			}
		}
		if !locations[j].inserted {
			if err := e.materialize(&locations[j]); err != nil {
				return err
			}
			if cfg.DebugDumpLevel >= DumpEveryVertex {
				e.dumpTrapezoidation(cfg, fmt.Sprintf("vertex-%d", locations[j].slot))
			}
		}

		niMin, niMax := locations[i].nexus, locations[j].nexus
		if !locations[i].coords.Below(locations[j].coords) {
			niMin, niMax = locations[j].nexus, locations[i].nexus
		}
		if err := e.addSegment(niMin, niMax); err != nil {
			return err
		}
		if cfg.DebugDumpLevel >= DumpEverySegment {
			e.dumpTrapezoidation(cfg, fmt.Sprintf("segment-%d", step))
		}

		if checkpoints[step+1] {
			e.relocalize(locations)
		}
	}
	return nil
}

func (e *Engine) materialize(loc *pendingLocation) error {
	nexusH, err := e.addVertex(loc.slot, loc.coords, loc.bestRoot)
	if err != nil {
		return err
	}
	loc.inserted = true
	loc.nexus = nexusH
	e.logger.Debug("add_vertex", "slot", loc.slot, "nexus", loc.nexus)
	return nil
}

// relocalize performs the periodic re-localization pass: instead of
// walking the polygon edge-wise through nexus adjacency, each
// still-pending vertex's cached root is advanced by re-running Locate
// starting from its own previous cache entry rather than from the true root.
// Because a cached leaf always still correctly contains its point (splitting
// only adds structure strictly inside the region a leaf already represented),
// restarting from it is valid, and doing it only at periodic checkpoints
// gets the same amortization benefit an edge-wise walk would: the cache is
// refreshed while the tree is shallow, so the final real lookup at
// materialization time only has to descend the part of the tree built since
// the last checkpoint.
func (e *Engine) relocalize(locations []pendingLocation) {
	for i := range locations {
		if locations[i].inserted {
			continue
		}
		locations[i].bestRoot = e.locate(locations[i].coords, locations[i].bestRoot, DefaultDirection)
	}
}

func (e *Engine) locate(c Coords, from Handle[QueryNode], dir Direction) Handle[QueryNode] {
	return Locate(e.QueryNodes, e.Segments, c, from, dir)
}

// mathN implements math_n(n,h) = ceil(n / log2^h(n)), the iterated log used
// to space out re-localization checkpoints.
func mathN(n, h int) int {
	x := float64(n)
	for i := 0; i < h; i++ {
		if x <= 1 {
			break
		}
		x = math.Log2(x)
	}
	if x < 1 {
		x = 1
	}
	k := int(math.Ceil(float64(n) / x))
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}
	return k
}

// mathNCheckpoints marks, for a polygon of n edges, which edge counts
// (1-based) should trigger a re-localization pass.
func mathNCheckpoints(n int) []bool {
	marks := make([]bool, n+1)
	if n < 2 {
		return marks
	}
	prev := -1
	for h := 1; h <= 64; h++ {
		k := mathN(n, h)
		if k == prev {
			break
		}
		marks[k] = true
		prev = k
		if k >= n {
			break
		}
	}
	return marks
}

// addVertex materializes the nexus for a newly-touched vertex: locate its
// trapezoid, split it horizontally, and rewrite the query leaf into a
// Y-branch.
func (e *Engine) addVertex(slot int, coords Coords, from Handle[QueryNode]) (Handle[Nexus], error) {
	leaf := e.locate(coords, from, DefaultDirection)
	tH := e.QueryNodes.Get(leaf).Trapezoid
	t := e.Trapezoids.Get(tH)

	trapUpH := e.Trapezoids.Push(Trapezoid{
		Left:            t.Left,
		Right:           t.Right,
		Up:              t.Up,
		TrapezoidsAbove: t.TrapezoidsAbove,
	})
	nexusH := e.Nexuses.Push(Nexus{VertexSlot: slot, Coords: coords})

	trapUp := e.Trapezoids.Get(trapUpH)
	trapUp.Down = nexusH
	for _, nb := range trapUp.TrapezoidsAbove {
		if nb.IsValid() {
			e.Trapezoids.Get(nb).TrapezoidsBelow.ReplaceOrAdd(tH, trapUpH)
		}
	}
	trapUp.TrapezoidsBelow = TrapezoidNeighborList{}
	trapUp.TrapezoidsBelow.Add(tH)

	t.Up = nexusH
	t.TrapezoidsAbove = TrapezoidNeighborList{}
	t.TrapezoidsAbove.Add(trapUpH)

	below, above := SplitY(e.QueryNodes, leaf, coords, tH, trapUpH)
	t.Sink = below
	trapUp.Sink = above

	nexus := e.Nexuses.Get(nexusH)
	nexus.TiUpleft = trapUpH
	nexus.TiDownleft = tH

	return nexusH, nil
}

// downDirectionAtNexus picks which side of any existing descending divider
// at niMax the new segment (whose other endpoint is at farCoords) falls on,
// so the initial point-location query can be steered to the correct
// trapezoid when niMax already has another segment ending there.
func (e *Engine) downDirectionAtNexus(niMax Handle[Nexus], farCoords Coords) XDirection {
	nex := e.Nexuses.Get(niMax)
	for i := 0; i < nex.NumDividers(); i++ {
		d := nex.DividerAt(i)
		if d.Direction != Descending {
			continue
		}
		if e.Segments.Get(d.Segment).IsOnLeft(farCoords) {
			return Left
		}
		return Right
	}
	return Left
}

func (e *Engine) initialTrapezoidForSegment(niMax Handle[Nexus], farCoords Coords) Handle[Trapezoid] {
	dir := e.downDirectionAtNexus(niMax, farCoords)
	nex := e.Nexuses.Get(niMax)
	leaf := e.locate(nex.Coords, e.Root, Direction{X: dir, Y: Down})
	return e.QueryNodes.Get(leaf).Trapezoid
}

// trapezoidContainsColumnAt reports whether c lies within th's left/right
// boundary segments (an absent boundary is unbounded in that direction).
func (e *Engine) trapezoidContainsColumnAt(th Handle[Trapezoid], c Coords) bool {
	t := e.Trapezoids.Get(th)
	if t.Left.IsValid() && e.Segments.Get(t.Left).IsOnLeft(c) {
		return false
	}
	if t.Right.IsValid() && !e.Segments.Get(t.Right).IsOnLeft(c) {
		return false
	}
	return true
}

// nextTrapezoidDown picks, among t's below-neighbors, the one the segment
// continues into.
func (e *Engine) nextTrapezoidDown(t *Trapezoid, segH Handle[Segment]) (Handle[Trapezoid], bool) {
	if !t.Down.IsValid() {
		return Handle[Trapezoid]{}, false
	}
	downCoords := e.Nexuses.Get(t.Down).Coords
	seg := e.Segments.Get(segH)
	x := downCoords.X
	if !seg.IsHorizontal() {
		x = seg.SolveForX(downCoords.Y)
	}
	c := Coords{X: x, Y: downCoords.Y}
	for _, nb := range t.TrapezoidsBelow {
		if nb.IsValid() && e.trapezoidContainsColumnAt(nb, c) {
			return nb, true
		}
	}
	return Handle[Trapezoid]{}, false
}

func (e *Engine) xValueForDirection(th Handle[Trapezoid], dir Direction) float64 {
	t := e.Trapezoids.Get(th)
	segH := t.Left
	if dir.X == Right {
		segH = t.Right
	}
	if !segH.IsValid() {
		return xValueAtInfinity(dir.X)
	}
	boundaryNexus := t.Down
	if dir.Y == Up {
		boundaryNexus = t.Up
	}
	if !boundaryNexus.IsValid() {
		panic("core: cannot get x value with no boundary nexus")
	}
	boundary := e.Nexuses.Get(boundaryNexus).Coords
	seg := e.Segments.Get(segH)
	if seg.IsHorizontal() {
		return boundary.X
	}
	return seg.SolveForX(boundary.Y)
}

// nonzeroOverlapAbove decides whether bottomH and topH are true neighbors:
// do their shared-boundary x ranges actually overlap by more than a sliver?
func (e *Engine) nonzeroOverlapAbove(bottomH, topH Handle[Trapezoid]) bool {
	topMinX := e.xValueForDirection(topH, Direction{Left, Down})
	topMaxX := e.xValueForDirection(topH, Direction{Right, Down})
	bottomMinX := e.xValueForDirection(bottomH, Direction{Left, Up})
	bottomMaxX := e.xValueForDirection(bottomH, Direction{Right, Up})
	minX := math.Max(topMinX, bottomMinX)
	maxX := math.Min(topMaxX, bottomMaxX)
	return (maxX - minX) > Epsilon
}

// splitVertical duplicates origH into a left/right pair divided by segH.
// Both copies inherit origH's Sink field *unchanged*: the query graph isn't
// touched here at all. That shared Sink handle is what lets the later merge
// pass (mergeChunk) convert it into a single X-branch reused by every
// trapezoid in a merged run, instead of allocating one X-branch per step.
func (e *Engine) splitVertical(origH Handle[Trapezoid], segH Handle[Segment]) (leftH, rightH Handle[Trapezoid]) {
	orig := *e.Trapezoids.Get(origH)
	left := orig
	right := orig
	left.Right = segH
	right.Left = segH
	left.TrapezoidsAbove, left.TrapezoidsBelow = TrapezoidNeighborList{}, TrapezoidNeighborList{}
	right.TrapezoidsAbove, right.TrapezoidsBelow = TrapezoidNeighborList{}, TrapezoidNeighborList{}

	leftH = e.Trapezoids.Push(left)
	rightH = e.Trapezoids.Push(right)

	for _, nb := range orig.TrapezoidsAbove {
		if !nb.IsValid() {
			continue
		}
		e.Trapezoids.Get(nb).TrapezoidsBelow.Remove(origH)
		if e.nonzeroOverlapAbove(leftH, nb) {
			e.Trapezoids.Get(leftH).TrapezoidsAbove.Add(nb)
			e.Trapezoids.Get(nb).TrapezoidsBelow.Add(leftH)
		}
		if e.nonzeroOverlapAbove(rightH, nb) {
			e.Trapezoids.Get(rightH).TrapezoidsAbove.Add(nb)
			e.Trapezoids.Get(nb).TrapezoidsBelow.Add(rightH)
		}
	}
	for _, nb := range orig.TrapezoidsBelow {
		if !nb.IsValid() {
			continue
		}
		e.Trapezoids.Get(nb).TrapezoidsAbove.Remove(origH)
		if e.nonzeroOverlapAbove(nb, leftH) {
			e.Trapezoids.Get(leftH).TrapezoidsBelow.Add(nb)
			e.Trapezoids.Get(nb).TrapezoidsAbove.Add(leftH)
		}
		if e.nonzeroOverlapAbove(nb, rightH) {
			e.Trapezoids.Get(rightH).TrapezoidsBelow.Add(nb)
			e.Trapezoids.Get(nb).TrapezoidsAbove.Add(rightH)
		}
	}
	return leftH, rightH
}

func (e *Engine) canMergeWith(a, b Handle[Trapezoid]) bool {
	ta, tb := e.Trapezoids.Get(a), e.Trapezoids.Get(b)
	return ta.Left.Equal(tb.Left) && ta.Right.Equal(tb.Right)
}

func (e *Engine) chunkByMergeability(chain []Handle[Trapezoid]) [][]Handle[Trapezoid] {
	if len(chain) == 0 {
		return nil
	}
	var chunks [][]Handle[Trapezoid]
	cur := []Handle[Trapezoid]{chain[0]}
	for _, th := range chain[1:] {
		if e.canMergeWith(cur[0], th) {
			cur = append(cur, th)
		} else {
			chunks = append(chunks, cur)
			cur = []Handle[Trapezoid]{th}
		}
	}
	chunks = append(chunks, cur)
	return chunks
}

// mergeChunk combines a vertically-adjacent run of same-boundary trapezoids
// (chunk[0] nearest the segment's upper end, chunk[last] nearest its lower
// end) into one trapezoid, relinks neighbors, and converts every member's
// shared pre-split Sink into (or completes) a single X-branch over segH that
// all of them now share.
func (e *Engine) mergeChunk(chunk []Handle[Trapezoid], segH Handle[Segment], side XDirection) (Handle[Trapezoid], error) {
	topH, bottomH := chunk[0], chunk[len(chunk)-1]
	merged := *e.Trapezoids.Get(bottomH)
	topT := e.Trapezoids.Get(topH)
	merged.Up = topT.Up
	merged.TrapezoidsAbove = topT.TrapezoidsAbove
	mergedH := e.Trapezoids.Push(merged)

	for _, nb := range e.Trapezoids.Get(mergedH).TrapezoidsAbove {
		if nb.IsValid() {
			e.Trapezoids.Get(nb).TrapezoidsBelow.ReplaceOrAdd(topH, mergedH)
		}
	}
	for _, nb := range e.Trapezoids.Get(mergedH).TrapezoidsBelow {
		if nb.IsValid() {
			e.Trapezoids.Get(nb).TrapezoidsAbove.ReplaceOrAdd(bottomH, mergedH)
		}
	}

	mergedSink := e.QueryNodes.Push(QueryNode{Kind: KindSink, Trapezoid: mergedH})
	e.Trapezoids.Get(mergedH).Sink = mergedSink

	for _, th := range chunk {
		sharedSinkH := e.Trapezoids.Get(th).Sink
		node := e.QueryNodes.Get(sharedSinkH)
		if side == Left {
			MergeX(e.QueryNodes, sharedSinkH, segH, mergedSink, Handle[QueryNode]{})
		} else {
			if node.Kind != KindBranchX {
				return Handle[Trapezoid]{}, Internalf("segment insertion merged the right chain before the left chain converted the shared sink")
			}
			node.Right = mergedSink
		}
	}
	return mergedH, nil
}

// mergeChainSide runs the chunk/merge pass over one side's chain and reports
// the final (possibly merged) trapezoid handles nearest the segment's two
// ends, since the original per-step handles may since have been absorbed
// into a merged trapezoid.
func (e *Engine) mergeChainSide(chain []Handle[Trapezoid], segH Handle[Segment], side XDirection) (nearMax, nearMin Handle[Trapezoid], err error) {
	chunks := e.chunkByMergeability(chain)
	final := make(map[Handle[Trapezoid]]Handle[Trapezoid], len(chain))
	for _, chunk := range chunks {
		mergedH, mergeErr := e.mergeChunk(chunk, segH, side)
		if mergeErr != nil {
			return Handle[Trapezoid]{}, Handle[Trapezoid]{}, mergeErr
		}
		for _, th := range chunk {
			final[th] = mergedH
		}
	}
	return final[chain[0]], final[chain[len(chain)-1]], nil
}

// addSegment walks down from niMax to niMin splitting every trapezoid
// crossed, merges same-boundary runs on each side, then registers the
// segment as a divider on both endpoint nexuses.
func (e *Engine) addSegment(niMin, niMax Handle[Nexus]) error {
	minNex := e.Nexuses.Get(niMin)
	maxNex := e.Nexuses.Get(niMax)
	segH := e.Segments.Push(Segment{NiMin: niMin, NiMax: niMax, CMin: minNex.Coords, CMax: maxNex.Coords})

	cur := e.initialTrapezoidForSegment(niMax, minNex.Coords)
	var leftChain, rightChain []Handle[Trapezoid]
	for {
		t := *e.Trapezoids.Get(cur)
		leftH, rightH := e.splitVertical(cur, segH)
		leftChain = append(leftChain, leftH)
		rightChain = append(rightChain, rightH)

		if !t.Down.IsValid() {
			return Internalf("trapezoid has no down nexus during segment insertion walk")
		}
		if t.Down.Equal(niMin) {
			break
		}
		next, ok := e.nextTrapezoidDown(&t, segH)
		if !ok {
			return Internalf("segment insertion walk lost track of the trapezoid below the segment")
		}
		cur = next
	}

	if _, _, err := e.mergeChainSide(leftChain, segH, Left); err != nil {
		return err
	}
	rightNearMax, rightNearMin, err := e.mergeChainSide(rightChain, segH, Right)
	if err != nil {
		return err
	}

	if err := maxNex.AddDivider(e.Segments, segH, rightNearMax, Descending, minNex.Coords); err != nil {
		return err
	}
	if err := minNex.AddDivider(e.Segments, segH, rightNearMin, Ascending, maxNex.Coords); err != nil {
		return err
	}
	e.logger.Debug("add_segment", "segment", segH, "ni_min", niMin, "ni_max", niMax)
	return nil
}

// TrapezoidIsInside reports whether th is interior to the polygon set: it has
// both boundary segments, and its left one points down (which, by the
// lexicographic rotation, also implies the right one points up).
func (e *Engine) TrapezoidIsInside(th Handle[Trapezoid]) bool {
	t := e.Trapezoids.Get(th)
	if !t.Left.IsValid() || !t.Right.IsValid() {
		return false
	}
	return e.Segments.Get(t.Left).PointsDown()
}

// TopTrapezoid descends from the query root always taking the Above child
// of Y-branches, to seed the monotone-chain traversal. Any X-branch
// encountered along this path is an internal error, since the unbounded
// region above every polygon can never be split by a segment.
func (e *Engine) TopTrapezoid() (Handle[Trapezoid], error) {
	node := e.Root
	for {
		n := e.QueryNodes.Get(node)
		switch n.Kind {
		case KindSink:
			return n.Trapezoid, nil
		case KindBranchY:
			node = n.Above
		case KindBranchX:
			return Handle[Trapezoid]{}, Internalf("top-trapezoid descent hit an X-branch")
		default:
			return Handle[Trapezoid]{}, Internalf("query node has unknown kind")
		}
	}
}

// CheckConsistency validates the structural invariants the trapezoid graph
// must maintain: every trapezoid's sink points back at it, and every
// above/below neighbor relationship is mutual. Intended for tests and debug
// builds, not the hot path.
func (e *Engine) CheckConsistency() error {
	var err error
	e.Trapezoids.Each(func(h Handle[Trapezoid], t *Trapezoid) {
		if err != nil {
			return
		}
		if t.Sink.IsValid() {
			sinkNode := e.QueryNodes.Get(t.Sink)
			if sinkNode.Kind == KindSink && !sinkNode.Trapezoid.Equal(h) {
				err = Internalf("trapezoid %v's sink does not point back to it", h)
				return
			}
		}
		for _, nb := range t.TrapezoidsAbove {
			if nb.IsValid() && !e.Trapezoids.Get(nb).TrapezoidsBelow.contains(h) {
				err = Internalf("trapezoid %v not found in its above-neighbor's below list", h)
				return
			}
		}
		for _, nb := range t.TrapezoidsBelow {
			if nb.IsValid() && !e.Trapezoids.Get(nb).TrapezoidsAbove.contains(h) {
				err = Internalf("trapezoid %v not found in its below-neighbor's above list", h)
				return
			}
		}
	})
	return err
}

func (tl *TrapezoidNeighborList) contains(h Handle[Trapezoid]) bool {
	for _, nb := range tl {
		if nb.Equal(h) {
			return true
		}
	}
	return false
}
