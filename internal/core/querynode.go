package core

// NodeKind tags which variant a QueryNode currently holds. Query nodes are
// mutated in place from Sink to Branch (and, via MergeX, from Sink directly
// into a Branch that reuses a sibling's existing sinks) as trapezoidation
// proceeds — the node's identity (its handle) never changes, only its
// contents, which is what lets other nodes keep pointing at it across a
// split or merge.
type NodeKind int

const (
	KindSink NodeKind = iota
	KindBranchX
	KindBranchY
)

// QueryNode is either a point-location predicate (BranchX tests is-left-of a
// segment; BranchY tests lexicographic <= against a coordinate) or a Sink
// leaf pointing at the trapezoid it currently represents.
type QueryNode struct {
	Kind NodeKind

	// Sink:
	Trapezoid Handle[Trapezoid]

	// BranchX: left child taken when IsLeftOfLine(segment, c) holds.
	SegmentKey  Handle[Segment]
	Left, Right Handle[QueryNode]

	// BranchY: below child taken when c.LessOrEqual(YKey) holds.
	YKey         Coords
	Above, Below Handle[QueryNode]
}

// Locate descends the query DAG from "from", branching on X/Y predicates,
// until it reaches a Sink, and returns that sink's handle. dir disambiguates
// ties when c exactly coincides with a BranchX segment's endpoint: ordinary
// geometric ties are already resolved to the right by IsLeftOfLine's
// endpoint convention, but callers locating a specific named endpoint (e.g.
// "the trapezoid above this vertex" vs "the trapezoid below it") need to
// force a side independent of that convention.
func Locate(queryNodes *Arena[QueryNode], segments *Arena[Segment], c Coords, from Handle[QueryNode], dir Direction) Handle[QueryNode] {
	for {
		node := queryNodes.Get(from)
		switch node.Kind {
		case KindSink:
			return from
		case KindBranchY:
			if c.LessOrEqual(node.YKey) {
				from = node.Below
			} else {
				from = node.Above
			}
		case KindBranchX:
			seg := segments.Get(node.SegmentKey)
			var goLeft bool
			if c == seg.CMin || c == seg.CMax {
				goLeft = dir.X == Left
			} else {
				goLeft = seg.IsOnLeft(c)
			}
			if goLeft {
				from = node.Left
			} else {
				from = node.Right
			}
		default:
			panic("core: query node has unknown kind")
		}
	}
}

// SplitY mutates the leaf at parent into a Y-branch at c, allocating two new
// sink leaves: Below retains trapDown (the original trapezoid, unchanged
// below c), Above is a fresh sink over trapUp.
func SplitY(queryNodes *Arena[QueryNode], parent Handle[QueryNode], c Coords, trapDown, trapUp Handle[Trapezoid]) (below, above Handle[QueryNode]) {
	below = queryNodes.Push(QueryNode{Kind: KindSink, Trapezoid: trapDown})
	above = queryNodes.Push(QueryNode{Kind: KindSink, Trapezoid: trapUp})
	*queryNodes.Get(parent) = QueryNode{Kind: KindBranchY, YKey: c, Below: below, Above: above}
	return below, above
}

// MergeX mutates the (currently Sink) leaf at parent into an X-branch on
// seg, but *reuses* the given sink handles instead of allocating fresh ones.
// This is what keeps the query structure a DAG with shared sinks instead of
// a tree that re-splits every trapezoid boundary independently: when two
// trapezoids on the same side of a segment turn out to merge across a
// horizontal boundary, both of their parent leaves end up pointing at the
// very same merged sink.
func MergeX(queryNodes *Arena[QueryNode], parent Handle[QueryNode], seg Handle[Segment], left, right Handle[QueryNode]) {
	*queryNodes.Get(parent) = QueryNode{Kind: KindBranchX, SegmentKey: seg, Left: left, Right: right}
}
