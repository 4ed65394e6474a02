package gll

import (
	"fmt"

	"github.com/nihei9/rsmgll/inputgraph"
	"github.com/nihei9/rsmgll/sppf"
	"github.com/nihei9/rsmgll/symbol"
)

// Pair is a (startVertex, endVertex) reachability key (spec §3 "Parse
// result").
type Pair struct {
	Start inputgraph.Vertex
	End   inputgraph.Vertex
}

func (p Pair) String() string { return fmt.Sprintf("(%v,%v)", p.Start, p.End) }

func pairLess(a, b Pair) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

// RootNode is the public view of an accepted SPPF symbol node (spec
// §6 "SppfRoot supports: nonterminal, leftExtent, rightExtent, weight,
// packedChildren()").
type RootNode struct {
	store *sppf.Store
	id    sppf.NodeID
}

func (r *RootNode) Nonterminal() symbol.Nonterminal { return r.store.Node(r.id).Nonterminal() }
func (r *RootNode) LeftExtent() inputgraph.Vertex    { return r.store.Node(r.id).LeftExtent() }
func (r *RootNode) RightExtent() inputgraph.Vertex   { return r.store.Node(r.id).RightExtent() }
func (r *RootNode) Weight() int                      { return r.store.Node(r.id).Weight() }
func (r *RootNode) PackedChildren() []sppf.NodeID    { return r.store.Node(r.id).PackedChildren() }
func (r *RootNode) NodeID() sppf.NodeID              { return r.id }

// Result is the parse() output surface (spec §6): a single SPPF root
// (nil on parse failure, spec §4.9) plus the full reachability map.
//
// The chosen Root is the accepted symbol node with the minimum weight
// across every (start,end) reachability pair; ties break on
// (leftExtent, rightExtent) order. This total, order-independent rule
// is what satisfies spec §5 ("the observable parse result ... must not
// depend on descriptor pop order") without requiring a priority queue:
// any pop order reaches the same fixpoint set of reachability pairs,
// and the rule picks the same one out of that set every time.
type Result struct {
	store *sppf.Store

	Reachability map[Pair]int
	reachNodes   map[Pair]sppf.NodeID

	bestPair Pair
	haveBest bool
}

func newResult(store *sppf.Store) *Result {
	return &Result{
		store:        store,
		Reachability: map[Pair]int{},
		reachNodes:   map[Pair]sppf.NodeID{},
	}
}

func (r *Result) record(pair Pair, node sppf.NodeID, weight int) {
	if prev, ok := r.Reachability[pair]; !ok || weight < prev {
		r.Reachability[pair] = weight
		r.reachNodes[pair] = node
	}
	r.recomputeBest()
}

func (r *Result) recomputeBest() {
	r.haveBest = false
	for pair, w := range r.Reachability {
		if !r.haveBest || w < r.Reachability[r.bestPair] || (w == r.Reachability[r.bestPair] && pairLess(pair, r.bestPair)) {
			r.bestPair = pair
			r.haveBest = true
		}
	}
}

// Root returns the chosen accepted SppfRoot, or nil on parse failure.
func (r *Result) Root() *RootNode {
	if !r.haveBest {
		return nil
	}
	return &RootNode{store: r.store, id: r.reachNodes[r.bestPair]}
}
