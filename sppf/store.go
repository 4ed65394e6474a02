package sppf

import (
	"github.com/nihei9/rsmgll/inputgraph"
	"github.com/nihei9/rsmgll/rsm"
	"github.com/nihei9/rsmgll/symbol"
)

type terminalKey struct {
	terminal symbol.OptTerminal
	left     inputgraph.Vertex
	right    inputgraph.Vertex
	weight   int
}

type symbolKey struct {
	nt    symbol.Nonterminal
	left  inputgraph.Vertex
	right inputgraph.Vertex
}

type intermediateKey struct {
	state rsm.StateID
	left  inputgraph.Vertex
	right inputgraph.Vertex
}

type packedKey struct {
	pivot inputgraph.Vertex
	left  Child
	right Child
}

// WeightChange is delivered through Store.OnWeightDecrease whenever
// GetParentNode lowers an existing symbol/intermediate node's weight
// (recovery mode, spec §4.2 rule 3: "updating an existing parent's
// weight must propagate to any GSS node whose minWeightOfLeftPart
// references it"). The driver wires this to re-run acceptance on the
// node; it does not update the minWeightOfLeftPart of any GSS node.
type WeightChange struct {
	Node     NodeID
	OldWeight int
	NewWeight int
}

// Store is the SPPF de-duplicated node arena (spec §4.2). The zero
// value is not usable; construct with NewStore.
type Store struct {
	nodes []Node

	terminals     map[terminalKey]NodeID
	symbols       map[symbolKey]NodeID
	intermediates map[intermediateKey]NodeID
	epsilons      map[inputgraph.Vertex]NodeID
	packedByOwner map[NodeID]map[packedKey]NodeID

	// reverse index from a node to every non-packed node that has it
	// as a (one-level) packed child, filled in by GetOrCreatePackedNode.
	// Keyed on the child NodeID referenced by a packed node; the
	// packed node's own parent is the affected ancestor. Invalidate
	// walks down from its root and does not read this index.
	referencedBy map[NodeID][]NodeID

	stale map[NodeID]bool

	OnWeightDecrease func(WeightChange)
}

func NewStore() *Store {
	return &Store{
		nodes:         []Node{{}}, // index 0 reserved so NodeID(0) is never a real node
		terminals:     map[terminalKey]NodeID{},
		symbols:       map[symbolKey]NodeID{},
		intermediates: map[intermediateKey]NodeID{},
		epsilons:      map[inputgraph.Vertex]NodeID{},
		packedByOwner: map[NodeID]map[packedKey]NodeID{},
		referencedBy:  map[NodeID][]NodeID{},
		stale:         map[NodeID]bool{},
	}
}

func (s *Store) alloc(n Node) NodeID {
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, n)
	return id
}

// Node returns the node at id. Valid only for IDs this Store issued.
func (s *Store) Node(id NodeID) *Node {
	return &s.nodes[id]
}

func (s *Store) IsStale(id NodeID) bool { return s.stale[id] }

// GetOrCreateTerminalNode implements spec §4.2
// getOrCreateTerminalNode(terminal?, left, right, weight). Terminal
// nodes are leaves: their full tuple including weight is their
// identity (a matched terminal, weight 0, never collides with an
// inserted one of the same kind because insertion is zero-width).
func (s *Store) GetOrCreateTerminalNode(term symbol.OptTerminal, left, right inputgraph.Vertex, weight int) NodeID {
	k := terminalKey{terminal: term, left: left, right: right, weight: weight}
	if id, ok := s.terminals[k]; ok {
		return id
	}
	id := s.alloc(Node{kind: kindTerminal, terminal: term, left: left, right: right, weight: weight})
	s.terminals[k] = id
	return id
}

// GetEpsilonNode returns the singleton zero-width match at pos (spec
// §3 "Epsilon marker node").
func (s *Store) GetEpsilonNode(pos inputgraph.Vertex) NodeID {
	if id, ok := s.epsilons[pos]; ok {
		return id
	}
	id := s.alloc(Node{kind: kindEpsilon, left: pos, right: pos, pos: pos})
	s.epsilons[pos] = id
	return id
}

func (s *Store) getOrCreateSymbolNode(nt symbol.Nonterminal, left, right inputgraph.Vertex) NodeID {
	k := symbolKey{nt: nt, left: left, right: right}
	if id, ok := s.symbols[k]; ok {
		return id
	}
	id := s.alloc(Node{kind: kindSymbol, nonterminal: nt, left: left, right: right})
	s.symbols[k] = id
	return id
}

// GetOrCreateSymbolNode is the public spec §4.2 operation, for callers
// that need a symbol node without going through the combinator (the
// driver builds its symbol nodes through GetParentNode). weight is
// only applied when the node is freshly created; an existing node's
// weight is only ever lowered through the min-over-packed-children
// rule in combine/GetParentNode.
func (s *Store) GetOrCreateSymbolNode(nt symbol.Nonterminal, left, right inputgraph.Vertex, weight int) NodeID {
	k := symbolKey{nt: nt, left: left, right: right}
	if id, ok := s.symbols[k]; ok {
		return id
	}
	id := s.getOrCreateSymbolNode(nt, left, right)
	s.nodes[id].weight = weight
	return id
}

func (s *Store) getOrCreateIntermediateNode(state rsm.StateID, left, right inputgraph.Vertex) NodeID {
	k := intermediateKey{state: state, left: left, right: right}
	if id, ok := s.intermediates[k]; ok {
		return id
	}
	id := s.alloc(Node{kind: kindIntermediate, state: state, left: left, right: right})
	s.intermediates[k] = id
	return id
}

func (s *Store) GetOrCreateIntermediateNode(state rsm.StateID, left, right inputgraph.Vertex, weight int) NodeID {
	k := intermediateKey{state: state, left: left, right: right}
	if id, ok := s.intermediates[k]; ok {
		return id
	}
	id := s.getOrCreateIntermediateNode(state, left, right)
	s.nodes[id].weight = weight
	return id
}

// childExtents returns (left, right, weight) for a Child, using the
// store for ChildNode. ChildNone has no extents of its own; callers
// must special-case it (only ever valid as a packed node's leftChild).
func (s *Store) childExtents(c Child) (inputgraph.Vertex, inputgraph.Vertex, int) {
	switch c.Kind {
	case ChildEpsilon:
		return c.Pos, c.Pos, 0
	case ChildNode:
		n := &s.nodes[c.Node]
		return n.left, n.right, n.weight
	default:
		return 0, 0, 0
	}
}

// GetOrCreatePackedNode implements spec §4.2
// getOrCreatePackedNode(parent, pivot, leftChild, rightChild),
// deduplicating under parent by (pivot, leftChild, rightChild) and
// maintaining the referencedBy reverse index. It updates parent's
// weight to the min across all of parent's packed children and, if
// that lowers an existing weight, reports it via OnWeightDecrease.
func (s *Store) GetOrCreatePackedNode(parent NodeID, pivot inputgraph.Vertex, left, right Child) NodeID {
	byKey, ok := s.packedByOwner[parent]
	if !ok {
		byKey = map[packedKey]NodeID{}
		s.packedByOwner[parent] = byKey
	}
	k := packedKey{pivot: pivot, left: left, right: right}
	if id, ok := byKey[k]; ok {
		return id
	}

	packedWeight := 0
	if left.Kind != ChildNone {
		_, _, lw := s.childExtents(left)
		packedWeight += lw
	}
	_, _, rw := s.childExtents(right)
	packedWeight += rw

	id := s.alloc(Node{kind: kindPacked, parent: parent, pivot: pivot, leftChild: left, rightChild: right, weight: packedWeight})
	byKey[k] = id

	// A fresh packed derivation of parent means parent is no longer
	// stale, even if a prior Invalidate marked it so: incremental
	// reparsing recomputes exactly the nodes whose derivation is
	// rebuilt here, and staleness must lift the instant that happens
	// rather than linger until the caller clears it in bulk.
	delete(s.stale, parent)

	p := &s.nodes[parent]
	old := p.weight
	if len(p.packed) == 0 || packedWeight < old {
		p.weight = packedWeight
		if len(p.packed) > 0 && packedWeight < old && s.OnWeightDecrease != nil {
			s.OnWeightDecrease(WeightChange{Node: parent, OldWeight: old, NewWeight: packedWeight})
		}
	}
	p.packed = append(p.packed, id)

	if left.Kind == ChildNode {
		s.referencedBy[left.Node] = append(s.referencedBy[left.Node], parent)
	}
	if right.Kind == ChildNode {
		s.referencedBy[right.Node] = append(s.referencedBy[right.Node], parent)
	}

	return id
}

// GetParentNode is the GLL SPPF combinator (spec §4.2): given two
// adjacent children and the RSM state reached after consuming the
// right one, find or build the node representing their combination
// and record one more packed derivation of it.
//
// Every combination is represented uniformly as a packed node, even
// when leftChild is absent (spec §3 marks a packed node's children
// optional, and Design Notes calls for GetParentNode to be total) —
// there is no special "adopt rightChild directly" alias. This keeps
// weight bookkeeping (packed weight = sum of children, parent weight
// = min over packed children) correct without a second code path for
// the first derivation of a node.
func (s *Store) GetParentNode(state *rsm.State, left, right Child) NodeID {
	_, rr, _ := s.childExtents(right)
	var ll inputgraph.Vertex
	if left.Kind == ChildNone {
		ll, _, _ = s.childExtents(right)
	} else {
		ll, _, _ = s.childExtents(left)
	}
	pivot, _, _ := s.childExtents(right)

	var parent NodeID
	if state.IsFinal() {
		parent = s.getOrCreateSymbolNode(state.Nonterminal(), ll, rr)
	} else {
		parent = s.getOrCreateIntermediateNode(state.ID(), ll, rr)
	}

	s.GetOrCreatePackedNode(parent, pivot, left, right)
	return parent
}

// Invalidate marks every node whose extents touch vertex, reachable
// from root, as stale (spec §4.2 incremental). A stale node is
// excluded from acceptance checks until a later GetParentNode call
// recomputes it (spec §4.8, SPPF node state "fresh -> stale").
//
// Implementation: walk down from root through packed children
// (forward reachability) marking any node whose [left,right) extent
// spans vertex (left <= vertex <= right, using vertex identity
// equality since extents are vertex IDs, not a linear range — a node
// "touches" vertex when vertex is one of its own extents or one of an
// input edge incident to vertex was consumed to build it; this
// implementation conservatively marks any node whose left or right
// extent equals vertex exactly, which subsumes both cases because
// every consumed edge's endpoints are the extents of the terminal
// node built for it).
func (s *Store) Invalidate(vertex inputgraph.Vertex, root NodeID) {
	visited := map[NodeID]bool{}
	var walk func(id NodeID) bool // returns true if id or a descendant touches vertex
	walk = func(id NodeID) bool {
		if visited[id] {
			return s.stale[id]
		}
		visited[id] = true
		n := &s.nodes[id]
		touched := false
		switch n.kind {
		case kindTerminal, kindEpsilon:
			touched = n.left == vertex || n.right == vertex
		case kindSymbol, kindIntermediate:
			if n.left == vertex || n.right == vertex {
				touched = true
			}
			for _, p := range n.packed {
				if walk(p) {
					touched = true
				}
			}
		case kindPacked:
			if n.pivot == vertex {
				touched = true
			}
			if n.leftChild.Kind == ChildNode && walk(n.leftChild.Node) {
				touched = true
			}
			if n.leftChild.Kind == ChildEpsilon && n.leftChild.Pos == vertex {
				touched = true
			}
			if n.rightChild.Kind == ChildNode && walk(n.rightChild.Node) {
				touched = true
			}
			if n.rightChild.Kind == ChildEpsilon && n.rightChild.Pos == vertex {
				touched = true
			}
		}
		if touched {
			s.stale[id] = true
		}
		return touched
	}
	walk(root)
}

// ClearStale drops every staleness mark. Called by the incremental
// driver after the resumed main loop has finished, so no mark carries
// over into a later Reparse.
func (s *Store) ClearStale() {
	s.stale = map[NodeID]bool{}
}
