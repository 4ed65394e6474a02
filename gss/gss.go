// Package gss is the Graph-Structured Stack store (spec §3, §4.3): a
// de-duplicated graph of stack nodes keyed by (nonterminal,
// inputPosition), whose edges carry the return state and the SPPF
// node bridging caller and callee. Re-creating an existing node
// updates its minWeightOfLeftPart to the minimum seen, and adding a
// genuinely new edge into an already-popped node retroactively
// replays those pops — the mechanism that gives GLL its cubic
// worst-case bound instead of exponential.
package gss

import (
	"github.com/nihei9/rsmgll/inputgraph"
	"github.com/nihei9/rsmgll/rsm"
	"github.com/nihei9/rsmgll/sppf"
	"github.com/nihei9/rsmgll/symbol"
)

type NodeID uint32

type nodeKey struct {
	nt  symbol.Nonterminal
	pos inputgraph.Vertex
}

// Edge is one `v --(returnState, bridge)--> target` step: invoking
// returnState at target continues the caller that pushed v.
type Edge struct {
	ReturnState rsm.StateID
	Bridge      sppf.Child
	Target      NodeID
}

type edgeKey struct {
	returnState rsm.StateID
	bridge      sppf.Child
	target      NodeID
}

// Node is one GSS stack frame: a nonterminal invoked at a position.
type Node struct {
	id                  NodeID
	nonterminal         symbol.Nonterminal
	position            inputgraph.Vertex
	minWeightOfLeftPart int

	edges    []Edge
	edgeSeen map[edgeKey]bool

	// popped is the set of SPPF nodes this node has been popped with,
	// in insertion order, so retroactive completion (spec §4.3) can
	// replay them deterministically when a new edge arrives.
	popped     []sppf.Child
	poppedSeen map[sppf.Child]bool
}

func (n *Node) ID() NodeID                      { return n.id }
func (n *Node) Nonterminal() symbol.Nonterminal { return n.nonterminal }
func (n *Node) Position() inputgraph.Vertex     { return n.position }
func (n *Node) MinWeightOfLeftPart() int        { return n.minWeightOfLeftPart }
func (n *Node) Edges() []Edge                   { return n.edges }
func (n *Node) Popped() []sppf.Child            { return n.popped }

// Store is the GSS node arena.
type Store struct {
	nodes []Node
	index map[nodeKey]NodeID
}

func NewStore() *Store {
	return &Store{
		index: map[nodeKey]NodeID{},
	}
}

func (s *Store) Node(id NodeID) *Node {
	return &s.nodes[id]
}

// GetOrCreate implements spec §4.3 getOrCreate(nonterminal, position,
// weight): dedups by (nonterminal, position); on re-creation with a
// lower weight, lowers the stored minWeightOfLeftPart (spec §3 GSS
// node invariant).
func (s *Store) GetOrCreate(nt symbol.Nonterminal, pos inputgraph.Vertex, weight int) (NodeID, bool) {
	k := nodeKey{nt: nt, pos: pos}
	if id, ok := s.index[k]; ok {
		n := &s.nodes[id]
		if weight < n.minWeightOfLeftPart {
			n.minWeightOfLeftPart = weight
		}
		return id, false
	}
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, Node{
		id:                  id,
		nonterminal:         nt,
		position:            pos,
		minWeightOfLeftPart: weight,
		edgeSeen:            map[edgeKey]bool{},
		poppedSeen:          map[sppf.Child]bool{},
	})
	s.index[k] = id
	return id, true
}

// AddEdge implements spec §4.3 addEdge(node, returnState, bridgeSppf,
// target), returning true iff the edge is new (the caller then
// replays popped entries per the retroactive-completion rule).
func (s *Store) AddEdge(node NodeID, returnState rsm.StateID, bridge sppf.Child, target NodeID) bool {
	n := &s.nodes[node]
	k := edgeKey{returnState: returnState, bridge: bridge, target: target}
	if n.edgeSeen[k] {
		return false
	}
	n.edgeSeen[k] = true
	n.edges = append(n.edges, Edge{ReturnState: returnState, Bridge: bridge, Target: target})
	return true
}

// RecordPop implements spec §4.3 recordPop(node, sppfNode): adds
// sppfNode to node's popped set if not already present, returning
// true iff it was newly added (the driver only needs to fan out pop
// completions for genuinely new pops).
func (s *Store) RecordPop(node NodeID, sppfNode sppf.Child) bool {
	n := &s.nodes[node]
	if n.poppedSeen[sppfNode] {
		return false
	}
	n.poppedSeen[sppfNode] = true
	n.popped = append(n.popped, sppfNode)
	return true
}
