// Package sppf implements the Shared Packed Parse Forest store (spec
// §3, §4.2): a de-duplicated DAG of parse-forest nodes. Terminal,
// symbol, intermediate and epsilon nodes are keyed by their identity
// tuple; packed nodes (one per derivation alternative) dedup under
// their parent by (pivot, leftChild, rightChild). All nodes live in an
// arena and are addressed by NodeID — the engine never frees a node
// mid-parse (spec §3 "the parser never deletes an SPPF node").
package sppf

import (
	"fmt"

	"github.com/nihei9/rsmgll/inputgraph"
	"github.com/nihei9/rsmgll/rsm"
	"github.com/nihei9/rsmgll/symbol"
)

// NodeID addresses a node in a Store's arena. The zero value is never
// issued by Store, so it doubles as a "no node" sentinel where needed.
type NodeID uint32

func (id NodeID) String() string { return fmt.Sprintf("#%d", uint32(id)) }

type kind uint8

const (
	kindTerminal kind = iota
	kindSymbol
	kindIntermediate
	kindPacked
	kindEpsilon
)

// ChildKind distinguishes the three shapes an SppfChild sum type can
// take (Design Notes: "a sum type SppfChild = None | Epsilon(pos) |
// Node(ref) is cleaner ... and makes getParentNode total").
type ChildKind uint8

const (
	ChildNone ChildKind = iota
	ChildEpsilon
	ChildNode
)

// Child is the SppfChild sum type: "no left child yet" at the start of
// a nonterminal's RHS, a zero-width epsilon match, or a reference to an
// already-built node.
type Child struct {
	Kind ChildKind
	Pos  inputgraph.Vertex // valid when Kind == ChildEpsilon
	Node NodeID            // valid when Kind == ChildNode
}

func NoChild() Child                        { return Child{Kind: ChildNone} }
func EpsilonChild(pos inputgraph.Vertex) Child { return Child{Kind: ChildEpsilon, Pos: pos} }
func NodeChild(id NodeID) Child             { return Child{Kind: ChildNode, Node: id} }

// Node is a single arena slot. Only the fields for its Kind are
// meaningful; this mirrors the tagged-union style vartan uses for
// lrItem/lrState variants rather than an interface-per-kind, which
// would force a pointer-chasing allocation per node in the hottest
// part of the engine.
type Node struct {
	kind kind

	// terminal / symbol / intermediate node fields
	terminal    symbol.OptTerminal // kindTerminal
	nonterminal symbol.Nonterminal // kindSymbol
	state       rsm.StateID        // kindIntermediate
	left        inputgraph.Vertex
	right       inputgraph.Vertex
	weight      int
	packed      []NodeID // packed children, kindSymbol/kindIntermediate only

	// packed node fields
	parent     NodeID // kindPacked
	pivot      inputgraph.Vertex
	leftChild  Child
	rightChild Child

	// epsilon node field
	pos inputgraph.Vertex // kindEpsilon
}

func (n *Node) IsTerminal() bool    { return n.kind == kindTerminal }
func (n *Node) IsSymbol() bool      { return n.kind == kindSymbol }
func (n *Node) IsIntermediate() bool { return n.kind == kindIntermediate }
func (n *Node) IsPacked() bool      { return n.kind == kindPacked }
func (n *Node) IsEpsilon() bool     { return n.kind == kindEpsilon }

func (n *Node) Terminal() symbol.OptTerminal    { return n.terminal }
func (n *Node) Nonterminal() symbol.Nonterminal { return n.nonterminal }
func (n *Node) State() rsm.StateID              { return n.state }
func (n *Node) LeftExtent() inputgraph.Vertex   { return n.left }
func (n *Node) RightExtent() inputgraph.Vertex  { return n.right }
func (n *Node) Weight() int                     { return n.weight }
func (n *Node) PackedChildren() []NodeID        { return n.packed }
func (n *Node) Parent() NodeID                  { return n.parent }
func (n *Node) Pivot() inputgraph.Vertex         { return n.pivot }
func (n *Node) LeftChild() Child                { return n.leftChild }
func (n *Node) RightChild() Child               { return n.rightChild }
func (n *Node) EpsilonPos() inputgraph.Vertex    { return n.pos }
