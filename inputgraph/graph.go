// Package inputgraph is the input-graph model (spec §3, §6): an
// arbitrary directed, labeled graph of vertices, each edge either
// consuming a terminal or acting as an epsilon step. Token strings are
// the degenerate case (a linear chain); the driver itself never
// assumes linearity, which is what lets the same engine parse
// graph-database / code-property-graph input (spec §1).
package inputgraph

import (
	"fmt"

	"github.com/nihei9/rsmgll/symbol"
)

// Vertex is an opaque input-graph vertex identity. Graph
// implementations are free to choose any numbering; the core only
// ever compares vertices for equality and uses them as map/slice keys.
type Vertex uint32

func (v Vertex) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}

// Label carries an optional terminal: absent means an epsilon edge
// (spec §3 "Input edge").
type Label struct {
	Terminal symbol.OptTerminal
}

func TerminalLabel(t symbol.Terminal) Label { return Label{Terminal: symbol.Some(t)} }
func EpsilonLabel() Label                   { return Label{} }

func (l Label) IsEpsilon() bool { return !l.Terminal.Ok }

// Edge is one outgoing step from a vertex.
type Edge struct {
	Label Label
	Head  Vertex
}

// Graph is the input surface the driver consumes (spec §6). It is
// read-only from the driver's point of view; building/mutating a graph
// is the caller's concern (Builder below, or a custom adapter such as
// a lexer-fed token chain).
type Graph interface {
	StartVertices() []Vertex
	IsStartVertex(Vertex) bool
	IsFinalVertex(Vertex) bool
	Edges(Vertex) []Edge
}

// SyntheticEdge is one edit the recovery layer may apply at a vertex
// (spec §4.6): a terminal-or-epsilon step with a nonzero edit weight.
type SyntheticEdge struct {
	Label  Label
	Head   Vertex
	Weight int
}

// RecoveryState is the subset of *rsm.State the recovery layer needs
// to synthesize insert-token edges, captured as an interface so
// inputgraph does not import rsm (it would be the only reverse
// dependency in the module otherwise).
type RecoveryState interface {
	ExpectedTerminals() []symbol.Terminal
}

// RecoveryGraph additionally exposes synthetic edit edges at a vertex,
// given the RSM state the driver currently occupies (spec §6
// "syntheticEdges(V, state)").
type RecoveryGraph interface {
	Graph
	SyntheticEdges(v Vertex, state RecoveryState) []SyntheticEdge
}
