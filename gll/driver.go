// Package gll is the parser driver (spec §4.5): the loop that pops
// descriptors from the scheduler and performs one GLL step each —
// scan terminal/epsilon edges, traverse nonterminal edges (creating or
// linking a GSS node), pop at final states, and latch acceptance.
// Recovery (§4.6) and incremental reparsing (§4.7) are modes of the
// same Driver rather than separate engines, per Design Notes'
// "Driver capability" framing.
package gll

import (
	"github.com/nihei9/rsmgll/descriptor"
	"github.com/nihei9/rsmgll/gss"
	"github.com/nihei9/rsmgll/inputgraph"
	"github.com/nihei9/rsmgll/rsm"
	"github.com/nihei9/rsmgll/sppf"
)

// Driver wires one RSM and one input graph together with the three
// stores and the descriptor scheduler, and owns them exclusively for
// the lifetime of the parse (spec §5, "owned exclusively by the
// driver"). Reuse across unrelated inputs is not supported: build a
// new Driver per input graph.
type Driver struct {
	rsm   *rsm.RSM
	graph inputgraph.Graph
	// recoveryGraph is non-nil iff recovery mode is enabled; it is the
	// same object as graph, asserted to the richer interface once at
	// construction instead of on every step.
	recoveryGraph inputgraph.RecoveryGraph
	recovery      bool

	sppfStore *sppf.Store
	gssStore  *gss.Store
	descStore *descriptor.Store

	result *Result
}

// New builds a Driver in plain (non-recovery) mode.
func New(r *rsm.RSM, g inputgraph.Graph) *Driver {
	d := &Driver{
		rsm:       r,
		graph:     g,
		sppfStore: sppf.NewStore(),
		gssStore:  gss.NewStore(),
		descStore: descriptor.NewStore(),
	}
	d.sppfStore.OnWeightDecrease = d.onWeightDecrease
	return d
}

// NewRecovering builds a Driver in error-recovery mode (spec §4.6):
// the input graph additionally offers synthetic edit edges, and the
// driver latches the minimum-edit-cost parse rather than failing on
// the first ungrammatical input.
func NewRecovering(r *rsm.RSM, g inputgraph.RecoveryGraph) *Driver {
	d := New(r, g)
	d.recoveryGraph = g
	d.recovery = true
	return d
}

func (d *Driver) onWeightDecrease(ch sppf.WeightChange) {
	// A symbol node's weight only ever matters to Result if it's
	// already a recorded reachability entry; re-running the
	// acceptance check against it is enough to let a lower weight
	// supersede the currently chosen root (spec §4.6: "if a
	// lower-weight completion is discovered after a higher-weight
	// one, it supersedes the current parseResult").
	d.checkAcceptanceNode(ch.Node)
}

// Parse runs a cold parse to completion (spec §6 "parse()").
func (d *Driver) Parse() (*Result, error) {
	d.result = newResult(d.sppfStore)

	start, err := d.rsm.StartState()
	if err != nil {
		return nil, err
	}
	startNT := d.rsm.StartNonterminal()

	for _, v0 := range d.graph.StartVertices() {
		gssNode, _ := d.gssStore.GetOrCreate(startNT, v0, 0)
		d.descStore.Enqueue(descriptor.Descriptor{
			State:    start.ID(),
			Gss:      gssNode,
			Sppf:     sppf.NoChild(),
			Position: v0,
		}, false)
	}

	if err := d.mainLoop(); err != nil {
		return nil, err
	}
	return d.result, nil
}

func (d *Driver) mainLoop() error {
	for {
		desc, ok := d.descStore.Next()
		if !ok {
			return nil
		}
		if err := d.step(desc); err != nil {
			return err
		}
	}
}

func (d *Driver) state(id rsm.StateID) (*rsm.State, error) {
	return d.rsm.StateOrErr(id)
}

// step performs one GLL descriptor step (spec §4.5, numbered to match).
func (d *Driver) step(desc descriptor.Descriptor) error {
	state, err := d.state(desc.State)
	if err != nil {
		return err
	}

	// 1. If state.isFinal, invoke pop(gss, sppf ?: epsilon(pos), pos).
	if state.IsFinal() {
		popChild := desc.Sppf
		if popChild.Kind == sppf.ChildNone {
			popChild = sppf.EpsilonChild(desc.Position)
		}
		if err := d.pop(desc.Gss, popChild, desc.Position); err != nil {
			return err
		}
	}

	// 2. Insert d into handled.
	d.descStore.MarkHandled(desc)

	// 3. If state.isStart && state.isFinal, check acceptance against
	// the epsilon node (the L(S) = {epsilon} case: there is no caller
	// edge to fan a completed symbol node out through, so it must be
	// built and checked here directly).
	if state.IsStart() && state.IsFinal() {
		node := d.sppfStore.GetParentNode(state, sppf.NoChild(), sppf.EpsilonChild(desc.Position))
		d.checkAcceptanceNode(node)
	}

	// 4. Check acceptance against sppf.
	if desc.Sppf.Kind == sppf.ChildNode {
		d.checkAcceptanceNode(desc.Sppf.Node)
	}

	// 5. Scan outgoing input edges at pos.
	for _, e := range d.graph.Edges(desc.Position) {
		if e.Label.IsEpsilon() {
			parent := d.sppfStore.GetParentNode(state, desc.Sppf, sppf.EpsilonChild(e.Head))
			d.enqueue(descriptor.Descriptor{State: desc.State, Gss: desc.Gss, Sppf: sppf.NodeChild(parent), Position: e.Head}, false)
			continue
		}
		for _, tgt := range state.TargetsForTerminal(e.Label.Terminal.Terminal) {
			s2, err := d.state(tgt)
			if err != nil {
				return err
			}
			term := d.sppfStore.GetOrCreateTerminalNode(e.Label.Terminal, desc.Position, e.Head, 0)
			parent := d.sppfStore.GetParentNode(s2, desc.Sppf, sppf.NodeChild(term))
			d.enqueue(descriptor.Descriptor{State: tgt, Gss: desc.Gss, Sppf: sppf.NodeChild(parent), Position: e.Head}, false)
		}
	}

	// 5b. Recovery: scan synthetic edit edges at pos (spec §4.6).
	if d.recovery {
		for _, se := range d.recoveryGraph.SyntheticEdges(desc.Position, state) {
			if se.Label.IsEpsilon() {
				// Delete-token: consume an edge without matching any
				// terminal; the RSM state does not advance.
				term := d.sppfStore.GetOrCreateTerminalNode(se.Label.Terminal, desc.Position, se.Head, se.Weight)
				parent := d.sppfStore.GetParentNode(state, desc.Sppf, sppf.NodeChild(term))
				d.enqueue(descriptor.Descriptor{State: desc.State, Gss: desc.Gss, Sppf: sppf.NodeChild(parent), Position: se.Head}, true)
				continue
			}
			// Insert-token: a zero-width match of a terminal the
			// current state expects.
			for _, tgt := range state.TargetsForTerminal(se.Label.Terminal.Terminal) {
				s2, err := d.state(tgt)
				if err != nil {
					return err
				}
				term := d.sppfStore.GetOrCreateTerminalNode(se.Label.Terminal, desc.Position, se.Head, se.Weight)
				parent := d.sppfStore.GetParentNode(s2, desc.Sppf, sppf.NodeChild(term))
				d.enqueue(descriptor.Descriptor{State: tgt, Gss: desc.Gss, Sppf: sppf.NodeChild(parent), Position: se.Head}, true)
			}
		}
	}

	// 6. Traverse nonterminal edges.
	for _, ne := range state.NonterminalEdges() {
		sppfWeight := 0
		if desc.Sppf.Kind == sppf.ChildNode {
			sppfWeight = d.sppfStore.Node(desc.Sppf.Node).Weight()
		}
		gssNode := d.gssStore.Node(desc.Gss)
		v, _ := d.gssStore.GetOrCreate(ne.Nonterminal, desc.Position, gssNode.MinWeightOfLeftPart()+sppfWeight)

		if d.gssStore.AddEdge(v, ne.Target, desc.Sppf, desc.Gss) {
			for _, w := range d.gssStore.Node(v).Popped() {
				right := d.childRightExtent(w)
				tgtState, err := d.state(ne.Target)
				if err != nil {
					return err
				}
				combined := d.sppfStore.GetParentNode(tgtState, desc.Sppf, w)
				d.enqueue(descriptor.Descriptor{State: ne.Target, Gss: desc.Gss, Sppf: sppf.NodeChild(combined), Position: right}, false)
			}
		}

		nt, err := d.rsm.Nonterminal(ne.Nonterminal)
		if err != nil {
			return err
		}
		d.enqueue(descriptor.Descriptor{State: nt.StartState(), Gss: v, Sppf: sppf.NoChild(), Position: desc.Position}, false)
	}

	return nil
}

// pop implements spec §4.3 pop(v, sppfNode, position): replay every
// outgoing GSS edge of v against the freshly completed sppfNode.
func (d *Driver) pop(v gss.NodeID, sppfNode sppf.Child, pos inputgraph.Vertex) error {
	if !d.gssStore.RecordPop(v, sppfNode) {
		return nil
	}
	node := d.gssStore.Node(v)
	for _, e := range node.Edges() {
		retState, err := d.state(e.ReturnState)
		if err != nil {
			return err
		}
		combined := d.sppfStore.GetParentNode(retState, e.Bridge, sppfNode)
		d.enqueue(descriptor.Descriptor{State: e.ReturnState, Gss: e.Target, Sppf: sppf.NodeChild(combined), Position: pos}, false)
	}
	return nil
}

func (d *Driver) childRightExtent(c sppf.Child) inputgraph.Vertex {
	switch c.Kind {
	case sppf.ChildEpsilon:
		return c.Pos
	case sppf.ChildNode:
		return d.sppfStore.Node(c.Node).RightExtent()
	default:
		return 0
	}
}

func (d *Driver) enqueue(desc descriptor.Descriptor, recoveryQueue bool) {
	d.descStore.Enqueue(desc, recoveryQueue)
}

// checkAcceptanceNode implements the spec §4.5 "Acceptance" rule for
// one candidate symbol node: n.nonterminal == startNonterminal,
// isStartVertex(n.left), isFinalVertex(n.right). A stale node
// (incremental mode, spec §4.8) never counts, even transiently.
func (d *Driver) checkAcceptanceNode(id sppf.NodeID) {
	n := d.sppfStore.Node(id)
	if !n.IsSymbol() {
		return
	}
	if n.Nonterminal() != d.rsm.StartNonterminal() {
		return
	}
	if d.sppfStore.IsStale(id) {
		return
	}
	if !d.graph.IsStartVertex(n.LeftExtent()) || !d.graph.IsFinalVertex(n.RightExtent()) {
		return
	}
	pair := Pair{Start: n.LeftExtent(), End: n.RightExtent()}
	d.result.record(pair, id, n.Weight())
}
