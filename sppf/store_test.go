package sppf

import (
	"testing"

	"github.com/nihei9/rsmgll/inputgraph"
	"github.com/nihei9/rsmgll/rsm"
	"github.com/nihei9/rsmgll/symbol"
)

// buildTwoStateRSM returns a start-nonterminal S with a single
// intermediate state q0 --a--> q1 (final), enough to exercise both
// GetParentNode branches (intermediate vs. symbol).
func buildTwoStateRSM(t *testing.T) (*rsm.RSM, rsm.StateID, rsm.StateID, symbol.Terminal) {
	t.Helper()
	table := symbol.NewTable()
	b := rsm.NewBuilder(table)
	s := b.Nonterminal("S")
	b.SetStartNonterminal(s)
	q0 := b.AddState(s, true, false)
	q1 := b.AddState(s, false, true)
	a := table.InternTerminal("a")
	b.AddTerminalEdge(q0, a, q1)
	r, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return r, q0, q1, a
}

func TestGetOrCreateTerminalNodeDedup(t *testing.T) {
	store := NewStore()
	a := symbol.Some(symbol.Terminal(1))

	id1 := store.GetOrCreateTerminalNode(a, 0, 1, 0)
	id2 := store.GetOrCreateTerminalNode(a, 0, 1, 0)
	if id1 != id2 {
		t.Errorf("identical terminal tuples produced different nodes: %v, %v", id1, id2)
	}

	id3 := store.GetOrCreateTerminalNode(a, 0, 1, 1)
	if id3 == id1 {
		t.Error("a different weight should be a different terminal node identity")
	}
}

func TestGetEpsilonNodeSingleton(t *testing.T) {
	store := NewStore()
	id1 := store.GetEpsilonNode(5)
	id2 := store.GetEpsilonNode(5)
	id3 := store.GetEpsilonNode(6)
	if id1 != id2 {
		t.Error("GetEpsilonNode(5) should be a singleton")
	}
	if id3 == id1 {
		t.Error("GetEpsilonNode(6) should differ from GetEpsilonNode(5)")
	}
}

func TestGetParentNodeIntermediateThenSymbol(t *testing.T) {
	r, q0, q1, a := buildTwoStateRSM(t)
	store := NewStore()

	term := store.GetOrCreateTerminalNode(symbol.Some(a), 0, 1, 0)
	mid := store.GetParentNode(r.State(q0), NoChild(), NodeChild(term))
	n := store.Node(mid)
	if !n.IsIntermediate() {
		t.Fatalf("GetParentNode at a non-final state should build an intermediate node, got kind of %+v", n)
	}
	if n.LeftExtent() != 0 || n.RightExtent() != 1 {
		t.Errorf("intermediate node extents = [%v,%v], want [0,1]", n.LeftExtent(), n.RightExtent())
	}

	final := store.GetParentNode(r.State(q1), NodeChild(mid), EpsilonChild(1))
	fn := store.Node(final)
	if !fn.IsSymbol() {
		t.Fatalf("GetParentNode at a final state should build a symbol node, got kind of %+v", fn)
	}
	if fn.Nonterminal() != r.State(q1).Nonterminal() {
		t.Errorf("symbol node nonterminal = %v, want %v", fn.Nonterminal(), r.State(q1).Nonterminal())
	}
}

func TestGetParentNodeDedupsPackedChildren(t *testing.T) {
	r, q0, _, a := buildTwoStateRSM(t)
	store := NewStore()

	term := store.GetOrCreateTerminalNode(symbol.Some(a), 0, 1, 0)
	mid1 := store.GetParentNode(r.State(q0), NoChild(), NodeChild(term))
	mid2 := store.GetParentNode(r.State(q0), NoChild(), NodeChild(term))
	if mid1 != mid2 {
		t.Fatalf("identical (state, left, right) combinations should dedup to one node")
	}
	if got := len(store.Node(mid1).PackedChildren()); got != 1 {
		t.Errorf("PackedChildren() has %d entries after two identical calls, want 1", got)
	}
}

func TestGetParentNodeAlwaysBuildsAPackedNode(t *testing.T) {
	r, _, q1, _ := buildTwoStateRSM(t)
	store := NewStore()

	// leftChild absent: per spec this still goes through a packed node,
	// not a direct alias of rightChild, so weight bookkeeping is uniform.
	final := store.GetParentNode(r.State(q1), NoChild(), EpsilonChild(0))
	n := store.Node(final)
	if len(n.PackedChildren()) != 1 {
		t.Fatalf("got %d packed children, want exactly 1", len(n.PackedChildren()))
	}
	packed := store.Node(n.PackedChildren()[0])
	if !packed.IsPacked() {
		t.Errorf("expected a packed node, got kind of %+v", packed)
	}
	if packed.LeftChild().Kind != ChildNone {
		t.Errorf("LeftChild().Kind = %v, want ChildNone", packed.LeftChild().Kind)
	}
}

func TestPackedNodeWeightIsMinAndFiresOnDecrease(t *testing.T) {
	r, _, q1, _ := buildTwoStateRSM(t)
	store := NewStore()

	var changes []WeightChange
	store.OnWeightDecrease = func(c WeightChange) { changes = append(changes, c) }

	highTerm := store.GetOrCreateTerminalNode(symbol.None(), 0, 1, 5)
	lowTerm := store.GetOrCreateTerminalNode(symbol.None(), 0, 1, 1)

	sym := store.GetParentNode(r.State(q1), NoChild(), NodeChild(highTerm))
	if w := store.Node(sym).Weight(); w != 5 {
		t.Fatalf("after first (high-weight) derivation, weight = %v, want 5", w)
	}
	if len(changes) != 0 {
		t.Fatalf("no OnWeightDecrease should fire for the first derivation, got %v", changes)
	}

	store.GetParentNode(r.State(q1), NoChild(), NodeChild(lowTerm))
	if w := store.Node(sym).Weight(); w != 1 {
		t.Fatalf("after a lower-weight derivation, weight = %v, want 1", w)
	}
	if len(changes) != 1 || changes[0].Node != sym || changes[0].OldWeight != 5 || changes[0].NewWeight != 1 {
		t.Fatalf("OnWeightDecrease = %+v, want one change (sym, 5->1)", changes)
	}
}

func TestInvalidateMarksTouchingNodesStale(t *testing.T) {
	r, _, q1, _ := buildTwoStateRSM(t)
	store := NewStore()

	term := store.GetOrCreateTerminalNode(symbol.None(), 0, 1, 0)
	sym := store.GetParentNode(r.State(q1), NoChild(), NodeChild(term))

	if store.IsStale(sym) {
		t.Fatal("freshly built node should not start stale")
	}

	store.Invalidate(inputgraph.Vertex(1), sym)
	if !store.IsStale(sym) {
		t.Error("Invalidate(1, sym) should mark sym stale: its right extent is 1")
	}

	store.ClearStale()
	if store.IsStale(sym) {
		t.Error("ClearStale should drop every staleness mark")
	}
}

func TestInvalidateDoesNotTouchUnrelatedNode(t *testing.T) {
	r, _, q1, _ := buildTwoStateRSM(t)
	store := NewStore()

	term := store.GetOrCreateTerminalNode(symbol.None(), 10, 11, 0)
	sym := store.GetParentNode(r.State(q1), NoChild(), NodeChild(term))

	store.Invalidate(inputgraph.Vertex(999), sym)
	if store.IsStale(sym) {
		t.Error("Invalidate at an unrelated vertex should not mark sym stale")
	}
}
