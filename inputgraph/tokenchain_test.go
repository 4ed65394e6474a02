package inputgraph

import (
	"testing"

	"github.com/nihei9/rsmgll/symbol"
)

func TestTokenChainEdges(t *testing.T) {
	a, b := symbol.Terminal(0), symbol.Terminal(1)
	c := NewTokenChain([]symbol.Terminal{a, b})

	if !c.IsStartVertex(0) || c.IsStartVertex(1) {
		t.Errorf("start vertex flags wrong")
	}
	if c.IsFinalVertex(0) || c.IsFinalVertex(1) || !c.IsFinalVertex(2) {
		t.Errorf("final vertex flags wrong")
	}

	e0 := c.Edges(0)
	if len(e0) != 1 || e0[0].Head != 1 || e0[0].Label.Terminal.Terminal != a {
		t.Errorf("Edges(0) = %+v", e0)
	}
	e2 := c.Edges(2)
	if len(e2) != 0 {
		t.Errorf("Edges(2) = %+v, want none past the last token", e2)
	}

	tok, ok := c.TerminalAt(1)
	if !ok || tok != b {
		t.Errorf("TerminalAt(1) = (%v, %v), want (%v, true)", tok, ok, b)
	}
	if _, ok := c.TerminalAt(2); ok {
		t.Error("TerminalAt(2) should report ok=false")
	}
}

type fixedExpected []symbol.Terminal

func (f fixedExpected) ExpectedTerminals() []symbol.Terminal { return f }

func TestRecoverableTokenChainSyntheticEdges(t *testing.T) {
	a := symbol.Terminal(0)
	c := NewRecoverableTokenChain([]symbol.Terminal{a})

	edges := c.SyntheticEdges(0, fixedExpected{a})
	if len(edges) != 2 {
		t.Fatalf("got %d synthetic edges, want 2 (delete + insert)", len(edges))
	}

	del := edges[0]
	if !del.Label.IsEpsilon() || del.Head != 1 || del.Weight != 1 {
		t.Errorf("delete-token edge = %+v", del)
	}

	ins := edges[1]
	if ins.Label.IsEpsilon() || ins.Label.Terminal.Terminal != a || ins.Head != 0 || ins.Weight != 1 {
		t.Errorf("insert-token edge = %+v, want a self-loop terminal edge on %v", ins, a)
	}

	// Past the end of the chain, only insertion remains (nothing left to delete).
	edges = c.SyntheticEdges(1, fixedExpected{a})
	if len(edges) != 1 {
		t.Fatalf("got %d synthetic edges at the final vertex, want 1 (insert only)", len(edges))
	}
}
