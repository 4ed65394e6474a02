package gss

import (
	"testing"

	"github.com/nihei9/rsmgll/sppf"
	"github.com/nihei9/rsmgll/symbol"
)

func TestGetOrCreateDedupsAndLowersWeight(t *testing.T) {
	s := NewStore()
	nt := symbol.Nonterminal(0)

	id1, isNew1 := s.GetOrCreate(nt, 3, 5)
	if !isNew1 {
		t.Fatal("first GetOrCreate should report isNew=true")
	}
	id2, isNew2 := s.GetOrCreate(nt, 3, 2)
	if isNew2 {
		t.Error("re-creating (nt, 3) should report isNew=false")
	}
	if id1 != id2 {
		t.Fatalf("GetOrCreate(nt, 3, ...) returned different IDs: %v, %v", id1, id2)
	}
	if w := s.Node(id1).MinWeightOfLeftPart(); w != 2 {
		t.Errorf("minWeightOfLeftPart = %v, want 2 (the lower of 5 and 2)", w)
	}

	s.GetOrCreate(nt, 3, 9)
	if w := s.Node(id1).MinWeightOfLeftPart(); w != 2 {
		t.Errorf("minWeightOfLeftPart = %v after a higher weight re-creation, want unchanged 2", w)
	}
}

func TestGetOrCreateDistinguishesPosition(t *testing.T) {
	s := NewStore()
	nt := symbol.Nonterminal(0)
	id0, _ := s.GetOrCreate(nt, 0, 0)
	id1, _ := s.GetOrCreate(nt, 1, 0)
	if id0 == id1 {
		t.Error("nodes at different positions must not collide")
	}
}

func TestAddEdgeDedups(t *testing.T) {
	s := NewStore()
	nt := symbol.Nonterminal(0)
	from, _ := s.GetOrCreate(nt, 0, 0)
	to, _ := s.GetOrCreate(nt, 1, 0)

	if !s.AddEdge(from, 7, sppf.NoChild(), to) {
		t.Fatal("first AddEdge should be new")
	}
	if s.AddEdge(from, 7, sppf.NoChild(), to) {
		t.Error("identical AddEdge call should not be new")
	}
	if !s.AddEdge(from, 8, sppf.NoChild(), to) {
		t.Error("a different return state should be a distinct edge")
	}
	if got := len(s.Node(from).Edges()); got != 2 {
		t.Errorf("got %d edges, want 2", got)
	}
}

func TestRecordPopDedupsAndPreservesOrder(t *testing.T) {
	s := NewStore()
	nt := symbol.Nonterminal(0)
	v, _ := s.GetOrCreate(nt, 0, 0)

	c1 := sppf.NodeChild(1)
	c2 := sppf.NodeChild(2)

	if !s.RecordPop(v, c1) {
		t.Fatal("first RecordPop should be new")
	}
	if s.RecordPop(v, c1) {
		t.Error("duplicate RecordPop should not be new")
	}
	if !s.RecordPop(v, c2) {
		t.Fatal("second distinct RecordPop should be new")
	}

	popped := s.Node(v).Popped()
	if len(popped) != 2 || popped[0] != c1 || popped[1] != c2 {
		t.Errorf("Popped() = %v, want [%v %v] in insertion order", popped, c1, c2)
	}
}
