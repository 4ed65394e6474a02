package inputgraph

import "testing"

func TestBuilderStartOrderIsDeterministic(t *testing.T) {
	b := NewBuilder()
	v0 := b.AddVertex()
	v1 := b.AddVertex()
	v2 := b.AddVertex()

	// Registered out of numeric order, and v1 twice.
	b.SetStart(v2)
	b.SetStart(v1)
	b.SetStart(v0)
	b.SetStart(v1)

	g := b.Build()
	starts := g.StartVertices()
	want := []Vertex{v2, v1, v0}
	if len(starts) != len(want) {
		t.Fatalf("StartVertices() = %v, want %v", starts, want)
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Errorf("StartVertices()[%d] = %v, want %v", i, starts[i], want[i])
		}
	}
}

func TestBuilderEdgesAndFinals(t *testing.T) {
	b := NewBuilder()
	v0 := b.AddVertex()
	v1 := b.AddVertex()
	b.SetStart(v0)
	b.SetFinal(v1)
	b.AddEdge(v0, EpsilonLabel(), v1)

	g := b.Build()
	if !g.IsStartVertex(v0) || g.IsStartVertex(v1) {
		t.Errorf("start vertex flags wrong")
	}
	if !g.IsFinalVertex(v1) || g.IsFinalVertex(v0) {
		t.Errorf("final vertex flags wrong")
	}
	edges := g.Edges(v0)
	if len(edges) != 1 || edges[0].Head != v1 || !edges[0].Label.IsEpsilon() {
		t.Errorf("Edges(v0) = %+v, want one epsilon edge to v1", edges)
	}
	if edges := g.Edges(v1); len(edges) != 0 {
		t.Errorf("Edges(v1) = %+v, want none", edges)
	}
}
