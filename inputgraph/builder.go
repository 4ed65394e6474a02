package inputgraph

// Graph is also the concrete, general-purpose implementation: an
// explicit vertex/edge list supporting fork/merge shapes (spec §8
// scenario E6) and multiple start/final vertices (graph-database query
// semantics, spec §4.5 "reachabilityPairs ... supporting multi-start
// graph queries"). Built via Builder rather than mutated directly so
// that vertex/edge slices stay append-only and indices stable.
type explicitGraph struct {
	edges   [][]Edge
	starts  map[Vertex]bool
	finals  map[Vertex]bool
	startsL []Vertex
}

func (g *explicitGraph) StartVertices() []Vertex    { return g.startsL }
func (g *explicitGraph) IsStartVertex(v Vertex) bool { return g.starts[v] }
func (g *explicitGraph) IsFinalVertex(v Vertex) bool { return g.finals[v] }
func (g *explicitGraph) Edges(v Vertex) []Edge {
	if int(v) >= len(g.edges) {
		return nil
	}
	return g.edges[v]
}

// Builder constructs an explicit Graph vertex by vertex. It mirrors
// the shape of vartan's own table builders (parsing_table_builder.go):
// accumulate, then freeze via Build.
type Builder struct {
	numVertices int
	edges       map[Vertex][]Edge
	starts      map[Vertex]bool
	startOrder  []Vertex
	finals      map[Vertex]bool
}

func NewBuilder() *Builder {
	return &Builder{
		edges:  map[Vertex][]Edge{},
		starts: map[Vertex]bool{},
		finals: map[Vertex]bool{},
	}
}

// AddVertex allocates and returns a new vertex.
func (b *Builder) AddVertex() Vertex {
	v := Vertex(b.numVertices)
	b.numVertices++
	return v
}

func (b *Builder) AddEdge(from Vertex, label Label, to Vertex) {
	b.edges[from] = append(b.edges[from], Edge{Label: label, Head: to})
}

func (b *Builder) SetStart(v Vertex) {
	if !b.starts[v] {
		b.starts[v] = true
		b.startOrder = append(b.startOrder, v)
	}
}
func (b *Builder) SetFinal(v Vertex) { b.finals[v] = true }

func (b *Builder) Build() Graph {
	g := &explicitGraph{
		edges:  make([][]Edge, b.numVertices),
		starts: map[Vertex]bool{},
		finals: map[Vertex]bool{},
	}
	for v, es := range b.edges {
		g.edges[v] = es
	}
	for _, v := range b.startOrder {
		g.starts[v] = true
	}
	g.startsL = append(g.startsL, b.startOrder...)
	for v := range b.finals {
		g.finals[v] = true
	}
	return g
}
