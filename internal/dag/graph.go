package dag

import "github.com/specialistvlad/flightgraph/internal/nodespec"

// RootName identifies the synthetic root vertex. registry.Register rejects
// it as a node or dependency name.
const RootName = "<root>"

// Catalogue resolves names to registered nodes.
type Catalogue interface {
	Lookup(name string) (*nodespec.NodeSpec, bool)
}

// Vertex is a single name in the graph.
type Vertex struct {
	Name string
	// Spec is nil for the root and for leaves.
	Spec *nodespec.NodeSpec
	// Dependencies are the outgoing edges in declaration order.
	Dependencies []string
}

// IsRoot reports whether v is the synthetic root.
func (v *Vertex) IsRoot() bool {
	return v.Name == RootName
}

// IsLeaf reports whether v has no registered computation.
func (v *Vertex) IsLeaf() bool {
	return v.Spec == nil && !v.IsRoot()
}

// Graph is the expanded dependency graph of one request. It is built once
// and not modified afterwards.
type Graph struct {
	targets    []string
	vertices   map[string]*Vertex
	order      []string
	dependents map[string][]string
}

func newGraph() *Graph {
	return &Graph{
		vertices:   make(map[string]*Vertex),
		dependents: make(map[string][]string),
	}
}

// addVertex registers v and its reverse edges. Returns false if the name
// was already present.
func (g *Graph) addVertex(v *Vertex) bool {
	if _, ok := g.vertices[v.Name]; ok {
		return false
	}
	g.vertices[v.Name] = v
	g.order = append(g.order, v.Name)
	for _, dep := range v.Dependencies {
		g.dependents[dep] = append(g.dependents[dep], v.Name)
	}
	return true
}

// Root returns the synthetic root vertex.
func (g *Graph) Root() *Vertex {
	return g.vertices[RootName]
}

// Targets returns the requested targets in request order, deduplicated.
func (g *Graph) Targets() []string {
	out := make([]string, len(g.targets))
	copy(out, g.targets)
	return out
}

// Vertex returns the vertex for name.
func (g *Graph) Vertex(name string) (*Vertex, bool) {
	v, ok := g.vertices[name]
	return v, ok
}

// Names returns every vertex name, root first, in discovery order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of vertices including the root.
func (g *Graph) Len() int {
	return len(g.order)
}

// Dependencies returns the outgoing edges of name.
func (g *Graph) Dependencies(name string) []string {
	v, ok := g.vertices[name]
	if !ok {
		return nil
	}
	out := make([]string, len(v.Dependencies))
	copy(out, v.Dependencies)
	return out
}

// Dependents returns the vertices that list name as a dependency, in
// discovery order.
func (g *Graph) Dependents(name string) []string {
	deps := g.dependents[name]
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}
