// Package spanning prunes a resolved graph down to what will execute.
package spanning

import (
	"github.com/specialistvlad/flightgraph/internal/dag"
	"github.com/specialistvlad/flightgraph/internal/resolver"
)

// Tree is the subgraph induced by operable vertices. The synthetic root is
// kept, with edges to the operable targets, so renderers have an anchor.
type Tree struct {
	names []string
	edges map[string][]string
}

// Extract filters g to the vertices res marks operable, and each vertex's
// edges to operable dependencies. It is a single pass over results that
// already exist.
func Extract(g *dag.Graph, res *resolver.Result) *Tree {
	t := &Tree{edges: make(map[string][]string)}
	for _, name := range g.Names() {
		if !res.Operable(name) {
			continue
		}
		deps := g.Dependencies(name)
		kept := make([]string, 0, len(deps))
		for _, d := range deps {
			if res.Operable(d) {
				kept = append(kept, d)
			}
		}
		t.names = append(t.names, name)
		t.edges[name] = kept
	}
	return t
}

// Has reports whether name is in the tree.
func (t *Tree) Has(name string) bool {
	_, ok := t.edges[name]
	return ok
}

// Edges returns the operable dependencies of name, in declaration order,
// or nil if name is not in the tree.
func (t *Tree) Edges(name string) []string {
	e, ok := t.edges[name]
	if !ok {
		return nil
	}
	out := make([]string, len(e))
	copy(out, e)
	return out
}

// Names returns the tree's vertices in graph discovery order.
func (t *Tree) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of vertices including the root.
func (t *Tree) Len() int {
	return len(t.names)
}
