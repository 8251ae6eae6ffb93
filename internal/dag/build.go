package dag

import (
	"context"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/specialistvlad/flightgraph/internal/ctxlog"
)

// Build expands the graph reachable from targets.
func Build(ctx context.Context, targets []string, catalogue Catalogue) *Graph {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "targets", len(targets))

	g := newGraph()
	g.targets = dedup(targets)
	g.addVertex(&Vertex{Name: RootName, Dependencies: g.targets})

	var expand func(name string)
	expand = func(name string) {
		if _, seen := g.vertices[name]; seen {
			return
		}
		spec, ok := catalogue.Lookup(name)
		if !ok {
			g.addVertex(&Vertex{Name: name})
			return
		}
		v := &Vertex{Name: name, Spec: spec, Dependencies: spec.Dependencies()}
		// The vertex is added before its dependencies so a mutual
		// reference finds it and stops.
		g.addVertex(v)
		for _, dep := range v.Dependencies {
			expand(dep)
		}
	}

	for _, t := range g.targets {
		expand(t)
	}

	logger.Debug("Build: Graph construction complete.", "node_count", g.Len())
	return g
}

func dedup(names []string) []string {
	seen := sets.New(RootName)
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen.Has(n) {
			continue
		}
		seen.Insert(n)
		out = append(out, n)
	}
	return out
}
