package registry

import (
	"context"
	"strings"

	"github.com/specialistvlad/flightgraph/internal/ctxlog"
)

// Cycle is a closed path of node names; the first and last entries are
// the same node.
type Cycle []string

// String renders the cycle as "A -> B -> A".
func (c Cycle) String() string {
	return strings.Join(c, " -> ")
}

// Validate walks every registered node and reports the dependency cycles
// declared by the catalogue. Cycles are not fatal: the resolver excludes
// the nodes involved at plan time. Each cycle is logged as a warning.
func (r *Registry) Validate(ctx context.Context) []Cycle {
	logger := ctxlog.FromContext(ctx)
	names := r.Names()

	visiting := make(map[string]int) // name -> index on path
	visited := make(map[string]bool)
	var path []string
	var cycles []Cycle

	var visit func(name string)
	visit = func(name string) {
		spec, ok := r.Lookup(name)
		if !ok {
			return
		}
		visiting[name] = len(path)
		path = append(path, name)

		for _, dep := range spec.Dependencies() {
			if idx, onPath := visiting[dep]; onPath {
				cycle := make(Cycle, 0, len(path)-idx+1)
				cycle = append(cycle, path[idx:]...)
				cycle = append(cycle, dep)
				cycles = append(cycles, cycle)
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}

		path = path[:len(path)-1]
		delete(visiting, name)
		visited[name] = true
	}

	for _, name := range names {
		if !visited[name] {
			visit(name)
		}
	}

	for _, c := range cycles {
		logger.Warn("Registry declares a circular dependency.", "cycle", c.String())
	}
	logger.Debug("Registry validation complete.", "nodes", len(names), "cycles", len(cycles))
	return cycles
}
