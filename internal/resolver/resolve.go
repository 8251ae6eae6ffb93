package resolver

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flightgraph/internal/availability"
	"github.com/specialistvlad/flightgraph/internal/ctxlog"
	"github.com/specialistvlad/flightgraph/internal/dag"
	"github.com/specialistvlad/flightgraph/internal/nodespec"
)

// state is the per-pass working set. It is never shared between passes.
type state struct {
	graph     *dag.Graph
	available availability.Source
	opts      Options

	memo   map[string]Outcome
	path   []string
	onPath map[string]int
	result *Result
}

// Resolve evaluates every vertex reachable from the graph root against
// available.
func Resolve(ctx context.Context, g *dag.Graph, available availability.Source, opts Options) *Result {
	logger := ctxlog.FromContext(ctx)

	s := &state{
		graph:     g,
		available: available,
		opts:      opts,
		memo:      make(map[string]Outcome, g.Len()),
		onPath:    make(map[string]int),
		result:    &Result{},
	}

	s.visit(dag.RootName)

	for _, t := range g.Targets() {
		v, _ := g.Vertex(t)
		if v.IsLeaf() && s.memo[t].Status == Unavailable {
			s.memo[t] = Outcome{Status: Unavailable, Reason: ReasonUnregistered}
			s.result.Diagnostics = append(s.result.Diagnostics, Diagnostic{
				Kind:    Unregistered,
				Node:    t,
				Message: unregisteredMessage(t),
			})
		}
	}

	s.result.Outcomes = s.memo
	for _, d := range s.result.Diagnostics {
		logger.Warn("Resolution diagnostic.", "kind", d.Kind.String(), "node", d.Node, "message", d.Message)
	}
	logger.Debug("Resolution complete.",
		"scheduled", len(s.result.Order),
		"inoperable", s.result.Count(Inoperable),
		"unavailable", s.result.Count(Unavailable),
	)
	return s.result
}

func (s *state) visit(name string) Status {
	if o, ok := s.memo[name]; ok {
		return o.Status
	}

	if idx, ok := s.onPath[name]; ok {
		cycle := make([]string, 0, len(s.path)-idx+1)
		cycle = append(cycle, s.path[idx:]...)
		cycle = append(cycle, name)
		s.memo[name] = Outcome{Status: Inoperable, Reason: ReasonCircular}
		s.result.Diagnostics = append(s.result.Diagnostics, Diagnostic{
			Kind:    Circular,
			Node:    name,
			Cycle:   cycle,
			Message: circularMessage(cycle),
		})
		return Inoperable
	}

	v, ok := s.graph.Vertex(name)
	if !ok || v.IsLeaf() {
		if s.available.Contains(name) {
			return s.accept(name)
		}
		s.memo[name] = Outcome{Status: Unavailable, Reason: ReasonNotRecorded}
		return Unavailable
	}

	s.onPath[name] = len(s.path)
	s.path = append(s.path, name)

	operableDeps := availability.New()
	for _, dep := range v.Dependencies {
		if s.visit(dep) == Operable {
			operableDeps.Add(dep)
		}
	}

	s.path = s.path[:len(s.path)-1]
	delete(s.onPath, name)

	if v.IsRoot() {
		s.memo[name] = Outcome{Status: Operable}
		if s.opts.IncludeRoot {
			s.result.Order = append(s.result.Order, name)
		}
		return Operable
	}

	// A cycle closed on this node while its dependencies were visited.
	if o, ok := s.memo[name]; ok {
		return o.Status
	}

	if !s.canOperate(v.Spec, operableDeps) {
		s.memo[name] = Outcome{Status: Inoperable, Reason: ReasonPredicate}
		return Inoperable
	}
	return s.accept(name)
}

func (s *state) accept(name string) Status {
	s.memo[name] = Outcome{Status: Operable}
	s.result.Order = append(s.result.Order, name)
	return Operable
}

func (s *state) canOperate(spec *nodespec.NodeSpec, deps availability.Set) bool {
	ok := spec.CanOperate(deps)
	if s.opts.CheckPredicates && spec.CanOperate(deps.Without()) != ok {
		panic(fmt.Sprintf("resolver: canOperate of %q is not a pure function of its input", spec.Name))
	}
	return ok
}
