package executor

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/specialistvlad/flightgraph/internal/ctxlog"
	"github.com/specialistvlad/flightgraph/internal/dag"
	"github.com/specialistvlad/flightgraph/internal/nodespec"
	"github.com/specialistvlad/flightgraph/internal/planner"
)

var tracer = otel.Tracer("flightgraph.executor")

var (
	// ErrNoDeriver means a scheduled node has no registered DeriveFunc.
	ErrNoDeriver = errors.New("no derive function registered")
	// ErrNoInputs means a node with dependencies received none of them.
	ErrNoInputs = errors.New("node cannot operate without any dependencies available")
	// ErrMissingRecorded means a scheduled leaf has no recorded value.
	ErrMissingRecorded = errors.New("recorded parameter missing")
)

// DeriveFunc computes a node's output from the outputs of its operable
// dependencies, keyed by dependency name. Optional dependencies that did
// not resolve are absent from inputs.
type DeriveFunc func(ctx context.Context, inputs map[string]any) (any, error)

// Results holds every value produced or consumed by a run.
type Results struct {
	values map[string]any
	// ByKind lists derived node names per output kind, in execution order.
	ByKind map[nodespec.Kind][]string
}

// Value returns the value for name.
func (r *Results) Value(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of values held.
func (r *Results) Len() int {
	return len(r.values)
}

// Executor maps node names to derive functions.
type Executor struct {
	derivers map[string]DeriveFunc
}

// New creates an Executor with no derive functions.
func New() *Executor {
	return &Executor{derivers: make(map[string]DeriveFunc)}
}

// Handle registers fn as the derive function for node name, replacing any
// previous one.
func (e *Executor) Handle(name string, fn DeriveFunc) {
	e.derivers[name] = fn
}

// Execute runs plan in order. recorded supplies the value of every leaf in
// the order. The first failing node stops the run.
func (e *Executor) Execute(ctx context.Context, plan *planner.Plan, recorded map[string]any) (*Results, error) {
	logger := ctxlog.FromContext(ctx).With("plan", plan.ID)
	ctx, span := tracer.Start(ctx, "executor.Execute",
		trace.WithAttributes(
			attribute.String("plan.id", plan.ID),
			attribute.Int("plan.scheduled", len(plan.Order())),
		),
	)
	defer span.End()

	res := &Results{
		values: make(map[string]any, len(plan.Order())),
		ByKind: make(map[nodespec.Kind][]string),
	}

	for _, name := range plan.Order() {
		if err := ctx.Err(); err != nil {
			logger.Warn("Context canceled, stopping execution.", "next", name)
			span.RecordError(err)
			span.SetStatus(codes.Error, "context canceled")
			return nil, err
		}
		if name == dag.RootName {
			continue
		}

		v, _ := plan.Graph.Vertex(name)
		if v == nil || v.IsLeaf() {
			value, ok := recorded[name]
			if !ok {
				err := fmt.Errorf("%w: %q", ErrMissingRecorded, name)
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			res.values[name] = value
			continue
		}

		value, err := e.executeNode(ctx, plan, v, res)
		if err != nil {
			logger.Error("Node execution failed.", "node", name, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		res.values[name] = value
		res.ByKind[v.Spec.Kind] = append(res.ByKind[v.Spec.Kind], name)
		logger.Debug("Node executed.", "node", name, "kind", v.Spec.Kind.String())
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("Execution finished.", "values", res.Len())
	return res, nil
}

func (e *Executor) executeNode(ctx context.Context, plan *planner.Plan, v *dag.Vertex, res *Results) (any, error) {
	ctx, span := tracer.Start(ctx, v.Name,
		trace.WithAttributes(
			attribute.String("node.kind", v.Spec.Kind.String()),
			attribute.StringSlice("node.dependencies", v.Dependencies),
		),
	)
	defer span.End()

	fn, ok := e.derivers[v.Name]
	if !ok {
		return nil, fmt.Errorf("%w for node %q", ErrNoDeriver, v.Name)
	}

	inputs := make(map[string]any, len(v.Dependencies))
	for _, dep := range v.Dependencies {
		if !plan.Result.Operable(dep) {
			continue
		}
		if value, ok := res.values[dep]; ok {
			inputs[dep] = value
		}
	}
	if len(v.Dependencies) > 0 && len(inputs) == 0 {
		return nil, fmt.Errorf("%w: node %q", ErrNoInputs, v.Name)
	}

	out, err := fn(ctx, inputs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("node %q: %w", v.Name, err)
	}
	span.SetStatus(codes.Ok, "")
	return out, nil
}
