package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/flightgraph/internal/availability"
	"github.com/specialistvlad/flightgraph/internal/ctxlog"
	"github.com/specialistvlad/flightgraph/internal/dag"
	"github.com/specialistvlad/flightgraph/internal/resolver"
	"github.com/specialistvlad/flightgraph/internal/spanning"
)

var (
	tracer = otel.Tracer("flightgraph.planner")
	meter  = otel.Meter("flightgraph.planner")
)

// ErrResolvePanicked wraps a panic raised while resolving, usually from a
// node predicate.
var ErrResolvePanicked = errors.New("resolution panicked")

// DefaultWorkers bounds PlanAll when WithWorkers is not given.
const DefaultWorkers = 4

// Lister is implemented by catalogues that can enumerate their nodes. A
// request without targets asks for every listed node.
type Lister interface {
	Names() []string
}

// Request asks for a plan over one recording.
type Request struct {
	// ID labels the plan in logs and reports. Generated when empty.
	ID string
	// Targets are the requested outputs, in priority order.
	Targets []string
	// Available is the set of recorded parameters. Nil means nothing was
	// recorded.
	Available availability.Source
}

// Plan is the outcome of one request.
type Plan struct {
	ID      string
	Targets []string
	Graph   *dag.Graph
	Result  *resolver.Result
	Tree    *spanning.Tree
}

// Order returns the processing order.
func (p *Plan) Order() []string {
	return p.Result.Order
}

// Diagnostics returns the findings collected while resolving.
func (p *Plan) Diagnostics() []resolver.Diagnostic {
	return p.Result.Diagnostics
}

// Option configures a Planner.
type Option func(*Planner)

// WithResolverOptions sets the options used for every pass.
func WithResolverOptions(opts resolver.Options) Option {
	return func(p *Planner) { p.opts = opts }
}

// WithWorkers bounds the number of concurrent plans in PlanAll.
func WithWorkers(n int) Option {
	return func(p *Planner) {
		if n < 1 {
			n = 1
		}
		p.workers = n
	}
}

// Planner resolves requests against a catalogue. It is safe for concurrent
// use provided the catalogue is not modified.
type Planner struct {
	catalogue dag.Catalogue
	opts      resolver.Options
	workers   int

	metricsOnce sync.Once
	plans       metric.Int64Counter
	scheduled   metric.Int64Counter
	diagnostics metric.Int64Counter
	duration    metric.Float64Histogram
}

// New creates a Planner over catalogue.
func New(catalogue dag.Catalogue, opts ...Option) *Planner {
	p := &Planner{catalogue: catalogue, workers: DefaultWorkers}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Planner) initMetrics(logger *slog.Logger) {
	p.metricsOnce.Do(func() {
		var failed []string
		var err error

		p.plans, err = meter.Int64Counter("flightgraph_plans_total",
			metric.WithDescription("Number of resolved plans"))
		if err != nil {
			failed = append(failed, "plans: "+err.Error())
		}
		p.scheduled, err = meter.Int64Counter("flightgraph_scheduled_nodes_total",
			metric.WithDescription("Number of names placed in a processing order"))
		if err != nil {
			failed = append(failed, "scheduled: "+err.Error())
		}
		p.diagnostics, err = meter.Int64Counter("flightgraph_diagnostics_total",
			metric.WithDescription("Number of resolution diagnostics by kind"))
		if err != nil {
			failed = append(failed, "diagnostics: "+err.Error())
		}
		p.duration, err = meter.Float64Histogram("flightgraph_plan_duration_seconds",
			metric.WithDescription("Time spent building and resolving a plan"),
			metric.WithUnit("s"))
		if err != nil {
			failed = append(failed, "duration: "+err.Error())
		}

		if len(failed) > 0 {
			logger.Error("Failed to initialize some planner metrics.", "errors", failed)
		}
	})
}

// Plan builds, resolves and prunes the graph for req. It fails only when
// ctx is already done or a predicate panics, including the impurity check
// enabled by resolver.Options.CheckPredicates.
func (p *Planner) Plan(ctx context.Context, req Request) (plan *Plan, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	targets := req.Targets
	if len(targets) == 0 {
		if l, ok := p.catalogue.(Lister); ok {
			targets = l.Names()
		}
	}
	available := req.Available
	if available == nil {
		available = availability.New()
	}

	ctx = ctxlog.With(ctx, "plan", id)
	logger := ctxlog.FromContext(ctx)
	p.initMetrics(logger)

	ctx, span := tracer.Start(ctx, "planner.Plan",
		trace.WithAttributes(
			attribute.String("plan.id", id),
			attribute.Int("plan.targets", len(targets)),
		),
	)
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			plan = nil
			err = fmt.Errorf("%w: %v", ErrResolvePanicked, r)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Error("Plan resolution panicked.", "error", err)
		}
	}()

	start := time.Now()
	g := dag.Build(ctx, targets, p.catalogue)
	res := resolver.Resolve(ctx, g, available, p.opts)
	tree := spanning.Extract(g, res)
	elapsed := time.Since(start)

	for _, d := range res.Diagnostics {
		span.AddEvent("diagnostic", trace.WithAttributes(
			attribute.String("kind", d.Kind.String()),
			attribute.String("node", d.Node),
			attribute.StringSlice("cycle", d.Cycle),
		))
		if p.diagnostics != nil {
			p.diagnostics.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", d.Kind.String())))
		}
	}
	if p.plans != nil {
		p.plans.Add(ctx, 1)
	}
	if p.scheduled != nil {
		p.scheduled.Add(ctx, int64(len(res.Order)))
	}
	if p.duration != nil {
		p.duration.Record(ctx, elapsed.Seconds())
	}
	span.SetAttributes(
		attribute.Int("plan.vertices", g.Len()),
		attribute.Int("plan.scheduled", len(res.Order)),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("Plan resolved.",
		"targets", len(targets),
		"vertices", g.Len(),
		"scheduled", len(res.Order),
		"diagnostics", len(res.Diagnostics),
		"duration", elapsed,
	)

	return &Plan{
		ID:      id,
		Targets: g.Targets(),
		Graph:   g,
		Result:  res,
		Tree:    tree,
	}, nil
}

// PlanAll resolves every request, at most WithWorkers at a time. Plans are
// returned in request order.
func (p *Planner) PlanAll(ctx context.Context, reqs []Request) ([]*Plan, error) {
	ctx, span := tracer.Start(ctx, "planner.PlanAll",
		trace.WithAttributes(attribute.Int("plan.requests", len(reqs))))
	defer span.End()

	plans := make([]*Plan, len(reqs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, req := range reqs {
		g.Go(func() error {
			plan, err := p.Plan(gCtx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			plans[i] = plan
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return plans, nil
}
