package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flightgraph/internal/ctxlog"
	"github.com/specialistvlad/flightgraph/internal/fsutil"
	"github.com/specialistvlad/flightgraph/internal/planner"
	"github.com/specialistvlad/flightgraph/internal/publish"
	"github.com/specialistvlad/flightgraph/internal/recording"
	"github.com/specialistvlad/flightgraph/internal/report"
	"github.com/specialistvlad/flightgraph/internal/resolver"
)

// Run plans every configured recording, writes the reports to the output
// writer and, when a publish URL is configured, pushes them to it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	paths, err := fsutil.FindFiles(a.config.RecordingPaths, ".yaml", ".yml")
	if err != nil {
		return fmt.Errorf("failed to find recordings: %w", err)
	}
	manifests := make([]*recording.Manifest, 0, len(paths))
	reqs := make([]planner.Request, 0, len(paths))
	for _, path := range paths {
		m, err := recording.Load(path)
		if err != nil {
			return err
		}
		a.logger.Debug("Recording manifest loaded.", "recording", m.Recording, "parameters", len(m.Parameters))
		manifests = append(manifests, m)
		reqs = append(reqs, planner.Request{
			Targets:   a.config.Targets,
			Available: m.Availability(),
		})
	}

	p := planner.New(a.registry,
		planner.WithWorkers(a.config.WorkerCount),
		planner.WithResolverOptions(resolver.Options{
			IncludeRoot:     a.config.IncludeRoot,
			CheckPredicates: a.config.CheckPredicates,
		}),
	)
	a.logger.Info("Planning recordings.", "recordings", len(reqs), "workers", a.config.WorkerCount)
	plans, err := p.PlanAll(ctx, reqs)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	docs := make([]*report.Document, len(plans))
	for i, plan := range plans {
		docs[i] = report.Build(manifests[i].Recording, plan)
	}
	if err := report.Write(a.outW, a.config.OutputFormat, docs...); err != nil {
		return err
	}

	if a.config.PublishURL != "" {
		pub := &publish.Publisher{
			URL:       a.config.PublishURL,
			Namespace: a.config.PublishNamespace,
			Event:     a.config.PublishEvent,
			AckEvent:  a.config.PublishAckEvent,
			Timeout:   a.config.PublishTimeout,
		}
		if err := pub.Publish(ctx, docs...); err != nil {
			return fmt.Errorf("failed to publish reports: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
