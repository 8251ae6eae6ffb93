package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/flightgraph/internal/ctxlog"
	"github.com/specialistvlad/flightgraph/internal/hclcatalog"
	"github.com/specialistvlad/flightgraph/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	cycles   []registry.Cycle
}

// NewApp is the constructor for the main application. It loads the
// catalogue into a fresh registry and freezes it. Extra modules are
// installed after the catalogue files, so they may not redeclare a node.
// A catalogue that cannot be loaded is a fatal startup error and panics.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	loader := hclcatalog.NewLoader()
	all := append([]registry.Module{loader.Module(ctx, cfg.CatalogPaths...)}, modules...)
	if err := reg.Install(all...); err != nil {
		panic(fmt.Errorf("failed to load catalogue: %w", err))
	}
	reg.Freeze()
	logger.Debug("Catalogue registered and frozen.", "nodes", reg.Len(), "epoch", reg.Epoch())

	// Cycles are reported here and again, per plan, by the resolver.
	cycles := reg.Validate(ctx)
	logger.Debug("Registry validation finished.", "cycles", len(cycles))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		cycles:   cycles,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Cycles returns the circular dependencies declared by the catalogue.
func (a *App) Cycles() []registry.Cycle {
	return a.cycles
}
