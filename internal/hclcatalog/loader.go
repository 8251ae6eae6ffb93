package hclcatalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/flightgraph/internal/ctxlog"
	"github.com/specialistvlad/flightgraph/internal/fsutil"
	"github.com/specialistvlad/flightgraph/internal/nodespec"
	"github.com/specialistvlad/flightgraph/internal/registry"
)

// ErrNoFiles is returned when none of the given paths holds a .hcl file.
var ErrNoFiles = errors.New("no .hcl catalogue files found")

// Loader reads HCL catalogues.
type Loader struct{}

// NewLoader creates a new HCL catalogue loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the top-level schema of a catalogue file.
type fileRoot struct {
	Nodes []*nodeBlock `hcl:"node,block"`
}

type nodeBlock struct {
	Name         string         `hcl:"name,label"`
	Kind         string         `hcl:"kind,optional"`
	Description  string         `hcl:"description,optional"`
	Dependencies []string       `hcl:"dependencies,optional"`
	CanOperate   hcl.Expression `hcl:"can_operate,optional"`
}

// Load registers every node found under paths into reg. Directories are
// walked recursively; files are read in lexical order.
func (l *Loader) Load(ctx context.Context, reg *registry.Registry, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL catalogue loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %v", ErrNoFiles, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Nodes {
			spec, err := translateNode(block)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			if err := reg.Register(spec); err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			logger.Debug("Registered node.", "node", spec.Name, "kind", spec.Kind.String(), "custom_predicate", spec.HasCustomPredicate())
		}
	}

	logger.Debug("HCL catalogue loading complete.", "nodes", reg.Len())
	return nil
}

// Module adapts a set of catalogue paths to registry.Module.
func (l *Loader) Module(ctx context.Context, paths ...string) registry.Module {
	return registry.ModuleFunc(func(r *registry.Registry) error {
		return l.Load(ctx, r, paths...)
	})
}

func translateNode(b *nodeBlock) (*nodespec.NodeSpec, error) {
	kind, err := nodespec.ParseKind(b.Kind)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", b.Name, err)
	}
	pred, err := compilePredicate(b.CanOperate, b.Dependencies)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", b.Name, err)
	}
	spec, err := nodespec.New(b.Name, kind, b.Dependencies, pred)
	if err != nil {
		return nil, err
	}
	spec.Description = b.Description
	return spec, nil
}
