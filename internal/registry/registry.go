package registry

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/flightgraph/internal/dag"
	"github.com/specialistvlad/flightgraph/internal/nodespec"
)

var (
	// ErrDuplicateNode is returned when two nodes share a name.
	ErrDuplicateNode = errors.New("node already registered")
	// ErrFrozen is returned when registering into a frozen registry.
	ErrFrozen = errors.New("registry is frozen")
	// ErrReservedName is returned when a node is named, or depends on, the
	// graph's synthetic root.
	ErrReservedName = errors.New("name is reserved for the graph root")
)

var epochs atomic.Uint64

// Module is the interface for anything that contributes nodes to a Registry.
type Module interface {
	Register(r *Registry) error
}

// ModuleFunc adapts a plain function to the Module interface.
type ModuleFunc func(r *Registry) error

// Register implements Module.
func (f ModuleFunc) Register(r *Registry) error {
	return f(r)
}

// Registry maps node names to their specs.
type Registry struct {
	mu     sync.RWMutex
	specs  map[string]*nodespec.NodeSpec
	names  []string
	frozen bool
	epoch  uint64
}

// New creates an empty, unfrozen Registry with a fresh epoch.
func New() *Registry {
	return &Registry{
		specs: make(map[string]*nodespec.NodeSpec),
		epoch: epochs.Add(1),
	}
}

// Install registers every module in order, stopping at the first error.
func (r *Registry) Install(modules ...Module) error {
	for _, m := range modules {
		if err := m.Register(r); err != nil {
			return err
		}
	}
	return nil
}

// Register adds a node spec.
func (r *Registry) Register(spec *nodespec.NodeSpec) error {
	if spec == nil {
		return errors.New("cannot register a nil node spec")
	}
	if spec.Name == dag.RootName {
		return fmt.Errorf("%w: node %q", ErrReservedName, spec.Name)
	}
	for _, d := range spec.Dependencies() {
		if d == dag.RootName {
			return fmt.Errorf("%w: node %q depends on %q", ErrReservedName, spec.Name, d)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, spec.Name)
	}
	if _, exists := r.specs[spec.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, spec.Name)
	}
	r.specs[spec.Name] = spec
	r.names = append(r.names, spec.Name)
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Lookup returns the spec registered under name. Absence is normal: the
// name may be a recorded parameter.
func (r *Registry) Lookup(name string) (*nodespec.NodeSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[name]
	return spec, ok
}

// Names returns registered node names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Epoch identifies this registry instance.
func (r *Registry) Epoch() uint64 {
	return r.epoch
}
