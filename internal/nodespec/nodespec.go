package nodespec

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/specialistvlad/flightgraph/internal/availability"
)

var (
	// ErrEmptyName is returned when a node is declared without a name.
	ErrEmptyName = errors.New("node name must not be empty")
	// ErrSelfDependency is returned when a node lists itself as a dependency.
	ErrSelfDependency = errors.New("node must not depend on itself")
)

// NodeSpec is the static descriptor of a registered node.
type NodeSpec struct {
	// Name is the unique display name, e.g. "Mach Max".
	Name string
	// Kind tags the output type. The scheduler ignores it.
	Kind Kind
	// Description is free text shown by reports.
	Description string

	deps       []string
	canOperate Predicate
	custom     bool
}

// New validates and normalises a node declaration. Duplicate dependencies
// are collapsed keeping the first occurrence, so declaration order is
// preserved. A nil canOperate selects AllDependencies.
func New(name string, kind Kind, deps []string, canOperate Predicate) (*NodeSpec, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	seen := sets.New[string]()
	normalised := make([]string, 0, len(deps))
	for _, d := range deps {
		if d == name {
			return nil, fmt.Errorf("%w: %q", ErrSelfDependency, name)
		}
		if d == "" {
			return nil, fmt.Errorf("node %q declares an empty dependency name", name)
		}
		if seen.Has(d) {
			continue
		}
		seen.Insert(d)
		normalised = append(normalised, d)
	}

	spec := &NodeSpec{
		Name:       name,
		Kind:       kind,
		deps:       normalised,
		canOperate: canOperate,
		custom:     canOperate != nil,
	}
	if canOperate == nil {
		spec.canOperate = AllDependencies(normalised)
	}
	return spec, nil
}

// MustNew is New for static catalogues and tests; it panics on error.
func MustNew(name string, kind Kind, deps []string, canOperate Predicate) *NodeSpec {
	spec, err := New(name, kind, deps, canOperate)
	if err != nil {
		panic(err)
	}
	return spec
}

// Dependencies returns a copy of the declared dependency names in
// declaration order.
func (n *NodeSpec) Dependencies() []string {
	out := make([]string, len(n.deps))
	copy(out, n.deps)
	return out
}

// CanOperate evaluates the node's predicate.
func (n *NodeSpec) CanOperate(available availability.Set) bool {
	return n.canOperate(available)
}

// HasCustomPredicate reports whether the node supplied its own predicate.
func (n *NodeSpec) HasCustomPredicate() bool {
	return n.custom
}
