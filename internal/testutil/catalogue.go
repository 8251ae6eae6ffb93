package testutil

import (
	"sort"

	"github.com/specialistvlad/flightgraph/internal/availability"
	"github.com/specialistvlad/flightgraph/internal/nodespec"
)

// Catalogue is an in-memory node catalogue keyed by name.
type Catalogue map[string]*nodespec.NodeSpec

// NewCatalogue indexes the given specs by name.
func NewCatalogue(specs ...*nodespec.NodeSpec) Catalogue {
	c := make(Catalogue, len(specs))
	for _, s := range specs {
		c[s.Name] = s
	}
	return c
}

// Lookup implements dag.Catalogue.
func (c Catalogue) Lookup(name string) (*nodespec.NodeSpec, bool) {
	s, ok := c[name]
	return s, ok
}

// Names returns the registered names sorted alphabetically.
func (c Catalogue) Names() []string {
	out := make([]string, 0, len(c))
	for n := range c {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Node is shorthand for a derived parameter with the default predicate.
func Node(name string, deps ...string) *nodespec.NodeSpec {
	return nodespec.MustNew(name, nodespec.DerivedParameter, deps, nil)
}

// FlightCatalogue is a small catalogue covering a linear chain, a shared
// subtree, an optional dependency and a declared cycle.
func FlightCatalogue() Catalogue {
	return NewCatalogue(
		Node("Mach", "Airspeed", "Altitude STD"),
		nodespec.MustNew("Mach Max", nodespec.KeyPointValue, []string{"Mach"}, nil),
		nodespec.MustNew("Mach At Flap Extension", nodespec.KeyPointValue, []string{"Mach", "Flap"}, nil),
		nodespec.MustNew("Descent Rate", nodespec.DerivedParameter,
			[]string{"Airspeed", "Groundspeed", "Altitude AAL"},
			nodespec.AllOf("Airspeed", "Altitude AAL")),
		Node("Heading True", "Magnetic Variation", "Heading"),
		Node("Heading", "Heading True", "Magnetic Variation"),
	)
}

// AllRecorded is every leaf FlightCatalogue can consume.
func AllRecorded() availability.Set {
	return availability.New("Airspeed", "Altitude STD", "Flap", "Groundspeed", "Altitude AAL", "Magnetic Variation")
}
