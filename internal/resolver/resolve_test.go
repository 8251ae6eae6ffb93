package resolver

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/flightgraph/internal/availability"
	"github.com/specialistvlad/flightgraph/internal/dag"
	"github.com/specialistvlad/flightgraph/internal/nodespec"
	"github.com/specialistvlad/flightgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, cat dag.Catalogue, avail availability.Source, opts Options, targets ...string) *Result {
	t.Helper()
	ctx := context.Background()
	return Resolve(ctx, dag.Build(ctx, targets, cat), avail, opts)
}

func assertOrder(t *testing.T, want, got []string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("processing order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_LinearChain(t *testing.T) {
	res := resolve(t, testutil.FlightCatalogue(), testutil.AllRecorded(), Options{}, "Mach Max")

	assertOrder(t, []string{"Airspeed", "Altitude STD", "Mach", "Mach Max"}, res.Order)
	assert.Empty(t, res.Diagnostics)
	assert.True(t, res.Operable("Mach Max"))
}

func TestResolve_SharedSubtree(t *testing.T) {
	res := resolve(t, testutil.FlightCatalogue(), testutil.AllRecorded(), Options{},
		"Mach Max", "Mach At Flap Extension")

	assertOrder(t, []string{"Airspeed", "Altitude STD", "Mach", "Mach Max", "Flap", "Mach At Flap Extension"}, res.Order)
	testutil.RequireUnique(t, res.Order)
}

func TestResolve_OptionalDependency(t *testing.T) {
	avail := testutil.AllRecorded().Without("Groundspeed")
	res := resolve(t, testutil.FlightCatalogue(), avail, Options{}, "Descent Rate")

	assert.True(t, res.Operable("Descent Rate"))
	assert.Equal(t, Outcome{Status: Unavailable, Reason: ReasonNotRecorded}, res.Outcome("Groundspeed"))
	assertOrder(t, []string{"Airspeed", "Altitude AAL", "Descent Rate"}, res.Order)

	t.Run("required dependency missing", func(t *testing.T) {
		res := resolve(t, testutil.FlightCatalogue(), avail.Without("Altitude AAL"), Options{}, "Descent Rate")
		assert.Equal(t, Outcome{Status: Inoperable, Reason: ReasonPredicate}, res.Outcome("Descent Rate"))
		assertOrder(t, []string{"Airspeed"}, res.Order)
	})
}

func TestResolve_Cycle(t *testing.T) {
	for name, avail := range map[string]availability.Set{
		"variation recorded": availability.New("Magnetic Variation"),
		"nothing recorded":   availability.New(),
	} {
		t.Run(name, func(t *testing.T) {
			ctx, logs := testutil.LoggedContext(t)
			g := dag.Build(ctx, []string{"Heading"}, testutil.FlightCatalogue())
			res := Resolve(ctx, g, avail, Options{})

			assert.Equal(t, Outcome{Status: Inoperable, Reason: ReasonCircular}, res.Outcome("Heading"))
			assert.Equal(t, Inoperable, res.Outcome("Heading True").Status)
			assert.NotContains(t, res.Order, "Heading")
			assert.NotContains(t, res.Order, "Heading True")

			require.Len(t, res.Diagnostics, 1)
			d := res.Diagnostics[0]
			assert.Equal(t, Circular, d.Kind)
			assert.Equal(t, "Heading", d.Node)
			assert.Equal(t, []string{"Heading", "Heading True", "Heading"}, d.Cycle)
			assert.Equal(t, "circular dependency: Heading -> Heading True -> Heading", d.String())
			assert.Contains(t, logs.String(), "circular dependency")
		})
	}
}

func TestResolve_CycleWithOptionalEdge(t *testing.T) {
	cat := testutil.NewCatalogue(
		nodespec.MustNew("Heading True", nodespec.DerivedParameter,
			[]string{"Magnetic Variation", "Heading"}, nodespec.AllOf("Magnetic Variation")),
		testutil.Node("Heading", "Heading True", "Magnetic Variation"),
	)
	res := resolve(t, cat, availability.New("Magnetic Variation"), Options{}, "Heading")

	assert.True(t, res.Operable("Heading True"), "the cycle edge is optional for Heading True")
	assert.Equal(t, ReasonCircular, res.Outcome("Heading").Reason, "a node on a cycle stays inoperable")
	assertOrder(t, []string{"Magnetic Variation", "Heading True"}, res.Order)
}

func TestResolve_UnmetRequirement(t *testing.T) {
	cat := testutil.NewCatalogue(testutil.Node("Target", "X"))
	res := resolve(t, cat, availability.New(), Options{}, "Target")

	assert.Equal(t, Outcome{Status: Inoperable, Reason: ReasonPredicate}, res.Outcome("Target"))
	assert.Equal(t, Outcome{Status: Unavailable, Reason: ReasonNotRecorded}, res.Outcome("X"))
	assert.Empty(t, res.Order)
	assert.Empty(t, res.Diagnostics, "an unrecorded dependency is not a diagnostic")
}

func TestResolve_UnregisteredTarget(t *testing.T) {
	res := resolve(t, testutil.FlightCatalogue(), testutil.AllRecorded(), Options{}, "Mach", "Machh")

	assert.True(t, res.Operable("Mach"))
	assert.Equal(t, Outcome{Status: Unavailable, Reason: ReasonUnregistered}, res.Outcome("Machh"))
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, Unregistered, res.Diagnostics[0].Kind)
	assert.Contains(t, res.Diagnostics[0].Message, `"Machh"`)
}

func TestResolve_RecordedTarget(t *testing.T) {
	res := resolve(t, testutil.FlightCatalogue(), testutil.AllRecorded(), Options{}, "Airspeed")
	assertOrder(t, []string{"Airspeed"}, res.Order)
	assert.Empty(t, res.Diagnostics)
}

func TestResolve_Root(t *testing.T) {
	t.Run("never inoperable", func(t *testing.T) {
		res := resolve(t, testutil.FlightCatalogue(), availability.New(), Options{}, "Mach Max")
		assert.True(t, res.Operable(dag.RootName))
		assert.NotContains(t, res.Order, dag.RootName)
	})

	t.Run("included on request", func(t *testing.T) {
		res := resolve(t, testutil.FlightCatalogue(), testutil.AllRecorded(), Options{IncludeRoot: true}, "Mach")
		assertOrder(t, []string{"Airspeed", "Altitude STD", "Mach", dag.RootName}, res.Order)
	})
}

func TestResolve_DefaultPredicateIffAllDependencies(t *testing.T) {
	cat := testutil.FlightCatalogue()
	for _, missing := range []string{"", "Airspeed", "Altitude STD"} {
		avail := testutil.AllRecorded().Without(missing)
		res := resolve(t, cat, avail, Options{}, "Mach")
		want := res.Operable("Airspeed") && res.Operable("Altitude STD")
		assert.Equal(t, want, res.Operable("Mach"), "missing %q", missing)
	}
}

func TestResolve_Properties(t *testing.T) {
	cat := testutil.FlightCatalogue()
	targets := []string{"Mach Max", "Mach At Flap Extension", "Descent Rate", "Heading", "Heading True"}
	full := resolve(t, cat, testutil.AllRecorded(), Options{CheckPredicates: true}, targets...)

	t.Run("order is unique", func(t *testing.T) {
		testutil.RequireUnique(t, full.Order)
	})

	t.Run("operable dependencies precede dependents", func(t *testing.T) {
		for _, name := range full.Order {
			spec, ok := cat.Lookup(name)
			if !ok {
				continue
			}
			for _, dep := range spec.Dependencies() {
				if full.Operable(dep) {
					testutil.RequireBefore(t, full.Order, dep, name)
				}
			}
		}
	})

	t.Run("removing a leaf is monotone", func(t *testing.T) {
		for _, leaf := range testutil.AllRecorded().Names() {
			reduced := resolve(t, cat, testutil.AllRecorded().Without(leaf), Options{}, targets...)
			for name, o := range reduced.Outcomes {
				if o.Status == Operable {
					assert.True(t, full.Operable(name), "%q became operable after removing %q", name, leaf)
				}
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		again := resolve(t, cat, testutil.AllRecorded(), Options{}, targets...)
		assertOrder(t, full.Order, again.Order)
	})
}

func TestResolve_ImpurePredicatePanics(t *testing.T) {
	calls := 0
	flaky := func(availability.Set) bool {
		calls++
		return calls%2 == 1
	}
	cat := testutil.NewCatalogue(nodespec.MustNew("Flaky", nodespec.DerivedParameter, []string{"Airspeed"}, flaky))

	assert.PanicsWithValue(t, `resolver: canOperate of "Flaky" is not a pure function of its input`, func() {
		resolve(t, cat, availability.New("Airspeed"), Options{CheckPredicates: true}, "Flaky")
	})
}

func TestStatusAndReasonStrings(t *testing.T) {
	assert.Equal(t, "operable", Operable.String())
	assert.Equal(t, "inoperable", Inoperable.String())
	assert.Equal(t, "unavailable", Unavailable.String())
	assert.Equal(t, "unresolved", Unresolved.String())
	assert.Equal(t, "circular", ReasonCircular.String())
	assert.Equal(t, "not recorded", ReasonNotRecorded.String())
	assert.Equal(t, "", ReasonNone.String())
	assert.Equal(t, "unregistered", Unregistered.String())
}
