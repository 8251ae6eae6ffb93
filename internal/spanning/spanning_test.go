package spanning

import (
	"context"
	"testing"

	"github.com/specialistvlad/flightgraph/internal/availability"
	"github.com/specialistvlad/flightgraph/internal/dag"
	"github.com/specialistvlad/flightgraph/internal/resolver"
	"github.com/specialistvlad/flightgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func extract(cat dag.Catalogue, avail availability.Set, targets ...string) *Tree {
	ctx := context.Background()
	g := dag.Build(ctx, targets, cat)
	return Extract(g, resolver.Resolve(ctx, g, avail, resolver.Options{}))
}

func TestExtract_OptionalDependencyEdges(t *testing.T) {
	tree := extract(testutil.FlightCatalogue(), testutil.AllRecorded().Without("Groundspeed"), "Descent Rate")

	assert.True(t, tree.Has("Descent Rate"))
	assert.Equal(t, []string{"Airspeed", "Altitude AAL"}, tree.Edges("Descent Rate"))
	assert.False(t, tree.Has("Groundspeed"))
}

func TestExtract_UnmetRequirement(t *testing.T) {
	cat := testutil.NewCatalogue(testutil.Node("Target", "X"))
	tree := extract(cat, availability.New(), "Target")

	assert.False(t, tree.Has("Target"))
	assert.False(t, tree.Has("X"))
	assert.Equal(t, []string{dag.RootName}, tree.Names())
	assert.Empty(t, tree.Edges(dag.RootName))
}

func TestExtract_SharedSubtree(t *testing.T) {
	tree := extract(testutil.FlightCatalogue(), testutil.AllRecorded().Without("Flap"),
		"Mach Max", "Mach At Flap Extension")

	assert.Equal(t, []string{"Mach Max"}, tree.Edges(dag.RootName))
	assert.Equal(t, []string{"Mach"}, tree.Edges("Mach Max"))
	assert.False(t, tree.Has("Mach At Flap Extension"))
	assert.Equal(t, []string{dag.RootName, "Mach Max", "Mach", "Airspeed", "Altitude STD"}, tree.Names())
	assert.Equal(t, 5, tree.Len())
}

func TestExtract_CycleExcluded(t *testing.T) {
	tree := extract(testutil.FlightCatalogue(), testutil.AllRecorded(), "Heading")

	assert.False(t, tree.Has("Heading"))
	assert.False(t, tree.Has("Heading True"))
	assert.Nil(t, tree.Edges("Heading"))
}

func TestExtract_EdgesAreCopies(t *testing.T) {
	tree := extract(testutil.FlightCatalogue(), testutil.AllRecorded(), "Mach")
	edges := tree.Edges("Mach")
	edges[0] = "mutated"
	assert.Equal(t, []string{"Airspeed", "Altitude STD"}, tree.Edges("Mach"))
}
