package nodespec

import (
	"testing"

	"github.com/specialistvlad/flightgraph/internal/availability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Normalises(t *testing.T) {
	spec, err := New("Mach", DerivedParameter, []string{"Airspeed", "Altitude STD", "Airspeed"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Airspeed", "Altitude STD"}, spec.Dependencies())
	assert.False(t, spec.HasCustomPredicate())
}

func TestNew_Rejects(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := New("", DerivedParameter, nil, nil)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("self dependency", func(t *testing.T) {
		_, err := New("Heading", DerivedParameter, []string{"Heading True", "Heading"}, nil)
		assert.ErrorIs(t, err, ErrSelfDependency)
	})

	t.Run("empty dependency", func(t *testing.T) {
		_, err := New("Heading", DerivedParameter, []string{""}, nil)
		assert.ErrorContains(t, err, "empty dependency")
	})

	t.Run("must new panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNew("", DerivedParameter, nil, nil) })
	})
}

func TestDependencies_ReturnsCopy(t *testing.T) {
	spec := MustNew("Mach", DerivedParameter, []string{"Airspeed"}, nil)
	deps := spec.Dependencies()
	deps[0] = "mutated"
	assert.Equal(t, []string{"Airspeed"}, spec.Dependencies())
}

func TestCanOperate_Default(t *testing.T) {
	spec := MustNew("Mach", DerivedParameter, []string{"Airspeed", "Altitude STD"}, nil)

	assert.True(t, spec.CanOperate(availability.New("Airspeed", "Altitude STD")))
	assert.False(t, spec.CanOperate(availability.New("Airspeed")))
}

func TestCanOperate_NoDependencies(t *testing.T) {
	spec := MustNew("Constant", Attribute, nil, nil)
	assert.True(t, spec.CanOperate(availability.New()))
}

func TestPredicates(t *testing.T) {
	avail := availability.New("Airborne", "Flap Lever (Synthetic)")

	cases := []struct {
		name string
		pred Predicate
		want bool
	}{
		{"all of satisfied", AllOf("Airborne"), true},
		{"all of missing", AllOf("Airborne", "Flap Lever"), false},
		{"any of satisfied", AnyOf("Flap Lever", "Flap Lever (Synthetic)"), true},
		{"any of empty", AnyOf(), false},
		{"and", And(AllOf("Airborne"), AnyOf("Flap Lever", "Flap Lever (Synthetic)")), true},
		{"and failing", And(AllOf("Airborne"), AllOf("Go Around")), false},
		{"or", Or(AllOf("Go Around"), AllOf("Airborne")), true},
		{"or failing", Or(AllOf("Go Around"), AllOf("Flap Lever")), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.pred(avail))
		})
	}
}

func TestParseKind(t *testing.T) {
	for k, name := range kindNames {
		got, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.Equal(t, name, k.String())
	}

	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, DerivedParameter, k)

	_, err = ParseKind("helicopter")
	assert.ErrorContains(t, err, "unknown node kind")

	assert.Equal(t, "Kind(42)", Kind(42).String())
}
