package nodespec

import "github.com/specialistvlad/flightgraph/internal/availability"

// Predicate decides whether a node can operate given the names of its
// dependencies that resolved operable. It must be a pure function of its
// input: the resolver memoises on the assumption that it is.
type Predicate func(available availability.Set) bool

// AllOf is operable when every name is available.
func AllOf(names ...string) Predicate {
	return func(available availability.Set) bool {
		for _, n := range names {
			if !available.Contains(n) {
				return false
			}
		}
		return true
	}
}

// AnyOf is operable when at least one name is available.
func AnyOf(names ...string) Predicate {
	return func(available availability.Set) bool {
		for _, n := range names {
			if available.Contains(n) {
				return true
			}
		}
		return false
	}
}

// And combines predicates; all must hold.
func And(preds ...Predicate) Predicate {
	return func(available availability.Set) bool {
		for _, p := range preds {
			if !p(available) {
				return false
			}
		}
		return true
	}
}

// Or combines predicates; one must hold.
func Or(preds ...Predicate) Predicate {
	return func(available availability.Set) bool {
		for _, p := range preds {
			if p(available) {
				return true
			}
		}
		return false
	}
}

// AllDependencies is the default predicate: every declared dependency must
// be available.
func AllDependencies(deps []string) Predicate {
	return AllOf(deps...)
}
