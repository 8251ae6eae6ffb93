// Package availability models the parameters physically present in a flight
// recording. It is read-only for the duration of a resolution pass.
package availability

import "k8s.io/apimachinery/pkg/util/sets"

// Source answers whether a parameter was recorded.
type Source interface {
	Contains(name string) bool
}

// Set is a Source backed by sets.Set. The zero value is empty and usable;
// Add initialises it on first use.
type Set struct {
	names sets.Set[string]
}

// New returns a set holding the given names.
func New(names ...string) Set {
	return Set{names: sets.New(names...)}
}

// Contains implements Source.
func (s Set) Contains(name string) bool {
	return s.names.Has(name)
}

// Add inserts name into the set.
func (s *Set) Add(name string) {
	if s.names == nil {
		s.names = sets.New[string]()
	}
	s.names.Insert(name)
}

// Len returns the number of names in the set.
func (s Set) Len() int {
	return s.names.Len()
}

// Names returns the members sorted alphabetically.
func (s Set) Names() []string {
	return sets.List(s.names)
}

// Without returns a copy of the set with the given names removed.
func (s Set) Without(names ...string) Set {
	return Set{names: s.names.Clone().Delete(names...)}
}
