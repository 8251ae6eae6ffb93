// Package nodespec describes the static shape of a registered computation:
// its display name, the ordered list of names it consumes, what kind of
// output it produces and the predicate that decides whether it can run with
// the subset of inputs that actually resolved.
//
// A NodeSpec carries no derive logic. The scheduler only ever looks at
// Dependencies and CanOperate; Kind exists for the layers that interpret
// results.
package nodespec
