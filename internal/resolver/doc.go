// Package resolver decides which vertices of a dag.Graph can run and in what
// order.
//
// Resolution is a memoised depth-first walk from the graph root. Leaves are
// operable when the recording contains them. A registered node is evaluated
// after all of its dependencies, in declaration order, and is handed the
// subset of them that turned out operable; its predicate decides the rest.
// Operable vertices are appended in post-order, which makes the resulting
// Order a topological order of the operable subgraph.
//
// A name met again while it is still on the active path closes a cycle. The
// name is forced inoperable and a Circular diagnostic is recorded; the walk
// continues with the remaining dependencies. Nothing in this package
// returns an error: every condition is recovered locally and reported
// through Outcomes and Diagnostics.
//
// A pass is single-threaded and owns all of its state. Independent passes
// may run concurrently as long as the catalogue and the availability source
// are not mutated.
package resolver
