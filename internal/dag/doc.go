// Package dag builds the dependency graph for one resolution request.
//
// The graph is rooted at a synthetic node whose edges point at the
// requested targets. Every other edge comes from a node's declared
// dependencies as found in the Catalogue. Names the catalogue does not know
// become leaves; whether a leaf is usable is decided later against the
// recording, not here.
//
// Expansion visits each name once, so mutually dependent nodes do not make
// Build recurse forever. Detecting those cycles is the resolver's job.
package dag
