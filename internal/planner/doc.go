// Package planner is the entry point of the scheduling engine. A Planner
// holds a read-only catalogue and turns a Request (targets plus the
// parameters present in one recording) into a Plan: the expanded graph, the
// per-node outcomes, the processing order and the pruned spanning tree.
//
// Plans are independent of each other. PlanAll resolves many requests
// concurrently; each request still resolves sequentially on its own
// goroutine.
package planner
