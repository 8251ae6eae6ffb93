// Package executor walks a plan's processing order and invokes the derive
// function registered for each node with the results of its operable
// dependencies.
//
// Execution is strictly sequential and deterministic: nodes run one at a
// time, in plan order. Recorded parameters are taken from the caller; the
// numeric work lives entirely in the DeriveFuncs.
package executor
