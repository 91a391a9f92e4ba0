// Package control defines the per-net, per-pass cost model and control
// block the maze search and heuristic read from: trace/via cost factors,
// layer activity, rip-up budgets and escalation, and the search's hard
// resource limits.
//
// Block is built fresh per (net, pass) by the batch controller
// (package batch) from a net-class and the pass number: a fresh value
// built from DefaultBlock plus functional Option overrides each time,
// never mutated in place and shared.
package control
