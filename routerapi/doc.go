// Package routerapi is the module's root-adjacent front door: it wraps
// package maze's single-connection search and package batch's multi-pass
// controller behind the two entry points an external caller (a board
// reader/writer, a CLI, a test harness) actually needs, per §6.
package routerapi
