// Package batch drives the multi-pass routing loop of §4.9: each pass
// asks package discover for every incomplete connection, routes as many
// as it can via package maze with an escalating rip-up budget, and
// applies successful paths to the board via ApplyPath (§4.10). Each pass
// follows the same iterate-call-a-sub-routine-per-item-and-track-whether-
// the-round-improved shape as the batch's own driver loop.
package batch
