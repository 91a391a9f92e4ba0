// Package conn precomputes connections: given one trace item, it walks
// the chain of same-net trace/via items it belongs to out to the next pin,
// fork, or free endpoint on each side, and scores the result against the
// straight-line distance between its terminals. Grounded on
// core/methods_adjacent.go's Neighbors/NeighborIDs walk — generalized from
// "follow edges of a named graph" to "follow trace/via items touching the
// same point within tolerance" — with the same sorted-output determinism.
package conn
