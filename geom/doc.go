// Package geom provides the fixed-point integer geometry substrate shared
// by the spatial index, room decomposition, and maze search: points,
// directed lines, axis-aligned boxes, and convex tile shapes.
//
// Coordinates are integers in a fixed unit (board input is expected to
// already be converted to this unit by an external reader; see
// routerapi for the contract). Callers must keep coordinates within
// ±2^25 so that pairwise products fit comfortably in int64 and in a
// float64 mantissa without loss.
//
// Tiles are represented by their ordered (counter-clockwise) vertex
// list, which is the representation every operation in this package
// — intersection, half-plane cuts, border-line enumeration — is built
// around. A Tile with zero, one, or two vertices represents an empty,
// point, or segment shape respectively (see Tile.Dimension).
package geom
