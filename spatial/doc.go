// Package spatial implements the binary-tree bounding-box index that every
// overlap query in the router goes through: room restraining, obstacle
// lookup during maze expansion, and drill-site enumeration.
//
// The tree has one leaf per (object, shape-index) pair — an item with
// several disjoint pieces (e.g. a board outline spanning several shapes)
// occupies several leaves — and inner nodes store the union box of their
// descendants. Insertion chooses, at each inner node, whichever child's
// union with the incoming leaf grows that child's box area least (the
// same "minimum area increase" heuristic R-tree-family indexes use).
//
// The index is not transactional: callers must Remove an object before
// mutating its shape and Insert it again afterward, exactly as the board
// model does in lockstep with item mutation.
package spatial
