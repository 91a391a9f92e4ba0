// Package discover finds, for each net with more than one item, the pins
// that are not yet physically joined into a single component and emits
// one IncompleteConnection per gap, per §4.8. It walks each net with a
// standard BFS shape — a queue slice, a visited set, and a
// dequeue/visit/expand loop — following board.Board.PhysicallyConnected
// pairs within one net rather than a precomputed edge list.
package discover
