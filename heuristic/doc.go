// Package heuristic computes the admissible destination-distance lower
// bound the maze search uses to turn its Dijkstra-style expansion into
// A*. It is primed once per search with the destination items' shapes and
// queried many times; admissibility here means the estimate must never
// overestimate true remaining distance, the same property a plain
// Dijkstra pass gets for free by carrying no heuristic term at all.
package heuristic
