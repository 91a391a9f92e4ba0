// Package maze implements the A*-style expansion-room search that routes
// one connection: a generalization of plain Dijkstra from "relax edges of
// a static graph" to "expand doors of on-demand-generated rooms, with
// rip-up mutating the graph mid-search." The priority queue, pooled queue
// entries, and DefaultOptions-plus-functional-Option shape all mirror a
// textbook Dijkstra implementation's; the destination heuristic (package
// heuristic) is the A* term plain Dijkstra never needed.
package maze
