package maze

import (
	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/geom"
)

// Outcome is the three-way termination of one maze search, per §4.6.3;
// the broader caller-facing Result enum (Routed/Failed/Stopped/...) is
// assembled from this plus board-mutation outcomes one layer up, in
// package routerapi.
type Outcome int

const (
	// Found means a destination target door was popped: Result.Path and
	// Result.RippedItems are populated.
	Found Outcome = iota
	// NotFound means the queue emptied without a destination hit.
	NotFound
	// Stopped means the context was cancelled or its deadline elapsed
	// before either of the above.
	Stopped
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "Found"
	case NotFound:
		return "NotFound"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Vertex is one (point, layer) stop along a reconstructed path.
type Vertex struct {
	Point geom.Point
	Layer int
}

// Result is the outcome of one Search call. Search itself never mutates
// the board: package batch's ApplyPath turns a Found result into actual
// rip-up and synthesis, so that a search can be costed and inspected
// before anything touches b.
type Result struct {
	Outcome Outcome
	// Path is the winning route from the start item to the destination,
	// nil unless Outcome == Found.
	Path []Vertex
	// RippedItems lists items the winning path tentatively routed
	// through (§4.6.4); populated only on Found, empty if no rip-up
	// branch was taken. Still on the board until batch.ApplyPath runs.
	RippedItems []board.ItemID
	// Synthesized lists the new trace/via items inserted while applying
	// the winning path, in insertion order. Left nil by Search; filled
	// in by batch.ApplyPath once it has committed the path to the board.
	Synthesized []board.ItemID
	// Iterations is the number of elements popped from the priority
	// queue, reported for diagnostics and to detect maxIterations
	// exhaustion (Outcome == NotFound with Iterations == control's cap).
	Iterations int
}
