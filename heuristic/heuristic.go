package heuristic

import (
	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/control"
	"github.com/openpcb/autoroute/geom"
)

// Side groups destination layers into the three classes the heuristic
// reasons about: the two outer sides, whose layer index is fixed, and
// "inner", which lumps together every layer between them.
type Side int

const (
	SideComponent Side = iota
	SideSolder
	SideInner
	numSides
)

// SideOf classifies layer within a stack of numLayers layers.
func SideOf(layer, numLayers int) Side {
	switch {
	case layer == 0:
		return SideComponent
	case layer == numLayers-1:
		return SideSolder
	default:
		return SideInner
	}
}

// Destination is one target item's shape on its layer, used to prime a
// Heuristic.
type Destination struct {
	Shape geom.Tile
	Layer int
}

// Heuristic is an admissible lower bound on the remaining cost to reach a
// primed destination set, queried once per popped maze-search element.
// It is deliberately coarse at the inner/inner boundary (see Estimate):
// trading tightness for a guarantee it never overestimates, the same
// trade the control block's MinNormalViaCost/MinCheapViaCost floors exist
// to make safe.
type Heuristic struct {
	numLayers int
	boxes     [numSides]geom.Box
	present   [numSides]bool
}

// New returns an unprimed Heuristic for a board with numLayers layers.
func New(numLayers int) *Heuristic {
	return &Heuristic{numLayers: numLayers}
}

// Prime resets the heuristic and aggregates dests' bounding boxes by side.
func (h *Heuristic) Prime(dests []Destination) {
	h.boxes = [numSides]geom.Box{}
	h.present = [numSides]bool{}
	for _, d := range dests {
		s := SideOf(d.Layer, h.numLayers)
		box := d.Shape.BoundingBox()
		if !h.present[s] {
			h.boxes[s] = box
		} else {
			h.boxes[s] = h.boxes[s].UnionWith(box)
		}
		h.present[s] = true
	}
}

// PrimeFromItems is a convenience wrapper over Prime for callers holding
// board items rather than raw shapes.
func PrimeFromItems(h *Heuristic, b *board.Board, ids []board.ItemID) {
	var dests []Destination
	for _, id := range ids {
		it, err := b.Item(id)
		if err != nil {
			continue
		}
		for i := 0; i < it.ShapeCount(); i++ {
			layer := it.ShapeLayer(i)
			if layer < 0 {
				continue
			}
			dests = append(dests, Destination{Shape: it.ShapeTile(i), Layer: layer})
		}
	}
	h.Prime(dests)
}

// Estimate returns an admissible lower bound on the remaining cost to
// travel from p on layer from the primed destination set, under blk's
// cost model. It never overestimates: for each present side it takes the
// cheapest axis-weighted trace distance to that side's aggregate box, and
// adds a via-cost floor only when the destination side is one of the two
// fixed outer sides and differs from the query layer's side. A query
// against an Inner-side destination never pays a via floor, since Inner
// lumps together layers that may or may not be the query's own layer —
// omitting the floor there can only lower the estimate, never raise it,
// so admissibility holds either way.
func (h *Heuristic) Estimate(p geom.Point, from int, blk control.Block) float64 {
	fromSide := SideOf(from, h.numLayers)
	cost := blk.TraceCosts[from]
	best := -1.0
	for s := Side(0); s < numSides; s++ {
		if !h.present[s] {
			continue
		}
		dx, dy := h.boxes[s].DistanceAxes(p)
		estimate := cost.Cost(float64(dx), float64(dy))
		if s != fromSide && s != SideInner {
			estimate += viaFloor(blk)
		}
		if best < 0 || estimate < best {
			best = estimate
		}
	}
	if best < 0 {
		return 0
	}

	return best
}

// viaFloor returns the cheapest via cost admissible across any layer
// transition, the lower bound blk.MinNormalViaCost/MinCheapViaCost exist
// to provide.
func viaFloor(blk control.Block) float64 {
	if blk.MinCheapViaCost > 0 && blk.MinCheapViaCost < blk.MinNormalViaCost {
		return blk.MinCheapViaCost
	}

	return blk.MinNormalViaCost
}
