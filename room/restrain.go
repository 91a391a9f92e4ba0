package room

import (
	"math"

	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/spatial"
)

// maxRestrainIterations bounds the restraining loop. Each iteration cuts
// the shape by exactly one half-plane, so the shape's vertex count and
// area are non-increasing; in practice a board region touches at most a
// few dozen obstacle edges, so this ceiling is never reached on a sane
// board and exists only to fail safe instead of looping forever.
const maxRestrainIterations = 1000

// Restrain iteratively cuts shape until it is convex and obstacle-free on
// layer, keeping contained strictly inside it throughout, per §4.4:
//
//  1. Query the spatial index for obstacles on shape's layer overlapping
//     its bounding box.
//  2. For each obstacle shape that intersects the current shape, consider
//     every border edge (oriented with the obstacle on its right); skip
//     edges that do not cross the shape's interior or that would put
//     contained on the wrong side.
//  3. Cut by whichever surviving edge removes the most of the obstacle
//     (greatest signed distance from contained to the edge).
//  4. Repeat until no obstacle intersects shape, or shape is empty.
//
// clearance is the shape-compensation offset obstacles are inflated by
// before the cut test (ClearanceMatrix.CompensationOffset for the pair of
// clearance classes involved); it may be zero.
func Restrain(idx *spatial.Index, layer int, shape, contained geom.Tile, clearance int32) geom.Tile {
	for iter := 0; iter < maxRestrainIterations && !shape.Empty(); iter++ {
		hits := idx.Query(shape.BoundingBox(), layer)
		bestEdge, bestDist, found := pickCuttingEdge(hits, shape, contained, clearance)
		if !found {
			return shape
		}
		cut := shape.IntersectWithHalfPlane(bestEdge)
		if cut.Empty() {
			return cut
		}
		shape = cut
		_ = bestDist
	}

	return shape
}

func pickCuttingEdge(hits []spatial.Hit, shape, contained geom.Tile, clearance int32) (geom.Line, float64, bool) {
	bestDist := math.Inf(-1)
	var bestEdge geom.Line
	found := false
	for _, h := range hits {
		it, ok := h.Object.(*board.Item)
		if !ok {
			continue
		}
		obstacle := it.ShapeTile(h.ShapeIndex)
		if clearance > 0 {
			obstacle = obstacle.Inflate(clearance)
		}
		if obstacle.Intersection(shape).Empty() {
			continue
		}
		for e := 0; e < obstacle.BorderLineCount(); e++ {
			// The obstacle's own border lines have its interior on the
			// left (our geom.Tile.BorderLine convention); the restraining
			// algorithm wants edges with the obstacle on the right, so
			// flip direction.
			edge := obstacle.BorderLine(e).Opposite()
			if !shape.IntersectsInterior(edge) {
				continue
			}
			if !strictlyLeftOf(contained, edge) {
				continue
			}
			d := contained.DistanceToLeftOf(edge)
			if d > bestDist {
				bestDist = d
				bestEdge = edge
				found = true
			}
		}
	}

	return bestEdge, bestDist, found
}

// strictlyLeftOf reports whether every point of contained lies strictly on
// the left (positive) side of edge.
func strictlyLeftOf(contained geom.Tile, edge geom.Line) bool {
	for _, v := range contained.Vertices() {
		if edge.SideOf(v) <= 0 {
			return false
		}
	}

	return true
}

// CompleteExpansionRoom restrains r's candidate shape against idx and
// transitions it from Incomplete to Complete/NetDependent, assigning id.
// netDependent should be true if the restraining pass touched an obstacle
// belonging to a net other than the one currently being routed.
func CompleteExpansionRoom(idx *spatial.Index, r *FreeSpaceRoom, id RoomID, clearance int32, netDependent bool) error {
	restrained := Restrain(idx, r.Layer(), r.Shape(), r.ContainedShape(), clearance)
	if err := r.SetShape(restrained); err != nil {
		return err
	}

	return r.Complete(id, netDependent)
}
