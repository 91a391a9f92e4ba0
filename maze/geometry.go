package maze

import "github.com/openpcb/autoroute/geom"

// nearestPoint returns the point of t closest to from: the sole vertex
// for a point, the closest point on the segment for a 1-D tile, and
// either from itself (if inside) or the closest boundary point for a
// polygon.
func nearestPoint(t geom.Tile, from geom.Point) geom.Point {
	verts := t.Vertices()
	switch t.Dimension() {
	case 0:
		return verts[0]
	case 1:
		return closestOnSegment(verts[0], verts[1], from)
	default:
		if t.Contains(from) {
			return from
		}
		best := verts[0]
		bestD := from.DistanceSquared(best)
		for i := range verts {
			cand := closestOnSegment(verts[i], verts[(i+1)%len(verts)], from)
			if d := from.DistanceSquared(cand); d < bestD {
				bestD = d
				best = cand
			}
		}

		return best
	}
}

func closestOnSegment(a, b, p geom.Point) geom.Point {
	abx, aby := float64(b.X-a.X), float64(b.Y-a.Y)
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return a
	}
	apx, apy := float64(p.X-a.X), float64(p.Y-a.Y)
	t := (apx*abx + apy*aby) / lenSq
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}

	return geom.Point{X: a.X + int32(abx*t), Y: a.Y + int32(aby*t)}
}

// sign32 returns the sign of v as -1, 0, or 1, rounding small magnitudes
// to zero to avoid floating-point jitter registering as a direction.
func sign32(v float64) int32 {
	switch {
	case v > 1e-6:
		return 1
	case v < -1e-6:
		return -1
	default:
		return 0
	}
}
