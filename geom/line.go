package geom

import "math"

// Line is a directed line ax + by + c = 0. "Left" of the line (in the
// direction the line is walked) is the half-plane where SideOf is
// positive; this is the convention the restraining algorithm (package
// room) relies on: an obstacle border edge keeps the obstacle on its
// right, so the free side is SideOf > 0.
type Line struct {
	A, B, C int64
}

// LineThrough returns the directed line passing through p then q, oriented
// so that a point immediately to the left of the p→q direction has a
// positive SideOf value.
func LineThrough(p, q Point) Line {
	a := int64(p.Y) - int64(q.Y)
	b := int64(q.X) - int64(p.X)
	c := -(a*int64(p.X) + b*int64(p.Y))

	return Line{A: a, B: b, C: c}
}

// SideOf evaluates ax + by + c at p. Positive means p is left of the line's
// direction, negative means right, zero means on the line.
func (l Line) SideOf(p Point) int64 {
	return l.A*int64(p.X) + l.B*int64(p.Y) + l.C
}

// Opposite returns the line with the same support but reversed direction,
// i.e. its left and right half-planes swapped.
func (l Line) Opposite() Line {
	return Line{A: -l.A, B: -l.B, C: -l.C}
}

// Length returns sqrt(a^2+b^2), the norm used to convert a raw SideOf value
// into a true signed distance.
func (l Line) Length() float64 {
	return math.Sqrt(float64(l.A*l.A + l.B*l.B))
}

// SignedDistance returns the Euclidean signed distance from p to l (positive
// to the left), or 0 for a degenerate (zero-length) line.
func (l Line) SignedDistance(p Point) float64 {
	n := l.Length()
	if n == 0 {
		return 0
	}

	return float64(l.SideOf(p)) / n
}

// Intersect returns the point where l and o cross. The second return value
// is false if the lines are parallel (including coincident).
func (l Line) Intersect(o Line) (Point, bool) {
	det := l.A*o.B - o.A*l.B
	if det == 0 {
		return Point{}, false
	}
	// Solve the 2x2 linear system via Cramer's rule in float64; board
	// coordinates stay within MaxCoordinate so this remains accurate
	// enough for room restraining and door-shape computation.
	x := float64(-l.C*o.B+o.C*l.B) / float64(det)
	y := float64(-l.A*o.C+o.A*l.C) / float64(det)

	return Point{X: int32(math.Round(x)), Y: int32(math.Round(y))}, true
}
