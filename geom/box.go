package geom

// Box is an axis-aligned bounding box, inclusive of both corners.
// A zero-value Box with Hi < Lo on either axis is treated as empty by
// Intersects/Intersection.
type Box struct {
	Lo, Hi Point
}

// BoxFromPoints returns the smallest Box containing both points.
func BoxFromPoints(a, b Point) Box {
	lo := Point{min32(a.X, b.X), min32(a.Y, b.Y)}
	hi := Point{max32(a.X, b.X), max32(a.Y, b.Y)}

	return Box{Lo: lo, Hi: hi}
}

// Empty reports whether b contains no points.
func (b Box) Empty() bool {
	return b.Lo.X > b.Hi.X || b.Lo.Y > b.Hi.Y
}

// Intersects reports whether b and o share at least one point.
func (b Box) Intersects(o Box) bool {
	if b.Empty() || o.Empty() {
		return false
	}

	return b.Lo.X <= o.Hi.X && o.Lo.X <= b.Hi.X &&
		b.Lo.Y <= o.Hi.Y && o.Lo.Y <= b.Hi.Y
}

// ContainsPoint reports whether p lies within b (inclusive).
func (b Box) ContainsPoint(p Point) bool {
	return p.X >= b.Lo.X && p.X <= b.Hi.X && p.Y >= b.Lo.Y && p.Y <= b.Hi.Y
}

// ContainsBox reports whether o lies entirely within b.
func (b Box) ContainsBox(o Box) bool {
	if o.Empty() {
		return true
	}

	return o.Lo.X >= b.Lo.X && o.Hi.X <= b.Hi.X && o.Lo.Y >= b.Lo.Y && o.Hi.Y <= b.Hi.Y
}

// UnionWith returns the smallest box containing both b and o.
func (b Box) UnionWith(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}

	return Box{
		Lo: Point{min32(b.Lo.X, o.Lo.X), min32(b.Lo.Y, o.Lo.Y)},
		Hi: Point{max32(b.Hi.X, o.Hi.X), max32(b.Hi.Y, o.Hi.Y)},
	}
}

// Intersection returns the overlap of b and o. The second return value is
// false (and the Box zero) if they do not overlap.
func (b Box) Intersection(o Box) (Box, bool) {
	r := Box{
		Lo: Point{max32(b.Lo.X, o.Lo.X), max32(b.Lo.Y, o.Lo.Y)},
		Hi: Point{min32(b.Hi.X, o.Hi.X), min32(b.Hi.Y, o.Hi.Y)},
	}
	if r.Empty() {
		return Box{}, false
	}

	return r, true
}

// Expand returns b grown by offset on every side (shrunk if offset is
// negative); used to inflate obstacle boxes by a clearance/compensation
// value before an overlap query.
func (b Box) Expand(offset int32) Box {
	return Box{
		Lo: Point{b.Lo.X - offset, b.Lo.Y - offset},
		Hi: Point{b.Hi.X + offset, b.Hi.Y + offset},
	}
}

// Area returns the box's area; zero for an empty or degenerate box.
func (b Box) Area() int64 {
	if b.Empty() {
		return 0
	}

	return int64(b.Hi.X-b.Lo.X) * int64(b.Hi.Y-b.Lo.Y)
}

// DistanceAxes returns the per-axis clamped distance from p to the nearest
// point of b: zero on an axis where p already falls within [Lo, Hi], and
// the gap to the nearest edge otherwise. Used by the destination-distance
// heuristic to cost horizontal and vertical displacement separately.
func (b Box) DistanceAxes(p Point) (dx, dy int32) {
	switch {
	case p.X < b.Lo.X:
		dx = b.Lo.X - p.X
	case p.X > b.Hi.X:
		dx = p.X - b.Hi.X
	}
	switch {
	case p.Y < b.Lo.Y:
		dy = b.Lo.Y - p.Y
	case p.Y > b.Hi.Y:
		dy = p.Y - b.Hi.Y
	}

	return dx, dy
}

// Center returns the box's center point, rounded toward the low corner.
func (b Box) Center() Point {
	return Point{
		X: b.Lo.X + (b.Hi.X-b.Lo.X)/2,
		Y: b.Lo.Y + (b.Hi.Y-b.Lo.Y)/2,
	}
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}

	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}

	return b
}
