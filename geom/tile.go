package geom

// Tile is a convex shape represented by its ordered (counter-clockwise)
// vertex list. Dimension 2 is a polygon with positive area, dimension 1 is
// a segment (two distinct points), dimension 0 is a single point, and an
// empty Tile (no vertices) has dimension -1.
//
// Every border edge of a dimension-2 Tile is, by construction, a directed
// line with the tile's interior on its left (see Line/LineThrough), which
// is the convention the room-restraining algorithm depends on.
type Tile struct {
	vertices []Point
}

// NewPolygon returns a Tile from vertices already in counter-clockwise
// order. The caller is responsible for convexity; this package does not
// re-hull its input.
func NewPolygon(vertices []Point) Tile {
	out := make([]Point, len(vertices))
	copy(out, vertices)

	return Tile{vertices: out}
}

// NewSegment returns a dimension-1 Tile between two distinct points.
func NewSegment(a, b Point) Tile {
	if a.Equal(b) {
		return NewPoint(a)
	}

	return Tile{vertices: []Point{a, b}}
}

// NewPoint returns a dimension-0 Tile.
func NewPoint(p Point) Tile {
	return Tile{vertices: []Point{p}}
}

// NewBoxTile returns the rectangular Tile spanning box, CCW from the low
// corner.
func NewBoxTile(b Box) Tile {
	if b.Empty() {
		return Tile{}
	}

	return NewPolygon([]Point{
		{X: b.Lo.X, Y: b.Lo.Y},
		{X: b.Hi.X, Y: b.Lo.Y},
		{X: b.Hi.X, Y: b.Hi.Y},
		{X: b.Lo.X, Y: b.Hi.Y},
	})
}

// Empty reports whether the tile has no vertices.
func (t Tile) Empty() bool { return len(t.vertices) == 0 }

// Dimension returns -1 (empty), 0 (point), 1 (segment), or 2 (polygon).
func (t Tile) Dimension() int {
	switch {
	case len(t.vertices) == 0:
		return -1
	case len(t.vertices) == 1:
		return 0
	case len(t.vertices) == 2:
		return 1
	default:
		return 2
	}
}

// Vertices returns the tile's vertex list; callers must not mutate it.
func (t Tile) Vertices() []Point { return t.vertices }

// BoundingBox returns the smallest axis-aligned Box containing the tile.
func (t Tile) BoundingBox() Box {
	if t.Empty() {
		return Box{Lo: Point{1, 1}, Hi: Point{0, 0}}
	}
	b := BoxFromPoints(t.vertices[0], t.vertices[0])
	for _, v := range t.vertices[1:] {
		b = b.UnionWith(BoxFromPoints(v, v))
	}

	return b
}

// Contains reports whether p lies within (or on the boundary of) the tile.
func (t Tile) Contains(p Point) bool {
	switch t.Dimension() {
	case -1:
		return false
	case 0:
		return t.vertices[0].Equal(p)
	case 1:
		return pointOnSegment(t.vertices[0], t.vertices[1], p)
	default:
		for i := 0; i < len(t.vertices); i++ {
			edge := LineThrough(t.vertices[i], t.vertices[(i+1)%len(t.vertices)])
			if edge.SideOf(p) < 0 {
				return false
			}
		}

		return true
	}
}

func pointOnSegment(a, b, p Point) bool {
	// Collinear and within the bounding box of the segment.
	if a.Sub(p).Cross(b.Sub(p)) != 0 {
		return false
	}

	return p.X >= min32(a.X, b.X) && p.X <= max32(a.X, b.X) &&
		p.Y >= min32(a.Y, b.Y) && p.Y <= max32(a.Y, b.Y)
}

// BorderLineCount returns the number of directed border edges; 0 for any
// shape that is not a dimension-2 polygon.
func (t Tile) BorderLineCount() int {
	if t.Dimension() != 2 {
		return 0
	}

	return len(t.vertices)
}

// BorderLine returns the i'th directed border edge, counter-clockwise, with
// the tile's interior on its left.
func (t Tile) BorderLine(i int) Line {
	n := len(t.vertices)

	return LineThrough(t.vertices[i%n], t.vertices[(i+1)%n])
}

// IntersectsInterior reports whether line l crosses the open interior of
// the tile (as opposed to merely touching its boundary).
func (t Tile) IntersectsInterior(l Line) bool {
	if t.Dimension() < 2 {
		return false
	}
	var sawPositive, sawNegative bool
	for _, v := range t.vertices {
		switch side := l.SideOf(v); {
		case side > 0:
			sawPositive = true
		case side < 0:
			sawNegative = true
		}
	}

	return sawPositive && sawNegative
}

// DistanceToLeftOf returns the signed distance from the shape to the left
// side of l, taken as the maximum over every vertex of the tile (i.e. how
// far the furthest-left point of the tile sits to the left of l). Used by
// room restraining to rank candidate cutting edges.
func (t Tile) DistanceToLeftOf(l Line) float64 {
	if t.Empty() {
		return 0
	}
	best := l.SignedDistance(t.vertices[0])
	for _, v := range t.vertices[1:] {
		if d := l.SignedDistance(v); d > best {
			best = d
		}
	}

	return best
}

// IntersectWithHalfPlane clips the tile by the half-plane SideOf(p) >= 0,
// returning the portion of the tile on l's left (including its boundary).
// The result is empty if the tile has no area/line/point left over.
func (t Tile) IntersectWithHalfPlane(l Line) Tile {
	switch t.Dimension() {
	case -1:
		return Tile{}
	case 0:
		if l.SideOf(t.vertices[0]) >= 0 {
			return t
		}

		return Tile{}
	case 1:
		return clipSegment(t.vertices[0], t.vertices[1], l)
	default:
		return Tile{vertices: clipPolygon(t.vertices, l)}
	}
}

func clipSegment(a, b Point, l Line) Tile {
	sa, sb := l.SideOf(a), l.SideOf(b)
	switch {
	case sa >= 0 && sb >= 0:
		return NewSegment(a, b)
	case sa < 0 && sb < 0:
		return Tile{}
	default:
		x, ok := l.Intersect(LineThrough(a, b))
		if !ok {
			return Tile{}
		}
		if sa >= 0 {
			return NewSegment(a, x)
		}

		return NewSegment(x, b)
	}
}

// clipPolygon applies one Sutherland-Hodgman half-plane clip, keeping
// vertices with SideOf(l) >= 0.
func clipPolygon(poly []Point, l Line) []Point {
	if len(poly) == 0 {
		return nil
	}
	out := make([]Point, 0, len(poly)+1)
	n := len(poly)
	for i := 0; i < n; i++ {
		cur := poly[i]
		prev := poly[(i-1+n)%n]
		curIn := l.SideOf(cur) >= 0
		prevIn := l.SideOf(prev) >= 0
		if curIn != prevIn {
			if x, ok := l.Intersect(LineThrough(prev, cur)); ok {
				out = append(out, x)
			}
		}
		if curIn {
			out = append(out, cur)
		}
	}

	return dedupCollinear(out)
}

// dedupCollinear drops consecutive duplicate vertices and collinear
// mid-points produced by clipping, keeping the result a minimal convex
// vertex list.
func dedupCollinear(pts []Point) []Point {
	if len(pts) < 2 {
		return pts
	}
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Equal(p) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0].Equal(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	if len(out) < 3 {
		return out
	}
	result := make([]Point, 0, len(out))
	n := len(out)
	for i := 0; i < n; i++ {
		prev := out[(i-1+n)%n]
		cur := out[i]
		next := out[(i+1)%n]
		if prev.Sub(cur).Cross(next.Sub(cur)) == 0 {
			continue // cur lies on the segment prev-next; drop it
		}
		result = append(result, cur)
	}
	if len(result) == 0 {
		return out[:1]
	}

	return result
}

// Inflate returns the tile grown by d along every border (a Minkowski-sum
// approximation good enough for clearance-compensation use, since the
// specification treats exact shape-compensation geometry as an external
// primitive: see room.NewObstacleRoom). Dimension-2 tiles are inflated
// exactly, by pushing each border line outward by d and re-deriving
// vertices from consecutive offset lines; dimension 0/1 tiles (points and
// segments, whose true Minkowski sum with a disk is not polygon-exact) are
// approximated by their axis-aligned bounding box expanded by d.
func (t Tile) Inflate(d int32) Tile {
	if d <= 0 || t.Dimension() < 2 {
		if d <= 0 {
			return t
		}

		return NewBoxTile(t.BoundingBox().Expand(d))
	}
	n := t.BorderLineCount()
	offset := make([]Line, n)
	for i := 0; i < n; i++ {
		l := t.BorderLine(i)
		offset[i] = Line{A: l.A, B: l.B, C: l.C + int64(d)*int64(round(l.Length()))}
	}
	verts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		prev := offset[(i-1+n)%n]
		cur := offset[i]
		if p, ok := prev.Intersect(cur); ok {
			verts = append(verts, p)
		}
	}

	return NewPolygon(verts)
}

func round(v float64) int64 {
	if v < 0 {
		return int64(v - 0.5)
	}

	return int64(v + 0.5)
}

// Intersection returns the overlap of t and o, clipping t by each of o's
// border half-planes in turn (valid because o is convex). The result has
// dimension <= min(dim(t), dim(o)); it is empty if the shapes are disjoint.
func (t Tile) Intersection(o Tile) Tile {
	if t.Empty() || o.Empty() {
		return Tile{}
	}
	if o.Dimension() < 2 {
		return t.intersectLowDim(o)
	}
	cur := t
	for i := 0; i < o.BorderLineCount() && !cur.Empty(); i++ {
		cur = cur.IntersectWithHalfPlane(o.BorderLine(i))
	}

	return cur
}

// intersectLowDim handles intersecting against a point or segment, cases
// BorderLineCount/IntersectWithHalfPlane alone cannot express since a
// point/segment has no enclosing half-planes.
func (t Tile) intersectLowDim(o Tile) Tile {
	switch o.Dimension() {
	case 0:
		if t.Contains(o.vertices[0]) {
			return o
		}

		return Tile{}
	case 1:
		a, b := o.vertices[0], o.vertices[1]
		if t.Dimension() == 2 {
			seg := Tile{vertices: []Point{a, b}}
			cur := seg
			for i := 0; i < t.BorderLineCount() && !cur.Empty(); i++ {
				cur = cur.IntersectWithHalfPlane(t.BorderLine(i))
			}

			return cur
		}
		// Both t and o are segments/points; fall back to containment checks.
		if t.Contains(a) && t.Contains(b) {
			return o
		}
		if t.Contains(a) {
			return NewPoint(a)
		}
		if t.Contains(b) {
			return NewPoint(b)
		}

		return Tile{}
	default:
		return Tile{}
	}
}

// TouchingSides returns the indices of this tile's border edges that
// coincide, as a 1-D overlap, with an edge of other. Returns nil if the
// shapes only overlap in 2-D (or not at all).
func (t Tile) TouchingSides(other Tile) []int {
	if t.Dimension() != 2 {
		return nil
	}
	var touching []int
	for i := 0; i < t.BorderLineCount(); i++ {
		e := t.BorderLine(i)
		for j := 0; j < other.BorderLineCount(); j++ {
			oe := other.BorderLine(j)
			if collinearOverlap(e, oe, t.vertices[i], t.vertices[(i+1)%len(t.vertices)],
				other.Vertices()[j], other.Vertices()[(j+1)%other.BorderLineCount()]) {
				touching = append(touching, i)

				break
			}
		}
	}

	return touching
}

// collinearOverlap reports whether directed edges (a1,a2) and (b1,b2), lying
// on lines la/lb, are collinear and their projections onto the shared line
// overlap in more than a point.
func collinearOverlap(la, lb Line, a1, a2, b1, b2 Point) bool {
	if la.SideOf(b1) != 0 || la.SideOf(b2) != 0 {
		return false
	}
	_ = lb
	// Project onto the dominant axis of the edge direction to test overlap.
	if la.B != 0 {
		lo1, hi1 := minmax32(a1.X, a2.X)
		lo2, hi2 := minmax32(b1.X, b2.X)

		return lo1 < hi2 && lo2 < hi1
	}
	lo1, hi1 := minmax32(a1.Y, a2.Y)
	lo2, hi2 := minmax32(b1.Y, b2.Y)

	return lo1 < hi2 && lo2 < hi1
}

func minmax32(a, b int32) (int32, int32) {
	if a < b {
		return a, b
	}

	return b, a
}
