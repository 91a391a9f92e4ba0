package geom

import "math"

// MaxCoordinate bounds every coordinate this package accepts. Staying within
// it guarantees that pairwise products of two coordinates fit in int64 and
// in a float64 mantissa without loss, per the data model's fixed-point
// contract.
const MaxCoordinate = 1 << 25

// Point is a 2D integer coordinate in the board's fixed unit (typically
// 10,000 units per millimeter).
type Point struct {
	X, Y int32
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Equal reports whether p and q denote the same coordinate.
func (p Point) Equal(q Point) bool { return p.X == q.X && p.Y == q.Y }

// DistanceSquared returns the squared Euclidean distance between p and q as
// an int64 product, safe from overflow for coordinates within MaxCoordinate.
func (p Point) DistanceSquared(q Point) int64 {
	dx := int64(p.X) - int64(q.X)
	dy := int64(p.Y) - int64(q.Y)

	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Sqrt(float64(p.DistanceSquared(q)))
}

// Cross returns the z-component of (p × q), i.e. p.X*q.Y - p.Y*q.X, computed
// in int64 to stay exact for coordinates within MaxCoordinate.
func (p Point) Cross(q Point) int64 {
	return int64(p.X)*int64(q.Y) - int64(p.Y)*int64(q.X)
}
