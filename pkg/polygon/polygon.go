// Package polygon computes metrics for ordered 2D vertex lists.
// Polygons are implicitly closed: the last vertex connects to the first.
package polygon

import (
	"math"

	"github.com/chazu/figura/pkg/geom"
)

// degenerateEps is the signed-area threshold, relative to the squared
// coordinate scale, below which a polygon is treated as collinear.
const degenerateEps = 1e-9

// SignedArea returns the shoelace signed area of the polygon. Positive
// for counter-clockwise winding. Returns 0 for fewer than 3 points.
func SignedArea(pts []geom.Point2D) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Area returns the absolute shoelace area of the polygon.
func Area(pts []geom.Point2D) float64 {
	return math.Abs(SignedArea(pts))
}

// Perimeter returns the sum of edge lengths, wraparound included.
func Perimeter(pts []geom.Point2D) float64 {
	if len(pts) < 2 {
		return 0
	}
	sum := 0.0
	for i, p := range pts {
		sum += p.Distance(pts[(i+1)%len(pts)])
	}
	return sum
}

// Centroid returns the area-weighted centroid of the polygon.
//
// The second return value is false when the polygon is degenerate
// (fewer than 3 points, or near-zero area from collinear vertices).
// A degenerate polygon still yields a defined, finite centroid: the
// plain vertex mean. Dividing by the near-zero signed area instead
// would blow the coordinates up to huge or infinite values.
func Centroid(pts []geom.Point2D) (geom.Point2D, bool) {
	if len(pts) == 0 {
		return geom.Point2D{}, false
	}
	if len(pts) < 3 {
		return vertexMean(pts), false
	}

	a := SignedArea(pts)
	if math.Abs(a) < degenerateEps*scale2(pts) {
		return vertexMean(pts), false
	}

	var cx, cy float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		cross := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	f := 1 / (6 * a)
	return geom.Point2D{X: cx * f, Y: cy * f}, true
}

// vertexMean returns the coordinate mean of the points.
func vertexMean(pts []geom.Point2D) geom.Point2D {
	var sum geom.Point2D
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// scale2 returns the squared coordinate scale of the point set, used to
// make the degeneracy threshold scale-relative. Never returns less than 1
// so that polygons around the origin keep an absolute floor.
func scale2(pts []geom.Point2D) float64 {
	s := 1.0
	for _, p := range pts {
		if v := math.Abs(p.X); v > s {
			s = v
		}
		if v := math.Abs(p.Y); v > s {
			s = v
		}
	}
	return s * s
}
