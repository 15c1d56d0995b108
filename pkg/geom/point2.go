package geom

import "math"

// Point2D is a point (or displacement) in the plane.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the sum of p and q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by the scalar s.
func (p Point2D) Scale(s float64) Point2D {
	return Point2D{X: s * p.X, Y: s * p.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point2D) Distance(q Point2D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// CircleCircleIntersection returns the intersection points of two circles.
//
// Returns zero points and false when the circles are separate (d > r1+r2),
// one contained in the other (d < |r1-r2|), or coincident. Tangent circles
// return a single point. The two-point case lists the point on the positive
// side of the center line first.
func CircleCircleIntersection(c1 Point2D, r1 float64, c2 Point2D, r2 float64) ([]Point2D, bool) {
	d := c1.Distance(c2)
	if d < zeroLength {
		// Concentric: either coincident (infinite solutions) or disjoint.
		return nil, false
	}
	if d > r1+r2 || d < math.Abs(r1-r2) {
		return nil, false
	}

	// Distance from c1 to the chord midpoint along the center line.
	a := (d*d + r1*r1 - r2*r2) / (2 * d)
	h2 := r1*r1 - a*a
	if h2 < 0 {
		// Numerical noise at tangency.
		h2 = 0
	}
	h := math.Sqrt(h2)

	ex := (c2.X - c1.X) / d
	ey := (c2.Y - c1.Y) / d
	mid := Point2D{X: c1.X + a*ex, Y: c1.Y + a*ey}

	if h < zeroLength {
		return []Point2D{mid}, true
	}
	return []Point2D{
		{X: mid.X + h*-ey, Y: mid.Y + h*ex},
		{X: mid.X - h*-ey, Y: mid.Y - h*ex},
	}, true
}
