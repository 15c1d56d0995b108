// Package classify recognizes the most specific figure class of an
// ordered vertex list. The classifier is purely metric: it compares
// side and diagonal lengths under one relative tolerance, so results
// are invariant under translation, rotation, reflection and uniform
// scaling.
package classify

import (
	"math"

	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/polygon"
	"github.com/chazu/figura/pkg/shape"
)

// Class names the recognized figure classes, most specific first per
// vertex count.
type Class string

const (
	ClassNone Class = "none"

	ClassEquilateral Class = "equilateral-triangle"
	ClassIsosceles   Class = "isosceles-triangle"
	ClassRight       Class = "right-triangle"
	ClassScalene     Class = "scalene-triangle"

	ClassSquare        Class = "square"
	ClassRectangle     Class = "rectangle"
	ClassRhombus       Class = "rhombus"
	ClassParallelogram Class = "parallelogram"
	ClassIrregularQuad Class = "irregular-quadrilateral"

	ClassPolygon Class = "polygon"
)

// RelTol is the single comparison tolerance, relative to the larger
// magnitude. One policy for every predicate keeps precedence stable: a
// figure near two class boundaries always lands in the more specific
// class first.
const RelTol = 1e-4

// relClose reports whether two magnitudes agree within RelTol.
func relClose(a, b float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return true
	}
	return math.Abs(a-b) <= RelTol*scale
}

// degenerate reports whether the vertex list spans no area at the
// figure's own scale.
func degenerate(pts []geom.Point2D) bool {
	_, ok := polygon.Centroid(pts)
	return !ok
}

// Classify returns the most specific class for the ordered vertices.
// Fewer than three points is not a figure; more than four is reported
// as a generic polygon.
func Classify(pts []geom.Point2D) Class {
	switch {
	case len(pts) < 3:
		return ClassNone
	case degenerate(pts):
		return ClassNone
	case len(pts) == 3:
		return classifyTriangle(pts)
	case len(pts) == 4:
		return classifyQuadrilateral(pts)
	default:
		return ClassPolygon
	}
}

// Detect classifies the vertices and returns a solver seeded from them,
// so a drawn figure immediately carries a full property snapshot. The
// solver is nil for ClassNone.
func Detect(pts []geom.Point2D) (Class, shape.Solver) {
	class := Classify(pts)
	switch {
	case class == ClassNone:
		return class, nil
	case len(pts) == 3:
		a := pts[0].Distance(pts[1])
		b := pts[1].Distance(pts[2])
		c := pts[2].Distance(pts[0])
		t := shape.NewTriangleFromSides(a, b, c)
		if t == nil {
			// Thinner than the area check caught.
			return ClassNone, nil
		}
		return class, t
	case len(pts) == 4:
		return class, shape.NewQuadrilateral([4]geom.Point2D{pts[0], pts[1], pts[2], pts[3]})
	default:
		return class, shape.NewPointPolygon(pts)
	}
}

// classifyTriangle applies the precedence
// equilateral > isosceles > right > scalene, so an isosceles right
// triangle reports as isosceles.
func classifyTriangle(pts []geom.Point2D) Class {
	a := pts[0].Distance(pts[1])
	b := pts[1].Distance(pts[2])
	c := pts[2].Distance(pts[0])

	switch {
	case relClose(a, b) && relClose(b, c):
		return ClassEquilateral
	case relClose(a, b) || relClose(b, c) || relClose(c, a):
		return ClassIsosceles
	case isRight(a, b, c):
		return ClassRight
	default:
		return ClassScalene
	}
}

// isRight checks the Pythagorean identity against the longest side.
func isRight(a, b, c float64) bool {
	// Sort so c is the hypotenuse candidate.
	if a > c {
		a, c = c, a
	}
	if b > c {
		b, c = c, b
	}
	return relClose(a*a+b*b, c*c)
}

// classifyQuadrilateral applies the precedence
// square > rectangle > rhombus > parallelogram > irregular. All
// predicates reduce to side and diagonal comparisons, so skewed but
// equal-sided figures still separate correctly: a rhombus has equal
// sides but unequal diagonals, a rectangle equal diagonals but unequal
// sides.
func classifyQuadrilateral(pts []geom.Point2D) Class {
	q := shape.NewQuadrilateral([4]geom.Point2D{pts[0], pts[1], pts[2], pts[3]})
	s := q.SideLengths()
	d := q.DiagonalLengths()

	oppositeEqual := relClose(s[0], s[2]) && relClose(s[1], s[3])
	allEqual := oppositeEqual && relClose(s[0], s[1])
	diagonalsEqual := relClose(d[0], d[1])

	switch {
	case allEqual && diagonalsEqual:
		return ClassSquare
	case oppositeEqual && diagonalsEqual:
		return ClassRectangle
	case allEqual:
		return ClassRhombus
	case oppositeEqual:
		return ClassParallelogram
	default:
		return ClassIrregularQuad
	}
}
