package shape

import (
	"fmt"

	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/polygon"
)

// Quadrilateral property keys.
const (
	QuadSideA     Key = "side-a"
	QuadSideB     Key = "side-b"
	QuadSideC     Key = "side-c"
	QuadSideD     Key = "side-d"
	QuadDiagonalP Key = "diagonal-p"
	QuadDiagonalQ Key = "diagonal-q"
	QuadPerimeter Key = "perimeter"
	QuadArea      Key = "area"
)

// Quadrilateral is a point-backed four-sided figure. Like PointPolygon
// it is edited through vertex accessors; the named properties (four
// sides, two diagonals, perimeter, shoelace area) are all derived.
type Quadrilateral struct {
	ps  propertySet
	pts [4]geom.Point2D
}

var _ Solver = (*Quadrilateral)(nil)

// NewQuadrilateral returns a quadrilateral over the four vertices in
// order.
func NewQuadrilateral(pts [4]geom.Point2D) *Quadrilateral {
	q := &Quadrilateral{
		ps: newPropertySet(
			derived("Side a", QuadSideA, "mm", 2),
			derived("Side b", QuadSideB, "mm", 2),
			derived("Side c", QuadSideC, "mm", 2),
			derived("Side d", QuadSideD, "mm", 2),
			derived("Diagonal p", QuadDiagonalP, "mm", 2),
			derived("Diagonal q", QuadDiagonalQ, "mm", 2),
			derived("Perimeter", QuadPerimeter, "mm", 2),
			derived("Area", QuadArea, "mm²", 2),
		),
		pts: pts,
	}
	q.recompute()
	return q
}

func (q *Quadrilateral) Kind() Kind             { return KindQuadrilateral }
func (q *Quadrilateral) Properties() []Property { return q.ps.snapshot() }

// Clear resets every property; the vertices collapse to the origin.
func (q *Quadrilateral) Clear() {
	q.pts = [4]geom.Point2D{}
	q.ps.clearAll()
}

// Vertex returns vertex i.
func (q *Quadrilateral) Vertex(i int) geom.Point2D { return q.pts[i] }

// SetVertex moves vertex i and re-derives all properties.
func (q *Quadrilateral) SetVertex(i int, pt geom.Point2D) error {
	if i < 0 || i >= 4 {
		return fmt.Errorf("vertex index %d out of range [0,4)", i)
	}
	q.pts[i] = pt
	q.recompute()
	return nil
}

// Validate rejects every key: all quadrilateral properties are derived.
func (q *Quadrilateral) Validate(key Key, value float64) error {
	return q.ps.checkKnownEditable(key)
}

// SetProperty always fails; mutation happens through SetVertex.
func (q *Quadrilateral) SetProperty(key Key, value float64) error {
	return q.Validate(key, value)
}

// SideLengths returns the four side lengths in vertex order.
func (q *Quadrilateral) SideLengths() [4]float64 {
	var s [4]float64
	for i := 0; i < 4; i++ {
		s[i] = q.pts[i].Distance(q.pts[(i+1)%4])
	}
	return s
}

// DiagonalLengths returns the two diagonal lengths.
func (q *Quadrilateral) DiagonalLengths() [2]float64 {
	return [2]float64{
		q.pts[0].Distance(q.pts[2]),
		q.pts[1].Distance(q.pts[3]),
	}
}

func (q *Quadrilateral) recompute() {
	s := q.SideLengths()
	d := q.DiagonalLengths()
	pts := q.pts[:]
	q.ps.set(QuadSideA, s[0])
	q.ps.set(QuadSideB, s[1])
	q.ps.set(QuadSideC, s[2])
	q.ps.set(QuadSideD, s[3])
	q.ps.set(QuadDiagonalP, d[0])
	q.ps.set(QuadDiagonalQ, d[1])
	q.ps.set(QuadPerimeter, polygon.Perimeter(pts))
	q.ps.set(QuadArea, polygon.Area(pts))
}

// Drawing returns the outline with both diagonals as guides.
func (q *Quadrilateral) Drawing(cfg DrawConfig) Drawing {
	pts := make([]geom.Point2D, 4)
	copy(pts, q.pts[:])
	return Drawing{
		Family: FamilyPolygon,
		Points: pts,
		Guides: []Guide{
			cfg.guideLine(GuideDiagonal, q.pts[0], q.pts[2]),
			cfg.guideLine(GuideDiagonal, q.pts[1], q.pts[3]),
		},
	}
}

// Labels annotates the area at the centroid.
func (q *Quadrilateral) Labels() []Label {
	area := q.ps.value(QuadArea)
	if area == nil {
		return nil
	}
	c, _ := polygon.Centroid(q.pts[:])
	return []Label{dimensionLabel("A", *area, "mm²", 2, c)}
}
