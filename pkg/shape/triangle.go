package shape

import (
	"math"

	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/polygon"
)

// Triangle property keys.
const (
	TriSideA     Key = "side-a"
	TriSideB     Key = "side-b"
	TriSideC     Key = "side-c"
	TriPerimeter Key = "perimeter"
	TriArea      Key = "area"
)

// Triangle is defined by its three side lengths. Perimeter and Heron
// area are derived once all three sides are present. A side edit that
// breaks the triangle inequality against the other stored sides is
// infeasible: the edit is kept, the derived values are cleared, and the
// caller gets ErrInfeasible.
type Triangle struct {
	ps propertySet
}

var _ Solver = (*Triangle)(nil)

// NewTriangle returns an uninitialized triangle.
func NewTriangle() *Triangle {
	return &Triangle{ps: newPropertySet(
		editable("Side a", TriSideA, "mm", 2),
		editable("Side b", TriSideB, "mm", 2),
		editable("Side c", TriSideC, "mm", 2),
		derived("Perimeter", TriPerimeter, "mm", 2),
		derived("Area", TriArea, "mm²", 2),
	)}
}

// NewTriangleFromSides returns a triangle seeded with three sides, or
// nil when the sides do not satisfy the triangle inequality.
func NewTriangleFromSides(a, b, c float64) *Triangle {
	t := NewTriangle()
	if t.SetProperty(TriSideA, a) != nil ||
		t.SetProperty(TriSideB, b) != nil ||
		t.SetProperty(TriSideC, c) != nil {
		return nil
	}
	return t
}

func (t *Triangle) Kind() Kind             { return KindTriangle }
func (t *Triangle) Properties() []Property { return t.ps.snapshot() }
func (t *Triangle) Clear()                 { t.ps.clearAll() }

// Validate checks the domain predicate without touching state.
func (t *Triangle) Validate(key Key, value float64) error {
	if err := t.ps.checkKnownEditable(key); err != nil {
		return err
	}
	return requirePositive(key, value)
}

// SetProperty stores a side and re-derives perimeter and area when all
// three sides are known and feasible.
func (t *Triangle) SetProperty(key Key, value float64) error {
	if err := t.Validate(key, value); err != nil {
		return err
	}
	t.ps.set(key, value)

	a := t.ps.value(TriSideA)
	b := t.ps.value(TriSideB)
	c := t.ps.value(TriSideC)
	if a == nil || b == nil || c == nil {
		return nil
	}
	if *a+*b <= *c || *b+*c <= *a || *a+*c <= *b {
		t.ps.clearDerived()
		return infeasible("sides %g, %g, %g violate the triangle inequality", *a, *b, *c)
	}

	s := (*a + *b + *c) / 2
	t.ps.set(TriPerimeter, 2*s)
	t.ps.set(TriArea, math.Sqrt(s*(s-*a)*(s-*b)*(s-*c)))
	return nil
}

// Sides returns the three side lengths and whether all are set.
func (t *Triangle) Sides() (a, b, c float64, ok bool) {
	pa := t.ps.value(TriSideA)
	pb := t.ps.value(TriSideB)
	pc := t.ps.value(TriSideC)
	if pa == nil || pb == nil || pc == nil {
		return 0, 0, 0, false
	}
	return *pa, *pb, *pc, true
}

// vertices places the triangle with side c on the x axis and the apex
// above it, or nil when the figure is not consistent.
func (t *Triangle) vertices() []geom.Point2D {
	a, b, c, ok := t.Sides()
	if !ok || t.ps.value(TriArea) == nil {
		return nil
	}
	// Apex from the law of cosines against the base c.
	x := (b*b + c*c - a*a) / (2 * c)
	y2 := b*b - x*x
	if y2 < 0 {
		y2 = 0
	}
	return []geom.Point2D{
		{X: 0, Y: 0}, {X: c, Y: 0}, {X: x, Y: math.Sqrt(y2)},
	}
}

// Drawing returns the triangle outline.
func (t *Triangle) Drawing(cfg DrawConfig) Drawing {
	pts := t.vertices()
	if pts == nil {
		return emptyDrawing()
	}
	return Drawing{Family: FamilyPolygon, Points: pts}
}

// Labels annotates each side at its edge midpoint.
func (t *Triangle) Labels() []Label {
	pts := t.vertices()
	if pts == nil {
		return nil
	}
	a, b, c, _ := t.Sides()
	labels := []Label{
		dimensionLabel("c", c, "mm", 2, pts[0].Add(pts[1]).Scale(0.5)),
		dimensionLabel("a", a, "mm", 2, pts[1].Add(pts[2]).Scale(0.5)),
		dimensionLabel("b", b, "mm", 2, pts[2].Add(pts[0]).Scale(0.5)),
	}
	if centroid, ok := polygon.Centroid(pts); ok {
		area := t.ps.value(TriArea)
		labels = append(labels, dimensionLabel("A", *area, "mm²", 2, centroid))
	}
	return labels
}
