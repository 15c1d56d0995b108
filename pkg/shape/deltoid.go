package shape

import (
	"github.com/chazu/figura/pkg/geom"
)

// Deltoid property keys.
const (
	DeltoidTopSide    Key = "top-side"
	DeltoidBottomSide Key = "bottom-side"
	DeltoidAxis       Key = "axis"
	DeltoidCross      Key = "cross-diagonal"
	DeltoidPerimeter  Key = "perimeter"
	DeltoidArea       Key = "area"
)

// Deltoid is the shared two-adjacent-equal-sides solver behind the kite
// and dart figures. One configuration flag selects the variant: a kite
// is the convex configuration, a dart the concave one. The wing vertices
// come from a circle-circle intersection, so an edit can be in domain
// yet geometrically infeasible (no intersection, or an intersection on
// the wrong side of the axis for the requested variant).
//
// The figure sits with the top vertex at the origin and the symmetry
// axis along negative y.
type Deltoid struct {
	ps     propertySet
	convex bool
}

var _ Solver = (*Deltoid)(nil)

func newDeltoid(convex bool) *Deltoid {
	return &Deltoid{
		ps: newPropertySet(
			editable("Top side", DeltoidTopSide, "mm", 2),
			editable("Bottom side", DeltoidBottomSide, "mm", 2),
			editable("Axis", DeltoidAxis, "mm", 2),
			derived("Cross diagonal", DeltoidCross, "mm", 2),
			derived("Perimeter", DeltoidPerimeter, "mm", 2),
			derived("Area", DeltoidArea, "mm²", 2),
		),
		convex: convex,
	}
}

// NewKite returns an uninitialized kite (convex deltoid).
func NewKite() *Deltoid { return newDeltoid(true) }

// NewDart returns an uninitialized dart (concave deltoid).
func NewDart() *Deltoid { return newDeltoid(false) }

func (d *Deltoid) Kind() Kind {
	if d.convex {
		return KindKite
	}
	return KindDart
}

func (d *Deltoid) Properties() []Property { return d.ps.snapshot() }
func (d *Deltoid) Clear()                 { d.ps.clearAll() }

// Validate checks the domain predicate without touching state.
func (d *Deltoid) Validate(key Key, value float64) error {
	if err := d.ps.checkKnownEditable(key); err != nil {
		return err
	}
	return requirePositive(key, value)
}

// SetProperty stores the edited input and attempts the wing construction
// once all three inputs are present. A failed construction clears the
// derived properties and reports ErrInfeasible.
func (d *Deltoid) SetProperty(key Key, value float64) error {
	if err := d.Validate(key, value); err != nil {
		return err
	}
	d.ps.set(key, value)

	a := d.ps.value(DeltoidTopSide)
	b := d.ps.value(DeltoidBottomSide)
	axis := d.ps.value(DeltoidAxis)
	if a == nil || b == nil || axis == nil {
		return nil
	}

	wing, err := d.solveWing(*a, *b, *axis)
	if err != nil {
		d.ps.clearDerived()
		return err
	}

	d.ps.set(DeltoidCross, 2*wing.X)
	d.ps.set(DeltoidPerimeter, 2*(*a+*b))
	// Shoelace over (top, wing, bottom, mirrored wing) reduces to
	// halfWidth * axis for the convex and concave configuration alike.
	d.ps.set(DeltoidArea, wing.X**axis)
	return nil
}

// solveWing intersects the circles around the top vertex (radius a) and
// the bottom vertex (radius b) and returns the wing on positive x.
func (d *Deltoid) solveWing(a, b, axis float64) (geom.Point2D, error) {
	top := geom.Point2D{}
	bottom := geom.Point2D{Y: -axis}

	pts, ok := geom.CircleCircleIntersection(top, a, bottom, b)
	if !ok || len(pts) < 2 {
		// Tangent circles collapse the figure to a line; treat the same
		// as no intersection.
		return geom.Point2D{}, infeasible(
			"sides %g and %g cannot meet across an axis of %g", a, b, axis)
	}

	wing := pts[0]
	if wing.X < 0 {
		wing = pts[1]
	}

	// The wing's position along the axis decides the variant: between
	// the end vertices for a kite, beyond the bottom vertex for a dart.
	t := -wing.Y
	if d.convex {
		if t <= 0 || t >= axis {
			return geom.Point2D{}, infeasible(
				"configuration is concave; a kite requires the wings between the axis endpoints")
		}
	} else {
		if t <= axis {
			return geom.Point2D{}, infeasible(
				"configuration is convex; a dart requires the wings beyond the bottom vertex")
		}
	}
	return wing, nil
}

// vertices returns the four polygon vertices, or nil when inconsistent.
func (d *Deltoid) vertices() []geom.Point2D {
	a := d.ps.value(DeltoidTopSide)
	b := d.ps.value(DeltoidBottomSide)
	axis := d.ps.value(DeltoidAxis)
	if a == nil || b == nil || axis == nil || d.ps.value(DeltoidArea) == nil {
		return nil
	}
	wing, err := d.solveWing(*a, *b, *axis)
	if err != nil {
		return nil
	}
	return []geom.Point2D{
		{},
		wing,
		{Y: -*axis},
		{X: -wing.X, Y: wing.Y},
	}
}

// Drawing returns the outline with both diagonals as guides.
func (d *Deltoid) Drawing(cfg DrawConfig) Drawing {
	pts := d.vertices()
	if pts == nil {
		return emptyDrawing()
	}
	return Drawing{
		Family: FamilyPolygon,
		Points: pts,
		Guides: []Guide{
			cfg.guideLine(GuideAxis, pts[0], pts[2]),
			cfg.guideLine(GuideDiagonal, pts[1], pts[3]),
		},
	}
}

// Labels annotates the two distinct side lengths.
func (d *Deltoid) Labels() []Label {
	pts := d.vertices()
	if pts == nil {
		return nil
	}
	a := d.ps.value(DeltoidTopSide)
	b := d.ps.value(DeltoidBottomSide)
	return []Label{
		dimensionLabel("a", *a, "mm", 2, pts[0].Add(pts[1]).Scale(0.5)),
		dimensionLabel("b", *b, "mm", 2, pts[1].Add(pts[2]).Scale(0.5)),
	}
}
