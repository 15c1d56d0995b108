package shape

import (
	"math"

	"github.com/chazu/figura/pkg/geom"
)

// Vesica property keys.
const (
	VesicaRadius     Key = "radius"
	VesicaSeparation Key = "separation"
	VesicaChord      Key = "chord"
	VesicaLensArea   Key = "lens-area"
	VesicaLensPerim  Key = "lens-perimeter"
)

// Vesica is the lens-shaped intersection of two equal circles (the
// vesica piscis and its generalizations). Radius and center separation
// are the editable inputs; the chord, lens area and lens perimeter are
// derived from the circle-circle intersection.
//
// A separation at or beyond the diameter leaves no lens: the edit is
// infeasible and the derived properties are cleared. A separation of
// zero or below is rejected outright; the degenerate coincident-circle
// case (lens = full circle of area πr²) is not representable.
type Vesica struct {
	ps propertySet
}

var _ Solver = (*Vesica)(nil)

// NewVesica returns an uninitialized vesica.
func NewVesica() *Vesica {
	return &Vesica{ps: newPropertySet(
		editable("Radius", VesicaRadius, "mm", 2),
		editable("Separation", VesicaSeparation, "mm", 2),
		derived("Chord", VesicaChord, "mm", 2),
		derived("Lens area", VesicaLensArea, "mm²", 2),
		derived("Lens perimeter", VesicaLensPerim, "mm", 2),
	)}
}

func (v *Vesica) Kind() Kind             { return KindVesica }
func (v *Vesica) Properties() []Property { return v.ps.snapshot() }
func (v *Vesica) Clear()                 { v.ps.clearAll() }

// Validate checks the domain predicate without touching state.
func (v *Vesica) Validate(key Key, value float64) error {
	if err := v.ps.checkKnownEditable(key); err != nil {
		return err
	}
	return requirePositive(key, value)
}

// centers returns the two circle centers for a separation, symmetric
// about the figure-local origin.
func vesicaCenters(sep float64) (geom.Point2D, geom.Point2D) {
	return geom.Point2D{X: -sep / 2}, geom.Point2D{X: sep / 2}
}

// SetProperty stores the edited input and derives the lens once both
// inputs are present. No intersection means no lens: ErrInfeasible.
func (v *Vesica) SetProperty(key Key, value float64) error {
	if err := v.Validate(key, value); err != nil {
		return err
	}
	v.ps.set(key, value)

	r := v.ps.value(VesicaRadius)
	sep := v.ps.value(VesicaSeparation)
	if r == nil || sep == nil {
		return nil
	}

	c1, c2 := vesicaCenters(*sep)
	pts, ok := geom.CircleCircleIntersection(c1, *r, c2, *r)
	if !ok || len(pts) < 2 {
		v.ps.clearDerived()
		return infeasible("circles of radius %g with centers %g apart share no lens", *r, *sep)
	}

	// Half-angle of each lens arc as seen from its circle's center.
	alpha := math.Acos(*sep / (2 * *r))
	area := 2**r**r*alpha - *sep/2*math.Sqrt(4**r**r-*sep**sep)

	v.ps.set(VesicaChord, pts[0].Distance(pts[1]))
	v.ps.set(VesicaLensArea, area)
	v.ps.set(VesicaLensPerim, 4**r*alpha)
	return nil
}

// Drawing returns the lens construction: the two generating circles are
// the primary polygonless payload, so the drawing uses the circle family
// for the first circle and guides for the second plus the chord.
func (v *Vesica) Drawing(cfg DrawConfig) Drawing {
	r := v.ps.value(VesicaRadius)
	sep := v.ps.value(VesicaSeparation)
	if r == nil || sep == nil || v.ps.value(VesicaLensArea) == nil {
		return emptyDrawing()
	}

	c1, c2 := vesicaCenters(*sep)
	pts, ok := geom.CircleCircleIntersection(c1, *r, c2, *r)
	if !ok || len(pts) < 2 {
		return emptyDrawing()
	}

	return Drawing{
		Family: FamilyCircle,
		Center: c1,
		Radius: *r,
		Guides: []Guide{
			{Group: GuideRadius, Color: cfg.color(GuideRadius), From: c2, Point: true},
			cfg.guideLine(GuideChord, pts[0], pts[1]),
			cfg.guideLine(GuideAxis, c1, c2),
		},
	}
}

// Labels annotates the lens area at the origin (the lens center).
func (v *Vesica) Labels() []Label {
	area := v.ps.value(VesicaLensArea)
	if area == nil {
		return nil
	}
	return []Label{dimensionLabel("A", *area, "mm²", 2, geom.Point2D{})}
}
