package shape

import (
	"math"

	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/mesh"
)

// RegularPolygon property keys.
const (
	PolySides        Key = "sides"
	PolySide         Key = "side"
	PolyPerimeter    Key = "perimeter"
	PolyApothem      Key = "apothem"
	PolyCircumradius Key = "circumradius"
	PolyArea         Key = "area"
)

// RegularPolygon is a regular n-gon centered at the figure-local origin.
// The canonical intermediate is the side length; every other length is
// derivable from it (and the current vertex count) in closed form.
type RegularPolygon struct {
	ps propertySet
	n  int
}

var _ Solver = (*RegularPolygon)(nil)

// NewRegularPolygon returns an uninitialized regular n-gon. n is clamped
// up to 3.
func NewRegularPolygon(n int) *RegularPolygon {
	if n < 3 {
		n = 3
	}
	p := &RegularPolygon{
		ps: newPropertySet(
			editable("Sides", PolySides, "", 0),
			editable("Side", PolySide, "mm", 2),
			editable("Perimeter", PolyPerimeter, "mm", 2),
			editable("Apothem", PolyApothem, "mm", 2),
			editable("Circumradius", PolyCircumradius, "mm", 2),
			editable("Area", PolyArea, "mm²", 2),
		),
		n: n,
	}
	p.ps.set(PolySides, float64(n))
	return p
}

func (p *RegularPolygon) Kind() Kind             { return KindRegularPoly }
func (p *RegularPolygon) Properties() []Property { return p.ps.snapshot() }

// Sides returns the current vertex count.
func (p *RegularPolygon) Sides() int { return p.n }

// Clear resets every length to nil. The vertex count survives a clear;
// it is the figure's cardinality, not a derived measurement.
func (p *RegularPolygon) Clear() {
	p.ps.clearAll()
	p.ps.set(PolySides, float64(p.n))
}

// Validate checks the domain predicate without touching state.
func (p *RegularPolygon) Validate(key Key, value float64) error {
	if err := p.ps.checkKnownEditable(key); err != nil {
		return err
	}
	if key == PolySides {
		return requireCount(key, value, 3)
	}
	return requirePositive(key, value)
}

// SetProperty derives the side length from the edited key and recomputes
// the full property set. Editing the vertex count keeps the current side
// length and re-derives everything else for the new n.
func (p *RegularPolygon) SetProperty(key Key, value float64) error {
	if err := p.Validate(key, value); err != nil {
		return err
	}

	if key == PolySides {
		p.n = int(value)
		p.ps.set(PolySides, value)
		if side := p.ps.value(PolySide); side != nil {
			p.recompute(*side)
		} else {
			p.ps.clearDerived()
		}
		return nil
	}

	n := float64(p.n)
	tan := math.Tan(math.Pi / n)

	var side float64
	switch key {
	case PolySide:
		side = value
	case PolyPerimeter:
		side = value / n
	case PolyApothem:
		side = 2 * value * tan
	case PolyCircumradius:
		side = 2 * value * math.Sin(math.Pi/n)
	case PolyArea:
		// A = n·s² / (4·tan(π/n))
		side = math.Sqrt(4 * value * tan / n)
	}

	p.recompute(side)
	return nil
}

// recompute publishes the full consistent set from the side length.
func (p *RegularPolygon) recompute(side float64) {
	n := float64(p.n)
	tan := math.Tan(math.Pi / n)
	apothem := side / (2 * tan)

	p.ps.set(PolySide, side)
	p.ps.set(PolyPerimeter, n*side)
	p.ps.set(PolyApothem, apothem)
	p.ps.set(PolyCircumradius, side/(2*math.Sin(math.Pi/n)))
	p.ps.set(PolyArea, n*side*side/(4*tan))
}

// points returns the polygon vertices, or nil when uninitialized.
func (p *RegularPolygon) points() []geom.Point2D {
	r := p.ps.value(PolyCircumradius)
	if r == nil {
		return nil
	}
	return mesh.RegularPolygonPoints(p.n, *r)
}

// Drawing returns the polygon outline with circumradius and apothem
// guide lines.
func (p *RegularPolygon) Drawing(cfg DrawConfig) Drawing {
	pts := p.points()
	if pts == nil {
		return emptyDrawing()
	}
	mid := pts[0].Add(pts[1]).Scale(0.5)
	return Drawing{
		Family: FamilyPolygon,
		Points: pts,
		Guides: []Guide{
			cfg.guideLine(GuideRadius, geom.Point2D{}, pts[0]),
			cfg.guideLine(GuideAxis, geom.Point2D{}, mid),
		},
	}
}

// Labels annotates the side along the first edge and the apothem.
func (p *RegularPolygon) Labels() []Label {
	pts := p.points()
	if pts == nil {
		return nil
	}
	side := p.ps.value(PolySide)
	apothem := p.ps.value(PolyApothem)
	mid := pts[0].Add(pts[1]).Scale(0.5)
	return []Label{
		dimensionLabel("s", *side, "mm", 2, mid),
		dimensionLabel("a", *apothem, "mm", 2, mid.Scale(0.5)),
	}
}
