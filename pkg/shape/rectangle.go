package shape

import (
	"math"

	"github.com/chazu/figura/pkg/geom"
)

// Rectangle property keys.
const (
	RectWidth     Key = "width"
	RectHeight    Key = "height"
	RectArea      Key = "area"
	RectPerimeter Key = "perimeter"
	RectDiagonal  Key = "diagonal"
)

// Rectangle has two independent editable dimensions; area, perimeter and
// diagonal are derived. Derived values stay nil until both dimensions
// are known.
type Rectangle struct {
	ps propertySet
}

var _ Solver = (*Rectangle)(nil)

// NewRectangle returns an uninitialized rectangle.
func NewRectangle() *Rectangle {
	return &Rectangle{ps: newPropertySet(
		editable("Width", RectWidth, "mm", 2),
		editable("Height", RectHeight, "mm", 2),
		derived("Area", RectArea, "mm²", 2),
		derived("Perimeter", RectPerimeter, "mm", 2),
		derived("Diagonal", RectDiagonal, "mm", 2),
	)}
}

func (r *Rectangle) Kind() Kind             { return KindRectangle }
func (r *Rectangle) Properties() []Property { return r.ps.snapshot() }
func (r *Rectangle) Clear()                 { r.ps.clearAll() }

// Validate checks the domain predicate without touching state.
func (r *Rectangle) Validate(key Key, value float64) error {
	if err := r.ps.checkKnownEditable(key); err != nil {
		return err
	}
	return requirePositive(key, value)
}

// SetProperty stores the edited dimension and, once both dimensions are
// present, publishes the derived set atomically.
func (r *Rectangle) SetProperty(key Key, value float64) error {
	if err := r.Validate(key, value); err != nil {
		return err
	}
	r.ps.set(key, value)

	w := r.ps.value(RectWidth)
	h := r.ps.value(RectHeight)
	if w == nil || h == nil {
		return nil
	}
	r.ps.set(RectArea, *w**h)
	r.ps.set(RectPerimeter, 2*(*w+*h))
	r.ps.set(RectDiagonal, math.Hypot(*w, *h))
	return nil
}

// corners returns the rectangle outline centered at the origin, or nil
// when a dimension is missing.
func (r *Rectangle) corners() []geom.Point2D {
	w := r.ps.value(RectWidth)
	h := r.ps.value(RectHeight)
	if w == nil || h == nil {
		return nil
	}
	hw, hh := *w/2, *h/2
	return []geom.Point2D{
		{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh},
	}
}

// Drawing returns the outline with both diagonals as guides.
func (r *Rectangle) Drawing(cfg DrawConfig) Drawing {
	pts := r.corners()
	if pts == nil {
		return emptyDrawing()
	}
	return Drawing{
		Family: FamilyPolygon,
		Points: pts,
		Guides: []Guide{
			cfg.guideLine(GuideDiagonal, pts[0], pts[2]),
			cfg.guideLine(GuideDiagonal, pts[1], pts[3]),
		},
	}
}

// Labels annotates width below the bottom edge and height beside the
// right edge.
func (r *Rectangle) Labels() []Label {
	pts := r.corners()
	if pts == nil {
		return nil
	}
	w := r.ps.value(RectWidth)
	h := r.ps.value(RectHeight)
	return []Label{
		dimensionLabel("w", *w, "mm", 2, geom.Point2D{Y: pts[0].Y}),
		dimensionLabel("h", *h, "mm", 2, geom.Point2D{X: pts[1].X}),
	}
}
