package shape

import (
	"math"

	"github.com/chazu/figura/pkg/geom"
)

// Circle property keys.
const (
	CircleRadius        Key = "radius"
	CircleDiameter      Key = "diameter"
	CircleCircumference Key = "circumference"
	CircleArea          Key = "area"
)

// Circle is a circle centered at the figure-local origin. Every property
// is editable; the canonical intermediate is the radius, derivable from
// any of them in closed form.
type Circle struct {
	ps propertySet
}

var _ Solver = (*Circle)(nil)

// NewCircle returns an uninitialized circle (all values nil).
func NewCircle() *Circle {
	return &Circle{ps: newPropertySet(
		editable("Radius", CircleRadius, "mm", 2),
		editable("Diameter", CircleDiameter, "mm", 2),
		editable("Circumference", CircleCircumference, "mm", 2),
		editable("Area", CircleArea, "mm²", 2),
	)}
}

func (c *Circle) Kind() Kind             { return KindCircle }
func (c *Circle) Properties() []Property { return c.ps.snapshot() }
func (c *Circle) Clear()                 { c.ps.clearAll() }

// Validate checks the domain predicate without touching state.
func (c *Circle) Validate(key Key, value float64) error {
	if err := c.ps.checkKnownEditable(key); err != nil {
		return err
	}
	return requirePositive(key, value)
}

// SetProperty derives the radius from the edited key and recomputes the
// full property set, including the edited key itself for round-trip
// consistency.
func (c *Circle) SetProperty(key Key, value float64) error {
	if err := c.Validate(key, value); err != nil {
		return err
	}

	var r float64
	switch key {
	case CircleRadius:
		r = value
	case CircleDiameter:
		r = value / 2
	case CircleCircumference:
		r = value / (2 * math.Pi)
	case CircleArea:
		r = math.Sqrt(value / math.Pi)
	}

	c.ps.set(CircleRadius, r)
	c.ps.set(CircleDiameter, 2*r)
	c.ps.set(CircleCircumference, 2*math.Pi*r)
	c.ps.set(CircleArea, math.Pi*r*r)
	return nil
}

// Drawing returns the circle primitive with a radius guide line.
func (c *Circle) Drawing(cfg DrawConfig) Drawing {
	r := c.ps.value(CircleRadius)
	if r == nil {
		return emptyDrawing()
	}
	return Drawing{
		Family: FamilyCircle,
		Radius: *r,
		Guides: []Guide{
			cfg.guideLine(GuideRadius, geom.Point2D{}, geom.Point2D{X: *r}),
		},
	}
}

// Labels annotates the radius at its midpoint.
func (c *Circle) Labels() []Label {
	r := c.ps.value(CircleRadius)
	if r == nil {
		return nil
	}
	return []Label{
		dimensionLabel("r", *r, "mm", 2, geom.Point2D{X: *r / 2}),
	}
}
