package shape

import (
	"math"

	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/mesh"
)

// Prism property keys.
const (
	PrismSides       Key = "sides"
	PrismSide        Key = "side"
	PrismHeight      Key = "height"
	PrismVolume      Key = "volume"
	PrismBaseArea    Key = "base-area"
	PrismLateralArea Key = "lateral-area"
	PrismSurfaceArea Key = "surface-area"
)

// Prism is a right prism over a regular n-gon base. Side and height are
// the fundamental inputs; volume is also editable and re-derives the
// height while keeping the base fixed. The surface metrics are computed
// through the mesh kernel on the exact face-list mesh.
type Prism struct {
	ps propertySet
	n  int
}

var _ Solver = (*Prism)(nil)

// NewPrism returns an uninitialized regular prism with an n-gon base.
func NewPrism(n int) *Prism {
	if n < 3 {
		n = 3
	}
	p := &Prism{
		ps: newPropertySet(
			editable("Base sides", PrismSides, "", 0),
			editable("Base side", PrismSide, "mm", 2),
			editable("Height", PrismHeight, "mm", 2),
			editable("Volume", PrismVolume, "mm³", 2),
			derived("Base area", PrismBaseArea, "mm²", 2),
			derived("Lateral area", PrismLateralArea, "mm²", 2),
			derived("Surface area", PrismSurfaceArea, "mm²", 2),
		),
		n: n,
	}
	p.ps.set(PrismSides, float64(n))
	return p
}

func (p *Prism) Kind() Kind             { return KindPrism }
func (p *Prism) Properties() []Property { return p.ps.snapshot() }

// Clear resets every length; the base cardinality survives.
func (p *Prism) Clear() {
	p.ps.clearAll()
	p.ps.set(PrismSides, float64(p.n))
}

// Validate checks the domain predicate without touching state.
func (p *Prism) Validate(key Key, value float64) error {
	if err := p.ps.checkKnownEditable(key); err != nil {
		return err
	}
	if key == PrismSides {
		return requireCount(key, value, 3)
	}
	return requirePositive(key, value)
}

// baseArea returns the regular n-gon area for a side length.
func (p *Prism) baseArea(side float64) float64 {
	n := float64(p.n)
	return n * side * side / (4 * math.Tan(math.Pi/n))
}

// SetProperty routes the edit: side and height are stored directly, a
// volume edit re-derives the height from the current base, a cardinality
// edit rebuilds the base. Editing volume before the side is known is
// infeasible: there is no base to divide by.
func (p *Prism) SetProperty(key Key, value float64) error {
	if err := p.Validate(key, value); err != nil {
		return err
	}

	switch key {
	case PrismSides:
		p.n = int(value)
		p.ps.set(PrismSides, value)
	case PrismSide, PrismHeight:
		p.ps.set(key, value)
	case PrismVolume:
		side := p.ps.value(PrismSide)
		if side == nil {
			p.ps.clearDerived()
			return infeasible("volume needs a base side to derive the height from")
		}
		p.ps.set(PrismHeight, value/p.baseArea(*side))
	}

	p.recompute()
	return nil
}

// recompute publishes the derived set when side and height are present.
func (p *Prism) recompute() {
	side := p.ps.value(PrismSide)
	height := p.ps.value(PrismHeight)
	if side == nil || height == nil {
		p.ps.clearDerived()
		return
	}

	m := p.buildMesh(*side, *height)
	base := p.baseArea(*side)
	p.ps.set(PrismBaseArea, base)
	p.ps.set(PrismLateralArea, float64(p.n)**side**height)
	p.ps.set(PrismSurfaceArea, m.SurfaceArea())
	p.ps.set(PrismVolume, m.Volume())
}

// buildMesh constructs the exact face-list mesh for the current base.
func (p *Prism) buildMesh(side, height float64) *mesh.Mesh {
	circumradius := side / (2 * math.Sin(math.Pi/float64(p.n)))
	return mesh.Prism(mesh.RegularPolygonPoints(p.n, circumradius), height)
}

// Mesh returns the exact face-list mesh, or nil when inconsistent.
func (p *Prism) Mesh() *mesh.Mesh {
	side := p.ps.value(PrismSide)
	height := p.ps.value(PrismHeight)
	if side == nil || height == nil {
		return nil
	}
	return p.buildMesh(*side, *height)
}

// Drawing returns the mesh payload with derived edges.
func (p *Prism) Drawing(cfg DrawConfig) Drawing {
	m := p.Mesh()
	if m == nil {
		return emptyDrawing()
	}
	return meshDrawing(m)
}

// Labels annotates side and height near the first base vertex.
func (p *Prism) Labels() []Label {
	side := p.ps.value(PrismSide)
	height := p.ps.value(PrismHeight)
	if side == nil || height == nil {
		return nil
	}
	m := p.Mesh()
	v0 := m.Vertices[0]
	return []Label{
		dimensionLabel("s", *side, "mm", 2, geom.Point2D{X: v0.X, Y: v0.Y}),
		dimensionLabel("h", *height, "mm", 2, geom.Point2D{X: v0.X, Y: v0.Y - *side/4}),
	}
}
