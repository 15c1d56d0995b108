package shape

import (
	"math"

	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/mesh"
)

// Pyramid property keys.
const (
	PyramidBaseSide    Key = "base-side"
	PyramidHeight      Key = "height"
	PyramidVolume      Key = "volume"
	PyramidSlant       Key = "slant-height"
	PyramidBaseArea    Key = "base-area"
	PyramidLateralArea Key = "lateral-area"
	PyramidSurfaceArea Key = "surface-area"
)

// Pyramid is a right square pyramid. Base side and height are the
// fundamental inputs; volume is also editable and re-derives the height
// over the fixed base. Volume and surface metrics run through the mesh
// kernel on the exact face-list mesh.
type Pyramid struct {
	ps propertySet
}

var _ Solver = (*Pyramid)(nil)

// NewPyramid returns an uninitialized square pyramid.
func NewPyramid() *Pyramid {
	return &Pyramid{ps: newPropertySet(
		editable("Base side", PyramidBaseSide, "mm", 2),
		editable("Height", PyramidHeight, "mm", 2),
		editable("Volume", PyramidVolume, "mm³", 2),
		derived("Slant height", PyramidSlant, "mm", 2),
		derived("Base area", PyramidBaseArea, "mm²", 2),
		derived("Lateral area", PyramidLateralArea, "mm²", 2),
		derived("Surface area", PyramidSurfaceArea, "mm²", 2),
	)}
}

func (p *Pyramid) Kind() Kind             { return KindPyramid }
func (p *Pyramid) Properties() []Property { return p.ps.snapshot() }
func (p *Pyramid) Clear()                 { p.ps.clearAll() }

// Validate checks the domain predicate without touching state.
func (p *Pyramid) Validate(key Key, value float64) error {
	if err := p.ps.checkKnownEditable(key); err != nil {
		return err
	}
	return requirePositive(key, value)
}

// SetProperty routes the edit; a volume edit re-derives the height from
// the current base (infeasible when no base side is known yet).
func (p *Pyramid) SetProperty(key Key, value float64) error {
	if err := p.Validate(key, value); err != nil {
		return err
	}

	switch key {
	case PyramidBaseSide, PyramidHeight:
		p.ps.set(key, value)
	case PyramidVolume:
		side := p.ps.value(PyramidBaseSide)
		if side == nil {
			p.ps.clearDerived()
			return infeasible("volume needs a base side to derive the height from")
		}
		p.ps.set(PyramidHeight, 3*value/(*side**side))
	}

	p.recompute()
	return nil
}

// recompute publishes the derived set when both inputs are present.
func (p *Pyramid) recompute() {
	side := p.ps.value(PyramidBaseSide)
	height := p.ps.value(PyramidHeight)
	if side == nil || height == nil {
		p.ps.clearDerived()
		return
	}

	m := buildPyramidMesh(*side, *height)
	slant := math.Hypot(*height, *side/2)
	p.ps.set(PyramidSlant, slant)
	p.ps.set(PyramidBaseArea, *side**side)
	p.ps.set(PyramidLateralArea, 2**side*slant)
	p.ps.set(PyramidSurfaceArea, m.SurfaceArea())
	p.ps.set(PyramidVolume, m.Volume())
}

// buildPyramidMesh constructs the exact face-list mesh, base centered at
// the origin and the apex above it.
func buildPyramidMesh(side, height float64) *mesh.Mesh {
	h := side / 2
	base := []geom.Point2D{
		{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h},
	}
	return mesh.Pyramid(base, geom.Vec3{Z: height})
}

// Mesh returns the exact face-list mesh, or nil when inconsistent.
func (p *Pyramid) Mesh() *mesh.Mesh {
	side := p.ps.value(PyramidBaseSide)
	height := p.ps.value(PyramidHeight)
	if side == nil || height == nil {
		return nil
	}
	return buildPyramidMesh(*side, *height)
}

// Drawing returns the mesh payload with derived edges.
func (p *Pyramid) Drawing(cfg DrawConfig) Drawing {
	m := p.Mesh()
	if m == nil {
		return emptyDrawing()
	}
	return meshDrawing(m)
}

// Labels annotates base side and height.
func (p *Pyramid) Labels() []Label {
	side := p.ps.value(PyramidBaseSide)
	height := p.ps.value(PyramidHeight)
	if side == nil || height == nil {
		return nil
	}
	return []Label{
		dimensionLabel("s", *side, "mm", 2, geom.Point2D{Y: -*side / 2}),
		dimensionLabel("h", *height, "mm", 2, geom.Point2D{}),
	}
}
