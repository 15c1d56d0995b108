package shape

import (
	"math"

	"github.com/chazu/figura/pkg/mesh"
)

// Edge-driven solid property keys, shared by the tetrahedron and the
// cuboctahedron: both are fully determined by a single edge length.
const (
	SolidEdge        Key = "edge"
	SolidSurfaceArea Key = "surface-area"
	SolidVolume      Key = "volume"
)

// edgeSolid is the shared solver for uniform solids with one degree of
// freedom. The canonical intermediate is the edge length; surface area
// and volume are editable too and invert to the edge in closed form.
// All metrics run through the mesh kernel on the exact face-list mesh.
type edgeSolid struct {
	ps   propertySet
	kind Kind
	// build constructs the face-list mesh for an edge length.
	build func(edge float64) *mesh.Mesh
	// edgeFromVolume and edgeFromArea are the closed-form inverses.
	edgeFromVolume func(v float64) float64
	edgeFromArea   func(a float64) float64
}

var _ Solver = (*edgeSolid)(nil)

// NewTetrahedron returns an uninitialized regular tetrahedron.
func NewTetrahedron() Solver {
	return &edgeSolid{
		ps:    newEdgeSolidProps(),
		kind:  KindTetrahedron,
		build: mesh.Tetrahedron,
		// V = a³ / (6√2)
		edgeFromVolume: func(v float64) float64 { return math.Cbrt(6 * math.Sqrt2 * v) },
		// A = √3 · a²
		edgeFromArea: func(a float64) float64 { return math.Sqrt(a / math.Sqrt(3)) },
	}
}

// NewCuboctahedron returns an uninitialized cuboctahedron, the
// representative Archimedean solid.
func NewCuboctahedron() Solver {
	return &edgeSolid{
		ps:    newEdgeSolidProps(),
		kind:  KindCuboctahedron,
		build: mesh.Cuboctahedron,
		// V = (5/3)√2 · a³
		edgeFromVolume: func(v float64) float64 { return math.Cbrt(3 * v / (5 * math.Sqrt2)) },
		// A = (6 + 2√3) · a²
		edgeFromArea: func(a float64) float64 { return math.Sqrt(a / (6 + 2*math.Sqrt(3))) },
	}
}

func newEdgeSolidProps() propertySet {
	return newPropertySet(
		editable("Edge", SolidEdge, "mm", 2),
		editable("Surface area", SolidSurfaceArea, "mm²", 2),
		editable("Volume", SolidVolume, "mm³", 2),
	)
}

func (s *edgeSolid) Kind() Kind             { return s.kind }
func (s *edgeSolid) Properties() []Property { return s.ps.snapshot() }
func (s *edgeSolid) Clear()                 { s.ps.clearAll() }

// Validate checks the domain predicate without touching state.
func (s *edgeSolid) Validate(key Key, value float64) error {
	if err := s.ps.checkKnownEditable(key); err != nil {
		return err
	}
	return requirePositive(key, value)
}

// SetProperty derives the edge from the edited key and recomputes the
// full set through the mesh kernel.
func (s *edgeSolid) SetProperty(key Key, value float64) error {
	if err := s.Validate(key, value); err != nil {
		return err
	}

	var edge float64
	switch key {
	case SolidEdge:
		edge = value
	case SolidVolume:
		edge = s.edgeFromVolume(value)
	case SolidSurfaceArea:
		edge = s.edgeFromArea(value)
	}

	m := s.build(edge)
	s.ps.set(SolidEdge, edge)
	s.ps.set(SolidSurfaceArea, m.SurfaceArea())
	s.ps.set(SolidVolume, m.Volume())
	return nil
}

// Mesh returns the exact face-list mesh, or nil when uninitialized.
func (s *edgeSolid) Mesh() *mesh.Mesh {
	edge := s.ps.value(SolidEdge)
	if edge == nil {
		return nil
	}
	return s.build(*edge)
}

// Drawing returns the mesh payload with derived edges.
func (s *edgeSolid) Drawing(cfg DrawConfig) Drawing {
	m := s.Mesh()
	if m == nil {
		return emptyDrawing()
	}
	return meshDrawing(m)
}

// Labels annotates the edge at the midpoint of the first derived edge,
// projected to the xy plane.
func (s *edgeSolid) Labels() []Label {
	m := s.Mesh()
	if m == nil {
		return nil
	}
	edge := s.ps.value(SolidEdge)
	e := mesh.Edges(m.Faces)[0]
	mid := m.Vertices[e[0]].Add(m.Vertices[e[1]]).Scale(0.5)
	return []Label{
		dimensionLabel("a", *edge, "mm", 2, projectXY(mid)),
	}
}
