package shape

import (
	"fmt"

	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/polygon"
)

// Point-backed polygon property keys.
const (
	PointPolyVertices  Key = "vertices"
	PointPolyPerimeter Key = "perimeter"
	PointPolyArea      Key = "area"
)

// PointPolygon is an irregular polygon backed by an explicit ordered
// vertex array. Vertices are edited through indexed accessors rather
// than per-vertex named properties, so the property set stays fixed
// while the vertex count changes. All scalar properties are derived.
type PointPolygon struct {
	ps  propertySet
	pts []geom.Point2D
}

var _ Solver = (*PointPolygon)(nil)

// NewPointPolygon returns a polygon over a copy of the given vertices.
func NewPointPolygon(pts []geom.Point2D) *PointPolygon {
	p := &PointPolygon{ps: newPropertySet(
		derived("Vertices", PointPolyVertices, "", 0),
		derived("Perimeter", PointPolyPerimeter, "mm", 2),
		derived("Area", PointPolyArea, "mm²", 2),
	)}
	p.pts = append(p.pts, pts...)
	p.recompute()
	return p
}

func (p *PointPolygon) Kind() Kind             { return KindPolygon }
func (p *PointPolygon) Properties() []Property { return p.ps.snapshot() }

// Clear removes all vertices and resets every property.
func (p *PointPolygon) Clear() {
	p.pts = nil
	p.ps.clearAll()
}

// VertexCount returns the number of vertices.
func (p *PointPolygon) VertexCount() int { return len(p.pts) }

// Vertex returns vertex i.
func (p *PointPolygon) Vertex(i int) geom.Point2D { return p.pts[i] }

// SetVertex moves vertex i and re-derives the scalar properties.
func (p *PointPolygon) SetVertex(i int, pt geom.Point2D) error {
	if i < 0 || i >= len(p.pts) {
		return fmt.Errorf("vertex index %d out of range [0,%d)", i, len(p.pts))
	}
	p.pts[i] = pt
	p.recompute()
	return nil
}

// Validate rejects every key: a point-backed polygon has no editable
// scalar properties.
func (p *PointPolygon) Validate(key Key, value float64) error {
	return p.ps.checkKnownEditable(key)
}

// SetProperty always fails; mutation happens through SetVertex.
func (p *PointPolygon) SetProperty(key Key, value float64) error {
	return p.Validate(key, value)
}

func (p *PointPolygon) recompute() {
	if len(p.pts) < 3 {
		p.ps.clearAll()
		return
	}
	p.ps.set(PointPolyVertices, float64(len(p.pts)))
	p.ps.set(PointPolyPerimeter, polygon.Perimeter(p.pts))
	p.ps.set(PointPolyArea, polygon.Area(p.pts))
}

// Drawing returns the polygon outline.
func (p *PointPolygon) Drawing(cfg DrawConfig) Drawing {
	if len(p.pts) < 3 {
		return emptyDrawing()
	}
	pts := make([]geom.Point2D, len(p.pts))
	copy(pts, p.pts)
	return Drawing{Family: FamilyPolygon, Points: pts}
}

// Labels annotates the area at the centroid. The centroid fallback for
// degenerate vertex sets is still a defined position.
func (p *PointPolygon) Labels() []Label {
	area := p.ps.value(PointPolyArea)
	if area == nil {
		return nil
	}
	c, _ := polygon.Centroid(p.pts)
	return []Label{dimensionLabel("A", *area, "mm²", 2, c)}
}
