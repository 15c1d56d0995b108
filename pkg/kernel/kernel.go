// Package kernel defines the abstract geometry kernel interface used to
// produce render-ready preview meshes. Implementations provide solid
// modeling and boolean operations behind this interface, so the preview
// pipeline never depends on a particular backend.
//
// The kernel is a presentation facility only: measured quantities come
// from the exact closed-form solvers, never from tessellated geometry.
package kernel

import "github.com/chazu/figura/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Box and Cylinder are centered on the origin; the
	// extrusion sweeps its outline from z=0 up to z=height.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid
	ExtrudePolygon(outline []geom.Point2D, height float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
