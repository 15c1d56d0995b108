// Package preview turns figures into render-ready triangle meshes. Flat
// figures are swept into thin slabs through the geometry kernel; solid
// figures bypass the kernel entirely and triangulate their exact
// face-list meshes. The preview path is presentation only and never
// feeds back into measured values.
package preview

import (
	"fmt"

	"github.com/chazu/figura/pkg/kernel"
	"github.com/chazu/figura/pkg/mesh"
	"github.com/chazu/figura/pkg/scene"
	"github.com/chazu/figura/pkg/shape"
)

// planarThickness is the slab depth used to preview flat figures.
const planarThickness = 1.0

// circleSegments is the tessellation hint for circular previews.
// SDF-backed kernels ignore it.
const circleSegments = 64

// Scene produces one mesh per consistent figure in stable listing
// order. Figures without geometry yet are skipped; they are not an
// error.
func Scene(k kernel.Kernel, sc *scene.Scene) ([]*kernel.Mesh, error) {
	if sc == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, f := range sc.Figures() {
		m, err := Figure(k, f)
		if err != nil {
			return nil, fmt.Errorf("preview: figure %s: %w", f.ID, err)
		}
		if m == nil {
			continue
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// Figure builds the preview mesh for one figure, or nil when the figure
// has no consistent geometry yet.
func Figure(k kernel.Kernel, f *scene.Figure) (*kernel.Mesh, error) {
	if f == nil || f.Solver == nil {
		return nil, nil
	}

	d := f.Solver.Drawing(shape.DefaultDrawConfig())

	var m *kernel.Mesh
	switch d.Family {
	case shape.FamilyEmpty:
		return nil, nil

	case shape.FamilyCircle:
		solid := k.Cylinder(planarThickness, d.Radius, circleSegments)
		solid = k.Translate(solid, d.Center.X, d.Center.Y, 0)
		var err error
		m, err = k.ToMesh(solid)
		if err != nil {
			return nil, err
		}

	case shape.FamilyPolygon:
		solid, err := k.ExtrudePolygon(d.Points, planarThickness)
		if err != nil {
			return nil, err
		}
		m, err = k.ToMesh(solid)
		if err != nil {
			return nil, err
		}

	case shape.FamilyMesh:
		m = kernel.FromFaceMesh(&mesh.Mesh{
			Vertices: d.Mesh.Vertices,
			Faces:    d.Mesh.Faces,
		})

	default:
		return nil, fmt.Errorf("unknown drawing family %q", d.Family)
	}

	m.FigureName = displayName(f)
	return m, nil
}

// displayName prefers the user-assigned name, falling back to the ID.
func displayName(f *scene.Figure) string {
	if f.Name != "" {
		return f.Name
	}
	return string(f.ID)
}
