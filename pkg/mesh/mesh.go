// Package mesh computes metrics for polyhedral meshes described by
// ordered vertex and face lists. Edges are always derived from faces,
// never stored.
package mesh

import (
	"github.com/chazu/figura/pkg/geom"
)

// Face is an ordered sequence of vertex indices (length >= 3) describing
// one planar polygon of a mesh. Winding order determines the outward
// normal sign.
type Face []int

// Mesh is a polyhedral surface.
type Mesh struct {
	Vertices []geom.Vec3
	Faces    []Face
}

// NewellVector returns the unnormalized Newell sum for a face: the sum of
// edge cross contributions over consecutive vertex pairs with wraparound.
// Its direction is the face normal and its length is twice the face area.
// Newell's method stays stable on near-planar and slightly non-convex
// faces where a single 3-point cross product degenerates.
func (m *Mesh) NewellVector(f Face) geom.Vec3 {
	var n geom.Vec3
	for i := range f {
		p := m.Vertices[f[i]]
		q := m.Vertices[f[(i+1)%len(f)]]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}

// FaceNormal returns the unit outward normal of a face, or the zero
// vector for a degenerate face (see geom.Vec3.Normalize).
func (m *Mesh) FaceNormal(f Face) geom.Vec3 {
	return m.NewellVector(f).Normalize()
}

// FaceArea returns the area of a planar face: half the length of the
// Newell vector. This generalizes the 2D shoelace formula to polygons in
// arbitrary 3D planes.
func (m *Mesh) FaceArea(f Face) float64 {
	return m.NewellVector(f).Length() / 2
}

// FaceCentroid returns the vertex mean of a face.
func (m *Mesh) FaceCentroid(f Face) geom.Vec3 {
	var c geom.Vec3
	for _, i := range f {
		c = c.Add(m.Vertices[i])
	}
	return c.Scale(1 / float64(len(f)))
}

// SurfaceArea returns the sum of face areas.
func (m *Mesh) SurfaceArea() float64 {
	sum := 0.0
	for _, f := range m.Faces {
		sum += m.FaceArea(f)
	}
	return sum
}

// Volume returns the enclosed volume by the divergence theorem: each face
// contributes dot(centroid, normal) * area, and the sum is divided by 3.
//
// Precondition: the mesh is closed and consistently wound (every edge is
// shared by exactly two oppositely wound faces). This is not checked at
// runtime; an open or inconsistently wound mesh silently yields an
// incorrect volume.
func (m *Mesh) Volume() float64 {
	sum := 0.0
	for _, f := range m.Faces {
		// dot(centroid, newell)/2 == dot(centroid, normal) * area.
		sum += m.FaceCentroid(f).Dot(m.NewellVector(f)) / 2
	}
	return sum / 3
}

// Edges returns the distinct undirected edges of the face list, in first-
// seen order. An edge is an unordered pair of indices that appear
// consecutively (with wraparound) in any face; an edge shared by two
// faces appears once.
func Edges(faces []Face) [][2]int {
	seen := make(map[[2]int]bool)
	var edges [][2]int
	for _, f := range faces {
		for i := range f {
			a, b := f[i], f[(i+1)%len(f)]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if !seen[key] {
				seen[key] = true
				edges = append(edges, key)
			}
		}
	}
	return edges
}
