package kernel

import "github.com/chazu/figura/pkg/mesh"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices   []float32 `json:"vertices"`   // [x0,y0,z0, x1,y1,z1, ...]
	Normals    []float32 `json:"normals"`    // [nx0,ny0,nz0, ...]
	Indices    []uint32  `json:"indices"`    // [i0,i1,i2, ...] triangles
	FigureName string    `json:"figureName"` // which scene figure this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// FromFaceMesh converts an exact face-list mesh into a render mesh by
// fanning each face into triangles. Vertices are duplicated per face so
// every triangle carries its flat face normal; faces must be planar and
// convex, which holds for all solids the engine constructs.
func FromFaceMesh(fm *mesh.Mesh) *Mesh {
	out := &Mesh{}
	if fm == nil {
		return out
	}

	for _, face := range fm.Faces {
		if len(face) < 3 {
			continue
		}
		n := fm.FaceNormal(face)
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)

		for i := 1; i < len(face)-1; i++ {
			for _, vi := range []int{face[0], face[i], face[i+1]} {
				v := fm.Vertices[vi]
				base := uint32(len(out.Vertices) / 3)
				out.Vertices = append(out.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
				out.Normals = append(out.Normals, nx, ny, nz)
				out.Indices = append(out.Indices, base)
			}
		}
	}
	return out
}
