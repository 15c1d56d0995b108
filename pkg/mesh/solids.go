package mesh

import (
	"math"

	"github.com/chazu/figura/pkg/geom"
)

// RegularPolygonPoints returns the n vertices of a regular n-gon with the
// given circumradius, centered at the origin, counter-clockwise, with the
// first vertex on the positive x axis.
func RegularPolygonPoints(n int, circumradius float64) []geom.Point2D {
	pts := make([]geom.Point2D, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Point2D{X: circumradius * math.Cos(a), Y: circumradius * math.Sin(a)}
	}
	return pts
}

// Prism extrudes a counter-clockwise base polygon from z=0 to z=height.
// The result is closed and consistently wound outward.
func Prism(base []geom.Point2D, height float64) *Mesh {
	n := len(base)
	m := &Mesh{Vertices: make([]geom.Vec3, 0, 2*n)}
	for _, p := range base {
		m.Vertices = append(m.Vertices, geom.Vec3{X: p.X, Y: p.Y})
	}
	for _, p := range base {
		m.Vertices = append(m.Vertices, geom.Vec3{X: p.X, Y: p.Y, Z: height})
	}

	// Bottom winds clockwise so its normal points down.
	bottom := make(Face, n)
	top := make(Face, n)
	for i := 0; i < n; i++ {
		bottom[i] = n - 1 - i
		top[i] = n + i
	}
	m.Faces = append(m.Faces, bottom, top)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.Faces = append(m.Faces, Face{i, j, n + j, n + i})
	}
	return m
}

// Pyramid builds a pyramid from a counter-clockwise base polygon at z=0
// and an apex point. The result is closed and consistently wound outward
// for an apex above the base interior.
func Pyramid(base []geom.Point2D, apex geom.Vec3) *Mesh {
	n := len(base)
	m := &Mesh{Vertices: make([]geom.Vec3, 0, n+1)}
	for _, p := range base {
		m.Vertices = append(m.Vertices, geom.Vec3{X: p.X, Y: p.Y})
	}
	m.Vertices = append(m.Vertices, apex)

	bottom := make(Face, n)
	for i := 0; i < n; i++ {
		bottom[i] = n - 1 - i
	}
	m.Faces = append(m.Faces, bottom)
	for i := 0; i < n; i++ {
		m.Faces = append(m.Faces, Face{i, (i + 1) % n, n})
	}
	return m
}

// Cube builds an axis-aligned cube with the given edge length and its
// minimum corner at the origin.
func Cube(edge float64) *Mesh {
	return Prism([]geom.Point2D{
		{X: 0, Y: 0}, {X: edge, Y: 0}, {X: edge, Y: edge}, {X: 0, Y: edge},
	}, edge)
}

// Tetrahedron builds a regular tetrahedron with the given edge length,
// centered at the origin.
func Tetrahedron(edge float64) *Mesh {
	// Alternate cube corners (±1,±1,±1) give edge 2√2.
	s := edge / (2 * math.Sqrt2)
	return &Mesh{
		Vertices: []geom.Vec3{
			{X: s, Y: s, Z: s},
			{X: s, Y: -s, Z: -s},
			{X: -s, Y: s, Z: -s},
			{X: -s, Y: -s, Z: s},
		},
		Faces: []Face{
			{0, 1, 2},
			{0, 3, 1},
			{0, 2, 3},
			{1, 3, 2},
		},
	}
}

// Cuboctahedron builds the Archimedean cuboctahedron with the given edge
// length, centered at the origin: 12 vertices, 8 triangles, 6 squares.
func Cuboctahedron(edge float64) *Mesh {
	// Midpoints of cube edges: permutations of (±1, ±1, 0), edge √2.
	s := edge / math.Sqrt2
	v := func(x, y, z float64) geom.Vec3 {
		return geom.Vec3{X: x * s, Y: y * s, Z: z * s}
	}
	return &Mesh{
		Vertices: []geom.Vec3{
			v(1, 1, 0), v(1, -1, 0), v(-1, 1, 0), v(-1, -1, 0),
			v(1, 0, 1), v(1, 0, -1), v(-1, 0, 1), v(-1, 0, -1),
			v(0, 1, 1), v(0, 1, -1), v(0, -1, 1), v(0, -1, -1),
		},
		Faces: []Face{
			// Squares, one per cube face.
			{0, 4, 1, 5},
			{2, 7, 3, 6},
			{0, 9, 2, 8},
			{1, 10, 3, 11},
			{4, 8, 6, 10},
			{5, 11, 7, 9},
			// Triangles, one per cube corner.
			{0, 8, 4},
			{0, 5, 9},
			{1, 4, 10},
			{1, 11, 5},
			{2, 6, 8},
			{2, 9, 7},
			{3, 10, 6},
			{3, 7, 11},
		},
	}
}
