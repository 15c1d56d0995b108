package preview

import (
	"testing"

	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/kernel"
	"github.com/chazu/figura/pkg/scene"
	"github.com/chazu/figura/pkg/shape"
)

// fakeSolid records the calls that produced it.
type fakeSolid struct {
	kind string
}

func (s *fakeSolid) BoundingBox() (min, max [3]float64) { return }

// fakeKernel is a recording kernel; ToMesh returns a single marker
// triangle so callers can tell kernel output from exact meshes.
type fakeKernel struct {
	cylinders  int
	extrusions int
}

func (k *fakeKernel) Box(x, y, z float64) kernel.Solid { return &fakeSolid{kind: "box"} }

func (k *fakeKernel) Cylinder(height, radius float64, _ int) kernel.Solid {
	k.cylinders++
	return &fakeSolid{kind: "cylinder"}
}

func (k *fakeKernel) ExtrudePolygon(outline []geom.Point2D, height float64) (kernel.Solid, error) {
	k.extrusions++
	return &fakeSolid{kind: "extrusion"}, nil
}

func (k *fakeKernel) Union(a, _ kernel.Solid) kernel.Solid        { return a }
func (k *fakeKernel) Difference(a, _ kernel.Solid) kernel.Solid   { return a }
func (k *fakeKernel) Intersection(a, _ kernel.Solid) kernel.Solid { return a }

func (k *fakeKernel) Translate(s kernel.Solid, _, _, _ float64) kernel.Solid { return s }
func (k *fakeKernel) Rotate(s kernel.Solid, _, _, _ float64) kernel.Solid    { return s }

func (k *fakeKernel) ToMesh(_ kernel.Solid) (*kernel.Mesh, error) {
	return &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}, nil
}

var _ kernel.Kernel = (*fakeKernel)(nil)

func mustFigure(t *testing.T, sc *scene.Scene, name string, s shape.Solver) *scene.Figure {
	t.Helper()
	id, err := sc.Add(name, s)
	if err != nil {
		t.Fatalf("Add(%q): %v", name, err)
	}
	return sc.Get(id)
}

func TestFigureCircleUsesKernel(t *testing.T) {
	k := &fakeKernel{}
	sc := scene.New()
	c := shape.NewCircle()
	if err := c.SetProperty(shape.CircleRadius, 5); err != nil {
		t.Fatal(err)
	}
	f := mustFigure(t, sc, "disc", c)

	m, err := Figure(k, f)
	if err != nil {
		t.Fatalf("Figure: %v", err)
	}
	if k.cylinders != 1 {
		t.Errorf("cylinder calls = %d, want 1", k.cylinders)
	}
	if m.FigureName != "disc" {
		t.Errorf("FigureName = %q, want disc", m.FigureName)
	}
}

func TestFigurePolygonExtrudes(t *testing.T) {
	k := &fakeKernel{}
	sc := scene.New()
	tr := shape.NewTriangleFromSides(3, 4, 5)
	f := mustFigure(t, sc, "tri", tr)

	if _, err := Figure(k, f); err != nil {
		t.Fatalf("Figure: %v", err)
	}
	if k.extrusions != 1 {
		t.Errorf("extrusion calls = %d, want 1", k.extrusions)
	}
}

func TestFigureSolidBypassesKernel(t *testing.T) {
	k := &fakeKernel{}
	sc := scene.New()
	tet := shape.NewTetrahedron()
	if err := tet.SetProperty(shape.SolidEdge, 2); err != nil {
		t.Fatal(err)
	}
	f := mustFigure(t, sc, "tet", tet)

	m, err := Figure(k, f)
	if err != nil {
		t.Fatalf("Figure: %v", err)
	}
	if k.cylinders != 0 || k.extrusions != 0 {
		t.Error("solid figure went through the kernel")
	}
	// Four triangular faces, exact triangulation.
	if got := m.TriangleCount(); got != 4 {
		t.Errorf("TriangleCount = %d, want 4", got)
	}
}

func TestFigureUninitializedSkipped(t *testing.T) {
	k := &fakeKernel{}
	sc := scene.New()
	f := mustFigure(t, sc, "blank", shape.NewCircle())

	m, err := Figure(k, f)
	if err != nil {
		t.Fatalf("Figure: %v", err)
	}
	if m != nil {
		t.Error("uninitialized figure produced a mesh")
	}
}

func TestSceneOnePerConsistentFigure(t *testing.T) {
	k := &fakeKernel{}
	sc := scene.New()

	c := shape.NewCircle()
	if err := c.SetProperty(shape.CircleRadius, 1); err != nil {
		t.Fatal(err)
	}
	mustFigure(t, sc, "a", c)
	mustFigure(t, sc, "b", shape.NewRectangle()) // stays uninitialized

	meshes, err := Scene(k, sc)
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("len(meshes) = %d, want 1", len(meshes))
	}
	if meshes[0].FigureName != "a" {
		t.Errorf("FigureName = %q, want a", meshes[0].FigureName)
	}
}

func TestSceneNil(t *testing.T) {
	meshes, err := Scene(&fakeKernel{}, nil)
	if err != nil || meshes != nil {
		t.Errorf("Scene(nil) = %v, %v; want nil, nil", meshes, err)
	}
}
