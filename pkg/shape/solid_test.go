package shape

import (
	"errors"
	"math"
	"testing"
)

func TestPrismHexagonal(t *testing.T) {
	p := NewPrism(6)
	setAll(t, p, map[Key]float64{
		PrismSide:   2,
		PrismHeight: 3,
	})
	baseArea := 6 * math.Sqrt(3) // 6 · (√3/4) · 2²
	if got := propValue(t, p, PrismBaseArea); !almostEqual(got, baseArea, 1e-9) {
		t.Errorf("base area = %v, want %v", got, baseArea)
	}
	if got := propValue(t, p, PrismVolume); !almostEqual(got, 3*baseArea, 1e-9) {
		t.Errorf("volume = %v, want %v", got, 3*baseArea)
	}
	if got := propValue(t, p, PrismLateralArea); !almostEqual(got, 36, 1e-9) {
		t.Errorf("lateral area = %v, want 36", got)
	}
	if got := propValue(t, p, PrismSurfaceArea); !almostEqual(got, 36+2*baseArea, 1e-9) {
		t.Errorf("surface area = %v, want %v", got, 36+2*baseArea)
	}
}

func TestPrismVolumeEditDerivesHeight(t *testing.T) {
	p := NewPrism(4)
	setAll(t, p, map[Key]float64{
		PrismSide:   2,
		PrismHeight: 1,
	})
	if err := p.SetProperty(PrismVolume, 20); err != nil {
		t.Fatalf("SetProperty(volume): %v", err)
	}
	// Square base of area 4: the height must become 5.
	if got := propValue(t, p, PrismHeight); !almostEqual(got, 5, 1e-9) {
		t.Errorf("height = %v, want 5", got)
	}
	if got := propValue(t, p, PrismVolume); !almostEqual(got, 20, 1e-9) {
		t.Errorf("volume = %v, want 20", got)
	}
}

func TestPrismVolumeBeforeSideInfeasible(t *testing.T) {
	p := NewPrism(4)
	if err := p.SetProperty(PrismVolume, 20); !errors.Is(err, ErrInfeasible) {
		t.Fatalf("SetProperty(volume) error = %v, want ErrInfeasible", err)
	}
}

func TestPrismDrawingIsMesh(t *testing.T) {
	p := NewPrism(6)
	setAll(t, p, map[Key]float64{
		PrismSide:   2,
		PrismHeight: 3,
	})
	d := p.Drawing(DefaultDrawConfig())
	if d.Family != FamilyMesh {
		t.Fatalf("family = %q, want mesh", d.Family)
	}
	if len(d.Mesh.Vertices) != 12 {
		t.Errorf("len(vertices) = %d, want 12", len(d.Mesh.Vertices))
	}
	if len(d.Mesh.Edges) != 18 {
		t.Errorf("len(edges) = %d, want 18", len(d.Mesh.Edges))
	}
	if len(d.Mesh.Faces) != 8 {
		t.Errorf("len(faces) = %d, want 8", len(d.Mesh.Faces))
	}
}

func TestPyramidMetrics(t *testing.T) {
	p := NewPyramid()
	setAll(t, p, map[Key]float64{
		PyramidBaseSide: 2,
		PyramidHeight:   3,
	})
	if got := propValue(t, p, PyramidVolume); !almostEqual(got, 4, 1e-9) {
		t.Errorf("volume = %v, want 4", got)
	}
	slant := math.Hypot(3, 1)
	if got := propValue(t, p, PyramidSlant); !almostEqual(got, slant, 1e-9) {
		t.Errorf("slant = %v, want %v", got, slant)
	}
	if got := propValue(t, p, PyramidSurfaceArea); !almostEqual(got, 4+4*slant, 1e-9) {
		t.Errorf("surface area = %v, want %v", got, 4+4*slant)
	}
}

func TestPyramidVolumeEditDerivesHeight(t *testing.T) {
	p := NewPyramid()
	setAll(t, p, map[Key]float64{
		PyramidBaseSide: 2,
		PyramidHeight:   3,
	})
	if err := p.SetProperty(PyramidVolume, 8); err != nil {
		t.Fatalf("SetProperty(volume): %v", err)
	}
	if got := propValue(t, p, PyramidHeight); !almostEqual(got, 6, 1e-9) {
		t.Errorf("height = %v, want 6", got)
	}
}

func TestTetrahedronFromEdge(t *testing.T) {
	s := NewTetrahedron()
	if err := s.SetProperty(SolidEdge, 2); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	// V = a³/(6√2), A = √3·a²
	if got := propValue(t, s, SolidVolume); !almostEqual(got, 0.9428090, 1e-6) {
		t.Errorf("volume = %v, want 0.9428090", got)
	}
	if got := propValue(t, s, SolidSurfaceArea); !almostEqual(got, 4*math.Sqrt(3), 1e-9) {
		t.Errorf("surface area = %v, want 4√3", got)
	}
}

func TestCuboctahedronFromEdge(t *testing.T) {
	s := NewCuboctahedron()
	if err := s.SetProperty(SolidEdge, math.Sqrt2); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	if got := propValue(t, s, SolidVolume); !almostEqual(got, 20.0/3, 1e-9) {
		t.Errorf("volume = %v, want 20/3", got)
	}
	if got := propValue(t, s, SolidSurfaceArea); !almostEqual(got, 12+4*math.Sqrt(3), 1e-9) {
		t.Errorf("surface area = %v, want 12+4√3", got)
	}
}

func TestEdgeSolidRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		make func() Solver
	}{
		{"tetrahedron", NewTetrahedron},
		{"cuboctahedron", NewCuboctahedron},
	}
	keys := []Key{SolidEdge, SolidSurfaceArea, SolidVolume}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, edit := range keys {
				for _, read := range keys {
					s := tt.make()
					if err := s.SetProperty(edit, 4.2); err != nil {
						t.Fatalf("set %s: %v", edit, err)
					}
					mid := propValue(t, s, read)
					if err := s.SetProperty(read, mid); err != nil {
						t.Fatalf("set %s: %v", read, err)
					}
					if got := propValue(t, s, edit); !relEqual(got, 4.2, 1e-9) {
						t.Errorf("%s -> %s round trip: got %v, want 4.2", edit, read, got)
					}
				}
			}
		})
	}
}
