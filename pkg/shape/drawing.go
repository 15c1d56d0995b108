package shape

import (
	"fmt"
	"strconv"

	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/mesh"
)

// Family tags the primary primitive of a drawing payload. The rendering
// layer draws nothing for FamilyEmpty; it is not an error.
type Family string

const (
	FamilyEmpty   Family = "empty"
	FamilyCircle  Family = "circle"
	FamilyPolygon Family = "polygon"
	FamilyMesh    Family = "mesh"
)

// GuideGroup classifies auxiliary construction guides so the renderer
// can style them per group.
type GuideGroup string

const (
	GuideRadius   GuideGroup = "radius"
	GuideDiagonal GuideGroup = "diagonal"
	GuideChord    GuideGroup = "chord"
	GuideAxis     GuideGroup = "axis"
)

// Guide is one auxiliary annotation primitive: a line segment or a
// highlighted point.
type Guide struct {
	Group GuideGroup   `json:"group"`
	Color string       `json:"color"`
	From  geom.Point2D `json:"from"`
	To    geom.Point2D `json:"to"`
	Point bool         `json:"point"` // highlighted point at From; To ignored
}

// DrawConfig carries presentation defaults into the drawing builders.
// It is always passed explicitly; the engine keeps no global palette.
type DrawConfig struct {
	GuideColors map[GuideGroup]string
}

// DefaultDrawConfig returns the standard guide palette.
func DefaultDrawConfig() DrawConfig {
	return DrawConfig{
		GuideColors: map[GuideGroup]string{
			GuideRadius:   "#4A90D9",
			GuideDiagonal: "#E67E22",
			GuideChord:    "#2ECC71",
			GuideAxis:     "#9B59B6",
		},
	}
}

// color resolves the palette color for a group, empty when unconfigured.
func (c DrawConfig) color(g GuideGroup) string {
	if c.GuideColors == nil {
		return ""
	}
	return c.GuideColors[g]
}

// guideLine builds a line guide colored from the config palette.
func (c DrawConfig) guideLine(g GuideGroup, from, to geom.Point2D) Guide {
	return Guide{Group: g, Color: c.color(g), From: from, To: to}
}

// MeshPrimitive is the vertex/edge/face payload for solid figures.
type MeshPrimitive struct {
	Vertices []geom.Vec3 `json:"vertices"`
	Edges    [][2]int    `json:"edges"`
	Faces    []mesh.Face `json:"faces"`
}

// Drawing is the shape-agnostic payload handed to the rendering layer.
// Exactly one primary primitive is populated according to Family.
type Drawing struct {
	Family Family         `json:"family"`
	Center geom.Point2D   `json:"center,omitempty"`
	Radius float64        `json:"radius,omitempty"`
	Points []geom.Point2D `json:"points,omitempty"`
	Mesh   *MeshPrimitive `json:"mesh,omitempty"`
	Guides []Guide        `json:"guides,omitempty"`
}

// emptyDrawing is returned whenever a figure has no consistent geometry.
func emptyDrawing() Drawing {
	return Drawing{Family: FamilyEmpty}
}

// meshDrawing builds a mesh payload with derived edges.
func meshDrawing(m *mesh.Mesh) Drawing {
	return Drawing{
		Family: FamilyMesh,
		Mesh: &MeshPrimitive{
			Vertices: m.Vertices,
			Edges:    mesh.Edges(m.Faces),
			Faces:    m.Faces,
		},
	}
}

// projectXY drops a 3D point onto the annotation plane.
func projectXY(v geom.Vec3) geom.Point2D {
	return geom.Point2D{X: v.X, Y: v.Y}
}

// Label is one annotation string positioned in the figure's local frame.
type Label struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// formatValue renders a property value at its declared precision.
func formatValue(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// dimensionLabel builds a "name = value unit" annotation.
func dimensionLabel(name string, v float64, unit string, precision int, at geom.Point2D) Label {
	text := fmt.Sprintf("%s = %s", name, formatValue(v, precision))
	if unit != "" {
		text += " " + unit
	}
	return Label{Text: text, X: at.X, Y: at.Y}
}
