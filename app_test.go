package main

import (
	"math"
	"strings"
	"testing"
)

// mustCreate adds a figure through the binding layer.
func mustCreate(t *testing.T, app *App, kind string, sides int, name string) string {
	t.Helper()
	id, err := app.CreateFigure(kind, sides, name)
	if err != nil {
		t.Fatalf("CreateFigure(%q): %v", kind, err)
	}
	return id
}

// findProp returns the value of a property from a Figures() listing.
func findProp(t *testing.T, app *App, id, key string) *float64 {
	t.Helper()
	for _, f := range app.Figures() {
		if f.ID != id {
			continue
		}
		for _, p := range f.Properties {
			if string(p.Key) == key {
				return p.Value
			}
		}
		t.Fatalf("figure %s has no property %q", id, key)
	}
	t.Fatalf("figure %s not listed", id)
	return nil
}

func TestCreateAndEditFigure(t *testing.T) {
	app := NewApp()
	id := mustCreate(t, app, "circle", 0, "c")

	res := app.SetProperty(id, "radius", 5)
	if !res.OK {
		t.Fatalf("SetProperty rejected: %+v", res)
	}

	area := findProp(t, app, id, "area")
	if area == nil || math.Abs(*area-25*math.Pi) > 1e-9 {
		t.Errorf("area = %v, want 25π", area)
	}
}

func TestCreateUnknownKind(t *testing.T) {
	app := NewApp()
	if _, err := app.CreateFigure("enneagram", 0, ""); err == nil {
		t.Fatal("unknown kind accepted")
	}
}

func TestSetPropertyOutcomes(t *testing.T) {
	app := NewApp()
	id := mustCreate(t, app, "vesica", 0, "")

	tests := []struct {
		name       string
		key        string
		value      float64
		ok         bool
		infeasible bool
	}{
		{"radius accepted", "radius", 5, true, false},
		{"negative rejected", "separation", -1, false, false},
		{"no lens", "separation", 12, false, true},
		{"recovery", "separation", 6, true, false},
		{"unknown key", "girth", 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := app.SetProperty(id, tt.key, tt.value)
			if res.OK != tt.ok || res.Infeasible != tt.infeasible {
				t.Fatalf("SetProperty(%s, %v) = %+v, want ok=%v infeasible=%v",
					tt.key, tt.value, res, tt.ok, tt.infeasible)
			}
			if !res.OK && res.Reason == "" {
				t.Error("rejected edit carries no reason")
			}
		})
	}
}

func TestSetPropertyMissingFigure(t *testing.T) {
	app := NewApp()
	res := app.SetProperty("no-such-id", "radius", 1)
	if res.OK || !strings.Contains(res.Reason, "not found") {
		t.Errorf("SetProperty on missing figure = %+v", res)
	}
}

func TestRemoveFigure(t *testing.T) {
	app := NewApp()
	id := mustCreate(t, app, "circle", 0, "gone")
	app.RemoveFigure(id)
	if n := len(app.Figures()); n != 0 {
		t.Errorf("Figures() lists %d after remove, want 0", n)
	}
}

func TestDrawingAndLabels(t *testing.T) {
	app := NewApp()
	id := mustCreate(t, app, "regular-polygon", 6, "hex")

	d, err := app.Drawing(id)
	if err != nil {
		t.Fatalf("Drawing: %v", err)
	}
	if d.Family != "empty" {
		t.Errorf("uninitialized family = %q, want empty", d.Family)
	}

	if res := app.SetProperty(id, "side", 2); !res.OK {
		t.Fatalf("SetProperty: %+v", res)
	}
	d, err = app.Drawing(id)
	if err != nil {
		t.Fatalf("Drawing: %v", err)
	}
	if d.Family != "polygon" || len(d.Points) != 6 {
		t.Errorf("drawing = %q family with %d points, want polygon/6", d.Family, len(d.Points))
	}

	labels, err := app.Labels(id)
	if err != nil {
		t.Fatalf("Labels: %v", err)
	}
	if len(labels) == 0 {
		t.Error("consistent figure has no labels")
	}
}

func TestClassifyBinding(t *testing.T) {
	app := NewApp()
	got := app.Classify([]PointData{{}, {X: 3}, {Y: 4}})
	if got != "right-triangle" {
		t.Errorf("Classify = %q, want right-triangle", got)
	}
	if got := app.Classify(nil); got != "none" {
		t.Errorf("Classify(nil) = %q, want none", got)
	}
}

func TestDetectFigure(t *testing.T) {
	app := NewApp()

	res, err := app.DetectFigure([]PointData{{}, {X: 4}, {X: 4, Y: 3}, {Y: 3}}, "drawn")
	if err != nil {
		t.Fatalf("DetectFigure: %v", err)
	}
	if res.Class != "rectangle" || res.ID == "" {
		t.Fatalf("DetectFigure = %+v, want rectangle with an id", res)
	}

	area := findProp(t, app, res.ID, "area")
	if area == nil || math.Abs(*area-12) > 1e-9 {
		t.Errorf("detected area = %v, want 12", area)
	}
}

func TestDetectFigureNoFigure(t *testing.T) {
	app := NewApp()
	res, err := app.DetectFigure([]PointData{{}, {X: 1}}, "")
	if err != nil {
		t.Fatalf("DetectFigure: %v", err)
	}
	if res.Class != "none" || res.ID != "" {
		t.Errorf("DetectFigure on two points = %+v, want none without id", res)
	}
}

func TestPreviewSolidFigure(t *testing.T) {
	app := NewApp()
	id := mustCreate(t, app, "tetrahedron", 0, "tet")
	if res := app.SetProperty(id, "edge", 2); !res.OK {
		t.Fatalf("SetProperty: %+v", res)
	}

	meshes, err := app.Preview()
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("len(meshes) = %d, want 1", len(meshes))
	}
	m := meshes[0]
	if m.FigureName != "tet" {
		t.Errorf("FigureName = %q, want tet", m.FigureName)
	}
	if len(m.Vertices) == 0 || len(m.Normals) == 0 || len(m.Indices) == 0 {
		t.Error("preview mesh has empty geometry")
	}
	if m.Color == "" {
		t.Error("preview mesh has no color")
	}
}

func TestEvaluateEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
	// Slices must be non-nil so JSON serializes as [] not null.
	if result.Meshes == nil {
		t.Error("Meshes should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	app := NewApp()

	// Valid code on line 1, broken code on line 2 so line info is meaningful.
	result := app.Evaluate("(+ 1 2)\n(figure \"circle\"")

	if len(result.Errors) == 0 {
		t.Fatal("expected errors for unmatched paren")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}
	if result.Errors[0].Message == "" {
		t.Error("error message is empty")
	}
}

func TestEvaluateReplacesScene(t *testing.T) {
	app := NewApp()
	mustCreate(t, app, "circle", 0, "interactive")

	source := `
(def tet (figure "tetrahedron" :name "scripted"))
(set-prop tet :edge 2)
`
	result := app.Evaluate(source)
	if len(result.Errors) != 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("len(meshes) = %d, want 1", len(result.Meshes))
	}
	if result.Meshes[0].FigureName != "scripted" {
		t.Errorf("FigureName = %q, want scripted", result.Meshes[0].FigureName)
	}

	// The interactive figure is gone: scripts define the whole scene.
	figs := app.Figures()
	if len(figs) != 1 || figs[0].Name != "scripted" {
		t.Errorf("scene not replaced by evaluation: %+v", figs)
	}
}
