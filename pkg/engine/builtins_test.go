package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/figura/pkg/scene"
	"github.com/chazu/figura/pkg/shape"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keyword", "(set-prop f :radius 5)", `(set_prop f "__kw_radius" 5)`},
		{"kebab identifier", "(remove-figure f)", "(remove_figure f)"},
		{"minus untouched", "(- 5 3)", "(- 5 3)"},
		{"negative literal", "(point -1 2)", "(point -1 2)"},
		{"string untouched", `(figure "regular-polygon")`, `(figure "regular-polygon")`},
		{"keyword in string untouched", `(f ":radius")`, `(f ":radius")`},
		{"semicolon comment", "(+ 1 2) ; note\n", "(+ 1 2) // note\n"},
		{"double semicolon comment", ";; header\n(x)", "// header\n(x)"},
		{"backtick literal untouched", "(f `set-prop :radius`)", "(f `set-prop :radius`)"},
		{"escaped quote inside string", `(f "a\":b")`, `(f "a\":b")`},
		{"assignment preserved", "(x := 3)", "(x := 3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.in); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Builtins, driven end to end through Evaluate
// ---------------------------------------------------------------------------

// evalOK evaluates source and fails the test on any error.
func evalOK(t *testing.T, source string) *scene.Scene {
	t.Helper()
	sc, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return sc
}

// evalFails evaluates source and returns the first error message.
func evalFails(t *testing.T, source string) string {
	t.Helper()
	sc, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatalf("expected eval errors, got scene with %d figures", sc.Count())
	}
	return evalErrs[0].Message
}

// figureProp digs a property value out of a named figure.
func figureProp(t *testing.T, sc *scene.Scene, name string, key shape.Key) float64 {
	t.Helper()
	f := sc.Lookup(name)
	if f == nil {
		t.Fatalf("no figure named %q", name)
	}
	for _, p := range f.Solver.Properties() {
		if p.Key == key {
			if p.Value == nil {
				t.Fatalf("figure %q: property %q is unset", name, key)
			}
			return *p.Value
		}
	}
	t.Fatalf("figure %q has no property %q", name, key)
	return 0
}

func TestFigureBuiltin(t *testing.T) {
	sc := evalOK(t, `(figure "circle" :name "c")`)
	f := sc.Lookup("c")
	if f == nil {
		t.Fatal("figure not registered under its name")
	}
	if f.Solver.Kind() != shape.KindCircle {
		t.Errorf("kind = %q, want circle", f.Solver.Kind())
	}
}

func TestFigureUnknownKind(t *testing.T) {
	msg := evalFails(t, `(figure "dodecahedron")`)
	if !strings.Contains(msg, "unknown figure kind") {
		t.Errorf("error %q does not mention the unknown kind", msg)
	}
}

func TestSetPropDerives(t *testing.T) {
	sc := evalOK(t, `
(def c (figure "circle" :name "c"))
(set-prop c :radius 5)
`)
	if got := figureProp(t, sc, "c", shape.CircleArea); math.Abs(got-25*math.Pi) > 1e-9 {
		t.Errorf("area = %v, want 25π", got)
	}
}

func TestSetPropChaining(t *testing.T) {
	// set-prop returns the figure, so edits chain through nesting.
	sc := evalOK(t, `
(set-prop (set-prop (figure "rectangle" :name "r") :width 3) :height 4)
`)
	if got := figureProp(t, sc, "r", shape.RectDiagonal); math.Abs(got-5) > 1e-9 {
		t.Errorf("diagonal = %v, want 5", got)
	}
}

func TestSetPropRejectsBadValue(t *testing.T) {
	msg := evalFails(t, `
(def c (figure "circle"))
(set-prop c :radius -1)
`)
	if !strings.Contains(msg, "positive") {
		t.Errorf("error %q does not explain the domain violation", msg)
	}
}

func TestSetPropInfeasible(t *testing.T) {
	msg := evalFails(t, `
(def v (figure "vesica"))
(set-prop v :radius 5)
(set-prop v :separation 12)
`)
	if !strings.Contains(msg, "lens") {
		t.Errorf("error %q does not explain the infeasibility", msg)
	}
}

func TestPropReadsBack(t *testing.T) {
	sc := evalOK(t, `
(def p (figure "regular-polygon" :sides 6 :name "hex"))
(set-prop p :side 2)
(def a (prop p :apothem))
`)
	// The apothem of a side-2 hexagon is √3.
	if got := figureProp(t, sc, "hex", shape.PolyApothem); math.Abs(got-math.Sqrt(3)) > 1e-9 {
		t.Errorf("apothem = %v, want √3", got)
	}
}

func TestPrismSidesKeyword(t *testing.T) {
	sc := evalOK(t, `
(def p (figure "prism" :sides 6 :name "col"))
(set-prop p :side 2)
(set-prop p :height 3)
`)
	want := 18 * math.Sqrt(3) // hexagon area 6√3 times height 3
	if got := figureProp(t, sc, "col", shape.PrismVolume); math.Abs(got-want) > 1e-9 {
		t.Errorf("volume = %v, want %v", got, want)
	}
}

func TestPolygonBuiltin(t *testing.T) {
	sc := evalOK(t, `
(polygon (point 0 0) (point 4 0) (point 4 3) (point 0 3) :name "plot")
`)
	f := sc.Lookup("plot")
	if f == nil {
		t.Fatal("polygon not registered")
	}
	// Four vertices build a quadrilateral solver.
	if f.Solver.Kind() != shape.KindQuadrilateral {
		t.Errorf("kind = %q, want quadrilateral", f.Solver.Kind())
	}
	if got := figureProp(t, sc, "plot", shape.QuadArea); math.Abs(got-12) > 1e-9 {
		t.Errorf("area = %v, want 12", got)
	}
}

func TestPolygonTooFewVertices(t *testing.T) {
	msg := evalFails(t, `(polygon (point 0 0) (point 1 0))`)
	if !strings.Contains(msg, "3 vertices") {
		t.Errorf("error %q does not mention the vertex minimum", msg)
	}
}

func TestClearBuiltin(t *testing.T) {
	sc := evalOK(t, `
(def c (figure "circle" :name "c"))
(set-prop c :radius 5)
(clear c)
`)
	f := sc.Lookup("c")
	for _, p := range f.Solver.Properties() {
		if p.Value != nil {
			t.Errorf("property %q survived clear", p.Key)
		}
	}
}

func TestRemoveFigureBuiltin(t *testing.T) {
	sc := evalOK(t, `
(def c (figure "circle" :name "c"))
(remove-figure c)
`)
	if sc.Count() != 0 {
		t.Errorf("scene has %d figures after remove, want 0", sc.Count())
	}
}

func TestClassifyBuiltin(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"right triangle", `(classify (list (point 0 0) (point 3 0) (point 0 4)))`, "right-triangle"},
		{"square", `(classify (list (point 0 0) (point 1 0) (point 1 1) (point 0 1)))`, "square"},
		{"too few", `(classify (list (point 0 0) (point 1 0)))`, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Use the class string as a figure name so the result is
			// observable from outside the sandbox.
			source := `(figure "circle" :name ` + tt.source + `)`
			sc := evalOK(t, source)
			if sc.Lookup(tt.want) == nil {
				t.Errorf("classification did not produce %q", tt.want)
			}
		})
	}
}

func TestDuplicateFigureName(t *testing.T) {
	msg := evalFails(t, `
(figure "circle" :name "twin")
(figure "circle" :name "twin")
`)
	if !strings.Contains(msg, "already in use") {
		t.Errorf("error %q does not mention the name collision", msg)
	}
}
