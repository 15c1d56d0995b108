package engine

import (
	"errors"
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/figura/pkg/classify"
	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/scene"
	"github.com/chazu/figura/pkg/shape"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites Figura Lisp surface syntax into the form
// zygomys parses: :keyword becomes the "__kw_keyword" string literal the
// builtins recognize, kebab-case identifiers become underscore form
// (zygomys reads a bare hyphen as subtraction), and ; line comments
// become //. String literals pass through untouched, and := survives as
// the assignment operator.
func preprocessSource(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/4)
	for i := 0; i < len(b); {
		switch {
		case b[i] == '"':
			out, i = copyQuoted(out, b, i, '"', true)
		case b[i] == '`':
			out, i = copyQuoted(out, b, i, '`', false)
		case b[i] == ';':
			out, i = rewriteComment(out, b, i)
		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2
		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			out, i = rewriteKeyword(out, b, i)
		case b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]):
			// A hyphen between identifier characters is part of a
			// kebab-case name, not a minus operator.
			out = append(out, '_')
			i++
		default:
			out = append(out, b[i])
			i++
		}
	}
	return string(out)
}

// copyQuoted copies a quoted literal verbatim through the closing
// quote. Double-quoted strings honor backslash escapes; backtick
// strings do not.
func copyQuoted(out, b []byte, i int, quote byte, escapes bool) ([]byte, int) {
	out = append(out, b[i])
	i++
	for i < len(b) && b[i] != quote {
		if escapes && b[i] == '\\' && i+1 < len(b) {
			out = append(out, b[i], b[i+1])
			i += 2
			continue
		}
		out = append(out, b[i])
		i++
	}
	if i < len(b) {
		out = append(out, b[i])
		i++
	}
	return out, i
}

// rewriteComment turns a ; line comment (including ;; style) into the
// // form zygomys reads, up to but not including the newline.
func rewriteComment(out, b []byte, i int) ([]byte, int) {
	out = append(out, '/', '/')
	for i < len(b) && b[i] == ';' {
		i++
	}
	for i < len(b) && b[i] != '\n' {
		out = append(out, b[i])
		i++
	}
	return out, i
}

// rewriteKeyword turns :name into its "__kw_name" string literal. The
// caller guarantees a letter follows the colon.
func rewriteKeyword(out, b []byte, i int) ([]byte, int) {
	j := i + 1
	for j < len(b) && isKWChar(b[j]) {
		j++
	}
	out = append(out, '"')
	out = append(out, kwPrefix...)
	out = append(out, b[i+1:j]...)
	out = append(out, '"')
	return out, j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpFigureRef wraps a scene.FigureID so figures can be passed between
// builtins.
type sexpFigureRef struct {
	id   scene.FigureID
	name string // human-readable name for error messages
}

func (f *sexpFigureRef) SexpString(ps *zygo.PrintState) string {
	if f.name != "" {
		return fmt.Sprintf("(figure %q)", f.name)
	}
	return fmt.Sprintf("(figure %s)", f.id)
}
func (f *sexpFigureRef) Type() *zygo.RegisteredType { return nil }

// sexpPoint wraps a 2D point for vertex lists.
type sexpPoint struct {
	pt geom.Point2D
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %g %g)", p.pt.X, p.pt.Y)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_radius) and plain strings ("radius").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toFigure resolves a figure reference against the scene.
func toFigure(sc *scene.Scene, s zygo.Sexp) (*scene.Figure, error) {
	ref, ok := s.(*sexpFigureRef)
	if !ok {
		return nil, fmt.Errorf("expected figure reference, got %T (%s)", s, s.SexpString(nil))
	}
	f := sc.Get(ref.id)
	if f == nil {
		return nil, fmt.Errorf("figure %s no longer exists", ref.SexpString(nil))
	}
	return f, nil
}

// toPoint extracts a Point2D from a sexpPoint.
func toPoint(s zygo.Sexp) (geom.Point2D, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.pt, nil
	}
	return geom.Point2D{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

// toPoints converts a list/array of sexpPoint to a Go slice.
func toPoints(s zygo.Sexp) ([]geom.Point2D, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	pts := make([]geom.Point2D, 0, len(items))
	for i, item := range items {
		pt, err := toPoint(item)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		pts = append(pts, pt)
	}
	return pts, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Figure construction
// ---------------------------------------------------------------------------

// sidesOrDefault reads an optional :sides keyword as an integer count.
func sidesOrDefault(pa kwArgs, def int) (int, error) {
	v, ok := pa.kw["sides"]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("sides: %w", err)
	}
	return int(f), nil
}

// newSolver constructs an uninitialized solver for a figure kind name.
func newSolver(kind string, pa kwArgs) (shape.Solver, error) {
	switch shape.Kind(kind) {
	case shape.KindCircle:
		return shape.NewCircle(), nil
	case shape.KindRegularPoly:
		n, err := sidesOrDefault(pa, 3)
		if err != nil {
			return nil, err
		}
		return shape.NewRegularPolygon(n), nil
	case shape.KindRectangle:
		return shape.NewRectangle(), nil
	case shape.KindTriangle:
		return shape.NewTriangle(), nil
	case shape.KindKite:
		return shape.NewKite(), nil
	case shape.KindDart:
		return shape.NewDart(), nil
	case shape.KindVesica:
		return shape.NewVesica(), nil
	case shape.KindPrism:
		n, err := sidesOrDefault(pa, 4)
		if err != nil {
			return nil, err
		}
		return shape.NewPrism(n), nil
	case shape.KindPyramid:
		return shape.NewPyramid(), nil
	case shape.KindTetrahedron:
		return shape.NewTetrahedron(), nil
	case shape.KindCuboctahedron:
		return shape.NewCuboctahedron(), nil
	}
	return nil, fmt.Errorf("unknown figure kind %q", kind)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all Figura DSL builtins into a zygomys
// environment. The builtins operate on the provided scene, populating it
// during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene) {

	// -----------------------------------------------------------------------
	// (figure "circle")
	// (figure "prism" :sides 6 :name "column")
	// -----------------------------------------------------------------------
	env.AddFunction("figure", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("figure requires a kind argument")
		}
		kind, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: kind: %w", err)
		}

		solver, err := newSolver(kind, pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: %w", err)
		}

		figName := ""
		if v, ok := pa.kw["name"]; ok {
			figName, err = toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("figure: name: %w", err)
			}
		}

		id, err := sc.Add(figName, solver)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: %w", err)
		}
		return &sexpFigureRef{id: id, name: figName}, nil
	})

	// -----------------------------------------------------------------------
	// (point 3 4)
	// -----------------------------------------------------------------------
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("point requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: y: %w", err)
		}
		return &sexpPoint{pt: geom.Point2D{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon (point 0 0) (point 4 0) (point 4 3) :name "plot")
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		pts := make([]geom.Point2D, 0, len(pa.positional))
		for i, item := range pa.positional {
			pt, err := toPoint(item)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: vertex %d: %w", i, err)
			}
			pts = append(pts, pt)
		}
		if len(pts) < 3 {
			return zygo.SexpNull, fmt.Errorf("polygon requires at least 3 vertices, got %d", len(pts))
		}

		figName := ""
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: name: %w", err)
			}
			figName = s
		}

		var solver shape.Solver
		if len(pts) == 4 {
			solver = shape.NewQuadrilateral([4]geom.Point2D{pts[0], pts[1], pts[2], pts[3]})
		} else {
			solver = shape.NewPointPolygon(pts)
		}

		id, err := sc.Add(figName, solver)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		return &sexpFigureRef{id: id, name: figName}, nil
	})

	// -----------------------------------------------------------------------
	// (set-prop fig :radius 5)
	// -----------------------------------------------------------------------
	env.AddFunction("set_prop", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("set-prop requires a figure, a key and a value")
		}
		f, err := toFigure(sc, args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-prop: %w", err)
		}
		key, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-prop: key: %w", err)
		}
		value, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-prop: value: %w", err)
		}

		if err := f.Solver.SetProperty(shape.Key(key), value); err != nil {
			// An infeasible edit still changed the edited input, so the
			// scene moved even though the error is surfaced.
			if errors.Is(err, shape.ErrInfeasible) {
				sc.Touch()
			}
			return zygo.SexpNull, fmt.Errorf("set-prop: %v", err)
		}
		sc.Touch()
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (prop fig :radius) -> float or nil when unset
	// -----------------------------------------------------------------------
	env.AddFunction("prop", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("prop requires a figure and a key")
		}
		f, err := toFigure(sc, args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("prop: %w", err)
		}
		key, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("prop: key: %w", err)
		}

		for _, p := range f.Solver.Properties() {
			if p.Key == shape.Key(key) {
				if p.Value == nil {
					return zygo.SexpNull, nil
				}
				return &zygo.SexpFloat{Val: *p.Value}, nil
			}
		}
		return zygo.SexpNull, fmt.Errorf("prop: %s has no property %q", f.Solver.Kind(), key)
	})

	// -----------------------------------------------------------------------
	// (props fig) -> array of (key value) pairs, value nil when unset
	// -----------------------------------------------------------------------
	env.AddFunction("props", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("props requires a figure")
		}
		f, err := toFigure(sc, args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("props: %w", err)
		}

		props := f.Solver.Properties()
		rows := make([]zygo.Sexp, 0, len(props))
		for _, p := range props {
			var val zygo.Sexp = zygo.SexpNull
			if p.Value != nil {
				val = &zygo.SexpFloat{Val: *p.Value}
			}
			rows = append(rows, &zygo.SexpArray{
				Val: []zygo.Sexp{&zygo.SexpStr{S: string(p.Key)}, val},
			})
		}
		return &zygo.SexpArray{Val: rows}, nil
	})

	// -----------------------------------------------------------------------
	// (clear fig)
	// -----------------------------------------------------------------------
	env.AddFunction("clear", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("clear requires a figure")
		}
		f, err := toFigure(sc, args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("clear: %w", err)
		}
		f.Solver.Clear()
		sc.Touch()
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (remove-figure fig)
	// -----------------------------------------------------------------------
	env.AddFunction("remove_figure", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("remove-figure requires a figure")
		}
		ref, ok := args[0].(*sexpFigureRef)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("remove-figure: expected figure reference, got %T", args[0])
		}
		sc.Remove(ref.id)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (classify (list (point 0 0) (point 1 0) (point 0 1))) -> class name
	// -----------------------------------------------------------------------
	env.AddFunction("classify", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("classify requires a point list")
		}
		pts, err := toPoints(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("classify: %w", err)
		}
		return &zygo.SexpStr{S: string(classify.Classify(pts))}, nil
	})
}
