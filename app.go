package main

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/chazu/figura/pkg/classify"
	"github.com/chazu/figura/pkg/engine"
	"github.com/chazu/figura/pkg/geom"
	"github.com/chazu/figura/pkg/kernel"
	"github.com/chazu/figura/pkg/kernel/sdfx"
	"github.com/chazu/figura/pkg/preview"
	"github.com/chazu/figura/pkg/scene"
	"github.com/chazu/figura/pkg/shape"
)

// colorPalette is a default palette used to assign distinct colors to figures.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via
// bindings. The interactive API mutates one long-lived scene; the
// Evaluate binding replaces that scene wholesale with the result of a
// script run.
type App struct {
	ctx    context.Context
	mu     sync.Mutex
	scene  *scene.Scene
	engine *engine.Engine
	kernel kernel.Kernel
	log    *logrus.Logger
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices   []float32 `json:"vertices"`
	Normals    []float32 `json:"normals"`
	Indices    []uint32  `json:"indices"`
	FigureName string    `json:"figureName"`
	Color      string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// SetResult reports the outcome of a property edit. A rejected edit is
// a normal result, not an exception: the frontend shows the reason
// inline next to the field.
type SetResult struct {
	OK         bool   `json:"ok"`
	Infeasible bool   `json:"infeasible"`
	Reason     string `json:"reason,omitempty"`
}

// FigureData describes one figure for property-panel rendering.
type FigureData struct {
	ID         string           `json:"id"`
	Name       string           `json:"name,omitempty"`
	Kind       string           `json:"kind"`
	Properties []shape.Property `json:"properties"`
}

// PointData is a 2D point received from the frontend.
type PointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &App{
		scene:  scene.New(),
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
		log:    log,
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.log.Info("figura backend started")
}

// CreateFigure adds an empty figure of the given kind and returns its
// handle. Kinds with a base cardinality (regular polygons, prisms) take
// it through sides; other kinds ignore it.
func (a *App) CreateFigure(kind string, sides int, name string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	solver, err := newSolverForKind(kind, sides)
	if err != nil {
		a.log.WithField("kind", kind).Warn("create rejected: ", err)
		return "", err
	}

	id, err := a.scene.Add(name, solver)
	if err != nil {
		return "", err
	}
	a.log.WithFields(logrus.Fields{"kind": kind, "id": id}).Debug("figure created")
	return string(id), nil
}

// newSolverForKind maps a kind name to a fresh solver.
func newSolverForKind(kind string, sides int) (shape.Solver, error) {
	switch shape.Kind(kind) {
	case shape.KindCircle:
		return shape.NewCircle(), nil
	case shape.KindRegularPoly:
		return shape.NewRegularPolygon(sides), nil
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
		return shape.NewPrism(sides), nil
	case shape.KindPyramid:
		return shape.NewPyramid(), nil
	case shape.KindTetrahedron:
		return shape.NewTetrahedron(), nil
	case shape.KindCuboctahedron:
		return shape.NewCuboctahedron(), nil
	}
	return nil, errors.New("unknown figure kind: " + kind)
}

// RemoveFigure deletes a figure from the scene.
func (a *App) RemoveFigure(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scene.Remove(scene.FigureID(id))
}

// SetProperty applies a property edit and reports the outcome. Rejected
// and infeasible edits come back as structured results so the frontend
// can annotate the input field instead of raising a dialog.
func (a *App) SetProperty(id, key string, value float64) SetResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	f := a.scene.Get(scene.FigureID(id))
	if f == nil {
		return SetResult{Reason: "figure not found"}
	}

	err := f.Solver.SetProperty(shape.Key(key), value)
	if err == nil {
		a.scene.Touch()
		return SetResult{OK: true}
	}

	if errors.Is(err, shape.ErrInfeasible) {
		// The edited input was stored; only the derived values are gone.
		a.scene.Touch()
		return SetResult{Infeasible: true, Reason: err.Error()}
	}
	return SetResult{Reason: err.Error()}
}

// Figures lists every figure with its current property snapshot.
func (a *App) Figures() []FigureData {
	a.mu.Lock()
	defer a.mu.Unlock()

	figs := a.scene.Figures()
	out := make([]FigureData, 0, len(figs))
	for _, f := range figs {
		out = append(out, FigureData{
			ID:         string(f.ID),
			Name:       f.Name,
			Kind:       string(f.Solver.Kind()),
			Properties: f.Solver.Properties(),
		})
	}
	return out
}

// Drawing returns the drawing payload for one figure.
func (a *App) Drawing(id string) (shape.Drawing, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f := a.scene.Get(scene.FigureID(id))
	if f == nil {
		return shape.Drawing{}, errors.New("figure not found")
	}
	return f.Solver.Drawing(shape.DefaultDrawConfig()), nil
}

// Labels returns the measurement annotations for one figure.
func (a *App) Labels(id string) ([]shape.Label, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f := a.scene.Get(scene.FigureID(id))
	if f == nil {
		return nil, errors.New("figure not found")
	}
	return f.Solver.Labels(), nil
}

// Classify names the most specific figure class of a vertex list drawn
// on the canvas.
func (a *App) Classify(points []PointData) string {
	return string(classify.Classify(toGeomPoints(points)))
}

// DetectResult reports a canvas detection: the class name and, when the
// points form a figure, the id of the solver added to the scene.
type DetectResult struct {
	Class string `json:"class"`
	ID    string `json:"id,omitempty"`
}

// DetectFigure classifies a drawn vertex list and, if it forms a
// figure, adds a solver seeded from the points to the scene.
func (a *App) DetectFigure(points []PointData, name string) (DetectResult, error) {
	class, solver := classify.Detect(toGeomPoints(points))
	if solver == nil {
		return DetectResult{Class: string(class)}, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	id, err := a.scene.Add(name, solver)
	if err != nil {
		return DetectResult{}, err
	}
	a.log.WithFields(logrus.Fields{"class": class, "id": id}).Debug("figure detected")
	return DetectResult{Class: string(class), ID: string(id)}, nil
}

func toGeomPoints(points []PointData) []geom.Point2D {
	pts := make([]geom.Point2D, len(points))
	for i, p := range points {
		pts[i] = geom.Point2D{X: p.X, Y: p.Y}
	}
	return pts
}

// Preview produces one render mesh per consistent figure in the scene.
func (a *App) Preview() ([]MeshData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.previewLocked(a.scene)
}

// previewLocked builds the frontend mesh list; the caller holds the lock.
func (a *App) previewLocked(sc *scene.Scene) ([]MeshData, error) {
	meshes, err := preview.Scene(a.kernel, sc)
	if err != nil {
		a.log.Error("preview failed: ", err)
		return nil, err
	}

	out := make([]MeshData, 0, len(meshes))
	for i, m := range meshes {
		out = append(out, MeshData{
			Vertices:   m.Vertices,
			Normals:    m.Normals,
			Indices:    m.Indices,
			FigureName: m.FigureName,
			Color:      colorPalette[i%len(colorPalette)],
		})
	}
	return out, nil
}

// Evaluate takes Lisp source, replaces the scene with the script's
// result, and returns mesh data + errors. This is the binding called by
// the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes: []MeshData{},
		Errors: []EvalErrorData{},
	}

	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluate fatal error: ", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	a.mu.Lock()
	a.scene = sc
	meshes, perr := a.previewLocked(sc)
	a.mu.Unlock()

	if perr != nil {
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "preview failed: " + perr.Error(),
		})
		return result
	}

	result.Meshes = meshes
	return result
}
