// Package scene holds the working set of figures during a session. A
// scene maps stable handles to live solvers, tracks a version counter
// for cheap change detection, and supports user-assigned names on top
// of the generated IDs.
package scene

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/chazu/figura/pkg/shape"
)

// FigureID identifies a figure for the lifetime of a scene.
type FigureID string

// Figure pairs a solver with its scene bookkeeping.
type Figure struct {
	ID     FigureID     `json:"id"`
	Name   string       `json:"name,omitempty"`
	Solver shape.Solver `json:"-"`
}

// Scene is the figure registry. It is not safe for concurrent use; the
// application layer serializes access.
type Scene struct {
	figures   map[FigureID]*Figure
	nameIndex map[string]FigureID
	version   uint64
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		figures:   make(map[FigureID]*Figure),
		nameIndex: make(map[string]FigureID),
	}
}

// Add registers a solver and returns its generated handle. A non-empty
// name must be unique within the scene.
func (sc *Scene) Add(name string, s shape.Solver) (FigureID, error) {
	if s == nil {
		return "", fmt.Errorf("scene: nil solver")
	}
	if name != "" {
		if _, taken := sc.nameIndex[name]; taken {
			return "", fmt.Errorf("scene: name %q already in use", name)
		}
	}

	id := FigureID(uuid.NewString())
	sc.figures[id] = &Figure{ID: id, Name: name, Solver: s}
	if name != "" {
		sc.nameIndex[name] = id
	}
	sc.version++
	return id, nil
}

// Remove deletes a figure. Removing an unknown ID is a no-op.
func (sc *Scene) Remove(id FigureID) {
	f, ok := sc.figures[id]
	if !ok {
		return
	}
	if f.Name != "" {
		delete(sc.nameIndex, f.Name)
	}
	delete(sc.figures, id)
	sc.version++
}

// Get returns the figure with the given ID, or nil.
func (sc *Scene) Get(id FigureID) *Figure {
	return sc.figures[id]
}

// Lookup returns the figure with the given user-assigned name, or nil.
func (sc *Scene) Lookup(name string) *Figure {
	id, ok := sc.nameIndex[name]
	if !ok {
		return nil
	}
	return sc.figures[id]
}

// Touch bumps the version after an in-place solver mutation.
func (sc *Scene) Touch() {
	sc.version++
}

// Version returns the current change counter.
func (sc *Scene) Version() uint64 {
	return sc.version
}

// Count returns the number of figures.
func (sc *Scene) Count() int {
	return len(sc.figures)
}

// Figures returns all figures ordered by name, unnamed last by ID, so
// listings are stable across calls.
func (sc *Scene) Figures() []*Figure {
	figs := lo.Values(sc.figures)
	sort.Slice(figs, func(i, j int) bool {
		a, b := figs[i], figs[j]
		switch {
		case a.Name != "" && b.Name != "":
			return a.Name < b.Name
		case a.Name != b.Name:
			return a.Name != ""
		default:
			return a.ID < b.ID
		}
	})
	return figs
}

// Clear removes every figure.
func (sc *Scene) Clear() {
	sc.figures = make(map[FigureID]*Figure)
	sc.nameIndex = make(map[string]FigureID)
	sc.version++
}
