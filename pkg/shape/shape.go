// Package shape implements the property-reconciliation model of the
// Figura engine. Every concrete figure exposes a set of named scalar
// properties; editing any one of them re-derives the full consistent set
// from a single canonical intermediate quantity.
package shape

import (
	"errors"
	"fmt"
	"math"
)

// Kind tags a figure family.
type Kind string

const (
	KindCircle        Kind = "circle"
	KindRegularPoly   Kind = "regular-polygon"
	KindRectangle     Kind = "rectangle"
	KindTriangle      Kind = "triangle"
	KindQuadrilateral Kind = "quadrilateral"
	KindPolygon       Kind = "polygon"
	KindKite          Kind = "kite"
	KindDart          Kind = "dart"
	KindVesica        Kind = "vesica"
	KindPrism         Kind = "prism"
	KindPyramid       Kind = "pyramid"
	KindTetrahedron   Kind = "tetrahedron"
	KindCuboctahedron Kind = "cuboctahedron"
)

// Key identifies a property within one figure. Each figure declares a
// closed set of Key constants and dispatches on them; keys are never
// invented at runtime.
type Key string

// Property is a typed, named scalar owned by exactly one figure instance.
// Value is nil until the figure has received enough input to derive it.
type Property struct {
	Name      string   `json:"name"`
	Key       Key      `json:"key"`
	Value     *float64 `json:"value"`
	Unit      string   `json:"unit"`
	Editable  bool     `json:"editable"`
	Precision int      `json:"precision"`
}

// Sentinel errors distinguishing the failure taxonomy. A rejected value
// (ErrOutOfDomain, ErrReadOnly, ErrUnknownKey) leaves the figure
// untouched. An infeasible value (ErrInfeasible) was in domain but no
// consistent configuration exists; derived properties are cleared so
// stale numbers are never published.
var (
	ErrUnknownKey  = errors.New("unknown property key")
	ErrReadOnly    = errors.New("property is read-only")
	ErrOutOfDomain = errors.New("value out of domain")
	ErrInfeasible  = errors.New("geometrically infeasible")
)

// Solver is the capability every concrete figure implements.
//
// SetProperty validates, then atomically recomputes every property from
// the canonical intermediate implied by the edited key. On a nil return
// the figure is fully consistent; on ErrOutOfDomain (or ErrReadOnly,
// ErrUnknownKey) the prior state is untouched; on ErrInfeasible the
// derived properties have been cleared.
type Solver interface {
	Kind() Kind
	Properties() []Property
	Validate(key Key, value float64) error
	SetProperty(key Key, value float64) error
	Clear()
	Drawing(cfg DrawConfig) Drawing
	Labels() []Label
}

// outOfDomain builds an ErrOutOfDomain with a human-readable reason.
func outOfDomain(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrOutOfDomain, fmt.Sprintf(format, args...))
}

// infeasible builds an ErrInfeasible with a human-readable reason.
func infeasible(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInfeasible, fmt.Sprintf(format, args...))
}

// requirePositive enforces the universal rule that every geometric
// magnitude (length, radius, area, volume, count) is strictly positive.
func requirePositive(key Key, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return outOfDomain("%s must be a finite number", key)
	}
	if v <= 0 {
		return outOfDomain("%s must be positive, got %g", key, v)
	}
	return nil
}

// requireCount enforces that a value is an integer count >= min.
func requireCount(key Key, v float64, min int) error {
	if err := requirePositive(key, v); err != nil {
		return err
	}
	if v != math.Trunc(v) {
		return outOfDomain("%s must be a whole number, got %g", key, v)
	}
	if int(v) < min {
		return outOfDomain("%s must be at least %d, got %g", key, min, v)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Shared property-set scaffolding
// ---------------------------------------------------------------------------

// propertySet is the ordered key->Property store embedded by every
// concrete figure. It enforces key uniqueness and hands out snapshot
// copies so observers never alias the figure's internal state.
type propertySet struct {
	props []Property
	index map[Key]int
}

func newPropertySet(props ...Property) propertySet {
	ps := propertySet{props: props, index: make(map[Key]int, len(props))}
	for i, p := range props {
		if _, dup := ps.index[p.Key]; dup {
			panic(fmt.Sprintf("shape: duplicate property key %q", p.Key))
		}
		ps.index[p.Key] = i
	}
	return ps
}

// editable declares an editable property.
func editable(name string, key Key, unit string, precision int) Property {
	return Property{Name: name, Key: key, Unit: unit, Editable: true, Precision: precision}
}

// derived declares a read-only property.
func derived(name string, key Key, unit string, precision int) Property {
	return Property{Name: name, Key: key, Unit: unit, Precision: precision}
}

// has reports whether the key exists.
func (ps *propertySet) has(key Key) bool {
	_, ok := ps.index[key]
	return ok
}

// isEditable reports whether the key exists and is editable.
func (ps *propertySet) isEditable(key Key) bool {
	i, ok := ps.index[key]
	return ok && ps.props[i].Editable
}

// value returns the current value for key, or nil when unset.
func (ps *propertySet) value(key Key) *float64 {
	i, ok := ps.index[key]
	if !ok {
		return nil
	}
	return ps.props[i].Value
}

// set stores a value for key.
func (ps *propertySet) set(key Key, v float64) {
	i, ok := ps.index[key]
	if !ok {
		panic(fmt.Sprintf("shape: set of undeclared key %q", key))
	}
	val := v
	ps.props[i].Value = &val
}

// clearDerived resets every read-only property to nil.
func (ps *propertySet) clearDerived() {
	for i := range ps.props {
		if !ps.props[i].Editable {
			ps.props[i].Value = nil
		}
	}
}

// clearAll resets every property to nil.
func (ps *propertySet) clearAll() {
	for i := range ps.props {
		ps.props[i].Value = nil
	}
}

// snapshot returns a deep copy of the ordered property list.
func (ps *propertySet) snapshot() []Property {
	out := make([]Property, len(ps.props))
	copy(out, ps.props)
	for i, p := range ps.props {
		if p.Value != nil {
			v := *p.Value
			out[i].Value = &v
		}
	}
	return out
}

// checkKnownEditable is the shared front half of every Validate: the key
// must exist and be editable before any domain predicate runs.
func (ps *propertySet) checkKnownEditable(key Key) error {
	if !ps.has(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if !ps.isEditable(key) {
		return fmt.Errorf("%w: %q", ErrReadOnly, key)
	}
	return nil
}
