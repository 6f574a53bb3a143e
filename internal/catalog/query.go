package catalog

import (
	"fmt"
	"strings"

	"carcatalog/pkg/models"
)

// Filter holds the optional listing constraints. A nil field is not applied;
// all set fields are AND-combined.
//
// IsFull, Year and BodyStyle are accepted for compatibility with the legacy
// request shape but do not constrain the result.
type Filter struct {
	Country               *string
	Segment               *string
	MinEngineDisplacement *int
	MinEngineHorsepower   *int
	MinMaxSpeed           *int
	Search                *string

	IsFull    *bool
	Year      *int
	BodyStyle *string
}

type predicate func(r *models.CatalogRecord) bool

func (f Filter) predicates() []predicate {
	var ps []predicate
	if f.Country != nil {
		v := *f.Country
		ps = append(ps, func(r *models.CatalogRecord) bool { return r.Country == v })
	}
	if f.Segment != nil {
		v := *f.Segment
		ps = append(ps, func(r *models.CatalogRecord) bool { return r.Segment == v })
	}
	if f.MinEngineDisplacement != nil {
		v := *f.MinEngineDisplacement
		ps = append(ps, func(r *models.CatalogRecord) bool { return r.Engine.Displacement >= v })
	}
	if f.MinEngineHorsepower != nil {
		v := *f.MinEngineHorsepower
		ps = append(ps, func(r *models.CatalogRecord) bool { return r.Engine.Horsepower >= v })
	}
	if f.MinMaxSpeed != nil {
		v := *f.MinMaxSpeed
		ps = append(ps, func(r *models.CatalogRecord) bool { return r.Engine.MaxSpeed >= v })
	}
	if f.Search != nil {
		v := *f.Search
		ps = append(ps, func(r *models.CatalogRecord) bool {
			return strings.Contains(r.Model, v) ||
				strings.Contains(r.Generation, v) ||
				strings.Contains(r.Modification, v)
		})
	}
	return ps
}

// Attribute names a field that can be enumerated with DistinctValues.
type Attribute string

const (
	AttrFuelType       Attribute = "fuelType"
	AttrBodyStyle      Attribute = "bodyStyle"
	AttrCylinderType   Attribute = "cylinderType"
	AttrWheelDriveType Attribute = "wheelDriveType"
	AttrGearboxType    Attribute = "gearboxType"
)

var attributeAliases = map[string]Attribute{
	"fuelType":       AttrFuelType,
	"fuel-types":     AttrFuelType,
	"bodyStyle":      AttrBodyStyle,
	"body-styles":    AttrBodyStyle,
	"cylinderType":   AttrCylinderType,
	"engine-types":   AttrCylinderType,
	"wheelDriveType": AttrWheelDriveType,
	"wheel-drives":   AttrWheelDriveType,
	"gearboxType":    AttrGearboxType,
	"gearboxes":      AttrGearboxType,
}

// ParseAttribute accepts both the attribute name and the legacy route name
// ("fuel-types", "engine-types", ...).
func ParseAttribute(name string) (Attribute, error) {
	a, ok := attributeAliases[strings.TrimSpace(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return a, nil
}

func (a Attribute) extractor() (func(r *models.CatalogRecord) string, bool) {
	switch a {
	case AttrFuelType:
		return func(r *models.CatalogRecord) string { return r.Engine.FuelType.String() }, true
	case AttrBodyStyle:
		return func(r *models.CatalogRecord) string { return r.Body.BodyStyle }, true
	case AttrCylinderType:
		return func(r *models.CatalogRecord) string { return r.Engine.CylinderType.String() }, true
	case AttrWheelDriveType:
		return func(r *models.CatalogRecord) string { return r.Body.WheelDriveType.String() }, true
	case AttrGearboxType:
		return func(r *models.CatalogRecord) string { return r.Engine.GearboxType.String() }, true
	}
	return nil, false
}

type GroupKind int

const (
	ByModel GroupKind = iota
	ByBrand
)

func (g GroupKind) String() string {
	if g == ByBrand {
		return "brand"
	}
	return "model"
}

// MaxSpeedQuery is the transport-level request for AverageMaxSpeed: at most
// one of Model and Brand may be set.
type MaxSpeedQuery struct {
	Model *string
	Brand *string
}

// Engine evaluates queries against a Store. Every call works on a single
// snapshot taken when the call starts.
type Engine struct {
	store *Store
}

func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// List returns the records matching every set filter, in store order.
// The result is never nil.
func (e *Engine) List(f Filter) []models.CatalogRecord {
	snap := e.store.Snapshot()
	ps := f.predicates()

	out := make([]models.CatalogRecord, 0, len(snap))
	for i := range snap {
		r := &snap[i]
		pass := true
		for _, p := range ps {
			if !p(r) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, *r)
		}
	}
	return out
}

func (e *Engine) Get(id int64) (models.CatalogRecord, bool) {
	return e.store.Get(id)
}

// DistinctValues lists the distinct string forms of an attribute in the order
// they are first seen. An empty catalog yields an empty, non-nil slice.
func (e *Engine) DistinctValues(a Attribute) ([]string, error) {
	get, ok := a.extractor()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, string(a))
	}

	snap := e.store.Snapshot()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range snap {
		v := get(&snap[i])
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// AverageMaxSpeed averages max speed over records whose model (or brand)
// equals value exactly. ok is false when nothing matches.
func (e *Engine) AverageMaxSpeed(kind GroupKind, value string) (avg float64, ok bool) {
	var key func(r *models.CatalogRecord) string
	if kind == ByBrand {
		key = func(r *models.CatalogRecord) string { return r.Brand }
	} else {
		key = func(r *models.CatalogRecord) string { return r.Model }
	}

	snap := e.store.Snapshot()
	var sum int64
	n := 0
	for i := range snap {
		if key(&snap[i]) != value {
			continue
		}
		sum += int64(snap[i].Engine.MaxSpeed)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// MaxSpeed validates q and runs AverageMaxSpeed. With neither model nor brand
// set there is nothing to match and the result is absent.
func (e *Engine) MaxSpeed(q MaxSpeedQuery) (float64, bool, error) {
	switch {
	case q.Model != nil && q.Brand != nil:
		return 0, false, ErrInvalidQueryCombination
	case q.Model != nil:
		avg, ok := e.AverageMaxSpeed(ByModel, *q.Model)
		return avg, ok, nil
	case q.Brand != nil:
		avg, ok := e.AverageMaxSpeed(ByBrand, *q.Brand)
		return avg, ok, nil
	}
	return 0, false, nil
}
