// Package engine owns the city registry and drives per-tick development:
// population, economy, infrastructure, specialization, composite scores,
// and stochastic events.
package engine

import (
	"errors"
	"sort"
	"time"

	"github.com/talgya/metropolis/internal/catalog"
	"github.com/talgya/metropolis/internal/city"
	"github.com/talgya/metropolis/internal/config"
	"github.com/talgya/metropolis/internal/entropy"
	"github.com/talgya/metropolis/internal/visual"
)

// ErrCityNotFound is returned when an operation names an unknown city.
// Callers must treat it as fatal to the call, not retry.
var ErrCityNotFound = errors.New("city not found")

// maxEvents caps the development log; the oldest entries are evicted.
const maxEvents = 1000

// Engine holds all simulation state. It is single-writer: callers must
// serialize mutating calls per engine instance.
type Engine struct {
	cfg      config.Engine
	catalog  *catalog.Catalog
	rng      entropy.Source
	notifier visual.Notifier

	cities    map[string]*city.City
	cityOrder []string

	events []city.DevelopmentEvent

	// now is swapped in tests to drive time-gated stage requirements.
	now func() time.Time
}

// New creates an engine with the given tuning, catalog, randomness source,
// and visual notifier.
func New(cfg config.Engine, cat *catalog.Catalog, rng entropy.Source, notifier visual.Notifier) *Engine {
	if rng == nil {
		rng = entropy.Crypto{}
	}
	if notifier == nil {
		notifier = visual.Nop{}
	}
	return &Engine{
		cfg:      cfg,
		catalog:  cat,
		rng:      rng,
		notifier: notifier,
		cities:   make(map[string]*city.City),
		now:      time.Now,
	}
}

// Catalog exposes the engine's definition tables.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// City returns the city with the given id, or nil.
func (e *Engine) City(id string) *city.City {
	return e.cities[id]
}

// AllCities returns every city in creation order.
func (e *Engine) AllCities() []*city.City {
	out := make([]*city.City, 0, len(e.cityOrder))
	for _, id := range e.cityOrder {
		out = append(out, e.cities[id])
	}
	return out
}

// AvailableSpecializations lists the catalog entries the city currently
// qualifies for. Unknown cities get an empty list.
func (e *Engine) AvailableSpecializations(cityID string) []*catalog.Specialization {
	c := e.cities[cityID]
	if c == nil {
		return nil
	}
	var out []*catalog.Specialization
	for _, spec := range e.catalog.Specializations() {
		if e.canDevelop(c, spec) {
			out = append(out, spec)
		}
	}
	return out
}

// CityEvents returns the city's development events, newest first, truncated
// to limit when limit > 0.
func (e *Engine) CityEvents(cityID string, limit int) []city.DevelopmentEvent {
	var out []city.DevelopmentEvent
	for _, ev := range e.events {
		if ev.CityID == cityID {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
