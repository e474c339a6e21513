package engine

import "github.com/talgya/metropolis/internal/city"

// Events returns the full development log, oldest first.
func (e *Engine) Events() []city.DevelopmentEvent {
	return append([]city.DevelopmentEvent(nil), e.events...)
}

// Restore replaces the registry and event log with previously saved state.
// Cities keep their given order; the event log is re-capped.
func (e *Engine) Restore(cities []*city.City, events []city.DevelopmentEvent) {
	e.cities = make(map[string]*city.City, len(cities))
	e.cityOrder = e.cityOrder[:0]
	for _, c := range cities {
		e.cities[c.ID] = c
		e.cityOrder = append(e.cityOrder, c.ID)
	}

	e.events = append(e.events[:0], events...)
	if len(e.events) > maxEvents {
		e.events = e.events[len(e.events)-maxEvents:]
	}
}
