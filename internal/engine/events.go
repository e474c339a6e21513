package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/metropolis/internal/city"
)

// logEvent stamps and appends a development event, evicting the oldest
// entries past the log cap.
func (e *Engine) logEvent(ev city.DevelopmentEvent) {
	ev.ID = "event_" + uuid.NewString()
	ev.Timestamp = e.now()
	e.events = append(e.events, ev)
	if len(e.events) > maxEvents {
		e.events = e.events[len(e.events)-maxEvents:]
	}
}

// processRandomEvents rolls for at most one stochastic perturbation per tick:
// a resource find, a disaster, or a policy shift.
func (e *Engine) processRandomEvents(c *city.City) {
	if e.rng.Float() >= e.cfg.RandomEventFrequency {
		return
	}

	switch int(e.rng.Float() * 3) {
	case 0:
		boost := c.EconomicOutput * 0.05
		c.EconomicOutput += boost
		e.logEvent(city.DevelopmentEvent{
			CityID:      c.ID,
			Type:        city.EventResourceDiscovered,
			Description: "New natural resource discovered",
			Impact:      city.EventImpact{EconomicImpact: boost},
		})
		slog.Debug("random event", "city", c.Name, "type", city.EventResourceDiscovered)

	case 1:
		loss := c.EconomicOutput * 0.02
		c.EconomicOutput -= loss
		var infraHit []city.InfraImpact
		if roads := c.Infrastructure["roads"]; roads != nil {
			roads.Level -= 0.5
			if roads.Level < 0 {
				roads.Level = 0
			}
			if roads.Level > 10 {
				roads.Level = 10
			}
			infraHit = append(infraHit, city.InfraImpact{ID: "roads", LevelChange: -0.5})
		}
		e.logEvent(city.DevelopmentEvent{
			CityID:      c.ID,
			Type:        city.EventDisaster,
			Description: "Natural disaster affects infrastructure",
			Impact: city.EventImpact{
				EconomicImpact:       -loss,
				InfrastructureImpact: infraHit,
			},
		})
		slog.Debug("random event", "city", c.Name, "type", city.EventDisaster)

	default:
		shift := (e.rng.Float() - 0.5) * 10
		c.QualityOfLife = city.Clamp100(c.QualityOfLife + shift)
		e.logEvent(city.DevelopmentEvent{
			CityID:      c.ID,
			Type:        city.EventPolicyChange,
			Description: "New government policy implemented",
			Impact:      city.EventImpact{QualityOfLifeImpact: shift},
		})
		slog.Debug("random event", "city", c.Name, "type", city.EventPolicyChange)
	}
}
