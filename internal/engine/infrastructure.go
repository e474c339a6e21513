package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/metropolis/internal/catalog"
	"github.com/talgya/metropolis/internal/city"
)

// FailReason says why a boolean operation refused. Internal observability
// only; external callers see just the boolean.
type FailReason string

const (
	FailNone               FailReason = ""
	FailUnknownCity        FailReason = "unknown_city"
	FailUnknownDefinition  FailReason = "unknown_definition"
	FailLevelCap           FailReason = "level_cap"
	FailInsufficientBudget FailReason = "insufficient_budget"
	FailIneligible         FailReason = "ineligible"
)

// opResult carries success plus a refusal reason for logging.
type opResult struct {
	OK     bool
	Reason FailReason
}

func refuse(reason FailReason) opResult { return opResult{Reason: reason} }

// BuildInfrastructure builds or upgrades a facility. targetLevel ≤ 0 means
// one level above current (or 1 when the facility doesn't exist yet).
// Returns false past level 10, for unknown cities, or when construction cost
// exceeds the government budget.
func (e *Engine) BuildInfrastructure(cityID, infraID string, targetLevel float64) bool {
	res := e.buildInfrastructure(cityID, infraID, targetLevel)
	if !res.OK {
		slog.Debug("build refused", "city", cityID, "infrastructure", infraID, "reason", res.Reason)
	}
	return res.OK
}

func (e *Engine) buildInfrastructure(cityID, infraID string, targetLevel float64) opResult {
	c := e.cities[cityID]
	if c == nil {
		return refuse(FailUnknownCity)
	}

	current := c.Infrastructure[infraID]
	newLevel := targetLevel
	if newLevel <= 0 {
		if current != nil {
			newLevel = current.Level + 1
		} else {
			newLevel = 1
		}
	}

	if newLevel > 10 {
		return refuse(FailLevelCap)
	}

	cost := catalog.ConstructionCost(infraID, newLevel)
	if c.GovernmentBudget < cost {
		return refuse(FailInsufficientBudget)
	}
	c.GovernmentBudget -= cost

	verb := "built"
	prevLevel := 0.0
	if current != nil {
		verb = "upgraded"
		prevLevel = current.Level
	}
	c.Infrastructure[infraID] = catalog.NewInfrastructure(infraID, newLevel)

	e.logEvent(city.DevelopmentEvent{
		CityID:      cityID,
		Type:        city.EventInfrastructureBuilt,
		Description: fmt.Sprintf("%s %s %s to level %g", c.Name, verb, infraID, newLevel),
		Impact: city.EventImpact{
			InfrastructureImpact: []city.InfraImpact{{ID: infraID, LevelChange: newLevel - prevLevel}},
			EconomicImpact:       cost * 0.3, // construction stimulus
		},
	})
	return opResult{OK: true}
}

// updateInfrastructure applies monthly decay and maintenance, then tries
// auto-investment on strained critical systems.
func (e *Engine) updateInfrastructure(c *city.City) {
	for _, infra := range c.Infrastructure {
		decay := infra.Level * e.cfg.InfrastructureDecayRate / 12
		infra.Level -= decay
		if infra.Level < 0 {
			infra.Level = 0
		}
		// Maintenance is charged regardless of budget state.
		c.GovernmentBudget -= infra.MaintenanceCost / 12
	}

	e.autoInvestInfrastructure(c)
}

// autoInvestInfrastructure upgrades critical systems running past 80% of
// nominal capacity. The affordability gate reads the infrastructure budget,
// while the invoked build deducts from the government budget; both ledgers
// are kept as-is for compatibility with observed trajectories.
func (e *Engine) autoInvestInfrastructure(c *city.City) {
	for _, infraID := range catalog.CriticalInfrastructure {
		infra := c.Infrastructure[infraID]
		if infra == nil || infra.Capacity >= float64(c.Population)*1.2 {
			continue
		}
		upgradeCost := catalog.ConstructionCost(infraID, infra.Level+1)
		if c.InfrastructureBudget >= upgradeCost {
			e.BuildInfrastructure(c.ID, infraID, infra.Level+1)
		}
	}
}

// infrastructureEconomicBonus converts accumulated economic impact into a
// fractional output multiplier.
func infrastructureEconomicBonus(c *city.City) float64 {
	if len(c.Infrastructure) == 0 {
		return 0
	}
	total := 0.0
	for _, infra := range c.Infrastructure {
		total += infra.EconomicImpact
	}
	return total / 1000
}
