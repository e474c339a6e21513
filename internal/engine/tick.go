package engine

import (
	"fmt"

	"github.com/talgya/metropolis/internal/city"
)

// SimulateTimeStep advances one city by one simulated month through the
// fixed pipeline: population, economy, infrastructure decay and
// auto-investment, specialization progress, composite scores, random
// events, and metrics recording. The version counter increments exactly
// once per call.
func (e *Engine) SimulateTimeStep(cityID string) (*city.City, error) {
	c := e.cities[cityID]
	if c == nil {
		return nil, fmt.Errorf("simulate %s: %w", cityID, ErrCityNotFound)
	}

	e.updatePopulation(c)
	e.updateEconomy(c)
	e.updateInfrastructure(c)
	e.updateSpecializationProgress(c)

	c.QualityOfLife = e.qualityOfLife(c)
	c.Attractiveness = e.attractiveness(c)

	e.processRandomEvents(c)

	c.RecordMetrics(city.MonthlyMetrics{
		Date:                   e.now(),
		Population:             c.Population,
		EconomicOutput:         c.EconomicOutput,
		QualityOfLife:          c.QualityOfLife,
		UnemploymentRate:       c.UnemploymentRate,
		InfrastructureSpending: c.InfrastructureBudget,
		BusinessCount:          c.EstimatedBusinesses(),
	})

	c.LastUpdated = e.now()
	c.Version++

	return c, nil
}
