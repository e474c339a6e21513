package engine

import (
	"math"

	"github.com/talgya/metropolis/internal/city"
)

// updateEconomy recomputes output from population and the combined
// multiplier. Output is stateless: it is derived fresh each tick rather
// than compounded from the previous value.
func (e *Engine) updateEconomy(c *city.City) {
	multiplier := 1.0

	if benefits := e.activeStageBenefits(c); benefits != nil {
		multiplier *= benefits.EconomicMultiplier
	}

	multiplier *= 1 + infrastructureEconomicBonus(c)

	for _, id := range c.GeographicAdvantages {
		if adv := e.catalog.Advantage(id); adv != nil {
			multiplier *= adv.EconomicBonus
		}
	}

	volatility := (e.rng.Float() - 0.5) * e.cfg.EconomicGrowthVolatility
	multiplier *= 1 + volatility

	c.EconomicOutput = float64(c.Population) * baseGDPPerCapita * multiplier
	if c.Population > 0 {
		c.AverageIncome = c.EconomicOutput / float64(c.Population) * 0.7
	}

	// Unemployment drifts toward a multiplier-driven target.
	target := math.Max(0.02, 0.08-(multiplier-1)*0.1)
	c.UnemploymentRate = c.UnemploymentRate*0.9 + target*0.1
}
