package engine

import (
	"math"

	"github.com/talgya/metropolis/internal/city"
)

// qualityOfLife is the weighted composite of infrastructure, economic,
// environmental, and social sub-scores, bounded to [0, 100].
func (e *Engine) qualityOfLife(c *city.City) float64 {
	qol := infrastructureQoLScore(c) * e.cfg.InfrastructureQoLWeight

	economicScore := math.Min(100, c.AverageIncome/50000*100)
	qol += economicScore * e.cfg.EconomicQoLWeight

	qol += c.Sustainability * e.cfg.EnvironmentalQoLWeight

	socialScore := math.Min(100, c.Attractiveness+c.SpecializationProgress/2)
	qol += socialScore * e.cfg.SocialQoLWeight

	return city.Clamp100(qol)
}

// infrastructureQoLScore blends average per-facility QoL impact with the
// average level, on a 0–100 scale.
func infrastructureQoLScore(c *city.City) float64 {
	if len(c.Infrastructure) == 0 {
		return 0
	}
	totalImpact := 0.0
	totalLevel := 0.0
	for _, infra := range c.Infrastructure {
		totalImpact += infra.QoLImpact
		totalLevel += infra.Level
	}
	n := float64(len(c.Infrastructure))
	return math.Min(100, (totalImpact/n)*(totalLevel/n/5)*10)
}

// attractiveness scores how appealing the city is to newcomers: quality of
// life, labor market, specialization prestige, and site advantages.
func (e *Engine) attractiveness(c *city.City) float64 {
	score := 50.0

	score += (c.QualityOfLife - 50) * 0.5
	score -= (c.UnemploymentRate - 0.05) * 200 // 5% unemployment is neutral

	if benefits := e.activeStageBenefits(c); benefits != nil {
		score += benefits.AttractivenessBonus
	}

	for _, id := range c.GeographicAdvantages {
		if adv := e.catalog.Advantage(id); adv != nil {
			score += (adv.EconomicBonus - 1) * 20
		}
	}

	return city.Clamp100(score)
}
