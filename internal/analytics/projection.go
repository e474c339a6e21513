package analytics

import (
	"math"

	"github.com/talgya/metropolis/internal/catalog"
	"github.com/talgya/metropolis/internal/city"
)

const projectionYears = 5

// fiveYearProjection compounds population and GDP five years out, using an
// attractiveness-adjusted growth rate plus a specialization growth bonus,
// and moves quality of life toward what upgraded infrastructure would
// support.
func fiveYearProjection(c *city.City, cat *catalog.Catalog) FiveYearProjection {
	growthRate := c.PopulationGrowthRate * (1 + (c.Attractiveness-50)/100)

	specBonus := 0.0
	if c.CurrentSpecialization != "" {
		switch c.CurrentSpecialization {
		case "tech_hub", "financial_district":
			specBonus = 0.02
		default:
			specBonus = 0.01
		}
	}

	projectedPop := float64(c.Population) * math.Pow(1+growthRate, projectionYears)
	gdpGrowth := growthRate + specBonus
	projectedGDP := c.EconomicOutput * math.Pow(1+gdpGrowth, projectionYears)

	// QoL converges half-way toward the level upgraded infrastructure would
	// support: target level min(8, current average + 2), on the 0–100 scale.
	avgLevel := 0.0
	if len(c.Infrastructure) > 0 {
		for _, infra := range c.Infrastructure {
			avgLevel += infra.Level
		}
		avgLevel /= float64(len(c.Infrastructure))
	}
	targetLevel := math.Min(8, avgLevel+2)
	projectedQoL := city.Clamp100(c.QualityOfLife + (targetLevel*10-c.QualityOfLife)*0.5)

	p := FiveYearProjection{
		ProjectedPopulation:    int64(projectedPop),
		ProjectedGDP:           projectedGDP,
		ProjectedQualityOfLife: projectedQoL,
		KeyRisks:               projectionRisks(c, avgLevel),
		KeyOpportunities:       projectionOpportunities(c, cat),
	}
	return p
}

func projectionRisks(c *city.City, avgInfraLevel float64) []string {
	var risks []string
	if c.UnemploymentRate > 0.07 {
		risks = append(risks, "Persistent unemployment may drive out-migration")
	}
	if avgInfraLevel < 3 {
		risks = append(risks, "Degraded infrastructure limits growth capacity")
	}
	if c.GovernmentBudget < 0 {
		risks = append(risks, "Budget deficit threatens service levels")
	}
	if c.QualityOfLife < 40 {
		risks = append(risks, "Low quality of life erodes attractiveness")
	}
	if c.Sustainability < 40 {
		risks = append(risks, "Environmental pressure on long-term livability")
	}
	if c.Attractiveness < 35 {
		risks = append(risks, "Weak attractiveness suppresses population growth")
	}
	if len(risks) > 5 {
		risks = risks[:5]
	}
	return risks
}

func projectionOpportunities(c *city.City, cat *catalog.Catalog) []string {
	var opps []string
	if c.CurrentSpecialization == "" && cat != nil {
		for _, spec := range cat.Specializations() {
			if c.Population >= spec.RequiredPopulation {
				opps = append(opps, "Eligible population for "+spec.Name+" development")
				break
			}
		}
	}
	if c.CurrentSpecialization != "" && c.SpecializationProgress < 100 {
		opps = append(opps, "Specialization still maturing; further stages ahead")
	}
	if c.Attractiveness > 65 {
		opps = append(opps, "High attractiveness supports accelerated in-migration")
	}
	if len(c.GeographicAdvantages) > 1 {
		opps = append(opps, "Multiple geographic advantages to exploit")
	}
	if c.GovernmentBudget > float64(c.Population)*2000 {
		opps = append(opps, "Budget surplus available for infrastructure expansion")
	}
	if c.QualityOfLife > 70 {
		opps = append(opps, "Strong quality of life attracts skilled workers")
	}
	if len(opps) > 5 {
		opps = opps[:5]
	}
	return opps
}
