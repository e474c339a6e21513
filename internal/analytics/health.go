package analytics

import (
	"math"
	"sort"

	"github.com/talgya/metropolis/internal/city"
)

func economicHealth(c *city.City) EconomicHealth {
	gdpPerCapita := 0.0
	if c.Population > 0 {
		gdpPerCapita = c.EconomicOutput / float64(c.Population)
	}

	h := EconomicHealth{
		GDPPerCapita:              gdpPerCapita,
		EconomicGrowthRate:        trailingGrowth(c.MonthlyMetrics, func(m city.MonthlyMetrics) float64 { return m.EconomicOutput }),
		IndustrialDiversification: industrialDiversification(c),
	}

	if gdpPerCapita > 45000 {
		h.CompetitiveAdvantages = append(h.CompetitiveAdvantages, "High GDP per capita")
	}
	if c.UnemploymentRate < 0.04 {
		h.CompetitiveAdvantages = append(h.CompetitiveAdvantages, "Strong labor market")
	}
	if len(c.GeographicAdvantages) > 0 {
		h.CompetitiveAdvantages = append(h.CompetitiveAdvantages, "Favorable geography")
	}
	if c.CurrentSpecialization != "" && c.SpecializationProgress > 50 {
		h.CompetitiveAdvantages = append(h.CompetitiveAdvantages, "Established economic specialization")
	}

	if c.UnemploymentRate > 0.08 {
		h.EconomicVulnerabilities = append(h.EconomicVulnerabilities, "Elevated unemployment")
	}
	if h.IndustrialDiversification < 40 {
		h.EconomicVulnerabilities = append(h.EconomicVulnerabilities, "Concentrated economic base")
	}
	if c.GovernmentBudget < 0 {
		h.EconomicVulnerabilities = append(h.EconomicVulnerabilities, "Government budget deficit")
	}
	if h.EconomicGrowthRate < 0 {
		h.EconomicVulnerabilities = append(h.EconomicVulnerabilities, "Shrinking economy")
	}

	return h
}

// trailingGrowth derives a percentage growth rate from the last 12 monthly
// samples. Fewer than 12 samples means insufficient history: 0, not an
// error.
func trailingGrowth(metrics []city.MonthlyMetrics, value func(city.MonthlyMetrics) float64) float64 {
	if len(metrics) < 12 {
		return 0
	}
	window := metrics[len(metrics)-12:]
	first := value(window[0])
	last := value(window[len(window)-1])
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}

// industrialDiversification is a 0–100 heuristic: bigger cities support more
// industries, a deep specialization narrows the base, and each geographic
// advantage opens another sector.
func industrialDiversification(c *city.City) float64 {
	score := 30.0

	switch {
	case c.Population >= 1000000:
		score += 40
	case c.Population >= 500000:
		score += 30
	case c.Population >= 100000:
		score += 20
	case c.Population >= 50000:
		score += 10
	}

	if c.CurrentSpecialization != "" {
		score -= c.SpecializationProgress * 0.2
	}

	score += float64(len(c.GeographicAdvantages)) * 5

	return city.Clamp100(score)
}

func infrastructureHealth(c *city.City) InfrastructureHealth {
	if len(c.Infrastructure) == 0 {
		return InfrastructureHealth{PriorityUpgrades: []PriorityUpgrade{}}
	}

	totalLevel := 0.0
	totalCapacity := 0.0
	backlog := 0.0
	var upgrades []PriorityUpgrade

	for _, infra := range c.Infrastructure {
		totalLevel += infra.Level
		totalCapacity += infra.Capacity
		backlog += math.Max(0, 8-infra.Level) * infra.ConstructionCost * 0.3

		urgency := urgencyScore(c, infra)
		if urgency > 50 {
			upgrades = append(upgrades, PriorityUpgrade{
				ID:      infra.ID,
				Name:    infra.Name,
				Level:   infra.Level,
				Urgency: urgency,
			})
		}
	}

	sort.SliceStable(upgrades, func(i, j int) bool {
		return upgrades[i].Urgency > upgrades[j].Urgency
	})
	if len(upgrades) > 5 {
		upgrades = upgrades[:5]
	}
	if upgrades == nil {
		upgrades = []PriorityUpgrade{}
	}

	utilization := 0.0
	if totalCapacity > 0 {
		utilization = float64(c.Population) / totalCapacity * 100
	}

	return InfrastructureHealth{
		OverallLevel:        totalLevel / float64(len(c.Infrastructure)) * 10,
		MaintenanceBacklog:  backlog,
		CapacityUtilization: utilization,
		PriorityUpgrades:    upgrades,
	}
}

// urgencyScore combines capacity strain, condition, and criticality, capped
// at 100.
func urgencyScore(c *city.City, infra *city.Infrastructure) float64 {
	urgency := 0.0

	pop := float64(c.Population)
	if infra.Capacity < pop {
		urgency += 40
	} else if infra.Capacity < pop*1.2 {
		urgency += 25
	}

	urgency += (10 - infra.Level) * 5

	if infra.Type == city.InfraTransport || infra.Type == city.InfraUtilities {
		urgency += 15
	}

	return math.Min(100, urgency)
}

func socialHealth(c *city.City) SocialHealth {
	eduLevels := 0.0
	eduCount := 0
	recreation := 0
	for _, infra := range c.Infrastructure {
		switch infra.Type {
		case city.InfraEducation:
			eduLevels += infra.Level
			eduCount++
		case city.InfraRecreation:
			recreation++
		}
	}
	eduAvg := 0.0
	if eduCount > 0 {
		eduAvg = eduLevels / float64(eduCount)
	}

	mobility := eduAvg*8 - (c.UnemploymentRate-0.05)*300 + c.AverageIncome/2000

	vitality := float64(eduCount+recreation) * 15
	if c.CurrentSpecialization != "" {
		vitality += 20
	}
	vitality += math.Min(30, float64(c.Population)/50000*10)

	engagement := c.QualityOfLife*0.4 + (1-c.UnemploymentRate)*40
	if c.Population < 100000 {
		engagement += 10 // smaller cities organize more tightly
	}

	return SocialHealth{
		SocialMobility:      city.Clamp100(mobility),
		CulturalVitality:    city.Clamp100(vitality),
		CommunityEngagement: city.Clamp100(engagement),
	}
}
