package analytics

import (
	"sort"

	"github.com/talgya/metropolis/internal/city"
)

// regionalRanking ranks c against its peer set on four metrics. The city is
// added to the pool if absent, so a nil peer set yields rank 1 everywhere.
// Ranks are first-index: duplicate values share the same rank.
func regionalRanking(c *city.City, peers []*city.City) RegionalRanking {
	pool := peers
	found := false
	for _, p := range pool {
		if p.ID == c.ID {
			found = true
			break
		}
	}
	if !found {
		pool = append(append([]*city.City{}, peers...), c)
	}

	return RegionalRanking{
		EconomicRank:      rankOf(c, pool, func(x *city.City) float64 { return x.EconomicOutput }),
		QualityOfLifeRank: rankOf(c, pool, func(x *city.City) float64 { return x.QualityOfLife }),
		GrowthRank:        rankOf(c, pool, growthScore),
		InnovationRank:    rankOf(c, pool, innovationScore),
	}
}

// rankOf returns 1 + the index of the city's value in the descending-sorted
// peer value list. Ties resolve to the first matching index.
func rankOf(c *city.City, pool []*city.City, value func(*city.City) float64) int {
	values := make([]float64, 0, len(pool))
	for _, p := range pool {
		values = append(values, value(p))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	mine := value(c)
	for i, v := range values {
		if v == mine {
			return i + 1
		}
	}
	return len(values)
}

// growthScore is trailing-12-month population growth, percent. Cities with
// short histories score 0.
func growthScore(c *city.City) float64 {
	return trailingGrowth(c.MonthlyMetrics, func(m city.MonthlyMetrics) float64 {
		return float64(m.Population)
	})
}

// innovationScore is a 0–100 composite of education infrastructure, the
// active specialization, and how far along it is.
func innovationScore(c *city.City) float64 {
	eduLevels := 0.0
	eduCount := 0
	for _, infra := range c.Infrastructure {
		if infra.Type == city.InfraEducation {
			eduLevels += infra.Level
			eduCount++
		}
	}
	score := 0.0
	if eduCount > 0 {
		score += eduLevels / float64(eduCount) * 6
	}
	switch c.CurrentSpecialization {
	case "tech_hub":
		score += 20
	case "financial_district":
		score += 10
	}
	score += c.SpecializationProgress / 5
	return city.Clamp100(score)
}
