package analytics

import "github.com/talgya/metropolis/internal/city"

// MetricComparison is one metric's head-to-head result.
type MetricComparison struct {
	Metric     string  `json:"metric"`
	CityAValue float64 `json:"city_a_value"`
	CityBValue float64 `json:"city_b_value"`
	Winner     string  `json:"winner"`
}

// Comparison is a pairwise city matchup across five metrics. The overall
// winner takes the majority of metrics; a tied score goes to city B.
type Comparison struct {
	CityA      string             `json:"city_a"`
	CityB      string             `json:"city_b"`
	Comparison []MetricComparison `json:"comparison"`
	Winner     string             `json:"winner"`
}

// CompareCities evaluates a against b on population, GDP per capita,
// quality of life, unemployment (lower wins), and attractiveness.
func CompareCities(a, b *city.City) Comparison {
	gdpPC := func(c *city.City) float64 {
		if c.Population == 0 {
			return 0
		}
		return c.EconomicOutput / float64(c.Population)
	}

	metrics := []struct {
		name      string
		value     func(*city.City) float64
		lowerWins bool
	}{
		{"Population", func(c *city.City) float64 { return float64(c.Population) }, false},
		{"GDP per Capita", gdpPC, false},
		{"Quality of Life", func(c *city.City) float64 { return c.QualityOfLife }, false},
		{"Unemployment Rate", func(c *city.City) float64 { return c.UnemploymentRate }, true},
		{"Attractiveness", func(c *city.City) float64 { return c.Attractiveness }, false},
	}

	result := Comparison{CityA: a.Name, CityB: b.Name}
	winsA := 0
	for _, m := range metrics {
		va, vb := m.value(a), m.value(b)
		winner := b.Name
		aWins := va > vb
		if m.lowerWins {
			aWins = va < vb
		}
		if aWins {
			winner = a.Name
			winsA++
		}
		result.Comparison = append(result.Comparison, MetricComparison{
			Metric:     m.name,
			CityAValue: va,
			CityBValue: vb,
			Winner:     winner,
		})
	}

	if winsA > len(metrics)-winsA {
		result.Winner = a.Name
	} else {
		result.Winner = b.Name
	}
	return result
}
