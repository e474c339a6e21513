package engine

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/talgya/metropolis/internal/catalog"
	"github.com/talgya/metropolis/internal/city"
	"github.com/talgya/metropolis/internal/visual"
)

const baseGDPPerCapita = 35000

// CreateCityParams configures a new city. Zero-valued optional fields get
// realistic defaults.
type CreateCityParams struct {
	Name                 string
	Coordinates          city.Coordinates
	Climate              city.Climate
	Terrain              city.Terrain
	InitialPopulation    int64
	GeographicAdvantages []string
	NaturalResources     map[string]*city.NaturalResource
}

// CreateCity registers a new city with realistic initial parameters, applies
// its geographic advantages, and queues a render with the visual pipeline.
func (e *Engine) CreateCity(params CreateCityParams) *city.City {
	pop := params.InitialPopulation
	if pop <= 0 {
		pop = 25000
	}

	id := fmt.Sprintf("city_%s_%s",
		strings.ReplaceAll(strings.ToLower(params.Name), " ", "_"),
		uuid.NewString()[:8])

	now := e.now()
	resources := params.NaturalResources
	if resources == nil {
		resources = make(map[string]*city.NaturalResource)
	}

	c := &city.City{
		ID:          id,
		Name:        params.Name,
		Founded:     now,
		Coordinates: params.Coordinates,
		Climate:     params.Climate,
		Terrain:     params.Terrain,
		Size:        citySize(pop),

		Population:           pop,
		PopulationGrowthRate: e.cfg.BasePopulationGrowthRate,
		EconomicOutput:       float64(pop) * baseGDPPerCapita,
		UnemploymentRate:     0.06,
		AverageIncome:        45000,
		CostOfLiving:         100,

		SpecializationHistory: []city.SpecializationRecord{},

		Infrastructure:       initialInfrastructure(pop),
		InfrastructureBudget: float64(pop) * 500,

		GeographicAdvantages: append([]string(nil), params.GeographicAdvantages...),
		NaturalResources:     resources,

		QualityOfLife:  65,
		Attractiveness: 50,
		Sustainability: 70,

		TaxRate:          0.08,
		GovernmentBudget: float64(pop) * 1200,

		MonthlyMetrics: []city.MonthlyMetrics{},
		LastUpdated:    now,
		Version:        1,
	}

	e.applyGeographicAdvantages(c)
	c.QualityOfLife = e.qualityOfLife(c)

	e.cities[id] = c
	e.cityOrder = append(e.cityOrder, id)

	e.notifier.Notify(visual.Descriptor{
		ID:             c.ID,
		Name:           c.Name,
		Population:     c.Population,
		Climate:        c.Climate,
		Terrain:        c.Terrain,
		Founded:        c.Founded,
		EconomicOutput: c.EconomicOutput,
	}, "medium")

	e.logEvent(city.DevelopmentEvent{
		CityID:      id,
		Type:        city.EventPopulationMilestone,
		Description: fmt.Sprintf("City of %s founded with %d residents", c.Name, c.Population),
		Impact: city.EventImpact{
			PopulationImpact: c.Population,
			EconomicImpact:   c.EconomicOutput,
		},
	})

	slog.Info("city founded",
		"city", c.Name,
		"id", c.ID,
		"population", c.Population,
		"terrain", c.Terrain,
		"climate", c.Climate,
	)
	return c
}

// citySize estimates built-up area in km²: roughly 1000 residents per km²,
// never below 25.
func citySize(population int64) float64 {
	return math.Max(25, float64(population)/1000)
}

// initialInfrastructure seeds baseline facilities scaled to population.
func initialInfrastructure(population int64) map[string]*city.Infrastructure {
	pop := float64(population)
	tiers := []struct {
		id    string
		level float64
	}{
		{"roads", math.Min(5, math.Floor(pop/10000)+1)},
		{"water_system", math.Min(4, math.Floor(pop/15000)+1)},
		{"power_grid", math.Min(4, math.Floor(pop/12000)+1)},
		{"waste_management", math.Min(3, math.Floor(pop/20000)+1)},
		{"public_transport", math.Min(3, math.Floor(pop/25000))},
		{"schools", math.Min(4, math.Floor(pop/8000)+1)},
		{"healthcare", math.Min(3, math.Floor(pop/15000)+1)},
	}

	infra := make(map[string]*city.Infrastructure)
	for _, t := range tiers {
		if t.level > 0 {
			infra[t.id] = catalog.NewInfrastructure(t.id, t.level)
		}
	}
	return infra
}

// applyGeographicAdvantages folds site bonuses into the starting economy.
func (e *Engine) applyGeographicAdvantages(c *city.City) {
	for _, id := range c.GeographicAdvantages {
		adv := e.catalog.Advantage(id)
		if adv == nil {
			continue
		}
		c.EconomicOutput *= adv.EconomicBonus
		c.Attractiveness += adv.EconomicBonus * 10
		c.GovernmentBudget -= adv.MaintenanceCost
	}
}
