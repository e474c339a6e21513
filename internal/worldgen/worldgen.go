// Package worldgen seeds a region with cities whose sites — terrain,
// climate, geographic advantages, natural resources — are derived from
// layered simplex noise, deterministic for a given seed.
package worldgen

import (
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/metropolis/internal/city"
	"github.com/talgya/metropolis/internal/engine"
)

// GenConfig holds region generation parameters.
type GenConfig struct {
	Seed      int64   // 0 = random
	Cities    int     // number of cities to found
	MapSize   float64 // square region side length
	SeaLevel  float64 // elevation below this reads as water-adjacent
	MinPop    int64
	PopSpread int64 // max random addition on top of MinPop
}

// DefaultGenConfig returns a reasonable starting region.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Cities:    8,
		MapSize:   300,
		SeaLevel:  0.3,
		MinPop:    25000,
		PopSpread: 100000,
	}
}

var cityNames = []string{
	"New Meridian", "Port Solace", "Ironvale", "Cascade Falls", "Aurelia",
	"Windmere", "Stonebridge", "Lakehaven", "Duskfield", "Northgate",
	"Silver Hollow", "Eastmarch", "Redcliff", "Greenford", "Harrow Point",
}

// Seed founds cfg.Cities cities on the engine, siting each one from the
// noise fields. Returns the founded cities in creation order.
func Seed(eng *engine.Engine, cfg GenConfig) []*city.City {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)
	rng := rand.New(rand.NewSource(seed + 3))

	var founded []*city.City
	for i := 0; i < cfg.Cities; i++ {
		x := rng.Float64() * cfg.MapSize
		y := rng.Float64() * cfg.MapSize

		elev := octaveNoise(elevNoise, x, y, 4, 0.02, 0.5)
		rain := octaveNoise(rainNoise, x, y, 3, 0.015, 0.5)
		temp := octaveNoise(tempNoise, x, y, 3, 0.0125, 0.5)
		// Latitude dominates temperature; elevation cools.
		temp = temp*0.5 + (1-y/cfg.MapSize)*0.35 + (1-elev)*0.15

		terrain := deriveTerrain(elev, rain, cfg.SeaLevel)
		climate := deriveClimate(temp, rain)

		name := cityNames[i%len(cityNames)]
		if i >= len(cityNames) {
			name = fmt.Sprintf("%s %d", name, i/len(cityNames)+1)
		}

		c := eng.CreateCity(engine.CreateCityParams{
			Name:                 name,
			Coordinates:          city.Coordinates{X: x, Y: y},
			Climate:              climate,
			Terrain:              terrain,
			InitialPopulation:    cfg.MinPop + rng.Int63n(cfg.PopSpread+1),
			GeographicAdvantages: siteAdvantages(terrain, elev, rain, rng),
			NaturalResources:     siteResources(terrain, elev, rng),
		})
		founded = append(founded, c)
	}
	return founded
}

// deriveTerrain maps the noise fields to a terrain class.
func deriveTerrain(elev, rain, seaLevel float64) city.Terrain {
	switch {
	case elev < seaLevel:
		return city.TerrainCoastal
	case elev > 0.75:
		return city.TerrainMountains
	case elev > 0.55:
		return city.TerrainHills
	case rain < 0.25:
		return city.TerrainDesert
	case rain > 0.7:
		return city.TerrainRiver
	default:
		return city.TerrainPlains
	}
}

// deriveClimate maps temperature and rainfall to a climate zone.
func deriveClimate(temp, rain float64) city.Climate {
	switch {
	case temp < 0.25:
		return city.ClimateArctic
	case temp > 0.75 && rain > 0.5:
		return city.ClimateTropical
	case rain < 0.3:
		return city.ClimateArid
	case temp > 0.6:
		return city.ClimateMediterranean
	default:
		return city.ClimateTemperate
	}
}

// siteAdvantages picks geographic advantages consistent with the site.
func siteAdvantages(terrain city.Terrain, elev, rain float64, rng *rand.Rand) []string {
	var advantages []string
	switch terrain {
	case city.TerrainCoastal:
		advantages = append(advantages, "natural_harbor")
		if rng.Float64() < 0.4 {
			advantages = append(advantages, "scenic_coastline")
		}
	case city.TerrainRiver:
		advantages = append(advantages, "river_access")
	case city.TerrainMountains:
		advantages = append(advantages, "mountain_resources")
	case city.TerrainPlains:
		if rain > 0.45 {
			advantages = append(advantages, "fertile_plains")
		}
	}
	if rng.Float64() < 0.2 {
		advantages = append(advantages, "trade_crossroads")
	}
	return advantages
}

// siteResources seeds natural deposits consistent with the site.
func siteResources(terrain city.Terrain, elev float64, rng *rand.Rand) map[string]*city.NaturalResource {
	resources := make(map[string]*city.NaturalResource)
	add := func(id, name string) {
		resources[id] = &city.NaturalResource{
			ID:             id,
			Name:           name,
			Abundance:      0.5 + rng.Float64()*0.5,
			ExtractionRate: 0.05 + rng.Float64()*0.1,
		}
	}

	switch terrain {
	case city.TerrainMountains, city.TerrainHills:
		add("iron_ore", "Iron Ore")
		if elev > 0.7 {
			add("rare_minerals", "Rare Minerals")
		}
	case city.TerrainPlains, city.TerrainRiver:
		add("arable_land", "Arable Land")
	case city.TerrainCoastal:
		add("fisheries", "Fisheries")
	case city.TerrainDesert:
		if rng.Float64() < 0.5 {
			add("oil_deposits", "Oil Deposits")
		}
	}
	return resources
}

// octaveNoise layers multiple noise frequencies for natural variation.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}

// Distance returns the straight-line distance between two city sites.
func Distance(a, b city.Coordinates) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
