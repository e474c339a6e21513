// Package config loads engine and server settings from YAML, with coded
// defaults so the simulator runs with no config file at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine holds the simulation tuning constants.
type Engine struct {
	BasePopulationGrowthRate      float64 `yaml:"base_population_growth_rate"` // annual
	EconomicGrowthVolatility      float64 `yaml:"economic_growth_volatility"`
	InfrastructureDecayRate       float64 `yaml:"infrastructure_decay_rate"` // annual
	SpecializationDevelopmentRate float64 `yaml:"specialization_development_rate"`
	GeographicAdvantageStrength   float64 `yaml:"geographic_advantage_strength"`
	ResourceDepletionRate         float64 `yaml:"resource_depletion_rate"`
	RandomEventFrequency          float64 `yaml:"random_event_frequency"`

	// Quality-of-life composite weights. Should sum to 1.
	InfrastructureQoLWeight float64 `yaml:"infrastructure_qol_weight"`
	EconomicQoLWeight       float64 `yaml:"economic_qol_weight"`
	EnvironmentalQoLWeight  float64 `yaml:"environmental_qol_weight"`
	SocialQoLWeight         float64 `yaml:"social_qol_weight"`
}

// Server holds runtime settings for the simulator process.
type Server struct {
	Port         int    `yaml:"port"`
	AdminKey     string `yaml:"admin_key"` // empty disables POST endpoints
	DBPath       string `yaml:"db_path"`
	Seed         int64  `yaml:"seed"`
	SeedCities   int    `yaml:"seed_cities"`
	TickInterval string `yaml:"tick_interval"` // Go duration, e.g. "5s"
	VisualURL    string `yaml:"visual_url"`    // empty disables image notifications
}

// Config is the top-level file layout.
type Config struct {
	Engine Engine `yaml:"engine"`
	Server Server `yaml:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: Engine{
			BasePopulationGrowthRate:      0.02,
			EconomicGrowthVolatility:      0.15,
			InfrastructureDecayRate:       0.05,
			SpecializationDevelopmentRate: 0.1,
			GeographicAdvantageStrength:   1.2,
			ResourceDepletionRate:         0.01,
			RandomEventFrequency:          0.05,
			InfrastructureQoLWeight:       0.3,
			EconomicQoLWeight:             0.25,
			EnvironmentalQoLWeight:        0.25,
			SocialQoLWeight:               0.2,
		},
		Server: Server{
			Port:         8080,
			DBPath:       "data/metropolis.db",
			Seed:         42,
			SeedCities:   8,
			TickInterval: "5s",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
