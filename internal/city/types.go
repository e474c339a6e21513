// Package city defines the simulated city entity and its nested state.
package city

import "time"

// Climate classifies a city's climate zone.
type Climate string

const (
	ClimateTemperate     Climate = "temperate"
	ClimateTropical      Climate = "tropical"
	ClimateArid          Climate = "arid"
	ClimateArctic        Climate = "arctic"
	ClimateMediterranean Climate = "mediterranean"
)

// Terrain classifies the ground a city is built on.
type Terrain string

const (
	TerrainPlains    Terrain = "plains"
	TerrainHills     Terrain = "hills"
	TerrainMountains Terrain = "mountains"
	TerrainCoastal   Terrain = "coastal"
	TerrainRiver     Terrain = "river"
	TerrainDesert    Terrain = "desert"
)

// InfraType groups infrastructure into broad service categories.
type InfraType string

const (
	InfraTransport  InfraType = "transport"
	InfraUtilities  InfraType = "utilities"
	InfraEducation  InfraType = "education"
	InfraHealthcare InfraType = "healthcare"
	InfraRecreation InfraType = "recreation"
	InfraCommercial InfraType = "commercial"
)

// Coordinates locates a city on the region map.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Infrastructure is a leveled city facility. Level is continuous: decay
// erodes it fractionally, only builds snap it to whole targets.
type Infrastructure struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             InfraType `json:"type"`
	Level            float64   `json:"level"` // nominal range 0–10
	Capacity         float64   `json:"capacity"`
	MaintenanceCost  float64   `json:"maintenance_cost"`
	ConstructionCost float64   `json:"construction_cost"`
	ConstructionTime int       `json:"construction_time"` // months
	QoLImpact        float64   `json:"qol_impact"`
	EconomicImpact   float64   `json:"economic_impact"`
}

// NaturalResource is a finite deposit exploitable by local industry.
type NaturalResource struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Abundance      float64 `json:"abundance"` // 0–1, remaining fraction
	ExtractionRate float64 `json:"extraction_rate"`
}

// SpecializationRecord is one chapter of a city's specialization history.
// The active specialization is the single record with a nil EndDate.
type SpecializationRecord struct {
	SpecializationID string     `json:"specialization_id"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	MaxStageReached  int        `json:"max_stage_reached"`
}

// MonthlyMetrics is one per-tick snapshot kept for trailing analytics.
type MonthlyMetrics struct {
	Date                   time.Time `json:"date"`
	Population             int64     `json:"population"`
	EconomicOutput         float64   `json:"economic_output"`
	QualityOfLife          float64   `json:"quality_of_life"`
	UnemploymentRate       float64   `json:"unemployment_rate"`
	InfrastructureSpending float64   `json:"infrastructure_spending"`
	BusinessCount          int64     `json:"business_count"`
}

// MetricsWindow is the number of monthly snapshots a city retains.
const MetricsWindow = 24

// City is the primary simulated entity.
type City struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Founded time.Time `json:"founded"`

	// Geography.
	Coordinates Coordinates `json:"coordinates"`
	Climate     Climate     `json:"climate"`
	Terrain     Terrain     `json:"terrain"`
	Size        float64     `json:"size"` // km², derived from population, never shrinks

	// Population & economy.
	Population           int64   `json:"population"`
	PopulationGrowthRate float64 `json:"population_growth_rate"` // annual
	EconomicOutput       float64 `json:"economic_output"`
	UnemploymentRate     float64 `json:"unemployment_rate"`
	AverageIncome        float64 `json:"average_income"`
	CostOfLiving         float64 `json:"cost_of_living"` // index, 100 = baseline

	// Specialization.
	CurrentSpecialization string                 `json:"current_specialization,omitempty"`
	SpecializationProgress float64               `json:"specialization_progress"` // 0–100
	SpecializationHistory []SpecializationRecord `json:"specialization_history"`

	// Infrastructure.
	Infrastructure       map[string]*Infrastructure `json:"infrastructure"`
	InfrastructureBudget float64                    `json:"infrastructure_budget"`

	// Geography bonuses.
	GeographicAdvantages []string                    `json:"geographic_advantages"`
	NaturalResources     map[string]*NaturalResource `json:"natural_resources"`

	// Composite scores, all 0–100.
	QualityOfLife  float64 `json:"quality_of_life"`
	Attractiveness float64 `json:"attractiveness"`
	Sustainability float64 `json:"sustainability"`

	// Government.
	TaxRate          float64  `json:"tax_rate"`
	GovernmentBudget float64  `json:"government_budget"`
	GovernmentDebt   float64  `json:"government_debt"`
	PolicyModifiers  []string `json:"policy_modifiers"`

	// Trade.
	TradePartners []string `json:"trade_partners"`

	// Trailing analytics window.
	MonthlyMetrics []MonthlyMetrics `json:"monthly_metrics"`

	// Metadata. Version increments exactly once per simulated tick.
	LastUpdated time.Time `json:"last_updated"`
	Version     int64     `json:"version"`
}

// ActiveRecord returns the open specialization-history entry, or nil when the
// city is unspecialized.
func (c *City) ActiveRecord() *SpecializationRecord {
	for i := range c.SpecializationHistory {
		rec := &c.SpecializationHistory[i]
		if rec.SpecializationID == c.CurrentSpecialization && rec.EndDate == nil {
			return rec
		}
	}
	return nil
}

// RecordMetrics appends one snapshot, evicting the oldest beyond the window.
func (c *City) RecordMetrics(m MonthlyMetrics) {
	c.MonthlyMetrics = append(c.MonthlyMetrics, m)
	if len(c.MonthlyMetrics) > MetricsWindow {
		c.MonthlyMetrics = c.MonthlyMetrics[len(c.MonthlyMetrics)-MetricsWindow:]
	}
}

// EstimatedBusinesses approximates the business count from population.
func (c *City) EstimatedBusinesses() int64 {
	return c.Population / 500
}

// Clamp100 bounds a composite score to [0, 100].
func Clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
