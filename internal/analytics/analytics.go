// Package analytics derives health scores, peer rankings, and projections
// from city snapshots. Everything here is pure: no function mutates the
// cities it is handed.
package analytics

import (
	"github.com/talgya/metropolis/internal/catalog"
	"github.com/talgya/metropolis/internal/city"
)

// EconomicHealth summarizes the city's economic condition.
type EconomicHealth struct {
	GDPPerCapita              float64  `json:"gdp_per_capita"`
	EconomicGrowthRate        float64  `json:"economic_growth_rate"` // trailing-12-month, percent
	IndustrialDiversification float64  `json:"industrial_diversification"`
	CompetitiveAdvantages     []string `json:"competitive_advantages"`
	EconomicVulnerabilities   []string `json:"economic_vulnerabilities"`
}

// PriorityUpgrade is one infrastructure item ranked by urgency.
type PriorityUpgrade struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Level   float64 `json:"level"`
	Urgency float64 `json:"urgency"`
}

// InfrastructureHealth summarizes facility condition and strain.
type InfrastructureHealth struct {
	OverallLevel        float64           `json:"overall_level"` // avg level × 10
	MaintenanceBacklog  float64           `json:"maintenance_backlog"`
	CapacityUtilization float64           `json:"capacity_utilization"` // percent
	PriorityUpgrades    []PriorityUpgrade `json:"priority_upgrades"`
}

// SocialHealth summarizes social conditions as 0–100 composites.
type SocialHealth struct {
	SocialMobility      float64 `json:"social_mobility"`
	CulturalVitality    float64 `json:"cultural_vitality"`
	CommunityEngagement float64 `json:"community_engagement"`
}

// RegionalRanking places the city among its peers, 1 = best. Cities with
// identical metric values share a rank.
type RegionalRanking struct {
	EconomicRank      int `json:"economic_rank"`
	QualityOfLifeRank int `json:"quality_of_life_rank"`
	GrowthRank        int `json:"growth_rank"`
	InnovationRank    int `json:"innovation_rank"`
}

// FiveYearProjection extrapolates the city five years ahead.
type FiveYearProjection struct {
	ProjectedPopulation    int64    `json:"projected_population"`
	ProjectedGDP           float64  `json:"projected_gdp"`
	ProjectedQualityOfLife float64  `json:"projected_quality_of_life"`
	KeyRisks               []string `json:"key_risks"`
	KeyOpportunities       []string `json:"key_opportunities"`
}

// CityAnalytics is the full analytics bundle for one city.
type CityAnalytics struct {
	CityID               string               `json:"city_id"`
	CityName             string               `json:"city_name"`
	EconomicHealth       EconomicHealth       `json:"economic_health"`
	InfrastructureHealth InfrastructureHealth `json:"infrastructure_health"`
	SocialHealth         SocialHealth         `json:"social_health"`
	RegionalRanking      RegionalRanking      `json:"regional_ranking"`
	FiveYearProjection   FiveYearProjection   `json:"five_year_projection"`
}

// Generate computes the full analytics bundle for c. peers may be nil (the
// city ranks against itself alone) and cat may be nil (specialization-aware
// scores fall back to neutral values).
func Generate(c *city.City, peers []*city.City, cat *catalog.Catalog) CityAnalytics {
	return CityAnalytics{
		CityID:               c.ID,
		CityName:             c.Name,
		EconomicHealth:       economicHealth(c),
		InfrastructureHealth: infrastructureHealth(c),
		SocialHealth:         socialHealth(c),
		RegionalRanking:      regionalRanking(c, peers),
		FiveYearProjection:   fiveYearProjection(c, cat),
	}
}
