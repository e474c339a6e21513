package catalog

// GeographicAdvantage is a static economic modifier tied to a city's site.
type GeographicAdvantage struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	EconomicBonus        float64  `json:"economic_bonus"` // output multiplier
	MaintenanceCost      float64  `json:"maintenance_cost"`
	ApplicableIndustries []string `json:"applicable_industries"`
}

var defaultAdvantages = []GeographicAdvantage{
	{
		ID:                   "natural_harbor",
		Name:                 "Natural Harbor",
		EconomicBonus:        1.25,
		MaintenanceCost:      2000000,
		ApplicableIndustries: []string{"shipping", "trade", "fishing"},
	},
	{
		ID:                   "river_access",
		Name:                 "River Access",
		EconomicBonus:        1.15,
		MaintenanceCost:      800000,
		ApplicableIndustries: []string{"trade", "agriculture", "manufacturing"},
	},
	{
		ID:                   "mountain_resources",
		Name:                 "Mountain Resources",
		EconomicBonus:        1.2,
		MaintenanceCost:      1500000,
		ApplicableIndustries: []string{"mining", "manufacturing"},
	},
	{
		ID:                   "fertile_plains",
		Name:                 "Fertile Plains",
		EconomicBonus:        1.1,
		MaintenanceCost:      500000,
		ApplicableIndustries: []string{"agriculture", "food_processing"},
	},
	{
		ID:                   "trade_crossroads",
		Name:                 "Trade Crossroads",
		EconomicBonus:        1.18,
		MaintenanceCost:      1000000,
		ApplicableIndustries: []string{"trade", "logistics", "finance"},
	},
	{
		ID:                   "scenic_coastline",
		Name:                 "Scenic Coastline",
		EconomicBonus:        1.12,
		MaintenanceCost:      700000,
		ApplicableIndustries: []string{"tourism", "recreation", "fishing"},
	},
}
