package catalog

// InfraRequirement is a minimum infrastructure level a stage demands.
type InfraRequirement struct {
	ID       string  `json:"id"`
	MinLevel float64 `json:"min_level"`
}

// StageRequirements gate advancement to a development stage. Zero values
// mean the dimension is not required.
type StageRequirements struct {
	Population           int64              `json:"population,omitempty"`
	Infrastructure       []InfraRequirement `json:"infrastructure,omitempty"`
	Businesses           int64              `json:"businesses,omitempty"`
	TimeInSpecialization int                `json:"time_in_specialization,omitempty"` // months
}

// StageBenefits apply while a stage is the highest one reached.
type StageBenefits struct {
	EconomicMultiplier  float64 `json:"economic_multiplier"`
	QualityOfLifeBonus  float64 `json:"quality_of_life_bonus"`
	AttractivenessBonus float64 `json:"attractiveness_bonus"`
}

// DevelopmentStage is one ordered milestone within a specialization.
type DevelopmentStage struct {
	Stage        int               `json:"stage"`
	Name         string            `json:"name"`
	Requirements StageRequirements `json:"requirements"`
	Benefits     StageBenefits     `json:"benefits"`
}

// Specialization is an economic focus a city can develop.
type Specialization struct {
	ID                     string             `json:"id"`
	Name                   string             `json:"name"`
	Description            string             `json:"description"`
	RequiredPopulation     int64              `json:"required_population"`
	RequiredInfrastructure []string           `json:"required_infrastructure"` // minimum level 3 each
	DevelopmentStages      []DevelopmentStage `json:"development_stages"`
}

// StageByNumber returns the stage with the given number, or nil.
func (s *Specialization) StageByNumber(n int) *DevelopmentStage {
	for i := range s.DevelopmentStages {
		if s.DevelopmentStages[i].Stage == n {
			return &s.DevelopmentStages[i]
		}
	}
	return nil
}

// HighestStageAtOrBelow returns the highest stage ≤ max, or nil when no stage
// has been reached yet. Benefits are non-cumulative: only this stage applies.
func (s *Specialization) HighestStageAtOrBelow(max int) *DevelopmentStage {
	var best *DevelopmentStage
	for i := range s.DevelopmentStages {
		st := &s.DevelopmentStages[i]
		if st.Stage <= max && (best == nil || st.Stage > best.Stage) {
			best = st
		}
	}
	return best
}

var defaultSpecializations = []Specialization{
	{
		ID:                     "tech_hub",
		Name:                   "Technology Hub",
		Description:            "Software, hardware, and research-driven industry.",
		RequiredPopulation:     100000,
		RequiredInfrastructure: []string{"university", "high_speed_internet", "power_grid"},
		DevelopmentStages: []DevelopmentStage{
			{
				Stage: 1, Name: "Startup Scene",
				Requirements: StageRequirements{Population: 100000, Businesses: 200},
				Benefits:     StageBenefits{EconomicMultiplier: 1.15, QualityOfLifeBonus: 3, AttractivenessBonus: 5},
			},
			{
				Stage: 2, Name: "Innovation District",
				Requirements: StageRequirements{
					Population:           250000,
					Infrastructure:       []InfraRequirement{{ID: "university", MinLevel: 5}, {ID: "high_speed_internet", MinLevel: 5}},
					TimeInSpecialization: 12,
				},
				Benefits: StageBenefits{EconomicMultiplier: 1.3, QualityOfLifeBonus: 6, AttractivenessBonus: 10},
			},
			{
				Stage: 3, Name: "Global Tech Capital",
				Requirements: StageRequirements{
					Population:           750000,
					Infrastructure:       []InfraRequirement{{ID: "airport", MinLevel: 4}},
					Businesses:           2000,
					TimeInSpecialization: 36,
				},
				Benefits: StageBenefits{EconomicMultiplier: 1.5, QualityOfLifeBonus: 10, AttractivenessBonus: 18},
			},
		},
	},
	{
		ID:                     "financial_district",
		Name:                   "Financial District",
		Description:            "Banking, insurance, and capital markets.",
		RequiredPopulation:     200000,
		RequiredInfrastructure: []string{"business_district", "high_speed_internet", "public_transport"},
		DevelopmentStages: []DevelopmentStage{
			{
				Stage: 1, Name: "Regional Banking Center",
				Requirements: StageRequirements{Population: 200000, Businesses: 400},
				Benefits:     StageBenefits{EconomicMultiplier: 1.2, QualityOfLifeBonus: 2, AttractivenessBonus: 4},
			},
			{
				Stage: 2, Name: "Exchange Hub",
				Requirements: StageRequirements{
					Population:           500000,
					Infrastructure:       []InfraRequirement{{ID: "business_district", MinLevel: 6}},
					TimeInSpecialization: 18,
				},
				Benefits: StageBenefits{EconomicMultiplier: 1.35, QualityOfLifeBonus: 4, AttractivenessBonus: 8},
			},
			{
				Stage: 3, Name: "World Financial Capital",
				Requirements: StageRequirements{
					Population:           1500000,
					Infrastructure:       []InfraRequirement{{ID: "airport", MinLevel: 5}, {ID: "public_transport", MinLevel: 6}},
					TimeInSpecialization: 48,
				},
				Benefits: StageBenefits{EconomicMultiplier: 1.6, QualityOfLifeBonus: 6, AttractivenessBonus: 15},
			},
		},
	},
	{
		ID:                     "manufacturing_center",
		Name:                   "Manufacturing Center",
		Description:            "Heavy industry, fabrication, and logistics.",
		RequiredPopulation:     75000,
		RequiredInfrastructure: []string{"industrial_zone", "power_grid", "roads"},
		DevelopmentStages: []DevelopmentStage{
			{
				Stage: 1, Name: "Factory Town",
				Requirements: StageRequirements{Population: 75000},
				Benefits:     StageBenefits{EconomicMultiplier: 1.12, QualityOfLifeBonus: -1, AttractivenessBonus: 2},
			},
			{
				Stage: 2, Name: "Industrial Corridor",
				Requirements: StageRequirements{
					Population:           200000,
					Infrastructure:       []InfraRequirement{{ID: "industrial_zone", MinLevel: 5}, {ID: "roads", MinLevel: 5}},
					TimeInSpecialization: 12,
				},
				Benefits: StageBenefits{EconomicMultiplier: 1.25, QualityOfLifeBonus: 0, AttractivenessBonus: 4},
			},
			{
				Stage: 3, Name: "Advanced Manufacturing Belt",
				Requirements: StageRequirements{
					Population:           500000,
					Infrastructure:       []InfraRequirement{{ID: "university", MinLevel: 4}},
					Businesses:           1200,
					TimeInSpecialization: 30,
				},
				Benefits: StageBenefits{EconomicMultiplier: 1.4, QualityOfLifeBonus: 3, AttractivenessBonus: 7},
			},
		},
	},
	{
		ID:                     "tourism_destination",
		Name:                   "Tourism Destination",
		Description:            "Hospitality, attractions, and seasonal trade.",
		RequiredPopulation:     50000,
		RequiredInfrastructure: []string{"roads", "healthcare", "conference_center"},
		DevelopmentStages: []DevelopmentStage{
			{
				Stage: 1, Name: "Weekend Getaway",
				Requirements: StageRequirements{Population: 50000},
				Benefits:     StageBenefits{EconomicMultiplier: 1.1, QualityOfLifeBonus: 4, AttractivenessBonus: 8},
			},
			{
				Stage: 2, Name: "Resort City",
				Requirements: StageRequirements{
					Population:           120000,
					Infrastructure:       []InfraRequirement{{ID: "airport", MinLevel: 3}},
					TimeInSpecialization: 12,
				},
				Benefits: StageBenefits{EconomicMultiplier: 1.22, QualityOfLifeBonus: 6, AttractivenessBonus: 14},
			},
			{
				Stage: 3, Name: "World Destination",
				Requirements: StageRequirements{
					Population:           300000,
					Infrastructure:       []InfraRequirement{{ID: "airport", MinLevel: 6}, {ID: "conference_center", MinLevel: 5}},
					TimeInSpecialization: 36,
				},
				Benefits: StageBenefits{EconomicMultiplier: 1.38, QualityOfLifeBonus: 8, AttractivenessBonus: 20},
			},
		},
	},
	{
		ID:                     "cultural_center",
		Name:                   "Cultural Center",
		Description:            "Arts, education, and civic institutions.",
		RequiredPopulation:     60000,
		RequiredInfrastructure: []string{"schools", "public_transport", "conference_center"},
		DevelopmentStages: []DevelopmentStage{
			{
				Stage: 1, Name: "Arts Quarter",
				Requirements: StageRequirements{Population: 60000},
				Benefits:     StageBenefits{EconomicMultiplier: 1.08, QualityOfLifeBonus: 5, AttractivenessBonus: 6},
			},
			{
				Stage: 2, Name: "Regional Cultural Capital",
				Requirements: StageRequirements{
					Population:           150000,
					Infrastructure:       []InfraRequirement{{ID: "university", MinLevel: 3}, {ID: "schools", MinLevel: 5}},
					TimeInSpecialization: 18,
				},
				Benefits: StageBenefits{EconomicMultiplier: 1.18, QualityOfLifeBonus: 8, AttractivenessBonus: 12},
			},
			{
				Stage: 3, Name: "Heritage Metropolis",
				Requirements: StageRequirements{
					Population:           400000,
					Businesses:           800,
					TimeInSpecialization: 48,
				},
				Benefits: StageBenefits{EconomicMultiplier: 1.3, QualityOfLifeBonus: 12, AttractivenessBonus: 18},
			},
		},
	},
}
