package city

import "time"

// EventType categorizes development-log entries.
type EventType string

const (
	EventPopulationMilestone  EventType = "population_milestone"
	EventSpecializationChange EventType = "specialization_change"
	EventInfrastructureBuilt  EventType = "infrastructure_built"
	EventResourceDiscovered   EventType = "resource_discovered"
	EventDisaster             EventType = "disaster"
	EventPolicyChange         EventType = "policy_change"
)

// InfraImpact records a level change to one infrastructure item.
type InfraImpact struct {
	ID          string  `json:"id"`
	LevelChange float64 `json:"level_change"`
}

// EventImpact quantifies what a development event did to the city.
type EventImpact struct {
	PopulationImpact     int64         `json:"population_impact,omitempty"`
	EconomicImpact       float64       `json:"economic_impact,omitempty"`
	QualityOfLifeImpact  float64       `json:"quality_of_life_impact,omitempty"`
	InfrastructureImpact []InfraImpact `json:"infrastructure_impact,omitempty"`
}

// DevelopmentEvent is one append-only entry in the development log.
type DevelopmentEvent struct {
	ID          string      `json:"id"`
	CityID      string      `json:"city_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Type        EventType   `json:"type"`
	Description string      `json:"description"`
	Impact      EventImpact `json:"impact"`
}
