package catalog

import (
	"strings"

	"github.com/talgya/metropolis/internal/city"
)

// infraBase is the per-type constant row all Infrastructure fields scale from.
type infraBase struct {
	name     string
	kind     city.InfraType
	capacity float64 // residents served per level
	cost     float64 // maintenance base, scaled by level×0.8
	months   int     // construction time per level
	qol      float64 // quality-of-life impact per level
	economic float64 // economic impact per level
}

var infraBases = map[string]infraBase{
	"roads":               {"Road Network", city.InfraTransport, 10000, 50000, 6, 5, 8},
	"water_system":        {"Water System", city.InfraUtilities, 8000, 75000, 8, 8, 5},
	"power_grid":          {"Power Grid", city.InfraUtilities, 12000, 100000, 10, 6, 10},
	"waste_management":    {"Waste Management", city.InfraUtilities, 6000, 40000, 4, 7, 3},
	"public_transport":    {"Public Transportation", city.InfraTransport, 15000, 80000, 12, 6, 7},
	"schools":             {"Educational Facilities", city.InfraEducation, 2000, 60000, 8, 10, 6},
	"healthcare":          {"Healthcare System", city.InfraHealthcare, 5000, 120000, 10, 12, 4},
	"airport":             {"Airport", city.InfraTransport, 50000, 500000, 36, 3, 15},
	"university":          {"University", city.InfraEducation, 10000, 200000, 24, 8, 12},
	"business_district":   {"Business District", city.InfraCommercial, 20000, 150000, 18, 4, 20},
	"industrial_zone":     {"Industrial Zone", city.InfraCommercial, 15000, 100000, 12, -2, 18},
	"high_speed_internet": {"High-Speed Internet", city.InfraUtilities, 5000, 50000, 6, 3, 5},
	"conference_center":   {"Conference Center", city.InfraRecreation, 5000, 50000, 6, 3, 5},
}

// defaultInfraBase covers ids outside the table.
var defaultInfraBase = infraBase{"", city.InfraUtilities, 5000, 50000, 6, 3, 5}

// CriticalInfrastructure is the set the engine auto-invests in when capacity
// falls behind population.
var CriticalInfrastructure = []string{"roads", "water_system", "power_grid"}

// NewInfrastructure derives a full Infrastructure record for id at level,
// scaling every field linearly from the base row.
func NewInfrastructure(id string, level float64) *city.Infrastructure {
	base, ok := infraBases[id]
	if !ok {
		base = defaultInfraBase
		base.name = titleFromID(id)
	}
	maintenance := MaintenanceCost(id, level)
	return &city.Infrastructure{
		ID:               id,
		Name:             base.name,
		Type:             base.kind,
		Level:            level,
		Capacity:         Capacity(id, level),
		MaintenanceCost:  maintenance,
		ConstructionCost: maintenance * 15,
		ConstructionTime: base.months * int(level),
		QoLImpact:        base.qol * level,
		EconomicImpact:   base.economic * level,
	}
}

// Capacity returns residents served by id at level.
func Capacity(id string, level float64) float64 {
	base, ok := infraBases[id]
	if !ok {
		base = defaultInfraBase
	}
	return base.capacity * level
}

// MaintenanceCost returns the annual upkeep for id at level.
func MaintenanceCost(id string, level float64) float64 {
	base, ok := infraBases[id]
	if !ok {
		base = defaultInfraBase
	}
	return base.cost * level * 0.8
}

// ConstructionCost is the one-off build price: 15× maintenance.
func ConstructionCost(id string, level float64) float64 {
	return MaintenanceCost(id, level) * 15
}

func titleFromID(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
