package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/metropolis/internal/catalog"
	"github.com/talgya/metropolis/internal/city"
)

// DevelopSpecialization points the city at a new economic focus. Returns
// false when the city or specialization is unknown or eligibility fails.
// Progress always resets, even when re-selecting the active specialization.
func (e *Engine) DevelopSpecialization(cityID, specID string) bool {
	res := e.developSpecialization(cityID, specID)
	if !res.OK {
		slog.Debug("specialization refused", "city", cityID, "specialization", specID, "reason", res.Reason)
	}
	return res.OK
}

func (e *Engine) developSpecialization(cityID, specID string) opResult {
	c := e.cities[cityID]
	spec := e.catalog.Specialization(specID)
	if c == nil || spec == nil {
		if c == nil {
			return refuse(FailUnknownCity)
		}
		return refuse(FailUnknownDefinition)
	}
	if !e.canDevelop(c, spec) {
		return refuse(FailIneligible)
	}

	now := e.now()

	// Close the currently open history chapter, if any.
	if rec := c.ActiveRecord(); rec != nil {
		end := now
		rec.EndDate = &end
	}

	c.CurrentSpecialization = specID
	c.SpecializationProgress = 0
	c.SpecializationHistory = append(c.SpecializationHistory, city.SpecializationRecord{
		SpecializationID: specID,
		StartDate:        now,
		MaxStageReached:  0,
	})

	e.logEvent(city.DevelopmentEvent{
		CityID:      cityID,
		Type:        city.EventSpecializationChange,
		Description: fmt.Sprintf("%s began developing as a %s", c.Name, spec.Name),
		Impact:      city.EventImpact{EconomicImpact: c.EconomicOutput * 0.1},
	})

	slog.Info("specialization adopted", "city", c.Name, "specialization", spec.Name)
	return opResult{OK: true}
}

// canDevelop checks the entry gate: enough residents, and every required
// facility at level 3 or above. Fractional levels are compared raw.
func (e *Engine) canDevelop(c *city.City, spec *catalog.Specialization) bool {
	if c.Population < spec.RequiredPopulation {
		return false
	}
	for _, infraID := range spec.RequiredInfrastructure {
		infra := c.Infrastructure[infraID]
		if infra == nil || infra.Level < 3 {
			return false
		}
	}
	return true
}

// updateSpecializationProgress advances progress and promotes the city to
// the highest development stage it now qualifies for. Stages are never
// revoked: MaxStageReached only grows.
func (e *Engine) updateSpecializationProgress(c *city.City) {
	if c.CurrentSpecialization == "" {
		return
	}
	spec := e.catalog.Specialization(c.CurrentSpecialization)
	if spec == nil {
		return
	}

	c.SpecializationProgress += e.cfg.SpecializationDevelopmentRate
	if c.SpecializationProgress > 100 {
		c.SpecializationProgress = 100
	}

	rec := c.ActiveRecord()
	if rec == nil {
		return
	}

	var next *catalog.DevelopmentStage
	for i := range spec.DevelopmentStages {
		stage := &spec.DevelopmentStages[i]
		if stage.Stage <= rec.MaxStageReached {
			continue
		}
		if !e.meetsStageRequirements(c, rec, stage) {
			continue
		}
		if next == nil || stage.Stage > next.Stage {
			next = stage
		}
	}
	if next == nil {
		return
	}

	rec.MaxStageReached = next.Stage
	e.logEvent(city.DevelopmentEvent{
		CityID:      c.ID,
		Type:        city.EventSpecializationChange,
		Description: fmt.Sprintf("%s advanced to %s in %s", c.Name, next.Name, spec.Name),
		Impact: city.EventImpact{
			EconomicImpact:      c.EconomicOutput * 0.15,
			QualityOfLifeImpact: next.Benefits.QualityOfLifeBonus,
		},
	})
	slog.Info("specialization stage reached",
		"city", c.Name,
		"specialization", spec.Name,
		"stage", next.Stage,
		"stage_name", next.Name,
	)
}

// meetsStageRequirements checks every declared requirement dimension.
func (e *Engine) meetsStageRequirements(c *city.City, rec *city.SpecializationRecord, stage *catalog.DevelopmentStage) bool {
	req := stage.Requirements

	if req.Population > 0 && c.Population < req.Population {
		return false
	}
	for _, ir := range req.Infrastructure {
		infra := c.Infrastructure[ir.ID]
		if infra == nil || infra.Level < ir.MinLevel {
			return false
		}
	}
	if req.Businesses > 0 && c.EstimatedBusinesses() < req.Businesses {
		return false
	}
	if req.TimeInSpecialization > 0 {
		months := e.now().Sub(rec.StartDate).Hours() / (24 * 30)
		if months < float64(req.TimeInSpecialization) {
			return false
		}
	}
	return true
}

// activeStageBenefits returns the benefits of the single highest stage the
// city has reached, or nil when unspecialized or still at stage 0.
func (e *Engine) activeStageBenefits(c *city.City) *catalog.StageBenefits {
	if c.CurrentSpecialization == "" {
		return nil
	}
	spec := e.catalog.Specialization(c.CurrentSpecialization)
	if spec == nil {
		return nil
	}
	rec := c.ActiveRecord()
	if rec == nil {
		return nil
	}
	stage := spec.HighestStageAtOrBelow(rec.MaxStageReached)
	if stage == nil {
		return nil
	}
	return &stage.Benefits
}
