package catalog

import (
	"math"
	"testing"
)

func TestCostScaling(t *testing.T) {
	tests := []struct {
		id    string
		level float64
	}{
		{"roads", 3},
		{"airport", 1},
		{"healthcare", 7.5},
		{"made_up_facility", 2},
	}

	for _, tt := range tests {
		maintenance := MaintenanceCost(tt.id, tt.level)
		if got := ConstructionCost(tt.id, tt.level); got != maintenance*15 {
			t.Errorf("ConstructionCost(%s, %g) = %v, want 15x maintenance %v", tt.id, tt.level, got, maintenance)
		}
	}

	// roads base 50000 × level × 0.8
	if got, want := MaintenanceCost("roads", 3), 50000*3*0.8; got != want {
		t.Errorf("roads maintenance = %v, want %v", got, want)
	}
}

func TestNewInfrastructureScalesLinearly(t *testing.T) {
	one := NewInfrastructure("power_grid", 1)
	four := NewInfrastructure("power_grid", 4)

	if four.Capacity != one.Capacity*4 {
		t.Errorf("capacity = %v, want %v", four.Capacity, one.Capacity*4)
	}
	if four.QoLImpact != one.QoLImpact*4 {
		t.Errorf("qol impact = %v, want %v", four.QoLImpact, one.QoLImpact*4)
	}
	if four.EconomicImpact != one.EconomicImpact*4 {
		t.Errorf("economic impact = %v, want %v", four.EconomicImpact, one.EconomicImpact*4)
	}
	if math.Abs(four.ConstructionCost-four.MaintenanceCost*15) > 1e-9 {
		t.Errorf("construction cost = %v, want 15x maintenance", four.ConstructionCost)
	}
}

func TestNewInfrastructureUnknownID(t *testing.T) {
	infra := NewInfrastructure("moon_base", 2)
	if infra.Name != "Moon Base" {
		t.Errorf("name = %q, want title-cased from id", infra.Name)
	}
	if infra.Capacity != 5000*2 {
		t.Errorf("capacity = %v, want default base 5000 per level", infra.Capacity)
	}
}

func TestCatalogLookups(t *testing.T) {
	c := New()

	if c.Specialization("tech_hub") == nil {
		t.Error("tech_hub missing")
	}
	if c.Specialization("nope") != nil {
		t.Error("unknown specialization should be nil")
	}
	if c.Advantage("natural_harbor") == nil {
		t.Error("natural_harbor missing")
	}
	if c.Advantage("nope") != nil {
		t.Error("unknown advantage should be nil")
	}
	if got := len(c.Specializations()); got != 5 {
		t.Errorf("specializations = %d, want 5", got)
	}
	if got := len(c.Advantages()); got != 6 {
		t.Errorf("advantages = %d, want 6", got)
	}
}

func TestSpecializationsOrderStable(t *testing.T) {
	a, b := New().Specializations(), New().Specializations()
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("ordering differs at %d: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestHighestStageAtOrBelow(t *testing.T) {
	spec := New().Specialization("tech_hub")

	if got := spec.HighestStageAtOrBelow(0); got != nil {
		t.Errorf("stage at 0 = %+v, want nil", got)
	}
	if got := spec.HighestStageAtOrBelow(2); got == nil || got.Stage != 2 {
		t.Errorf("stage at 2 = %+v, want stage 2", got)
	}
	if got := spec.HighestStageAtOrBelow(9); got == nil || got.Stage != 3 {
		t.Errorf("stage at 9 = %+v, want stage 3", got)
	}
}

func TestStageByNumber(t *testing.T) {
	spec := New().Specialization("tourism_destination")
	if got := spec.StageByNumber(2); got == nil || got.Name != "Resort City" {
		t.Errorf("stage 2 = %+v, want Resort City", got)
	}
	if got := spec.StageByNumber(7); got != nil {
		t.Errorf("stage 7 = %+v, want nil", got)
	}
}
