package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/greenroi/internal/greenops"
)

func TestDefaultAssumptions(t *testing.T) {
	a := DefaultAssumptions()
	require.NoError(t, a.Validate())
	assert.InDelta(t, 0.25, a.CarbonPricePerKg, 1e-9)
	assert.InDelta(t, 0.2016, a.ElectricityPricePerKWh, 1e-9)
	assert.InDelta(t, 0.022, a.GridIntensityKgPerKWh, 1e-9)
	assert.InDelta(t, 0.6, a.PerfRatio, 1e-9)
	assert.InDelta(t, 0.6, a.replacementRatio(), 1e-9)
}

func TestAssumptions_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Assumptions)
	}{
		{"negative carbon price", func(a *Assumptions) { a.CarbonPricePerKg = -1 }},
		{"zero perf ratio", func(a *Assumptions) { a.PerfRatio = 0 }},
		{"perf ratio above one", func(a *Assumptions) { a.PerfRatio = 1.2 }},
		{"sensitivity above cap", func(a *Assumptions) { a.Designer.Sensitivity = 0.06 }},
		{"negative salary", func(a *Assumptions) { a.Office.Salary = -5 }},
		{"negative weight", func(a *Assumptions) { a.Weights.Ecological = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := DefaultAssumptions()
			tt.mutate(&a)
			assert.Error(t, a.Validate())
		})
	}
}

func TestAssumptions_ReplacementRatio(t *testing.T) {
	a := DefaultAssumptions()
	a.ReplacementPerfRatio = 1
	assert.InDelta(t, 1.0, a.replacementRatio(), 1e-9)
}

func TestPowerOverride_Apply(t *testing.T) {
	on := 40.0
	hours := 10.0
	base := PowerOverride{OnWatts: &on, OnHours: &hours}

	got := base.Apply(greenops.DefaultPowerProfile(greenops.CategoryLaptop))
	assert.InDelta(t, 40.0, got.OnWatts, 1e-9)
	assert.InDelta(t, 10.0, got.OnHours, 1e-9)
	assert.InDelta(t, 2.0, got.StandbyWatts, 1e-9)
	assert.InDelta(t, 16.0, got.StandbyHours, 1e-9)
}
