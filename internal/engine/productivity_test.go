package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductivityCost(t *testing.T) {
	tests := []struct {
		name        string
		ratio       float64
		salary      float64
		sensitivity float64
		expected    float64
	}{
		{"designer default", 0.6, 80000, 0.03, 960},
		{"office default", 0.6, 50000, 0.01, 200},
		{"perfect hardware", 1, 80000, 0.03, 0},
		{"capped at five percent", 0.01, 100000, 0.2, 5000},
		{"ratio above one floors at zero", 1.5, 80000, 0.03, 0},
		{"zero salary", 0.2, 0, 0.05, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ProductivityCost(tt.ratio, tt.salary, tt.sensitivity), 1e-9)
		})
	}
}

func TestProductivityCost_Bounded(t *testing.T) {
	for _, ratio := range []float64{0.01, 0.1, 0.5, 0.9, 1} {
		for _, sens := range []float64{0, 0.01, 0.05, 1, 10} {
			got := ProductivityCost(ratio, 60000, sens)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, MaxProductivityLoss*60000)
		}
	}
}

func TestPersona_PersonaCost(t *testing.T) {
	p := Persona{Name: "Designer", Salary: 80000, Sensitivity: 0.03}
	assert.InDelta(t, ProductivityCost(0.6, 80000, 0.03), p.PersonaCost(0.6), 1e-9)
}

func TestAssumptions_OrgScores(t *testing.T) {
	a := DefaultAssumptions()
	got := a.OrgScores()
	assert.InDelta(t, 960, got.Keep, 1e-9)
	assert.InDelta(t, got.Keep, got.Buy, 1e-9)
	assert.InDelta(t, got.Keep, got.Lease, 1e-9)

	a.ReplacementPerfRatio = 1
	got = a.OrgScores()
	assert.InDelta(t, 960, got.Keep, 1e-9)
	assert.InDelta(t, 0, got.Buy, 1e-9)
	assert.InDelta(t, 0, got.Lease, 1e-9)
}
