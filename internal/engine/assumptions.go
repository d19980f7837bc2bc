package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MaxProductivityLoss caps the share of salary lost to under-performing hardware.
const MaxProductivityLoss = 0.05

// Persona is a worker archetype used by the organizational criterion.
type Persona struct {
	Name        string  `yaml:"name" json:"name"`
	Salary      float64 `yaml:"salary" json:"salary" validate:"gte=0"`
	Sensitivity float64 `yaml:"sensitivity" json:"sensitivity" validate:"gte=0,lte=0.05"`
}

// Weights blends the three single-criterion winners into one recommendation.
// The three weights are expected to sum to 1.0; this is not enforced.
type Weights struct {
	Financial      float64 `yaml:"financial" json:"financial" validate:"gte=0"`
	Ecological     float64 `yaml:"ecological" json:"ecological" validate:"gte=0"`
	Organizational float64 `yaml:"organizational" json:"organizational" validate:"gte=0"`
}

// DefaultWeights returns financial 0.4, ecological 0.35, organizational 0.25.
func DefaultWeights() Weights {
	return Weights{Financial: 0.4, Ecological: 0.35, Organizational: 0.25}
}

// Sum returns the total of the three weights.
func (w Weights) Sum() float64 {
	return w.Financial + w.Ecological + w.Organizational
}

// Assumptions are the global inputs shared by every row of one run.
// A value is passed into each computation and never mutated.
type Assumptions struct {
	CarbonPricePerKg       float64 `yaml:"carbon_price_per_kg" json:"carbon_price_per_kg" validate:"gte=0"`
	ElectricityPricePerKWh float64 `yaml:"electricity_price_per_kwh" json:"electricity_price_per_kwh" validate:"gte=0"`
	GridIntensityKgPerKWh  float64 `yaml:"grid_intensity_kg_per_kwh" json:"grid_intensity_kg_per_kwh" validate:"gte=0"`

	Designer Persona `yaml:"designer" json:"designer"`
	Office   Persona `yaml:"office" json:"office"`

	// PerfRatio is current device capability over a reference, in (0, 1].
	PerfRatio float64 `yaml:"perf_ratio" json:"perf_ratio" validate:"gt=0,lte=1"`

	// ReplacementPerfRatio is the ratio after buying or leasing new
	// equipment. Zero means the same as PerfRatio.
	ReplacementPerfRatio float64 `yaml:"replacement_perf_ratio" json:"replacement_perf_ratio" validate:"gte=0,lte=1"`

	Weights Weights `yaml:"weights" json:"weights"`
}

// DefaultAssumptions returns the French-market defaults: €0.25/kg carbon,
// €0.2016/kWh, 0.022 kg CO2/kWh, a designer at €80k with sensitivity 0.03,
// an office worker at €50k with sensitivity 0.01 and a performance ratio of 0.6.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		CarbonPricePerKg:       0.25,
		ElectricityPricePerKWh: 0.2016,
		GridIntensityKgPerKWh:  0.022,
		Designer:               Persona{Name: "Designer", Salary: 80000, Sensitivity: 0.03},
		Office:                 Persona{Name: "Office", Salary: 50000, Sensitivity: 0.01},
		PerfRatio:              0.6,
		Weights:                DefaultWeights(),
	}
}

// replacementRatio returns the performance ratio that applies to new equipment.
func (a Assumptions) replacementRatio() float64 {
	if a.ReplacementPerfRatio > 0 {
		return a.ReplacementPerfRatio
	}
	return a.PerfRatio
}

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the bounds of every assumption.
func (a Assumptions) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid assumptions: %w", err)
	}
	return nil
}
