package greenops

import (
	"fmt"
	"math"
)

// Calculate converts kg CO2e into EPA-based equivalencies: miles driven,
// smartphones charged and tree seedlings grown for ten years.
//
// Values below MinEquivalencyThresholdKg produce an empty output without
// error. Negative or non-finite input returns an error and an empty output.
func Calculate(kg float64) (EquivalencyOutput, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	trees := kg / EPATreeSeedlingFactor

	results := []EquivalencyResult{
		{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: formatEquivalencyValue(miles), Label: "miles driven"},
		{
			Type:           EquivalencySmartphonesCharged,
			Value:          phones,
			FormattedValue: formatEquivalencyValue(phones),
			Label:          "smartphones charged",
		},
		{
			Type:           EquivalencyTreeSeedlings,
			Value:          trees,
			FormattedValue: formatEquivalencyValue(trees),
			Label:          "tree seedlings grown for 10 years",
		},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			results[0].FormattedValue, results[1].FormattedValue),
	}, nil
}

// formatEquivalencyValue uses abbreviated notation for millions and above and
// a comma-separated integer otherwise.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
