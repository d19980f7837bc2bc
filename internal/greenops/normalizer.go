package greenops

import (
	"math"
	"strings"
)

// getUnitFactor returns the conversion factor to kilograms for a unit string
// and whether the unit is recognized. Matching is case-insensitive and accepts
// the bare mass unit, the "CO2e" suffix and the "CO2eq" suffix used by
// life-cycle databases.
func getUnitFactor(unit string) (float64, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, "co2eq")
	u = strings.TrimSuffix(u, "co2e")
	u = strings.TrimSuffix(u, "co2")
	switch u {
	case "g":
		return GramsToKg, true
	case "kg":
		return KgToKg, true
	case "t":
		return TonsToKg, true
	case "lb":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a carbon quantity in unit to kilograms.
//
// Returns ErrNegativeValue for negative input, ErrInvalidUnit for an
// unrecognized unit and ErrCalculationOverflow for Inf/NaN input or results.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := getUnitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// IsRecognizedUnit reports whether unit is a supported carbon unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := getUnitFactor(unit)
	return ok
}
