package greenops

// UsageCO2Kg returns the CO2 attributable to consuming kwh on a grid with the
// given intensity (kg CO2 per kWh).
func UsageCO2Kg(kwh, intensityKgPerKWh float64) float64 {
	return kwh * intensityKgPerKWh
}

// AmortizedFabricationKg spreads the embodied CO2 of one unit linearly over
// its lifespan. Lifespans under one year are treated as one year.
func AmortizedFabricationKg(totalKg, lifespanYears float64) float64 {
	if lifespanYears < 1 {
		lifespanYears = 1
	}
	return totalKg / lifespanYears
}

// AnnualCO2Kg is the yearly footprint of one unit: usage plus amortized fabrication.
func AnnualCO2Kg(fabricationAnnualKg, usageKg float64) float64 {
	return fabricationAnnualKg + usageKg
}

// CarbonCost prices the yearly footprint of one unit at pricePerKg.
//
//	cost = (fabricationAnnualKg + usageKg) · pricePerKg
func CarbonCost(fabricationAnnualKg, usageKg, pricePerKg float64) float64 {
	return AnnualCO2Kg(fabricationAnnualKg, usageKg) * pricePerKg
}
