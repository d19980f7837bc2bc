package greenops

// AnnualEnergyKWh returns the yearly electricity consumption of one device.
//
//	kWh/year = ((onWatts·onHours) + (standbyWatts·standbyHours)) · 365 / 1000
//
// Hours are per day and the same duty cycle is assumed every day of the year.
func AnnualEnergyKWh(onWatts, onHours, standbyWatts, standbyHours float64) float64 {
	return ((onWatts * onHours) + (standbyWatts * standbyHours)) * DaysPerYear / WattHoursPerKWh
}

// EnergyCost returns the yearly electricity bill for kwh at pricePerKWh.
func EnergyCost(kwh, pricePerKWh float64) float64 {
	return kwh * pricePerKWh
}
