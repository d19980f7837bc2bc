package engine

import "math"

// ResaleRetentionPerYear is the share of value kept after each year of use
// (flat 25%/year depreciation).
const ResaleRetentionPerYear = 0.75

// monthsPerLeaseYear converts a monthly lease fee to a yearly one.
const monthsPerLeaseYear = 12

// ResaleValue returns the residual value of price after years of use.
func ResaleValue(price, years float64) float64 {
	return price * math.Pow(ResaleRetentionPerYear, years)
}

// AnnualCapex is the yearly capital cost of buying: purchase price minus
// resale value after resaleYears, spread over the lifespan. Never negative.
func AnnualCapex(price, lifespanYears, resaleYears float64) float64 {
	return math.Max(0, (price-ResaleValue(price, resaleYears))/math.Max(lifespanYears, 1))
}

// TCOKeep is the 12-month cost of keeping owned equipment: no capital expense.
func TCOKeep(energyCost, carbonCost float64) float64 {
	return energyCost + carbonCost
}

// BuyInputs are the terms of a purchase.
type BuyInputs struct {
	Price         float64
	LifespanYears float64

	// ResaleYears defaults to LifespanYears when zero.
	ResaleYears float64

	EnergyCost  float64
	CarbonCost  float64
	Maintenance float64
	EndOfLife   float64
}

// TCOBuy is the 12-month cost of buying new equipment.
func TCOBuy(in BuyInputs) float64 {
	resaleYears := in.ResaleYears
	if resaleYears == 0 {
		resaleYears = in.LifespanYears
	}
	return AnnualCapex(in.Price, in.LifespanYears, resaleYears) +
		in.EnergyCost + in.CarbonCost + in.Maintenance + in.EndOfLife
}

// LeaseInputs are the terms of a lease.
type LeaseInputs struct {
	MonthlyFee  float64
	EnergyCost  float64
	CarbonCost  float64
	Maintenance float64
	EndFees     float64
}

// TCOLease is the 12-month cost of leasing.
func TCOLease(in LeaseInputs) float64 {
	return in.MonthlyFee*monthsPerLeaseYear + in.EnergyCost + in.CarbonCost + in.Maintenance + in.EndFees
}
