package engine

// CloudCarbon is the emissions total of a cloud provider export. It is
// reported next to the inventory results and never merged into them.
type CloudCarbon struct {
	// Column is the header the total was read from.
	Column     string  `json:"column"`
	TotalKg    float64 `json:"total_kg"`
	CarbonCost float64 `json:"carbon_cost"`
}

// CloudCarbonCost prices a cloud CO2 mass.
func CloudCarbonCost(kg, pricePerKg float64) float64 {
	return kg * pricePerKg
}

// NewCloudCarbon prices totalKg with the run's carbon price.
func NewCloudCarbon(column string, totalKg float64, a Assumptions) CloudCarbon {
	return CloudCarbon{
		Column:     column,
		TotalKg:    totalKg,
		CarbonCost: CloudCarbonCost(totalKg, a.CarbonPricePerKg),
	}
}
