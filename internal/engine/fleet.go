package engine

// FleetSummary holds fleet-wide totals. Every total is the per-unit value
// multiplied by the row quantity.
type FleetSummary struct {
	Rows  int `json:"rows"`
	Units int `json:"units"`

	TotalKWh        float64 `json:"total_kwh"`
	TotalEnergyCost float64 `json:"total_energy_cost"`
	TotalCarbonCost float64 `json:"total_carbon_cost"`
	TotalCO2Kg      float64 `json:"total_co2_kg"`

	TotalTCOKeep  float64 `json:"total_tco_keep"`
	TotalTCOBuy   float64 `json:"total_tco_buy"`
	TotalTCOLease float64 `json:"total_tco_lease"`

	// TotalTCORecommended sums the TCO of each row's recommended action.
	TotalTCORecommended float64 `json:"total_tco_recommended"`

	// ActionCounts counts rows (not units) per recommended action.
	ActionCounts map[Action]int `json:"action_counts"`
}

// Aggregate sums row results into a FleetSummary.
func Aggregate(rows []RowResult) FleetSummary {
	s := FleetSummary{ActionCounts: make(map[Action]int, len(AllActions()))}
	for _, a := range AllActions() {
		s.ActionCounts[a] = 0
	}

	for _, r := range rows {
		qty := float64(r.Quantity)
		s.Rows++
		s.Units += r.Quantity
		s.TotalKWh += r.AnnualKWh * qty
		s.TotalEnergyCost += r.EnergyCost * qty
		s.TotalCarbonCost += r.CarbonCost * qty
		s.TotalCO2Kg += r.AnnualCO2Kg() * qty
		s.TotalTCOKeep += r.TCOKeep * qty
		s.TotalTCOBuy += r.TCOBuy * qty
		s.TotalTCOLease += r.TCOLease * qty
		s.TotalTCORecommended += r.TCO(r.Action) * qty
		s.ActionCounts[r.Action]++
	}
	return s
}

// TCO returns the 12-month cost of action a for one unit.
func (r RowResult) TCO(a Action) float64 {
	return Scores{Keep: r.TCOKeep, Buy: r.TCOBuy, Lease: r.TCOLease}.Get(a)
}

// Savings is the keep-everything TCO minus the recommended TCO.
func (s FleetSummary) Savings() float64 {
	return s.TotalTCOKeep - s.TotalTCORecommended
}
