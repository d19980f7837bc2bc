package report

import (
	"github.com/shopspring/decimal"

	"github.com/rshade/greenroi/internal/engine"
)

// Rounding places.
const (
	DefaultPlaces = 1
	OrgPlaces     = 0
)

// column describes one exported field.
type column struct {
	header string
	places int32

	// num is nil for text columns.
	num  func(r engine.RowResult) float64
	text func(r engine.RowResult) string
}

// columns is the exported field set, in output order.
//
//nolint:gochecknoglobals // Read-only column table.
var columns = []column{
	{header: "label", text: func(r engine.RowResult) string { return r.Label }},
	{header: "category", text: func(r engine.RowResult) string { return string(r.Category) }},
	{header: "quantity", num: func(r engine.RowResult) float64 { return float64(r.Quantity) }},
	{header: "annual_kwh", places: DefaultPlaces, num: func(r engine.RowResult) float64 { return r.AnnualKWh }},
	{header: "usage_co2_kg", places: DefaultPlaces, num: func(r engine.RowResult) float64 { return r.UsageCO2Kg }},
	{header: "fabrication_co2_kg", places: DefaultPlaces, num: func(r engine.RowResult) float64 { return r.FabricationCO2Kg }},
	{header: "energy_cost_eur", places: DefaultPlaces, num: func(r engine.RowResult) float64 { return r.EnergyCost }},
	{header: "carbon_cost_eur", places: DefaultPlaces, num: func(r engine.RowResult) float64 { return r.CarbonCost }},
	{header: "tco_keep_eur", places: DefaultPlaces, num: func(r engine.RowResult) float64 { return r.TCOKeep }},
	{header: "tco_buy_eur", places: DefaultPlaces, num: func(r engine.RowResult) float64 { return r.TCOBuy }},
	{header: "tco_lease_eur", places: DefaultPlaces, num: func(r engine.RowResult) float64 { return r.TCOLease }},
	{header: "org_cost_designer_eur", places: OrgPlaces, num: func(r engine.RowResult) float64 { return r.OrgCostDesigner }},
	{header: "org_cost_office_eur", places: OrgPlaces, num: func(r engine.RowResult) float64 { return r.OrgCostOffice }},
	{header: "action", text: func(r engine.RowResult) string { return string(r.Action) }},
	{header: "vote_financial", text: func(r engine.RowResult) string { return string(r.Votes.Financial) }},
	{header: "vote_ecological", text: func(r engine.RowResult) string { return string(r.Votes.Ecological) }},
	{header: "vote_organizational", text: func(r engine.RowResult) string { return string(r.Votes.Organizational) }},
}

// Headers returns the exported column names in order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// Round rounds v to places decimals, half away from zero.
func Round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

func (c column) format(r engine.RowResult) string {
	if c.num == nil {
		return c.text(r)
	}
	return Round(c.num(r), c.places).StringFixed(c.places)
}

func (c column) value(r engine.RowResult) any {
	if c.num == nil {
		return c.text(r)
	}
	return Round(c.num(r), c.places).InexactFloat64()
}
