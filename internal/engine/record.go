package engine

import "github.com/rshade/greenroi/internal/greenops"

// Default values substituted for missing or unparseable inventory fields.
const (
	DefaultQuantity       = 1
	DefaultLifespanMonths = 60
	monthsPerYear         = 12.0
)

// Names used in EquipmentRecord.Defaulted.
const (
	FieldLabel        = "label"
	FieldQuantity     = "quantity"
	FieldLifespan     = "lifespan_months"
	FieldUnitPrice    = "unit_price"
	FieldLeaseFee     = "lease_fee_month"
	FieldOnWatts      = "on_watts"
	FieldStandbyWatts = "standby_watts"
	FieldOnHours      = "on_hours"
	FieldStandbyHours = "standby_hours"
)

// PowerOverride carries per-row duty cycle values. Nil fields use the
// category default.
type PowerOverride struct {
	OnWatts      *float64 `json:"on_watts,omitempty"`
	StandbyWatts *float64 `json:"standby_watts,omitempty"`
	OnHours      *float64 `json:"on_hours,omitempty"`
	StandbyHours *float64 `json:"standby_hours,omitempty"`
}

// Apply returns base with every non-nil override substituted.
func (o PowerOverride) Apply(base greenops.PowerProfile) greenops.PowerProfile {
	if o.OnWatts != nil {
		base.OnWatts = *o.OnWatts
	}
	if o.StandbyWatts != nil {
		base.StandbyWatts = *o.StandbyWatts
	}
	if o.OnHours != nil {
		base.OnHours = *o.OnHours
	}
	if o.StandbyHours != nil {
		base.StandbyHours = *o.StandbyHours
	}
	return base
}

// EquipmentRecord is one normalized inventory row.
type EquipmentRecord struct {
	// Line is the 1-based data row in the source file, 0 when unknown.
	Line int `json:"line,omitempty"`

	Label           string  `json:"label"`
	Quantity        int     `json:"quantity"`
	LifespanMonths  int     `json:"lifespan_months"`
	UnitPrice       float64 `json:"unit_price"`
	LeaseMonthlyFee float64 `json:"lease_fee_month"`

	// Optional yearly and one-off fees, zero when absent.
	MaintenancePerYear float64 `json:"maintenance_fee_year,omitempty"`
	EndOfLifeFee       float64 `json:"eol_fee,omitempty"`
	LeaseEndFees       float64 `json:"lease_end_fees,omitempty"`

	Power PowerOverride `json:"power,omitempty"`

	// Defaulted lists the fields that fell back to defaults during ingestion.
	Defaulted []string `json:"defaulted,omitempty"`
}

// LifespanYears returns the lifespan in years, never below one year.
func LifespanYears(months int) float64 {
	years := float64(months) / monthsPerYear
	if years < 1 {
		return 1
	}
	return years
}

// RowResult is the immutable outcome of evaluating one EquipmentRecord.
// Monetary values are per unit per year, CO2 masses in kg per unit per year.
type RowResult struct {
	Label    string                  `json:"label"`
	Category greenops.DeviceCategory `json:"category"`
	Quantity int                     `json:"quantity"`

	AnnualKWh        float64 `json:"annual_kwh"`
	UsageCO2Kg       float64 `json:"usage_co2_kg"`
	FabricationCO2Kg float64 `json:"fabrication_co2_kg"`
	EnergyCost       float64 `json:"energy_cost"`
	CarbonCost       float64 `json:"carbon_cost"`

	TCOKeep  float64 `json:"tco_keep"`
	TCOBuy   float64 `json:"tco_buy"`
	TCOLease float64 `json:"tco_lease"`

	OrgCostDesigner float64 `json:"org_cost_designer"`
	OrgCostOffice   float64 `json:"org_cost_office"`

	Action Action     `json:"action"`
	Votes  VoteDetail `json:"votes"`

	Defaulted []string `json:"defaulted,omitempty"`
}

// AnnualCO2Kg is usage plus amortized fabrication CO2 for one unit.
func (r RowResult) AnnualCO2Kg() float64 {
	return greenops.AnnualCO2Kg(r.FabricationCO2Kg, r.UsageCO2Kg)
}
