// Package greenops models the energy use and carbon footprint of IT equipment.
//
// It classifies free-text equipment labels into device categories, holds the
// per-category duty cycle and embodied (manufacturing) CO2 tables, and exposes
// the pure formulas that turn those into annual kWh, usage CO2, amortized
// fabrication CO2 and a monetary carbon cost. Equivalency helpers convert kg
// CO2e into relatable figures for fleet summaries.
package greenops

import (
	"fmt"
	"strings"
)

// DeviceCategory is the canonical category an equipment label resolves to.
type DeviceCategory string

// Known device categories.
const (
	CategoryLaptop        DeviceCategory = "laptop"
	CategorySmartphone    DeviceCategory = "smartphone"
	CategoryTablet        DeviceCategory = "tablet"
	CategoryScreen        DeviceCategory = "screen"
	CategoryMeetingScreen DeviceCategory = "meeting_screen"
	CategorySwitchRouter  DeviceCategory = "switch/router"
	CategoryLandlinePhone DeviceCategory = "landline_phone"
	CategoryRefurbished   DeviceCategory = "refurbished"
)

// AllCategories returns every known category in classification precedence order.
func AllCategories() []DeviceCategory {
	return []DeviceCategory{
		CategoryMeetingScreen,
		CategorySwitchRouter,
		CategoryLandlinePhone,
		CategorySmartphone,
		CategoryTablet,
		CategoryLaptop,
		CategoryScreen,
		CategoryRefurbished,
	}
}

// String returns the category identifier.
func (c DeviceCategory) String() string {
	return string(c)
}

// IsKnown reports whether c is one of the fixed categories.
func (c DeviceCategory) IsKnown() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts an identifier back into a DeviceCategory.
// Returns ErrUnknownCategory for identifiers outside the fixed set.
func ParseCategory(s string) (DeviceCategory, error) {
	c := DeviceCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// PowerProfile is the daily duty cycle of one device.
type PowerProfile struct {
	// OnWatts is the draw while in use.
	OnWatts float64 `json:"on_watts"`

	// StandbyWatts is the draw while idle.
	StandbyWatts float64 `json:"standby_watts"`

	// OnHours is the number of hours per day in use.
	OnHours float64 `json:"on_hours"`

	// StandbyHours is the number of hours per day in standby.
	StandbyHours float64 `json:"standby_hours"`
}

// AnnualKWh returns the yearly consumption of the profile.
func (p PowerProfile) AnnualKWh() float64 {
	return AnnualEnergyKWh(p.OnWatts, p.OnHours, p.StandbyWatts, p.StandbyHours)
}

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged converts CO2e to smartphone full charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings converts CO2e to tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds all equivalencies for one carbon amount.
type EquivalencyOutput struct {
	// InputKg is the normalized input value in kilograms CO2e.
	InputKg float64 `json:"input_kg"`

	// Results contains calculated equivalencies in display order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the full prose format for CLI output.
	DisplayText string `json:"display_text"`

	// IsEmpty is true when the amount is below the display threshold.
	IsEmpty bool `json:"is_empty"`
}
