package greenops

// Energy model constants.
const (
	// DaysPerYear is the number of days of uniform use per year.
	// Weekends and holidays are not distinguished.
	DaysPerYear = 365

	// WattHoursPerKWh converts Wh to kWh.
	WattHoursPerKWh = 1000.0
)

// DefaultEmbodiedKg is the fabrication CO2 attributed to categories missing
// from the embodied table.
const DefaultEmbodiedKg = 150.0

// defaultPowerProfiles holds the per-category duty cycle used when an
// inventory row does not carry its own values. Screens use 160 W on and
// 5 W standby.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var defaultPowerProfiles = map[DeviceCategory]PowerProfile{
	CategoryLaptop:        {OnWatts: 25, StandbyWatts: 2, OnHours: 8, StandbyHours: 16},
	CategorySmartphone:    {OnWatts: 3.5, StandbyWatts: 1.0, OnHours: 8, StandbyHours: 16},
	CategoryTablet:        {OnWatts: 5.0, StandbyWatts: 1.0, OnHours: 8, StandbyHours: 16},
	CategoryScreen:        {OnWatts: 160, StandbyWatts: 5, OnHours: 8, StandbyHours: 16},
	CategoryMeetingScreen: {OnWatts: 160, StandbyWatts: 5, OnHours: 8, StandbyHours: 16},
	CategorySwitchRouter:  {OnWatts: 120, StandbyWatts: 120, OnHours: 24, StandbyHours: 0},
	CategoryLandlinePhone: {OnWatts: 4.0, StandbyWatts: 3.5, OnHours: 8, StandbyHours: 16},
	CategoryRefurbished:   {OnWatts: 25, StandbyWatts: 2, OnHours: 8, StandbyHours: 16},
}

// embodiedKg is the total manufacturing CO2 (kg CO2e) of one new unit.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var embodiedKg = map[DeviceCategory]float64{
	CategoryLaptop:        300,
	CategorySmartphone:    57,
	CategoryTablet:        80,
	CategoryScreen:        200,
	CategoryMeetingScreen: 350,
	CategorySwitchRouter:  200,
	CategoryLandlinePhone: 25,
	CategoryRefurbished:   60,
}

// DefaultPowerProfile returns the duty cycle for a category, falling back to
// the laptop profile for unknown categories.
func DefaultPowerProfile(c DeviceCategory) PowerProfile {
	if p, ok := defaultPowerProfiles[c]; ok {
		return p
	}
	return defaultPowerProfiles[CategoryLaptop]
}

// EmbodiedKg returns the static fabrication CO2 for a category.
// Unknown categories get DefaultEmbodiedKg.
func EmbodiedKg(c DeviceCategory) float64 {
	if kg, ok := embodiedKg[c]; ok {
		return kg
	}
	return DefaultEmbodiedKg
}

// EPA GHG equivalency factors (2024 edition), kg CO2e per unit of activity.
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeSeedlingFactor is kg CO2e absorbed per tree seedling over 10 years.
	EPATreeSeedlingFactor = 60.0
)

// Unit conversion constants for normalizing carbon values to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2e for showing equivalencies.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches display to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches display to "~X.X billion".
	BillionThreshold = 1_000_000_000
)
