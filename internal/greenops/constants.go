package greenops

// EPA greenhouse gas equivalency factors (2024 edition), in kg CO2e per unit.
// An equivalency is kg_CO2e / factor.
const (
	// MilesDrivenFactor is kg CO2e per mile in an average passenger vehicle.
	MilesDrivenFactor = 0.192

	// SmartphoneChargeFactor is kg CO2e per full smartphone charge.
	SmartphoneChargeFactor = 0.00822

	// TreeSeedlingFactor is kg CO2e absorbed by one urban tree seedling over 10 years.
	TreeSeedlingFactor = 60.0

	// HomeDayFactor is kg CO2e of one day of average US home electricity use.
	HomeDayFactor = 18.3
)

// Display thresholds.
const (
	// MinEquivalencyKg is the smallest total that gets equivalencies.
	// Below it the numbers round to nothing meaningful.
	MinEquivalencyKg = 1.0

	// MillionThreshold switches display to "~X.X million".
	MillionThreshold = 1_000_000

	// BillionThreshold switches display to "~X.X billion".
	BillionThreshold = 1_000_000_000
)
