// Package greenops turns an emission total (kg CO2e) into relatable
// equivalencies such as miles driven or smartphones charged.
package greenops

import "fmt"

// Kind identifies an equivalency.
type Kind int

const (
	// MilesDriven is miles driven in an average passenger vehicle.
	MilesDriven Kind = iota

	// SmartphonesCharged is full smartphone charges.
	SmartphonesCharged

	// TreeSeedlings is tree seedlings grown for 10 years.
	TreeSeedlings

	// HomeDays is days of average US home electricity use.
	HomeDays
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case MilesDriven:
		return "MilesDriven"
	case SmartphonesCharged:
		return "SmartphonesCharged"
	case TreeSeedlings:
		return "TreeSeedlings"
	case HomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Equivalency is one calculated equivalency.
type Equivalency struct {
	Kind      Kind    `json:"-"`
	Name      string  `json:"kind"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Label     string  `json:"label"`
}

// Output holds the equivalencies for one total.
type Output struct {
	InputKg       float64       `json:"input_kg"`
	Equivalencies []Equivalency `json:"equivalencies,omitempty"`

	// DisplayText is the prose line, e.g.
	// "Equivalent to driving ~181 miles or charging ~4,234 smartphones".
	DisplayText string `json:"display_text,omitempty"`

	// CompactText is the short form, e.g. "(≈ 181 mi, 4,234 phones)".
	CompactText string `json:"compact_text,omitempty"`
}

// IsEmpty reports whether no equivalencies were calculated.
func (o Output) IsEmpty() bool { return len(o.Equivalencies) == 0 }
