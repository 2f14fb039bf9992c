package engine

import (
	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
)

// Unit is the unit every emission value is reported in.
const Unit = "kg CO2e"

// ActivityEmission is the contribution of one known activity.
type ActivityEmission struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Factor   float64 `json:"factor"`
	Emission float64 `json:"emission_kg"`
}

// CategoryResult is the subtotal for one category of the document.
type CategoryResult struct {
	Category   factors.Category   `json:"category"`
	Subtotal   float64            `json:"subtotal_kg"`
	Suggestion string             `json:"suggestion"`
	Activities []ActivityEmission `json:"activities"`

	// Ignored lists activity names not in the factor table.
	Ignored []string `json:"ignored,omitempty"`
}

// Warning is a per-category failure that was skipped during analysis.
type Warning struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Err      error  `json:"-"`
}

// Result is the outcome of analyzing one activity document.
type Result struct {
	Source      string           `json:"source,omitempty"`
	Categories  []CategoryResult `json:"categories"`
	TotalKg     float64          `json:"total_kg"`
	Unit        string           `json:"unit"`
	Warnings    []Warning        `json:"warnings,omitempty"`
	Equivalency *greenops.Output `json:"equivalency,omitempty"`
}

// Subtotal returns the subtotal for cat, if the category produced one.
func (r *Result) Subtotal(cat factors.Category) (float64, bool) {
	if r == nil {
		return 0, false
	}
	for _, c := range r.Categories {
		if c.Category == cat {
			return c.Subtotal, true
		}
	}
	return 0, false
}

// HasWarnings reports whether any category was skipped.
func (r *Result) HasWarnings() bool {
	return r != nil && len(r.Warnings) > 0
}
