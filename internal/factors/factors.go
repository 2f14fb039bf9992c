// Package factors holds the emission factor and suggestion tables.
//
// Tables are plain values built once at startup and handed to the engine, so
// tests can substitute their own without touching package state.
package factors

import (
	"maps"
	"slices"
)

// Category groups emission sources.
type Category string

// Known activity categories.
const (
	Transportation Category = "transportation"
	Energy         Category = "energy"
	Diet           Category = "diet"
)

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }

// FallbackSuggestion is returned for categories without a suggestion.
const FallbackSuggestion = "No suggestions available for this activity type."

// Table maps a category to its activity factors (kg CO2e per unit).
// The zero value is an empty table.
type Table struct {
	factors map[Category]map[string]float64
	order   []Category
}

// NewTable copies src into a Table. Category order follows the order of
// the order argument; categories missing from order are appended sorted.
func NewTable(src map[Category]map[string]float64, order ...Category) *Table {
	t := &Table{factors: make(map[Category]map[string]float64, len(src))}
	for cat, activities := range src {
		t.factors[cat] = maps.Clone(activities)
	}

	seen := make(map[Category]bool, len(src))
	for _, cat := range order {
		if _, ok := t.factors[cat]; ok && !seen[cat] {
			t.order = append(t.order, cat)
			seen[cat] = true
		}
	}
	var rest []Category
	for cat := range t.factors {
		if !seen[cat] {
			rest = append(rest, cat)
		}
	}
	slices.Sort(rest)
	t.order = append(t.order, rest...)
	return t
}

// Default returns the built-in factor table.
func Default() *Table {
	return NewTable(map[Category]map[string]float64{
		Transportation: {
			"car":     0.24, // per km
			"bus":     0.05, // per km
			"bicycle": 0,
			"walk":    0,
		},
		Energy: {
			"electricity": 0.45, // per kWh
			"gas":         2.5,  // per therm
		},
		Diet: {
			"meat":       5.0, // per serving
			"vegetarian": 2.0,
			"vegan":      1.5,
		},
	}, Transportation, Energy, Diet)
}

// HasCategory reports whether cat is a key of the table.
func (t *Table) HasCategory(cat Category) bool {
	if t == nil {
		return false
	}
	_, ok := t.factors[cat]
	return ok
}

// Factor returns the factor for an activity in a category.
func (t *Table) Factor(cat Category, activity string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	activities, ok := t.factors[cat]
	if !ok {
		return 0, false
	}
	f, ok := activities[activity]
	return f, ok
}

// Categories returns the table's categories in display order.
func (t *Table) Categories() []Category {
	if t == nil {
		return nil
	}
	return slices.Clone(t.order)
}

// Activities returns the sorted activity names of a category.
func (t *Table) Activities(cat Category) []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.factors[cat]))
}

// Suggestions maps a category to a reduction suggestion.
type Suggestions struct {
	text map[Category]string
}

// NewSuggestions copies src into a Suggestions table.
func NewSuggestions(src map[Category]string) *Suggestions {
	return &Suggestions{text: maps.Clone(src)}
}

// DefaultSuggestions returns the built-in suggestion table.
func DefaultSuggestions() *Suggestions {
	return NewSuggestions(map[Category]string{
		Transportation: "Consider walking, cycling, or using public transport to reduce emissions.",
		Energy:         "Try to reduce energy consumption or use renewable energy sources.",
		Diet:           "Consider reducing meat consumption and opting for plant-based alternatives.",
	})
}

// For returns the suggestion for cat, or FallbackSuggestion.
func (s *Suggestions) For(cat Category) string {
	if s == nil {
		return FallbackSuggestion
	}
	if text, ok := s.text[cat]; ok {
		return text
	}
	return FallbackSuggestion
}
