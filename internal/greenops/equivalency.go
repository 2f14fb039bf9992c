package greenops

import (
	"fmt"
	"math"
)

// equivalencyDefs lists the equivalencies in display order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var equivalencyDefs = []struct {
	kind   Kind
	factor float64
	label  string
}{
	{MilesDriven, MilesDrivenFactor, "miles driven"},
	{SmartphonesCharged, SmartphoneChargeFactor, "smartphones charged"},
	{TreeSeedlings, TreeSeedlingFactor, "tree seedlings grown for 10 years"},
	{HomeDays, HomeDayFactor, "days of home electricity"},
}

// Calculate converts an emission total in kg CO2e into equivalencies.
//
// Totals below MinEquivalencyKg return an empty Output with InputKg set and
// no error. Negative totals return ErrNegativeValue; NaN, infinite or
// overflowing values return ErrCalculationOverflow.
func Calculate(kg float64) (Output, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Output{}, ErrCalculationOverflow
	}
	if kg < 0 {
		return Output{}, ErrNegativeValue
	}
	if kg < MinEquivalencyKg {
		return Output{InputKg: kg}, nil
	}

	out := Output{InputKg: kg, Equivalencies: make([]Equivalency, 0, len(equivalencyDefs))}
	for _, def := range equivalencyDefs {
		v := kg / def.factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return Output{}, ErrCalculationOverflow
		}
		out.Equivalencies = append(out.Equivalencies, Equivalency{
			Kind:      def.kind,
			Name:      def.kind.String(),
			Value:     v,
			Formatted: formatEquivalency(v),
			Label:     def.label,
		})
	}

	miles, phones := out.Equivalencies[0].Formatted, out.Equivalencies[1].Formatted
	out.DisplayText = fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones", miles, phones)
	out.CompactText = fmt.Sprintf("(≈ %s mi, %s phones)", miles, phones)
	return out, nil
}

// Find returns the equivalency of the given kind.
func (o Output) Find(kind Kind) (Equivalency, bool) {
	for _, e := range o.Equivalencies {
		if e.Kind == kind {
			return e, true
		}
	}
	return Equivalency{}, false
}

func formatEquivalency(v float64) string {
	if v >= MillionThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
