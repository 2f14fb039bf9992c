package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer adds English thousands separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats n with thousands separators: 18248 -> "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat rounds f to precision digits and adds thousands separators to
// the integer part: FormatFloat(1234.567, 2) -> "1,234.57". Rounding is the
// same as strconv.FormatFloat (and %.2f): the exact binary value is rounded,
// ties to even, so 0.125 becomes "0.12".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if precision < 0 {
		precision = 0
	}

	formatted := strconv.FormatFloat(f, 'f', precision, 64)
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}
	grouped := FormatNumber(n)
	if n == 0 && strings.HasPrefix(intPart, "-") {
		grouped = "-" + grouped
	}
	if !hasFrac {
		return grouped
	}
	return grouped + "." + fracPart
}

// FormatLarge abbreviates values from a million upwards ("~1.5 billion") and
// otherwise rounds to a separated integer.
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	case n >= MillionThreshold:
		return fmt.Sprintf("~%.1f million", n/MillionThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}
