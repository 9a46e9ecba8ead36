// Package utils provides number formatting helpers shared by the
// calculation engine's exports and the report renderers.
package utils

import (
	"fmt"
	"math"
)

// FormatGrouped formats a number with thousands separators and two decimal
// places, e.g. 1234567.5 → "1,234,567.50".
func FormatGrouped(v float64) string {
	negative := v < 0
	v = math.Abs(v)

	// Round to 2 decimals first so the integer part matches the output.
	v = math.Round(v*100) / 100
	intPart := int64(v)
	decPart := v - float64(intPart)

	formatted := groupThousands(intPart) + fmt.Sprintf("%.2f", decPart)[1:]
	if negative {
		return "-" + formatted
	}
	return formatted
}

// FormatScore formats an M-Score for display with three decimal places.
func FormatScore(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// FormatRatio formats a Beneish ratio for display with three decimal places.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// groupThousands formats an integer with commas every three digits.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
